package mockmeet

import (
	"fmt"
	"log"

	"github.com/poolside/lineup/internal/domain/model"
)

const legsPerSquad = 4

// verifyResult checks the lineup invariants the engine promises: the
// per-athlete event cap, slot limits per event, complete relay squads with
// distinct members, and a consistent scoreboard in dual mode.
func verifyResult(config *Config, result model.LineupResult) error {
	log.Printf("verifying run %s", result.RunID)

	lineups := []*model.TeamLineup{&result.Home}
	if result.Opponent != nil {
		lineups = append(lineups, result.Opponent)
	}

	for _, lineup := range lineups {
		if err := verifyLineup(config, lineup); err != nil {
			return fmt.Errorf("team %s: %w", lineup.Team, err)
		}
	}

	if result.Opponent != nil && result.Score == nil {
		return fmt.Errorf("dual-meet result missing scoreboard")
	}
	if result.Score != nil {
		if err := verifyScoreboard(result.Score); err != nil {
			return err
		}
	}

	log.Printf("run %s verified", result.RunID)
	return nil
}

func verifyLineup(config *Config, lineup *model.TeamLineup) error {
	// Event cap: reported usage and a recount from the lineup must agree
	// and stay within the limit.
	counted := map[string]int{}
	slotsPerEvent := map[string]int{}
	for _, a := range lineup.Assignments {
		counted[a.Athlete]++
		slotsPerEvent[a.Event]++
	}
	for _, squad := range lineup.Relays {
		if len(squad.Legs) != legsPerSquad {
			return fmt.Errorf("relay %s squad %s has %d legs", squad.Relay, squad.Squad, len(squad.Legs))
		}
		members := map[string]struct{}{}
		for _, leg := range squad.Legs {
			if _, dup := members[leg.Athlete]; dup {
				return fmt.Errorf("relay %s squad %s repeats athlete %s", squad.Relay, squad.Squad, leg.Athlete)
			}
			members[leg.Athlete] = struct{}{}
			counted[leg.Athlete]++
		}
	}

	for athlete, n := range counted {
		if n > config.MaxEvents {
			return fmt.Errorf("athlete %s entered %d events, cap is %d", athlete, n, config.MaxEvents)
		}
		if lineup.Usage[athlete] != n {
			return fmt.Errorf("athlete %s usage %d does not match lineup count %d", athlete, lineup.Usage[athlete], n)
		}
	}

	maxSlots := 4
	if config.PoolLanes == 10 {
		maxSlots = 5
	}
	for event, n := range slotsPerEvent {
		if n > maxSlots {
			return fmt.Errorf("event %s has %d entries, limit is %d", event, n, maxSlots)
		}
	}
	return nil
}

func verifyScoreboard(board *model.Scoreboard) error {
	homeSum, oppSum := 0, 0
	for _, ev := range board.Events {
		homeSum += ev.HomePoints
		oppSum += ev.OpponentPoints
	}
	if homeSum != board.HomePoints || oppSum != board.OpponentPoints {
		return fmt.Errorf("scoreboard totals %d-%d do not match event sums %d-%d",
			board.HomePoints, board.OpponentPoints, homeSum, oppSum)
	}
	return nil
}
