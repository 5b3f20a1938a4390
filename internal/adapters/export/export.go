// Package export renders finished lineups as plain text or CSV for
// attaching to coach reports and meet entry sheets.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/poolside/lineup/internal/domain/model"
	"github.com/poolside/lineup/internal/domain/times"
)

// WriteText renders a human-readable lineup summary.
func WriteText(w io.Writer, result model.LineupResult) error {
	if err := writeTeamText(w, result.Home); err != nil {
		return err
	}
	if result.Opponent != nil {
		if _, err := fmt.Fprintf(w, "\n=== OPPONENT: %s ===\n", result.Opponent.Team); err != nil {
			return fmt.Errorf("writing lineup text: %w", err)
		}
		if err := writeTeamText(w, *result.Opponent); err != nil {
			return err
		}
	}
	if result.Score != nil {
		if err := writeScoreText(w, *result.Score); err != nil {
			return err
		}
	}
	if len(result.Warnings) > 0 {
		if _, err := fmt.Fprintf(w, "\n=== WARNINGS ===\n"); err != nil {
			return fmt.Errorf("writing lineup text: %w", err)
		}
		for _, warning := range result.Warnings {
			if _, err := fmt.Fprintf(w, "  [%s] %s: %s\n", warning.Code, warning.Subject, warning.Message); err != nil {
				return fmt.Errorf("writing lineup text: %w", err)
			}
		}
	}
	return nil
}

func writeTeamText(w io.Writer, lineup model.TeamLineup) error {
	write := func(format string, args ...any) error {
		if _, err := fmt.Fprintf(w, format, args...); err != nil {
			return fmt.Errorf("writing lineup text: %w", err)
		}
		return nil
	}

	if len(lineup.Assignments) == 0 {
		if err := write("No individual lineup generated.\n"); err != nil {
			return err
		}
	} else {
		if err := write("\n=== INDIVIDUAL LINEUP ===\n"); err != nil {
			return err
		}
		lastEvent := ""
		for _, a := range lineup.Assignments {
			if a.Event != lastEvent {
				if err := write("\n%s:\n", a.Event); err != nil {
					return err
				}
				lastEvent = a.Event
			}
			if err := write("  %d. %s - %s\n", a.Rank, a.Athlete, times.FormatClock(a.Seconds)); err != nil {
				return err
			}
		}
	}

	if len(lineup.Relays) == 0 {
		return write("\nNo relay lineup generated.\n")
	}
	if err := write("\n=== RELAY LINEUP ===\n"); err != nil {
		return err
	}
	for _, squad := range lineup.Relays {
		if err := write("\n%s (%s):\n", squad.Relay, squad.Squad); err != nil {
			return err
		}
		for _, leg := range squad.Legs {
			if err := write("  %s: %s - %s\n", leg.Label, leg.Athlete, times.FormatClock(leg.Seconds)); err != nil {
				return err
			}
		}
		if err := write("  Total: %s\n", times.FormatClock(squad.TotalSeconds())); err != nil {
			return err
		}
	}
	return nil
}

func writeScoreText(w io.Writer, board model.Scoreboard) error {
	if _, err := fmt.Fprintf(w, "\n=== PROJECTED SCORE ===\n"); err != nil {
		return fmt.Errorf("writing score text: %w", err)
	}
	for _, ev := range board.Events {
		if _, err := fmt.Fprintf(w, "  %s: %d-%d (%s)\n", ev.Event, ev.HomePoints, ev.OpponentPoints, ev.Winner); err != nil {
			return fmt.Errorf("writing score text: %w", err)
		}
	}
	if _, err := fmt.Fprintf(w, "\n  Final: %d-%d, winner %s\n", board.HomePoints, board.OpponentPoints, board.Winner); err != nil {
		return fmt.Errorf("writing score text: %w", err)
	}
	return nil
}

// WriteCSV renders the home lineup as CSV rows: individual assignments
// first, then relay legs. Columns: kind, event, squad, slot, athlete, time.
func WriteCSV(w io.Writer, result model.LineupResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"kind", "event", "squad", "slot", "athlete", "time"}); err != nil {
		return fmt.Errorf("writing lineup csv: %w", err)
	}
	for _, a := range result.Home.Assignments {
		row := []string{"individual", a.Event, "", strconv.Itoa(a.Rank), a.Athlete, times.FormatClock(a.Seconds)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing lineup csv: %w", err)
		}
	}
	for _, squad := range result.Home.Relays {
		for _, leg := range squad.Legs {
			row := []string{"relay", squad.Relay, squad.Squad, leg.Label, leg.Athlete, times.FormatClock(leg.Seconds)}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("writing lineup csv: %w", err)
			}
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("writing lineup csv: %w", err)
	}
	return nil
}
