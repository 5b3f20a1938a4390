package mockmeet

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/poolside/lineup/internal/domain/catalog"
	"github.com/poolside/lineup/internal/domain/model"
	"github.com/poolside/lineup/internal/domain/times"
)

// Random generation bounds.
const (
	randomFloatDivisor = 1000000
	rowsPerAthleteMin  = 3
	rowsPerAthleteMax  = 7
)

// baseSeconds holds a plausible median time per standard event. Generated
// times spread around these so faster and slower athletes both appear.
var baseSeconds = map[string]float64{
	"50 free":    25.0,
	"100 free":   55.0,
	"200 free":   120.0,
	"500 free":   330.0,
	"50 back":    29.0,
	"100 back":   62.0,
	"200 back":   135.0,
	"50 breast":  32.0,
	"100 breast": 68.0,
	"200 breast": 150.0,
	"50 fly":     27.0,
	"100 fly":    60.0,
	"200 fly":    133.0,
}

var firstNames = []string{
	"Avery", "Blake", "Casey", "Drew", "Emerson", "Finley", "Harper",
	"Jordan", "Kendall", "Logan", "Morgan", "Parker", "Quinn", "Reese",
	"Riley", "Rowan", "Sage", "Skyler", "Taylor", "Teagan",
}

var lastNames = []string{
	"Adams", "Brooks", "Chen", "Diaz", "Evans", "Foster", "Garcia",
	"Hayes", "Ivanov", "Jensen", "Kim", "Lopez", "Murphy", "Nguyen",
	"Ortiz", "Patel", "Quigley", "Reed", "Santos", "Walsh",
}

// randomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func randomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// randomInt returns a random int in [0, n).
func randomInt(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// generateRoster produces plausible roster rows: each athlete swims a
// handful of events with times spread around the event median. Athlete
// names carry an index suffix so large rosters stay unique.
func generateRoster(numAthletes int) []model.RawRow {
	events := make([]string, 0, len(baseSeconds))
	for event := range baseSeconds {
		events = append(events, event)
	}

	date := time.Now().AddDate(0, -1, 0).Format("2006-01-02")
	var rows []model.RawRow
	for i := 0; i < numAthletes; i++ {
		name := fmt.Sprintf("%s %s %03d",
			firstNames[randomInt(len(firstNames))],
			lastNames[randomInt(len(lastNames))],
			i,
		)
		// Athlete skill shifts all of their times together.
		skill := 0.85 + randomFloat()*0.3

		numRows := rowsPerAthleteMin + randomInt(rowsPerAthleteMax-rowsPerAthleteMin+1)
		for r := 0; r < numRows; r++ {
			event := events[randomInt(len(events))]
			seconds := baseSeconds[event] * skill * (0.98 + randomFloat()*0.04)
			rows = append(rows, model.RawRow{
				Athlete: name,
				Event:   event,
				Time:    times.FormatClock(seconds),
				Date:    date,
			})
		}
	}
	return rows
}

// generateRequest builds one run submission for the configured meet shape.
func generateRequest(config *Config) model.BuildRequest {
	req := model.BuildRequest{
		RunID: uuid.NewString(),
		Config: catalog.MeetConfig{
			Mode:      catalog.Mode(config.Mode),
			PoolLanes: config.PoolLanes,
			MaxEvents: config.MaxEvents,
			TeamName:  "Mock Aquatics",
		},
		Roster: generateRoster(config.NumAthletes),
	}
	if req.Config.Mode == catalog.ModeDual {
		req.Config.OpponentName = "Rival Swim Club"
		req.OpponentRoster = generateRoster(config.NumAthletes)
	}
	return req
}
