// Package catalog resolves a meet configuration into the concrete list of
// events and relay definitions to fill.
//
// Resolution is a pure function of the configuration: the same MeetConfig
// always yields the same event list in the same order. The assignment engine
// depends on that ordering, so it is part of the contract, not an
// implementation detail.
package catalog

import (
	"fmt"
)

// Mode selects between single-team optimization and a dual-meet projection.
type Mode string

const (
	ModeSingle Mode = "single"
	ModeDual   Mode = "dual"
)

// DistanceOption selects which distance freestyle events are contested.
type DistanceOption string

const (
	Distance1650 DistanceOption = "1650"
	Distance1000 DistanceOption = "1000"
	DistanceBoth DistanceOption = "both"
	DistanceNone DistanceOption = "none"
)

// IMOption selects which individual medley events are contested.
type IMOption string

const (
	IM200  IMOption = "200"
	IM400  IMOption = "400"
	IMBoth IMOption = "both"
	IMNone IMOption = "none"
)

// RelayOption is one of the seven relay program combinations.
type RelayOption int

const (
	RelayMedley200Free200 RelayOption = 1
	RelayMedley200Free400 RelayOption = 2
	RelayMedley400Free200 RelayOption = 3
	RelayMedley400Free400 RelayOption = 4
	RelayAll              RelayOption = 5
	RelayMedleyOnly       RelayOption = 6
	RelayFreeOnly         RelayOption = 7
)

// Strategy selects the candidate ordering policy for individual events.
type Strategy string

const (
	StrategyBalanced Strategy = "balanced"
	StrategyDepth    Strategy = "depth"
	StrategySpeed    Strategy = "speed"
)

// Pool and cap bounds.
const (
	LanesEight = 8
	LanesTen   = 10

	minEventsCap = 3
	maxEventsCap = 5

	defaultEventsCap = 4
)

// MeetConfig is the configuration boundary for one lineup run.
type MeetConfig struct {
	Mode         Mode           `json:"mode" koanf:"mode"`
	PoolLanes    int            `json:"pool_lanes" koanf:"pool_lanes"`
	Distance     DistanceOption `json:"distance_option" koanf:"distance_option"`
	IM           IMOption       `json:"im_option" koanf:"im_option"`
	Relays       RelayOption    `json:"relay_option" koanf:"relay_option"`
	MaxEvents    int            `json:"max_events_per_athlete" koanf:"max_events_per_athlete"`
	Strategy     Strategy       `json:"strategy" koanf:"strategy"`
	TeamName     string         `json:"team_name" koanf:"team_name"`
	OpponentName string         `json:"opponent_name" koanf:"opponent_name"`
}

// Normalize fills unset fields with defaults. It never overrides an
// explicitly set value, so Validate still rejects bad input.
func (c *MeetConfig) Normalize() {
	if c.Mode == "" {
		c.Mode = ModeSingle
	}
	if c.PoolLanes == 0 {
		c.PoolLanes = LanesEight
	}
	if c.Distance == "" {
		c.Distance = DistanceNone
	}
	if c.IM == "" {
		c.IM = IMNone
	}
	if c.Relays == 0 {
		c.Relays = RelayAll
	}
	if c.MaxEvents == 0 {
		c.MaxEvents = defaultEventsCap
	}
	if c.Strategy == "" {
		c.Strategy = StrategyBalanced
	}
}

// Validate rejects any unrecognized enumerated value. A failure here is a
// ConfigurationError: the run must not start.
func (c *MeetConfig) Validate() error {
	switch c.Mode {
	case ModeSingle, ModeDual:
	default:
		return fmt.Errorf("%w: mode %q", ErrInvalidConfig, c.Mode)
	}
	switch c.PoolLanes {
	case LanesEight, LanesTen:
	default:
		return fmt.Errorf("%w: pool_lanes %d (want 8 or 10)", ErrInvalidConfig, c.PoolLanes)
	}
	switch c.Distance {
	case Distance1650, Distance1000, DistanceBoth, DistanceNone:
	default:
		return fmt.Errorf("%w: distance_option %q", ErrInvalidConfig, c.Distance)
	}
	switch c.IM {
	case IM200, IM400, IMBoth, IMNone:
	default:
		return fmt.Errorf("%w: im_option %q", ErrInvalidConfig, c.IM)
	}
	if c.Relays < RelayMedley200Free200 || c.Relays > RelayFreeOnly {
		return fmt.Errorf("%w: relay_option %d (want 1-7)", ErrInvalidConfig, c.Relays)
	}
	if c.MaxEvents < minEventsCap || c.MaxEvents > maxEventsCap {
		return fmt.Errorf("%w: max_events_per_athlete %d (want 3-5)", ErrInvalidConfig, c.MaxEvents)
	}
	switch c.Strategy {
	case StrategyBalanced, StrategyDepth, StrategySpeed:
	default:
		return fmt.Errorf("%w: strategy %q", ErrInvalidConfig, c.Strategy)
	}
	if c.Mode == ModeDual && c.OpponentName == "" {
		return fmt.Errorf("%w: opponent_name required in dual mode", ErrInvalidConfig)
	}
	return nil
}

// SlotsPerEvent returns the individual-event slot count for the pool.
func (c *MeetConfig) SlotsPerEvent() int {
	if c.PoolLanes == LanesTen {
		return 5
	}
	return 4
}

// RelaySquads returns how many squads (A, then B) each relay may field.
func (c *MeetConfig) RelaySquads() int {
	if c.PoolLanes == LanesTen {
		return 2
	}
	return 1
}
