package catalog

// EventKind distinguishes individual events from relays.
type EventKind string

const (
	KindIndividual EventKind = "individual"
	KindRelay      EventKind = "relay"
)

// LegDefinition names one relay leg and the individual event whose recorded
// times seed it.
type LegDefinition struct {
	Label     string `json:"label"`
	Reference string `json:"reference"`
}

// EventDefinition describes one fillable event for the run.
type EventDefinition struct {
	Name      string          `json:"name"`
	Kind      EventKind       `json:"kind"`
	SlotCount int             `json:"slot_count,omitempty"` // individual events only
	Legs      []LegDefinition `json:"legs,omitempty"`       // relays only
	Squads    int             `json:"squads,omitempty"`     // relays only: 1 = A, 2 = A and B
}

// Relay event names.
const (
	Medley200 = "200 Medley Relay"
	Medley400 = "400 Medley Relay"
	Free200   = "200 Free Relay"
	Free400   = "400 Free Relay"
)

// standardEvents are the individual events contested at every meet, in
// program order. Distance and IM events are appended per configuration.
var standardEvents = []string{
	"50 free", "100 free", "200 free", "500 free",
	"100 back", "200 back",
	"100 breast", "200 breast",
	"100 fly", "200 fly",
}

// knownEvents is the full vocabulary the catalog understands, including the
// sprint events that only seed medley relay legs.
var knownEvents = map[string]struct{}{
	"50 free": {}, "100 free": {}, "200 free": {}, "500 free": {},
	"1000 free": {}, "1650 free": {},
	"50 back": {}, "100 back": {}, "200 back": {},
	"50 breast": {}, "100 breast": {}, "200 breast": {},
	"50 fly": {}, "100 fly": {}, "200 fly": {},
	"200 IM": {}, "400 IM": {},
}

// KnownEvent reports whether name is part of the event vocabulary.
func KnownEvent(name string) bool {
	_, ok := knownEvents[name]
	return ok
}

// medleyLegs returns the four medley legs in fill order over the given
// sprint distance prefix ("50" or "100").
func medleyLegs(distance string) []LegDefinition {
	return []LegDefinition{
		{Label: "Backstroke", Reference: distance + " back"},
		{Label: "Breaststroke", Reference: distance + " breast"},
		{Label: "Butterfly", Reference: distance + " fly"},
		{Label: "Freestyle", Reference: distance + " free"},
	}
}

// freeLegs returns four freestyle legs over the given reference event.
func freeLegs(reference string) []LegDefinition {
	legs := make([]LegDefinition, 4)
	for i := range legs {
		legs[i] = LegDefinition{Label: "Leg " + string(rune('1'+i)), Reference: reference}
	}
	return legs
}

// relayProgram maps each RelayOption to its relay names in program order.
var relayProgram = map[RelayOption][]string{
	RelayMedley200Free200: {Medley200, Free200},
	RelayMedley200Free400: {Medley200, Free400},
	RelayMedley400Free200: {Medley400, Free200},
	RelayMedley400Free400: {Medley400, Free400},
	RelayAll:              {Medley200, Medley400, Free200, Free400},
	RelayMedleyOnly:       {Medley200, Medley400},
	RelayFreeOnly:         {Free200, Free400},
}

// relayDefinition builds the EventDefinition for a relay name.
func relayDefinition(name string, squads int) EventDefinition {
	def := EventDefinition{Name: name, Kind: KindRelay, Squads: squads}
	switch name {
	case Medley200:
		def.Legs = medleyLegs("50")
	case Medley400:
		def.Legs = medleyLegs("100")
	case Free200:
		def.Legs = freeLegs("50 free")
	case Free400:
		def.Legs = freeLegs("100 free")
	}
	return def
}

// Resolve expands the configuration into the ordered event list: standard
// stroke events, then distance frees, then IMs, then relays.
func Resolve(cfg MeetConfig) ([]EventDefinition, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	slots := cfg.SlotsPerEvent()
	var defs []EventDefinition

	for _, name := range standardEvents {
		defs = append(defs, EventDefinition{Name: name, Kind: KindIndividual, SlotCount: slots})
	}

	switch cfg.Distance {
	case Distance1650:
		defs = append(defs, EventDefinition{Name: "1650 free", Kind: KindIndividual, SlotCount: slots})
	case Distance1000:
		defs = append(defs, EventDefinition{Name: "1000 free", Kind: KindIndividual, SlotCount: slots})
	case DistanceBoth:
		defs = append(defs,
			EventDefinition{Name: "1650 free", Kind: KindIndividual, SlotCount: slots},
			EventDefinition{Name: "1000 free", Kind: KindIndividual, SlotCount: slots},
		)
	case DistanceNone:
	}

	switch cfg.IM {
	case IM200:
		defs = append(defs, EventDefinition{Name: "200 IM", Kind: KindIndividual, SlotCount: slots})
	case IM400:
		defs = append(defs, EventDefinition{Name: "400 IM", Kind: KindIndividual, SlotCount: slots})
	case IMBoth:
		defs = append(defs,
			EventDefinition{Name: "200 IM", Kind: KindIndividual, SlotCount: slots},
			EventDefinition{Name: "400 IM", Kind: KindIndividual, SlotCount: slots},
		)
	case IMNone:
	}

	squads := cfg.RelaySquads()
	for _, name := range relayProgram[cfg.Relays] {
		defs = append(defs, relayDefinition(name, squads))
	}

	return defs, nil
}
