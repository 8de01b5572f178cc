package domain

import "fmt"

// EventKind names one of the ten daily solar events.
// The declaration order is chronological for a day on which every event exists.
type EventKind int

const (
	SolarMidnight EventKind = iota
	AstronomicalDawn
	NauticalDawn
	CivilDawn
	Sunrise
	SolarNoon
	Sunset
	CivilDusk
	NauticalDusk
	AstronomicalDusk

	eventKindCount
)

//nolint:gochecknoglobals // Read-only name table.
var eventKindNames = [eventKindCount]string{
	SolarMidnight:    "solar_midnight",
	AstronomicalDawn: "astronomical_dawn",
	NauticalDawn:     "nautical_dawn",
	CivilDawn:        "civil_dawn",
	Sunrise:          "sunrise",
	SolarNoon:        "solar_noon",
	Sunset:           "sunset",
	CivilDusk:        "civil_dusk",
	NauticalDusk:     "nautical_dusk",
	AstronomicalDusk: "astronomical_dusk",
}

func (k EventKind) String() string {
	if k < 0 || k >= eventKindCount {
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
	return eventKindNames[k]
}

// AllEventKinds returns every event kind in declaration order.
func AllEventKinds() []EventKind {
	kinds := make([]EventKind, eventKindCount)
	for i := range kinds {
		kinds[i] = EventKind(i)
	}
	return kinds
}

// ParseEventKind is the inverse of EventKind.String.
func ParseEventKind(s string) (EventKind, error) {
	for i, name := range eventKindNames {
		if name == s {
			return EventKind(i), nil
		}
	}
	return 0, &ValidationError{Field: "event", Value: s, Reason: "unknown event kind"}
}

// Band is a horizon threshold for which dawn and dusk are computed.
type Band int

const (
	BandHorizon Band = iota
	BandCivil
	BandNautical
	BandAstronomical

	bandCount
)

func (b Band) String() string {
	switch b {
	case BandHorizon:
		return "horizon"
	case BandCivil:
		return "civil"
	case BandNautical:
		return "nautical"
	case BandAstronomical:
		return "astronomical"
	default:
		return fmt.Sprintf("Band(%d)", int(b))
	}
}

// BandState records whether a band's dawn and dusk exist on a given day.
type BandState int

const (
	// BandNormal means the sun crosses the threshold twice.
	BandNormal BandState = iota
	// BandAlwaysAbove means the sun stays above the threshold all day (polar day
	// for that band). Dawn and dusk collapse onto solar midnight.
	BandAlwaysAbove
	// BandAlwaysBelow means the sun never reaches the threshold (polar night for
	// that band). Dawn and dusk collapse onto solar noon.
	BandAlwaysBelow
)

func (s BandState) String() string {
	switch s {
	case BandNormal:
		return "normal"
	case BandAlwaysAbove:
		return "always_above"
	case BandAlwaysBelow:
		return "always_below"
	default:
		return fmt.Sprintf("BandState(%d)", int(s))
	}
}

// bandEvents maps each band to its morning and evening events.
//
//nolint:gochecknoglobals // Read-only mapping.
var bandEvents = [bandCount][2]EventKind{
	BandHorizon:      {Sunrise, Sunset},
	BandCivil:        {CivilDawn, CivilDusk},
	BandNautical:     {NauticalDawn, NauticalDusk},
	BandAstronomical: {AstronomicalDawn, AstronomicalDusk},
}
