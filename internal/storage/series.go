package storage

// Series identifies a chartable per-user metric.
type Series int

const (
	SeriesWeight Series = iota
	SeriesPulse
	SeriesSleep
	SeriesActivityDuration
	SeriesWaterIntake

	seriesCount
)

// Point is one dated value of a series.
type Point struct {
	Date  string
	Value float64
}

// SeriesDef describes where a series lives and how to label it.
type SeriesDef struct {
	Key    string
	Label  string
	Table  string
	Column string
}

// seriesDefs is indexed by Series. A missing entry still compiles as a
// zero SeriesDef; TestSeriesTable rejects it.
var seriesDefs = [seriesCount]SeriesDef{
	SeriesWeight:           {Key: "weight", Label: "Weight (kg)", Table: "basic_data", Column: "weight"},
	SeriesPulse:            {Key: "pulse", Label: "Pulse (bpm)", Table: "health_data", Column: "pulse"},
	SeriesSleep:            {Key: "sleep", Label: "Sleep (hours)", Table: "health_data", Column: "duration_sleep"},
	SeriesActivityDuration: {Key: "activity", Label: "Activity (minutes)", Table: "activity_data", Column: "duration"},
	SeriesWaterIntake:      {Key: "water", Label: "Water intake (l)", Table: "activity_data", Column: "water_intake"},
}

// AllSeries lists every series in display order.
func AllSeries() []Series {
	out := make([]Series, seriesCount)
	for i := range out {
		out[i] = Series(i)
	}
	return out
}

// Valid reports whether s is a known series.
func (s Series) Valid() bool {
	return s >= 0 && s < seriesCount
}

// Def returns the static description of s. It panics on an invalid series.
func (s Series) Def() SeriesDef {
	return seriesDefs[s]
}

func (s Series) String() string {
	if !s.Valid() {
		return "unknown"
	}
	return seriesDefs[s].Key
}

// ParseSeries looks a series up by its key, e.g. "weight".
func ParseSeries(key string) (Series, bool) {
	for i, def := range seriesDefs {
		if def.Key == key {
			return Series(i), true
		}
	}
	return 0, false
}
