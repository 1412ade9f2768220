package sim

import (
	"encoding/json"

	"github.com/sarchlab/sirda/model"
)

// A Point is the value of one compartment on one day.
type Point struct {
	Day   int     `json:"day"`
	Value float64 `json:"value"`
}

type pointJSON struct {
	Day   int             `json:"day"`
	Value model.JSONFloat `json:"value"`
}

// MarshalJSON writes the point with non-finite values as strings.
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal(pointJSON{Day: p.Day, Value: model.JSONFloat(p.Value)})
}

// UnmarshalJSON reads a point written by MarshalJSON.
func (p *Point) UnmarshalJSON(data []byte) error {
	var j pointJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}

	*p = Point{Day: j.Day, Value: float64(j.Value)}

	return nil
}

// A TimeSeries is the day-ordered sequence of values of one compartment.
type TimeSeries []Point

// Len returns the number of points.
func (ts TimeSeries) Len() int {
	return len(ts)
}

// At returns the value recorded for the given day.
func (ts TimeSeries) At(day int) (float64, bool) {
	if len(ts) == 0 {
		return 0, false
	}

	i := day - ts[0].Day
	if i < 0 || i >= len(ts) {
		return 0, false
	}

	return ts[i].Value, true
}

// Days returns the day of every point.
func (ts TimeSeries) Days() []int {
	days := make([]int, len(ts))
	for i, p := range ts {
		days[i] = p.Day
	}

	return days
}

// Values returns the value of every point.
func (ts TimeSeries) Values() []float64 {
	values := make([]float64, len(ts))
	for i, p := range ts {
		values[i] = p.Value
	}

	return values
}

// Final returns the last point. It panics on an empty series.
func (ts TimeSeries) Final() Point {
	if len(ts) == 0 {
		panic("final point of an empty time series")
	}

	return ts[len(ts)-1]
}

func (ts *TimeSeries) append(day int, v float64) {
	*ts = append(*ts, Point{Day: day, Value: v})
}

// Series bundles the five compartment time series of one run.
type Series struct {
	Susceptible TimeSeries `json:"S"`
	Infected    TimeSeries `json:"I"`
	Diagnosed   TimeSeries `json:"D"`
	Ailing      TimeSeries `json:"A"`
	Recovered   TimeSeries `json:"R"`
}

func newSeries(capacity int) Series {
	return Series{
		Susceptible: make(TimeSeries, 0, capacity),
		Infected:    make(TimeSeries, 0, capacity),
		Diagnosed:   make(TimeSeries, 0, capacity),
		Ailing:      make(TimeSeries, 0, capacity),
		Recovered:   make(TimeSeries, 0, capacity),
	}
}

// Append adds one day of the given state to every series.
func (s *Series) Append(day int, state model.State) {
	s.Susceptible.append(day, state.S)
	s.Infected.append(day, state.I)
	s.Diagnosed.append(day, state.D)
	s.Ailing.append(day, state.A)
	s.Recovered.append(day, state.R)
}

// Len returns the number of recorded days.
func (s Series) Len() int {
	return s.Susceptible.Len()
}

// Compartment returns the time series of the given compartment.
func (s Series) Compartment(c model.Compartment) TimeSeries {
	switch c {
	case model.Susceptible:
		return s.Susceptible
	case model.Infected:
		return s.Infected
	case model.Diagnosed:
		return s.Diagnosed
	case model.Ailing:
		return s.Ailing
	case model.Recovered:
		return s.Recovered
	default:
		return nil
	}
}

// StateAt rebuilds the state recorded at the i-th point.
func (s Series) StateAt(i int) model.State {
	return model.State{
		S: s.Susceptible[i].Value,
		I: s.Infected[i].Value,
		D: s.Diagnosed[i].Value,
		A: s.Ailing[i].Value,
		R: s.Recovered[i].Value,
	}
}

// Samples returns one Sample per recorded day.
func (s Series) Samples() []Sample {
	samples := make([]Sample, s.Len())
	for i := range samples {
		samples[i] = Sample{
			Day:   s.Susceptible[i].Day,
			State: s.StateAt(i),
		}
	}

	return samples
}
