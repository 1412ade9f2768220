package model

import (
	"encoding/json"
	"math"
	"strconv"
)

// JSONFloat is a float64 that survives a JSON round trip even when it is not
// finite. NaN, +Inf and -Inf are written as the strings "NaN", "+Inf" and
// "-Inf"; finite values are written as plain JSON numbers.
type JSONFloat float64

// MarshalJSON implements json.Marshaler.
func (f JSONFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)

	switch {
	case math.IsNaN(v):
		return []byte(`"NaN"`), nil
	case math.IsInf(v, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Inf"`), nil
	}

	return json.Marshal(v)
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *JSONFloat) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}

		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}

		*f = JSONFloat(v)

		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	*f = JSONFloat(v)

	return nil
}

type stateJSON struct {
	S JSONFloat `json:"S"`
	I JSONFloat `json:"I"`
	D JSONFloat `json:"D"`
	A JSONFloat `json:"A"`
	R JSONFloat `json:"R"`
}

// MarshalJSON writes the state as an object keyed by compartment.
func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(stateJSON{
		S: JSONFloat(s.S),
		I: JSONFloat(s.I),
		D: JSONFloat(s.D),
		A: JSONFloat(s.A),
		R: JSONFloat(s.R),
	})
}

// UnmarshalJSON reads a state written by MarshalJSON.
func (s *State) UnmarshalJSON(data []byte) error {
	var j stateJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}

	*s = State{
		S: float64(j.S),
		I: float64(j.I),
		D: float64(j.D),
		A: float64(j.A),
		R: float64(j.R),
	}

	return nil
}
