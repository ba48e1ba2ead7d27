// Package jsonfloat encodes float64 values so that NaN and infinities
// survive a JSON round trip. Finite values are plain JSON numbers; the rest
// are the strings "NaN", "+Inf" and "-Inf".
package jsonfloat

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/gonum/spatial/r3"
)

// Float is a float64 with a JSON form for non-finite values.
type Float float64

// MarshalJSON implements json.Marshaler.
func (f Float) MarshalJSON() ([]byte, error) {
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
func (f *Float) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(data, []byte(`"`)) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		switch s {
		case "NaN", "+Inf", "-Inf":
			v, _ := strconv.ParseFloat(s, 64)
			*f = Float(v)
			return nil
		}
		return fmt.Errorf("jsonfloat: invalid value %q", s)
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Float(v)
	return nil
}

// Vec3 is an r3.Vec as a JSON array of three Floats.
type Vec3 [3]Float

// FromVec converts v.
func FromVec(v r3.Vec) Vec3 {
	return Vec3{Float(v.X), Float(v.Y), Float(v.Z)}
}

// Vec converts back to an r3.Vec.
func (a Vec3) Vec() r3.Vec {
	return r3.Vec{X: float64(a[0]), Y: float64(a[1]), Z: float64(a[2])}
}
