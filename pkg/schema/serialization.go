package schema

import (
	"encoding/json"
	"fmt"
)

type wireSchema struct {
	Axis  []string `json:"axis"`
	Angle []string `json:"angle"`
}

// MarshalJSON serializes the schema as its two ordered key lists.
func (s Schema) MarshalJSON() ([]byte, error) {
	w := wireSchema{Axis: s.AxisKeys, Angle: s.AngleKeys}
	if w.Axis == nil {
		w.Axis = []string{}
	}
	if w.Angle == nil {
		w.Angle = []string{}
	}
	return json.Marshal(w)
}

// UnmarshalJSON deserializes the schema, rejecting duplicate keys within a
// namespace.
func (s *Schema) UnmarshalJSON(data []byte) error {
	if s == nil {
		return fmt.Errorf("schema: UnmarshalJSON on nil pointer")
	}
	var w wireSchema
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	for ns, keys := range map[string][]string{"axis": w.Axis, "angle": w.Angle} {
		seen := make(map[string]bool, len(keys))
		for _, k := range keys {
			if seen[k] {
				return fmt.Errorf("schema: duplicate %s key %q", ns, k)
			}
			seen[k] = true
		}
	}
	*s = Schema{AxisKeys: w.Axis, AngleKeys: w.Angle}
	return nil
}
