package alphasign

import (
	"encoding/json"
	"fmt"
)

// MemoryTable is the sign's directory of allocated file slots, in the order
// the device reported them. Slot order mirrors on-device layout and is
// preserved, as are duplicate labels: the device may forbid them, but this
// layer does not.
type MemoryTable []Entry

// Find returns the first entry carrying the label.
func (mt MemoryTable) Find(label byte) (Entry, bool) {
	for _, e := range mt {
		if e.Label == label {
			return e, true
		}
	}
	return Entry{}, false
}

// Labels returns the slot labels in table order.
func (mt MemoryTable) Labels() string {
	b := make([]byte, len(mt))
	for i, e := range mt {
		b[i] = e.Label
	}
	return string(b)
}

// MarshalJSON renders entries with readable kind names and, for DOTS
// entries, the unpacked height and width.
func (mt MemoryTable) MarshalJSON() ([]byte, error) {
	out := make([]map[string]any, 0, len(mt))
	for _, e := range mt {
		out = append(out, entryFields(e))
	}
	return json.Marshal(out)
}

func entryFields(e Entry) map[string]any {
	fields := map[string]any{
		"label":  string(e.Label),
		"type":   e.Kind.String(),
		"locked": e.Locked,
		"size":   e.Size,
		"q":      e.Q,
	}
	if h, w, ok := e.Dimensions(); ok {
		fields["height"] = h
		fields["width"] = w
	}
	return fields
}

// String renders the table as indented JSON.
func (mt MemoryTable) String() string {
	data, err := json.MarshalIndent(mt, "", "  ")
	if err != nil {
		return fmt.Sprintf("memory table of %d entries (marshal error: %v)", len(mt), err)
	}
	return string(data)
}
