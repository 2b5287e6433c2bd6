package hashtron

import "github.com/goccy/go-json"

type jsonHashtron struct {
	Program [][2]uint32 `json:"program"`
	Xor     uint32      `json:"xor,omitempty"`
}

// MarshalJSON encodes the program and the output inversion.
func (h Hashtron) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonHashtron{
		Program: h.program,
		Xor:     h.Xor(),
	})
}

// UnmarshalJSON decodes a hashtron written by MarshalJSON.
func (h *Hashtron) UnmarshalJSON(data []byte) error {
	var j jsonHashtron
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	n, err := New(j.Program, j.Xor != 0)
	if err != nil {
		return err
	}
	*h = *n
	return nil
}
