package utils

import (
	"encoding/json"
	"strings"
)

// Checkbox binds a boolean sent either as a JSON bool or as an HTML form
// checkbox ("on" when ticked, absent otherwise).
type Checkbox bool

func parseCheckbox(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

// UnmarshalParam implements gin's binding.BindUnmarshaler.
func (b *Checkbox) UnmarshalParam(param string) error {
	*b = Checkbox(parseCheckbox(param))
	return nil
}

func (b *Checkbox) UnmarshalJSON(data []byte) error {
	var v bool
	if err := json.Unmarshal(data, &v); err == nil {
		*b = Checkbox(v)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*b = Checkbox(parseCheckbox(s))
	return nil
}
