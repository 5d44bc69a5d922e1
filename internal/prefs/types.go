package prefs

import (
	"fmt"
	"strings"
)

// Preference is a user's display preference. Nil fields mean "use the
// site default".
type Preference struct {
	FontStep     *int `json:"font_step,omitempty"`
	ColourScheme *int `json:"colour_scheme,omitempty"`
}

// Clone returns a deep copy of p.
func (p Preference) Clone() Preference {
	return Preference{FontStep: copyInt(p.FontStep), ColourScheme: copyInt(p.ColourScheme)}
}

// Normalized returns p with default values replaced by nil.
func (p Preference) Normalized() Preference {
	out := p.Clone()
	if out.FontStep != nil && *out.FontStep == DefaultFontStep {
		out.FontStep = nil
	}
	if out.ColourScheme != nil && *out.ColourScheme == DefaultSchemeID {
		out.ColourScheme = nil
	}
	return out
}

// IsDefault reports whether p is equivalent to having no preference.
func (p Preference) IsDefault() bool {
	n := p.Normalized()
	return n.FontStep == nil && n.ColourScheme == nil
}

// String renders p for logs and history entries, e.g. "font=5 scheme=2".
func (p Preference) String() string {
	var parts []string
	if p.FontStep != nil {
		parts = append(parts, fmt.Sprintf("font=%d", *p.FontStep))
	}
	if p.ColourScheme != nil {
		parts = append(parts, fmt.Sprintf("scheme=%d", *p.ColourScheme))
	}
	if len(parts) == 0 {
		return "default"
	}
	return strings.Join(parts, " ")
}

// Direction is a font size adjustment.
type Direction string

const (
	Increase Direction = "increase"
	Decrease Direction = "decrease"
	Reset    Direction = "reset"
)

// ParseDirection accepts the long names and the short "inc"/"dec" forms
// used by the block's links.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inc", "increase":
		return Increase, nil
	case "dec", "decrease":
		return Decrease, nil
	case "reset":
		return Reset, nil
	}
	return "", &ValidationError{Field: "op", Value: s, Reason: "must be inc, dec or reset"}
}

// Op is a persistence operation.
type Op string

const (
	OpSave  Op = "save"
	OpReset Op = "reset"
)

// Change selects which fields a persistence operation touches.
type Change struct {
	Op     Op   `json:"op"`
	Size   bool `json:"size"`
	Scheme bool `json:"scheme"`
}

// Validate checks the operation and that at least one field is selected.
func (c Change) Validate() error {
	if c.Op != OpSave && c.Op != OpReset {
		return &ValidationError{Field: "op", Value: c.Op, Reason: "must be save or reset"}
	}
	if !c.Size && !c.Scheme {
		return &ValidationError{Field: "change", Value: c.Op, Reason: "select size, scheme or both"}
	}
	return nil
}

// Affordances describes the current preference together with the state
// of the block's controls.
type Affordances struct {
	Preference
	FontPercent           float64 `json:"font_percent"`
	IncreaseDisabled      bool    `json:"increase_disabled"`
	DecreaseDisabled      bool    `json:"decrease_disabled"`
	ResetDisabled         bool    `json:"reset_disabled"`
	DefaultSchemeDisabled bool    `json:"default_scheme_disabled"`
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func intPtr(v int) *int { return &v }
