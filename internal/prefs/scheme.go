package prefs

import (
	"regexp"
	"sort"
)

const (
	// DefaultSchemeID is the fixed "no override" scheme.
	DefaultSchemeID = 1
	MaxSchemeID     = 4
)

var colourPattern = regexp.MustCompile(`(?i)^#[a-f0-9]{6}$`)

// Scheme is a foreground/background colour pair applied page-wide.
// An empty Foreground keeps the page's own text colours.
type Scheme struct {
	ID         int    `json:"id"`
	Foreground string `json:"fg,omitempty"`
	Background string `json:"bg,omitempty"`
}

// ValidateScheme checks that s is one of the configurable schemes (2..4)
// with hex colours.
func ValidateScheme(s Scheme) error {
	if s.ID == DefaultSchemeID {
		return &ValidationError{Field: "scheme", Value: s.ID, Reason: "the default scheme cannot be edited"}
	}
	if s.ID < DefaultSchemeID || s.ID > MaxSchemeID {
		return &ValidationError{Field: "scheme", Value: s.ID, Reason: "must be between 1 and 4"}
	}
	if !colourPattern.MatchString(s.Background) {
		return &ValidationError{Field: "bg", Value: s.Background, Reason: "use a colour such as #FF0050"}
	}
	if s.Foreground != "" && !colourPattern.MatchString(s.Foreground) {
		return &ValidationError{Field: "fg", Value: s.Foreground, Reason: "use a colour such as #FF0050"}
	}
	return nil
}

// ApplyColourScheme returns the scheme id to store for id. The default
// scheme clears the override.
func ApplyColourScheme(id int) (*int, error) {
	if id < DefaultSchemeID || id > MaxSchemeID {
		return nil, &ValidationError{Field: "scheme", Value: id, Reason: "must be between 1 and 4"}
	}
	if id == DefaultSchemeID {
		return nil, nil
	}
	return intPtr(id), nil
}

// Catalogue is the set of colour schemes available to a page. It is a
// value type; With returns a modified copy.
type Catalogue struct {
	schemes map[int]Scheme
}

// NewCatalogue builds a catalogue from the configurable schemes.
func NewCatalogue(schemes []Scheme) (Catalogue, error) {
	return Catalogue{}.With(schemes)
}

// With returns a copy of c with overrides applied.
func (c Catalogue) With(overrides []Scheme) (Catalogue, error) {
	out := Catalogue{schemes: make(map[int]Scheme, MaxSchemeID)}
	for id, s := range c.schemes {
		out.schemes[id] = s
	}
	for _, s := range overrides {
		if err := ValidateScheme(s); err != nil {
			return Catalogue{}, err
		}
		out.schemes[s.ID] = s
	}
	return out, nil
}

// Scheme returns the scheme with the given id. The default scheme is always
// present and carries no colours.
func (c Catalogue) Scheme(id int) (Scheme, bool) {
	if id == DefaultSchemeID {
		return Scheme{ID: DefaultSchemeID}, true
	}
	s, ok := c.schemes[id]
	return s, ok
}

// Schemes lists the configured schemes ordered by id.
func (c Catalogue) Schemes() []Scheme {
	out := make([]Scheme, 0, len(c.schemes))
	for _, s := range c.schemes {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
