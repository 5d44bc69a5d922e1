package bionic

import (
	"errors"
	"fmt"
)

const (
	MinFixation     = 0
	MaxFixation     = 10
	DefaultFixation = 3

	MinSaccade     = 0
	MaxSaccade     = 50
	DefaultSaccade = 15
)

// ErrInvalidControls is returned when a control value is out of range.
var ErrInvalidControls = errors.New("invalid reading controls")

// Controls are the two range inputs read at the moment of activation.
type Controls struct {
	Fixation int `json:"fixation"`
	Saccade  int `json:"saccade"`
}

// DefaultControls returns fixation 3 and saccade 15.
func DefaultControls() Controls {
	return Controls{Fixation: DefaultFixation, Saccade: DefaultSaccade}
}

// Validate checks both values against their ranges.
func (c Controls) Validate() error {
	if c.Fixation < MinFixation || c.Fixation > MaxFixation {
		return fmt.Errorf("fixation %d outside [%d,%d]: %w", c.Fixation, MinFixation, MaxFixation, ErrInvalidControls)
	}
	if c.Saccade < MinSaccade || c.Saccade > MaxSaccade {
		return fmt.Errorf("saccade %d outside [%d,%d]: %w", c.Saccade, MinSaccade, MaxSaccade, ErrInvalidControls)
	}
	return nil
}

// Range describes one range input of the control surface.
type Range struct {
	Min     int `json:"min"`
	Max     int `json:"max"`
	Default int `json:"default"`
}

// Surface describes the whole control surface to an adapter.
type Surface struct {
	Fixation Range  `json:"fixation"`
	Saccade  Range  `json:"saccade"`
	Labels   Labels `json:"labels"`
}

// ControlSurface returns the surface for the given labels.
func ControlSurface(labels Labels) Surface {
	return Surface{
		Fixation: Range{Min: MinFixation, Max: MaxFixation, Default: DefaultFixation},
		Saccade:  Range{Min: MinSaccade, Max: MaxSaccade, Default: DefaultSaccade},
		Labels:   labels,
	}
}
