package prefs

// fontSizes is the percentage ladder a font step indexes into.
var fontSizes = []float64{77, 85, 93, 100, 108, 116, 123.1, 131, 138.5, 146.5, 153.9, 161.6, 167, 174, 182, 189, 197}

const (
	MinFontStep     = 0
	MaxFontStep     = 16
	DefaultFontStep = 3
)

// FontStepResult is the outcome of ApplyFontStep.
type FontStepResult struct {
	Step    *int `json:"font_step,omitempty"`
	Changed bool `json:"changed"`
	AtMin   bool `json:"at_min"`
	AtMax   bool `json:"at_max"`
}

// FontPercent returns the font size percentage of step. Out-of-range steps
// are clamped to the ladder.
func FontPercent(step int) float64 {
	return fontSizes[clampStep(step)]
}

// ApplyFontStep moves current one step in dir. An absent step starts from
// DefaultFontStep. Moving past either end is a no-op reported through
// Changed=false and AtMin/AtMax.
func ApplyFontStep(current *int, dir Direction) (FontStepResult, error) {
	if current != nil && (*current < MinFontStep || *current > MaxFontStep) {
		return FontStepResult{}, &ValidationError{Field: "font_step", Value: *current, Reason: "outside the font size range"}
	}

	step := DefaultFontStep
	if current != nil {
		step = *current
	}

	switch dir {
	case Reset:
		return FontStepResult{Changed: current != nil}, nil
	case Increase:
		if step < MaxFontStep {
			step++
			return stepResult(step, true), nil
		}
	case Decrease:
		if step > MinFontStep {
			step--
			return stepResult(step, true), nil
		}
	default:
		return FontStepResult{}, &ValidationError{Field: "direction", Value: dir, Reason: "must be increase, decrease or reset"}
	}

	return stepResult(step, false), nil
}

func stepResult(step int, changed bool) FontStepResult {
	return FontStepResult{
		Step:    intPtr(step),
		Changed: changed,
		AtMin:   step == MinFontStep,
		AtMax:   step == MaxFontStep,
	}
}

func clampStep(step int) int {
	switch {
	case step < MinFontStep:
		return MinFontStep
	case step > MaxFontStep:
		return MaxFontStep
	}
	return step
}
