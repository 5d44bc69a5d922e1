package prefs

import "testing"

func TestApplyFontStepIncreaseThenDecrease(t *testing.T) {
	for s := MinFontStep; s <= MaxFontStep; s++ {
		step := s
		up, err := ApplyFontStep(&step, Increase)
		if err != nil {
			t.Fatalf("step %d increase: %v", s, err)
		}
		down, err := ApplyFontStep(up.Step, Decrease)
		if err != nil {
			t.Fatalf("step %d decrease: %v", s, err)
		}

		if s == MaxFontStep {
			if up.Changed || !up.AtMax {
				t.Errorf("step %d: increase at max should be a no-op reporting AtMax, got %+v", s, up)
			}
			continue
		}
		if *down.Step != s {
			t.Errorf("step %d: increase then decrease gave %d", s, *down.Step)
		}
	}
}

func TestApplyFontStepStaysInRange(t *testing.T) {
	for s := MinFontStep; s <= MaxFontStep; s++ {
		for _, dir := range []Direction{Increase, Decrease} {
			step := s
			res, err := ApplyFontStep(&step, dir)
			if err != nil {
				t.Fatalf("step %d %s: %v", s, dir, err)
			}
			if *res.Step < MinFontStep || *res.Step > MaxFontStep {
				t.Errorf("step %d %s: result %d out of range", s, dir, *res.Step)
			}
		}
	}
}

func TestApplyFontStepBounds(t *testing.T) {
	lo := MinFontStep
	res, err := ApplyFontStep(&lo, Decrease)
	if err != nil {
		t.Fatal(err)
	}
	if res.Changed || !res.AtMin || *res.Step != MinFontStep {
		t.Errorf("decrease at min: got %+v", res)
	}

	hi := MaxFontStep
	res, err = ApplyFontStep(&hi, Increase)
	if err != nil {
		t.Fatal(err)
	}
	if res.Changed || !res.AtMax || *res.Step != MaxFontStep {
		t.Errorf("increase at max: got %+v", res)
	}
}

func TestApplyFontStepFromAbsent(t *testing.T) {
	res, err := ApplyFontStep(nil, Increase)
	if err != nil {
		t.Fatal(err)
	}
	if *res.Step != DefaultFontStep+1 {
		t.Errorf("got step %d, want %d", *res.Step, DefaultFontStep+1)
	}

	res, err = ApplyFontStep(nil, Reset)
	if err != nil {
		t.Fatal(err)
	}
	if res.Step != nil || res.Changed {
		t.Errorf("reset of absent step: got %+v", res)
	}
}

func TestApplyFontStepReset(t *testing.T) {
	step := 9
	res, err := ApplyFontStep(&step, Reset)
	if err != nil {
		t.Fatal(err)
	}
	if res.Step != nil || !res.Changed {
		t.Errorf("got %+v, want cleared and changed", res)
	}
}

func TestApplyFontStepValidation(t *testing.T) {
	bad := MaxFontStep + 1
	if _, err := ApplyFontStep(&bad, Increase); !IsValidation(err) {
		t.Errorf("out of range step: got %v, want ValidationError", err)
	}
	if _, err := ApplyFontStep(nil, Direction("sideways")); !IsValidation(err) {
		t.Errorf("unknown direction: got %v, want ValidationError", err)
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in   string
		want Direction
	}{
		{"inc", Increase},
		{"INCREASE", Increase},
		{"dec", Decrease},
		{" reset ", Reset},
	}
	for _, tt := range tests {
		got, err := ParseDirection(tt.in)
		if err != nil {
			t.Errorf("ParseDirection(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDirection(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if _, err := ParseDirection("bigger"); !IsValidation(err) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

func TestFontPercent(t *testing.T) {
	if got := FontPercent(DefaultFontStep); got != 100 {
		t.Errorf("default step: got %v, want 100", got)
	}
	if got := FontPercent(-4); got != 77 {
		t.Errorf("clamped low: got %v, want 77", got)
	}
	if got := FontPercent(99); got != 197 {
		t.Errorf("clamped high: got %v, want 197", got)
	}
	if len(fontSizes) != MaxFontStep+1 {
		t.Errorf("ladder has %d entries, want %d", len(fontSizes), MaxFontStep+1)
	}
}
