package bionic

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"<b>Hel</b>lo <b>wor</b>ld", "<p><b>Hel</b>lo <b>wor</b>ld </p>"},
		{"", "<p> </p>"},
		{"a<br>b", "<p>a b </p>"},
		{"a<br/>b<br />c<BR>d", "<p>a b c d </p>"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidateMarkup(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"bold markup", "<b>Hel</b>lo", false},
		{"empty", "", false},
		{"plain text", "just words", false},
		{"unclosed tags", "<div><b>x", false},
		{"json object", `{"error":"quota"}`, true},
		{"json array", `["a"]`, true},
		{"bracket text", "[note] text", false},
		{"nul byte", "a\x00b", true},
		{"invalid utf8", "a\xffb", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMarkup(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("got %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestControlsValidate(t *testing.T) {
	if err := DefaultControls().Validate(); err != nil {
		t.Errorf("defaults: %v", err)
	}
	edges := []Controls{{0, 0}, {10, 50}}
	for _, c := range edges {
		if err := c.Validate(); err != nil {
			t.Errorf("%+v: %v", c, err)
		}
	}
	s := ControlSurface(DefaultLabels())
	if s.Fixation.Default != 3 || s.Saccade.Max != 50 {
		t.Errorf("surface %+v", s)
	}
}
