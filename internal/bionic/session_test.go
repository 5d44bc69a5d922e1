package bionic

import (
	"errors"
	"testing"
)

func TestExampleScenario(t *testing.T) {
	s := NewSession(DefaultLabels())

	r, req, err := s.Activate("Hello world", Controls{Fixation: 3, Saccade: 15})
	if err != nil {
		t.Fatal(err)
	}
	if r.State != Loading || r.Label != "This might take a moment." {
		t.Errorf("loading render: %+v", r)
	}
	if req == nil || req.Content != "Hello world" || req.Controls != (Controls{3, 15}) {
		t.Fatalf("request: %+v", req)
	}

	r, ok := s.Resolve(req.Ticket, "<b>Hel</b>lo <b>wor</b>ld", nil)
	if !ok {
		t.Fatal("completion dropped")
	}
	if r.Content != "<p><b>Hel</b>lo <b>wor</b>ld </p>" || !r.Replace {
		t.Errorf("content %q", r.Content)
	}
	if r.Label != "Return to Default Text" || s.State() != Active {
		t.Errorf("active render: %+v", r)
	}

	r = s.Deactivate()
	if r.Content != "Hello world" || !r.Replace || r.Label != "Toggle Bionic Mode" || r.State != Inactive {
		t.Errorf("deactivate render: %+v", r)
	}
}

func TestToggleIdempotence(t *testing.T) {
	inputs := []string{
		"",
		"plain text",
		"line one<br>line two<br/>three<BR />four",
		"<div class=\"x\">  spaced\n\ttext </div>",
		"<p>unicode ✓ ünïcödé</p>",
	}
	for _, in := range inputs {
		s := NewSession(DefaultLabels())
		_, req, err := s.Activate(in, DefaultControls())
		if err != nil {
			t.Fatal(err)
		}
		if _, ok := s.Resolve(req.Ticket, "<b>x</b>", nil); !ok {
			t.Fatal("completion dropped")
		}
		r := s.Deactivate()
		if r.Content != in {
			t.Errorf("restored %q, want %q", r.Content, in)
		}
	}
}

func TestSnapshotCapturedOnce(t *testing.T) {
	s := NewSession(DefaultLabels())

	_, req, _ := s.Activate("original", DefaultControls())
	s.Resolve(req.Ticket, "<b>or</b>iginal", nil)
	s.Deactivate()

	// The page now shows the original again, but an adapter could hand us
	// anything; the second request must still transform the snapshot.
	_, req, _ = s.Activate("<p><b>or</b>iginal </p>", DefaultControls())
	if req.Content != "original" {
		t.Errorf("second activation transformed %q", req.Content)
	}
	if snap, ok := s.Snapshot(); !ok || snap != "original" {
		t.Errorf("snapshot %q, %v", snap, ok)
	}
}

func TestActivateWhileLoadingIsIgnored(t *testing.T) {
	s := NewSession(DefaultLabels())
	_, first, _ := s.Activate("text", DefaultControls())

	for i := 0; i < 3; i++ {
		r, req, err := s.Activate("text", DefaultControls())
		if err != nil || req != nil {
			t.Fatalf("activation while loading issued %+v, %v", req, err)
		}
		if r.State != Loading || r.Replace {
			t.Errorf("render while loading: %+v", r)
		}
		if _, req, _ := s.Toggle("text", DefaultControls()); req != nil {
			t.Fatal("toggle while loading issued a request")
		}
	}

	if _, ok := s.Resolve(first.Ticket, "<b>te</b>xt", nil); !ok {
		t.Error("original completion dropped")
	}
}

func TestFailureRestoresOriginal(t *testing.T) {
	s := NewSession(DefaultLabels())
	_, req, _ := s.Activate("keep me", DefaultControls())

	providerErr := &TransformationError{StatusCode: 503, Err: errors.New("busy")}
	r, ok := s.Resolve(req.Ticket, "", providerErr)
	if !ok {
		t.Fatal("completion dropped")
	}
	if s.State() != Inactive || r.Content != "keep me" || r.Label != "Toggle Bionic Mode" {
		t.Errorf("failure render: %+v", r)
	}
	if r.Notice == "" || !errors.Is(r.Err, providerErr) {
		t.Errorf("failure not surfaced: %+v", r)
	}
	if s.Transformed() != "" {
		t.Errorf("transformed content set after failure: %q", s.Transformed())
	}

	// Manual retry is allowed.
	if _, req, _ := s.Activate("keep me", DefaultControls()); req == nil {
		t.Error("re-activation after failure issued no request")
	}
}

func TestMalformedResponseIsTransformationError(t *testing.T) {
	s := NewSession(DefaultLabels())
	_, req, _ := s.Activate("text", DefaultControls())

	r, _ := s.Resolve(req.Ticket, `{"message":"You are not subscribed"}`, nil)
	var terr *TransformationError
	if !errors.As(r.Err, &terr) {
		t.Fatalf("got %v, want TransformationError", r.Err)
	}
	if s.State() != Inactive || r.Content != "text" {
		t.Errorf("render %+v", r)
	}
}

func TestDeactivateWhileLoadingDropsResult(t *testing.T) {
	s := NewSession(DefaultLabels())
	_, req, _ := s.Activate("before", DefaultControls())

	r := s.Deactivate()
	if r.State != Inactive || r.Content != "before" {
		t.Errorf("deactivate while loading: %+v", r)
	}
	if _, ok := s.Resolve(req.Ticket, "<b>be</b>fore", nil); ok {
		t.Error("stale completion was applied")
	}
	if s.State() != Inactive {
		t.Errorf("state %v, want inactive", s.State())
	}
}

func TestInvalidControls(t *testing.T) {
	s := NewSession(DefaultLabels())
	for _, c := range []Controls{{Fixation: 11, Saccade: 15}, {Fixation: 3, Saccade: -1}, {Fixation: -1}, {Saccade: 51}} {
		r, req, err := s.Activate("text", c)
		if !errors.Is(err, ErrInvalidControls) {
			t.Errorf("%+v: got %v, want ErrInvalidControls", c, err)
		}
		if req != nil || r.State != Inactive {
			t.Errorf("%+v: session left Inactive? %+v", c, r)
		}
	}
	if _, ok := s.Snapshot(); ok {
		t.Error("rejected activation captured a snapshot")
	}
}

func TestDeactivateInactiveIsNoop(t *testing.T) {
	s := NewSession(DefaultLabels())
	r := s.Deactivate()
	if r.Replace || r.State != Inactive || r.Label != "Toggle Bionic Mode" {
		t.Errorf("got %+v", r)
	}
}
