package region

import (
	"errors"
	"strings"
	"testing"
)

const page = `<!DOCTYPE html><html><head><title>Course</title></head><body>
<nav id="nav">menu</nav><div id="region-main"><p>Hello <em>world</em></p></div>
<footer>foot</footer></body></html>`

func TestInnerHTMLAndReplace(t *testing.T) {
	doc, err := Parse(strings.NewReader(page))
	if err != nil {
		t.Fatal(err)
	}
	r, err := doc.ByID(DefaultID)
	if err != nil {
		t.Fatal(err)
	}

	inner, err := r.InnerHTML()
	if err != nil {
		t.Fatal(err)
	}
	if inner != "<p>Hello <em>world</em></p>" {
		t.Errorf("inner %q", inner)
	}

	if err := r.Replace("<p><b>Hel</b>lo <b>wor</b>ld </p>"); err != nil {
		t.Fatal(err)
	}
	var out strings.Builder
	if err := doc.Render(&out); err != nil {
		t.Fatal(err)
	}
	html := out.String()
	if !strings.Contains(html, `<div id="region-main"><p><b>Hel</b>lo <b>wor</b>ld </p></div>`) {
		t.Errorf("replacement missing:\n%s", html)
	}
	if !strings.Contains(html, `<nav id="nav">menu</nav>`) || !strings.Contains(html, "<footer>foot</footer>") {
		t.Errorf("surrounding content changed:\n%s", html)
	}
}

func TestByIDNotFound(t *testing.T) {
	doc, _ := Parse(strings.NewReader(page))
	if _, err := doc.ByID("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestLookupFallsBackToBody(t *testing.T) {
	doc, err := Parse(strings.NewReader("<h1>Notes</h1><p>Some text</p>"))
	if err != nil {
		t.Fatal(err)
	}
	r, err := doc.Lookup(DefaultID)
	if err != nil {
		t.Fatal(err)
	}
	inner, _ := r.InnerHTML()
	if inner != "<h1>Notes</h1><p>Some text</p>" {
		t.Errorf("body inner %q", inner)
	}
}

func TestReplaceEmpty(t *testing.T) {
	doc, _ := Parse(strings.NewReader(page))
	r, _ := doc.ByID(DefaultID)
	if err := r.Replace(""); err != nil {
		t.Fatal(err)
	}
	if inner, _ := r.InnerHTML(); inner != "" {
		t.Errorf("inner %q, want empty", inner)
	}
}
