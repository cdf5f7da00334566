package links

import (
	"errors"
	"reflect"
	"testing"
)

// stubSource serves canned link graphs keyed by page URL.
type stubSource struct {
	graph map[string][]string
	errs  map[string]error
	calls []string
}

func (s *stubSource) Analyze(pageURL string) (*PageLinks, error) {
	s.calls = append(s.calls, pageURL)
	if err := s.errs[pageURL]; err != nil {
		return nil, err
	}
	return &PageLinks{Regular: s.graph[pageURL]}, nil
}

func collectEvents(events *[]Event) func(Event) {
	return func(ev Event) { *events = append(*events, ev) }
}

func TestFindDirectHit(t *testing.T) {
	src := &stubSource{graph: map[string][]string{}}
	pf := NewPathFinder(src, 3)

	var events []Event
	path := pf.Find("https://a.example", "https://a.example", collectEvents(&events))

	if want := []string{"https://a.example"}; !reflect.DeepEqual(path, want) {
		t.Errorf("Find() = %v, want %v", path, want)
	}
	if len(events) != 2 || events[0].Event != "visit" || events[1].Event != "found" {
		t.Errorf("events = %+v, want visit then found", events)
	}
}

func TestFindTwoHops(t *testing.T) {
	src := &stubSource{graph: map[string][]string{
		"https://a.example": {"https://b.example"},
		"https://b.example": {"https://c.example"},
	}}
	pf := NewPathFinder(src, 3)

	var events []Event
	path := pf.Find("https://a.example", "https://c.example", collectEvents(&events))

	want := []string{"https://a.example", "https://b.example", "https://c.example"}
	if !reflect.DeepEqual(path, want) {
		t.Errorf("Find() = %v, want %v", path, want)
	}

	last := events[len(events)-1]
	if last.Event != "found" || !reflect.DeepEqual(last.Path, want) {
		t.Errorf("last event = %+v, want found with full path", last)
	}
}

func TestFindRespectsDepthBound(t *testing.T) {
	src := &stubSource{graph: map[string][]string{
		"https://a.example": {"https://b.example"},
		"https://b.example": {"https://c.example"},
	}}
	// Depth 2 allows visiting a (depth 0) and b (depth 1) only.
	pf := NewPathFinder(src, 2)

	if path := pf.Find("https://a.example", "https://c.example", nil); path != nil {
		t.Errorf("Find() = %v, want nil beyond depth bound", path)
	}
	for _, call := range src.calls {
		if call == "https://c.example" {
			t.Error("page beyond the depth bound was fetched")
		}
	}
}

func TestFindHandlesCycles(t *testing.T) {
	src := &stubSource{graph: map[string][]string{
		"https://a.example": {"https://b.example"},
		"https://b.example": {"https://a.example", "https://c.example"},
	}}
	pf := NewPathFinder(src, 5)

	path := pf.Find("https://a.example", "https://c.example", nil)
	want := []string{"https://a.example", "https://b.example", "https://c.example"}
	if !reflect.DeepEqual(path, want) {
		t.Errorf("Find() = %v, want %v", path, want)
	}

	visits := map[string]int{}
	for _, call := range src.calls {
		visits[call]++
	}
	if visits["https://a.example"] > 1 {
		t.Errorf("start page analyzed %d times, want 1 (visited set)", visits["https://a.example"])
	}
}

func TestFindEmitsErrorEventAndContinues(t *testing.T) {
	src := &stubSource{
		graph: map[string][]string{
			"https://a.example": {"https://bad.example", "https://c.example"},
		},
		errs: map[string]error{
			"https://bad.example": errors.New("connection refused"),
		},
	}
	pf := NewPathFinder(src, 3)

	var events []Event
	path := pf.Find("https://a.example", "https://c.example", collectEvents(&events))

	want := []string{"https://a.example", "https://c.example"}
	if !reflect.DeepEqual(path, want) {
		t.Errorf("Find() = %v, want %v (search must survive a fetch error)", path, want)
	}

	var sawError bool
	for _, ev := range events {
		if ev.Event == "error" && ev.URL == "https://bad.example" {
			sawError = true
		}
	}
	if !sawError {
		t.Errorf("events = %+v, want an error event for the failing page", events)
	}
}

func TestFindNotFound(t *testing.T) {
	src := &stubSource{graph: map[string][]string{
		"https://a.example": {"https://b.example"},
	}}
	pf := NewPathFinder(src, 3)

	if path := pf.Find("https://a.example", "https://missing.example", nil); path != nil {
		t.Errorf("Find() = %v, want nil", path)
	}
}
