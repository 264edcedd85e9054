package section

import "fmt"

// Tracker carries the active section across scroll events. It is meant for a
// single caller and is not safe for concurrent use. The HTTP layer rebuilds one
// per request with Resume from the id the page sends back.
type Tracker struct {
	sections Sections
	probe    float64
	active   string
}

// NewTracker starts with the first section active, matching a page that has
// just loaded at the top.
func NewTracker(sections Sections, probe float64) (*Tracker, error) {
	return Resume(sections, probe, "")
}

// Resume starts a tracker at active. An empty id means the first section; an
// id not in sections is rejected.
func Resume(sections Sections, probe float64, active string) (*Tracker, error) {
	if len(sections) == 0 {
		return nil, fmt.Errorf("creating tracker: %w: no sections", ErrInvalidArgument)
	}
	if active == "" {
		active = sections[0].ID
	} else if _, ok := sections.Lookup(active); !ok {
		return nil, fmt.Errorf("creating tracker: %w: unknown section %q", ErrInvalidArgument, active)
	}
	return &Tracker{
		sections: sections,
		probe:    probe,
		active:   active,
	}, nil
}

// Active returns the current section id.
func (t *Tracker) Active() string {
	return t.active
}

// Observe feeds one scroll event's bounding boxes through DetermineActive and
// reports whether the active section changed.
func (t *Tracker) Observe(boxes map[string]Box) (string, bool) {
	// sections is non-empty by construction
	next, _ := DetermineActive(t.sections, t.probe, boxes, t.active)
	changed := next != t.active
	t.active = next
	return next, changed
}
