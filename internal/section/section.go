// Package section tracks which named region of the single page is currently
// active for navigation highlighting.
package section

import (
	"errors"
	"fmt"
)

// DefaultProbeOffset is the vertical offset, in pixels below the top of the
// viewport, at which sections are tested for containment.
const DefaultProbeOffset = 100.0

// ErrInvalidArgument reports a caller precondition violation, such as an
// empty section list.
var ErrInvalidArgument = errors.New("invalid argument")

// Section is one navigable page region. ID doubles as the anchor fragment.
type Section struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Sections is the fixed, ordered list of page regions. Order defines the scan
// order of DetermineActive.
type Sections []Section

// Box is the viewport-relative bounding box of a rendered section.
type Box struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// Contains reports whether probe falls within the box, edges included.
func (b Box) Contains(probe float64) bool {
	return b.Top <= probe && b.Bottom >= probe
}

// Default returns the portfolio navigation list.
func Default() Sections {
	return Sections{
		{ID: "hero", Label: "Home"},
		{ID: "education", Label: "Education"},
		{ID: "experience", Label: "Experience"},
		{ID: "publications", Label: "Publications"},
		{ID: "projects", Label: "Projects"},
		{ID: "skills", Label: "Skills"},
		{ID: "certifications", Label: "Certifications"},
		{ID: "contact", Label: "Contact"},
	}
}

// DetermineActive returns the id of the first section, in declared order,
// whose box contains probe. Sections missing from boxes are not mounted and
// are skipped. When nothing contains the probe, previous is returned as is.
func DetermineActive(sections Sections, probe float64, boxes map[string]Box, previous string) (string, error) {
	if len(sections) == 0 {
		return "", fmt.Errorf("determining active section: %w: no sections", ErrInvalidArgument)
	}

	for _, s := range sections {
		box, ok := boxes[s.ID]
		if !ok {
			continue
		}
		if box.Contains(probe) {
			return s.ID, nil
		}
	}

	return previous, nil
}

// Lookup returns the section with the given id.
func (ss Sections) Lookup(id string) (Section, bool) {
	for _, s := range ss {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

// IDs returns the section ids in declared order.
func (ss Sections) IDs() []string {
	ids := make([]string, len(ss))
	for i, s := range ss {
		ids[i] = s.ID
	}
	return ids
}

// Anchor returns the URI fragment for id, e.g. "#projects".
func Anchor(id string) string {
	return "#" + id
}
