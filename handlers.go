package main

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Om-Ravindra-Patil/portfolio/internal/contact"
	"github.com/Om-Ravindra-Patil/portfolio/internal/logging"
	"github.com/Om-Ravindra-Patil/portfolio/internal/section"
)

type navItem struct {
	ID     string
	Label  string
	Anchor string
	Active bool
}

// navItems marks active in the nav. Unknown ids fall back to the first section.
func (s *server) navItems(active string) []navItem {
	if _, ok := s.sections.Lookup(active); !ok {
		active = s.sections[0].ID
	}
	items := make([]navItem, len(s.sections))
	for i, sec := range s.sections {
		items[i] = navItem{
			ID:     sec.ID,
			Label:  sec.Label,
			Anchor: section.Anchor(sec.ID),
			Active: sec.ID == active,
		}
	}
	return items
}

type contactForm struct {
	Values contact.RawInput
	Errors map[string]string
}

func newContactForm(in contact.RawInput, err error) contactForm {
	form := contactForm{Values: in, Errors: map[string]string{}}
	var verr *contact.ValidationError
	if errors.As(err, &verr) {
		for _, fe := range verr.Errors {
			form.Errors[fe.Field] = fe.Message()
		}
	}
	return form
}

func (s *server) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"profile":        profile,
		"nav":            s.navItems(""),
		"sections":       s.sections,
		"probeOffset":    s.cfg.ProbeOffset,
		"education":      educationData,
		"experience":     experienceData,
		"publications":   publications,
		"projects":       projectsData,
		"skillGroups":    skillGroups,
		"certifications": certifications,
		"form":           newContactForm(contact.RawInput{}, nil),
	})
}

// handleNav renders the nav fragment for HTMX swaps.
func (s *server) handleNav(c *gin.Context) {
	c.HTML(http.StatusOK, "nav.html", gin.H{
		"nav": s.navItems(c.Query("active")),
	})
}

type activeSectionRequest struct {
	Probe    *float64               `json:"probe"`
	Previous string                 `json:"previous"`
	Boxes    map[string]section.Box `json:"boxes" binding:"required"`
}

type activeSectionResponse struct {
	Active  string `json:"active"`
	Label   string `json:"label"`
	Anchor  string `json:"anchor"`
	Changed bool   `json:"changed"`
}

// handleActiveSection resolves the active section for one scroll event. The
// page keeps the previous id and sends it back, so the tracker is resumed from
// it on every request and the server holds no per-reader state.
func (s *server) handleActiveSection(c *gin.Context) {
	var req activeSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	probe := s.cfg.ProbeOffset
	if req.Probe != nil {
		probe = *req.Probe
	}

	tr, err := section.Resume(s.sections, probe, req.Previous)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown previous section"})
		return
	}

	active, changed := tr.Observe(req.Boxes)
	if changed {
		ctx := c.Request.Context()
		if err := s.store.RecordSectionView(ctx, active, s.now()); err != nil {
			logging.FromContext(ctx).ErrorContext(ctx, "failed to record section view",
				slog.String("section", active),
				slog.Any("error", err),
			)
		}
	}

	sec, _ := s.sections.Lookup(active)
	c.JSON(http.StatusOK, activeSectionResponse{
		Active:  active,
		Label:   sec.Label,
		Anchor:  section.Anchor(active),
		Changed: changed,
	})
}

func (s *server) handleContactForm(c *gin.Context) {
	c.HTML(http.StatusOK, "contact.html", gin.H{
		"form": newContactForm(contact.RawInput{}, nil),
	})
}

// handleContact is the HTMX form post. Invalid input re-renders the form with
// inline messages; valid input redirects the browser to the mailto link.
func (s *server) handleContact(c *gin.Context) {
	ctx := c.Request.Context()
	logger := logging.FromContext(ctx)

	var in contact.RawInput
	if err := c.ShouldBind(&in); err != nil {
		c.HTML(http.StatusBadRequest, "contact.html", gin.H{
			"form": newContactForm(in, nil),
		})
		return
	}

	sub, err := contact.Validate(in)
	if err != nil {
		logger.InfoContext(ctx, "contact form rejected", slog.Any("error", err))
		c.HTML(http.StatusOK, "contact.html", gin.H{
			"form": newContactForm(in, err),
		})
		return
	}

	uri, err := s.composer.Compose(sub)
	if err != nil {
		logger.ErrorContext(ctx, "failed to compose mailto link", slog.Any("error", err))
		c.HTML(http.StatusInternalServerError, "contact.html", gin.H{
			"form":  newContactForm(in, nil),
			"error": "Sorry, something went wrong. Please email me directly.",
		})
		return
	}

	logger.InfoContext(ctx, "contact link composed")
	c.Header("HX-Redirect", uri)
	c.HTML(http.StatusOK, "contact-success.html", gin.H{
		"mailto":    uri,
		"recipient": s.composer.Recipient(),
	})
}

type fieldErrorResponse struct {
	Field   string       `json:"field"`
	Kind    contact.Kind `json:"kind"`
	Message string       `json:"message"`
}

func (s *server) handleContactAPI(c *gin.Context) {
	var in contact.RawInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	sub, err := contact.Validate(in)
	if err != nil {
		var verr *contact.ValidationError
		if !errors.As(err, &verr) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "validation failed"})
			return
		}
		resp := make([]fieldErrorResponse, len(verr.Errors))
		for i, fe := range verr.Errors {
			resp[i] = fieldErrorResponse{Field: fe.Field, Kind: fe.Kind, Message: fe.Message()}
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": resp})
		return
	}

	uri, err := s.composer.Compose(sub)
	if err != nil {
		ctx := c.Request.Context()
		logging.FromContext(ctx).ErrorContext(ctx, "failed to compose mailto link", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not compose message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"mailto":    uri,
		"recipient": s.composer.Recipient(),
	})
}
