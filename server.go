package main

import (
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Om-Ravindra-Patil/portfolio/internal/config"
	"github.com/Om-Ravindra-Patil/portfolio/internal/contact"
	"github.com/Om-Ravindra-Patil/portfolio/internal/section"
	"github.com/Om-Ravindra-Patil/portfolio/internal/store"
)

const templateGlob = "templates/*"

type server struct {
	cfg      *config.Config
	log      *slog.Logger
	store    *store.Store
	sections section.Sections
	composer *contact.Composer
	admin    *adminAuth

	now   func() time.Time
	spawn func(func())
}

func newServer(cfg *config.Config, logger *slog.Logger, st *store.Store) (*server, error) {
	composer, err := contact.NewComposer(cfg.ContactRecipient, cfg.ContactSubject)
	if err != nil {
		return nil, err
	}
	admin, err := newAdminAuth(cfg.AdminUsername, cfg.AdminPassword)
	if err != nil {
		return nil, err
	}
	return &server{
		cfg:      cfg,
		log:      logger,
		store:    st,
		sections: section.Default(),
		composer: composer,
		admin:    admin,
		now:      time.Now,
		spawn:    func(f func()) { go f() },
	}, nil
}

func (s *server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.log), s.visitorTracking())

	r.SetFuncMap(template.FuncMap{
		"markdown": markdown,
	})
	r.LoadHTMLGlob(templateGlob)

	r.Static("/images", "./images")
	r.Static("/static", "./static")

	r.GET("/healthz", s.handleHealth)

	r.GET("/", s.handleIndex)
	r.GET("/nav", s.handleNav)
	r.POST("/api/active-section", s.handleActiveSection)

	r.GET("/contact-form", s.handleContactForm)
	r.POST("/contact", s.handleContact)
	r.POST("/api/contact", s.handleContactAPI)

	s.setupAdminRoutes(r)

	return r
}

func (s *server) handleHealth(c *gin.Context) {
	if err := s.store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
