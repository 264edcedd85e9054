// admin.go - privacy-conscious analytics and the admin dashboard
package main

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Om-Ravindra-Patil/portfolio/internal/logging"
	"github.com/Om-Ravindra-Patil/portfolio/internal/store"
)

const adminCookie = "admin_token"

type adminAuth struct {
	username string
	password string
	token    string
	salt     string
}

func newAdminAuth(username, password string) (*adminAuth, error) {
	token, err := randomHex()
	if err != nil {
		return nil, fmt.Errorf("generating admin token: %w", err)
	}
	salt, err := randomHex()
	if err != nil {
		return nil, fmt.Errorf("generating hashing salt: %w", err)
	}
	return &adminAuth{username: username, password: password, token: token, salt: salt}, nil
}

func randomHex() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// hashIP is consistent per IP for the life of the process.
func (a *adminAuth) hashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + a.salt))
	return hex.EncodeToString(sum[:])[:16]
}

func (a *adminAuth) checkCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) == 1
	return userOK && passOK
}

func (a *adminAuth) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

var untrackedPrefixes = []string{
	"/static/", "/images/", "/admin/", "/api/", "/favicon", "/privacy", "/healthz",
}

// visitorTracking records page views with hashed IPs. Static assets, admin
// and API calls are skipped, and DNT is respected.
func (s *server) visitorTracking() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if c.Request.Method != http.MethodGet || c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}
		for _, prefix := range untrackedPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		v := store.Visitor{
			HashedIP:  s.admin.hashIP(c.ClientIP()),
			UserAgent: c.GetHeader("User-Agent"),
			Path:      path,
			Timestamp: s.now(),
		}
		s.spawn(func() {
			if err := s.store.RecordVisit(context.Background(), v); err != nil {
				s.log.Error("failed to record visitor", slog.Any("error", err))
			}
		})
		c.Next()
	}
}

// cleanupVisitors drops visitor rows past the retention window.
func (s *server) cleanupVisitors(ctx context.Context) {
	removed, err := s.store.Cleanup(ctx, s.now())
	if err != nil {
		s.log.ErrorContext(ctx, "failed to clean up visitor data", slog.Any("error", err))
		return
	}
	if removed > 0 {
		s.log.InfoContext(ctx, "privacy cleanup removed old visitor records", slog.Int64("removed", removed))
	}
}

func (s *server) setupAdminRoutes(r *gin.Engine) {
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"title": "Privacy Policy",
		})
	})

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{
			"title": "Admin Login",
		})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		ctx := c.Request.Context()
		logger := logging.FromContext(ctx)

		if s.admin.checkCredentials(c.PostForm("username"), c.PostForm("password")) {
			c.SetCookie(adminCookie, s.admin.token, 3600*24, "/admin", "", gin.Mode() == gin.ReleaseMode, true)
			logger.InfoContext(ctx, "admin login", slog.String("client", s.admin.hashIP(c.ClientIP())))
			c.Redirect(http.StatusFound, "/admin/dashboard")
			return
		}

		logger.WarnContext(ctx, "failed admin login", slog.String("client", s.admin.hashIP(c.ClientIP())))
		c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
			"title": "Admin Login",
			"error": "Invalid credentials",
		})
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", false, true)
		c.Redirect(http.StatusFound, "/admin/login")
	})

	admin := r.Group("/admin")
	admin.Use(s.admin.middleware())

	admin.GET("/dashboard", func(c *gin.Context) {
		ctx := c.Request.Context()
		stats, err := s.store.Stats(ctx, s.now())
		if err != nil {
			logging.FromContext(ctx).ErrorContext(ctx, "failed to load admin stats", slog.Any("error", err))
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load statistics",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"stats":    stats,
			"sections": s.sections,
		})
	})

	admin.GET("/api/stats", func(c *gin.Context) {
		stats, err := s.store.Stats(c.Request.Context(), s.now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load statistics"})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	admin.POST("/privacy/cleanup", func(c *gin.Context) {
		s.spawn(func() { s.cleanupVisitors(context.Background()) })
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup initiated"})
	})

	admin.GET("/export/stats", func(c *gin.Context) {
		stats, err := s.store.Stats(c.Request.Context(), s.now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load statistics"})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		c.JSON(http.StatusOK, stats)
	})
}
