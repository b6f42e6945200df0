package controllers

import (
	"net/http"
	"strings"

	"github.com/shashiranjanraj/mayorista/app/services"
	"github.com/shashiranjanraj/mayorista/pkg/ctx"
	"github.com/shashiranjanraj/mayorista/pkg/session"
)

type SessionController struct {
	sessions *services.SessionService
	opts     session.Options
}

func NewSessionController(sessions *services.SessionService, opts session.Options) *SessionController {
	return &SessionController{sessions: sessions, opts: opts}
}

type sessionReply struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Create exchanges an identity token for the admin session cookie.
func (h *SessionController) Create(c *ctx.Context) {
	var body struct {
		IDToken string `json:"idToken"`
	}
	if _, err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, sessionReply{Error: "invalid request body"})
		return
	}
	token := strings.TrimSpace(body.IDToken)
	if token == "" {
		c.JSON(http.StatusBadRequest, sessionReply{Error: "idToken is required"})
		return
	}

	if _, err := h.sessions.Verify(c.Context(), token); err != nil {
		c.JSON(http.StatusUnauthorized, sessionReply{Error: "unauthorized"})
		return
	}

	session.Write(c.W, h.opts, token, h.sessions.CookieLifetime(token))
	c.JSON(http.StatusOK, sessionReply{OK: true})
}

// Destroy clears the session cookie. Signing out of the identity provider
// happens in the browser.
func (h *SessionController) Destroy(c *ctx.Context) {
	session.Clear(c.W, h.opts)
	c.JSON(http.StatusOK, sessionReply{OK: true})
}

// Login is the exempt landing the admin gate redirects to.
func (h *SessionController) Login(c *ctx.Context) {
	next := c.Query("next")
	if !strings.HasPrefix(next, "/admin") || strings.HasPrefix(next, "//") {
		next = "/admin"
	}
	c.Success(map[string]string{"next": next})
}
