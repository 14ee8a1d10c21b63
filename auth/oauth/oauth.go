// Package oauth provides Google/GitHub sign-in via goth. OAuth accounts
// share the users table with email/password accounts; an OAuth login with a
// known email links to the existing account.
package oauth

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/github"
	"github.com/markbates/goth/providers/google"

	"github.com/adeel/roomshare-backend/apperr"
	"github.com/adeel/roomshare-backend/auth"
	"github.com/adeel/roomshare-backend/models"
	"github.com/adeel/roomshare-backend/store"
)

type Handler struct {
	store       *store.Store
	frontendURL string
}

func New(st *store.Store, frontendURL string) *Handler {
	return &Handler{store: st, frontendURL: frontendURL}
}

// InitProviders wires the goth session store and the configured providers.
// Providers with missing credentials are skipped.
func InitProviders(sessionStore cookie.Store) {
	gothic.Store = sessionStore

	var providers []goth.Provider
	if id := os.Getenv("GOOGLE_CLIENT_ID"); id != "" {
		providers = append(providers, google.New(
			id,
			os.Getenv("GOOGLE_CLIENT_SECRET"),
			os.Getenv("GOOGLE_REDIRECT_URL"),
			"email", "profile",
		))
	}
	if id := os.Getenv("GITHUB_CLIENT_ID"); id != "" {
		providers = append(providers, github.New(
			id,
			os.Getenv("GITHUB_CLIENT_SECRET"),
			os.Getenv("GITHUB_REDIRECT_URL"),
			"user:email",
		))
	}
	goth.UseProviders(providers...)
}

// Begin starts the OAuth flow for the provider in the URL path.
func (h *Handler) Begin(c *gin.Context) {
	q := c.Request.URL.Query()
	q.Add("provider", c.Param("provider"))
	c.Request.URL.RawQuery = q.Encode()

	gothic.BeginAuthHandler(c.Writer, c.Request)
}

// Callback completes the OAuth flow, finds or creates the user, and
// redirects to the frontend with a fresh token pair.
func (h *Handler) Callback(c *gin.Context) {
	q := c.Request.URL.Query()
	q.Add("provider", c.Param("provider"))
	c.Request.URL.RawQuery = q.Encode()

	gothUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
	if err != nil {
		log.Printf("oauth completion failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Sign-in failed, please try again"})
		return
	}

	user, err := h.findOrCreateUser(c.Request.Context(), gothUser)
	if err != nil {
		log.Printf("oauth user lookup failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Sign-in failed, please try again"})
		return
	}

	accessToken, refreshToken, err := auth.GenerateTokens(user.ID.String())
	if err != nil {
		log.Printf("token generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Sign-in failed, please try again"})
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID.String())
	if err := session.Save(); err != nil {
		log.Printf("session save failed: %v", err)
	}

	redirectURL := fmt.Sprintf("%s/auth/success?token=%s&refresh=%s", h.frontendURL, accessToken, refreshToken)
	c.Redirect(http.StatusTemporaryRedirect, redirectURL)
}

func (h *Handler) findOrCreateUser(ctx context.Context, gothUser goth.User) (*models.User, error) {
	user, err := h.store.GetUserByProvider(ctx, gothUser.Provider, gothUser.UserID)
	if err == nil {
		return user, nil
	}
	if !apperr.IsKind(err, apperr.KindNotFound) {
		return nil, err
	}

	// No account for this OAuth identity yet; link by email if one exists.
	user, err = h.store.GetUserByEmail(ctx, gothUser.Email)
	if err == nil {
		linkProvider(user, gothUser)
		if err := h.store.SaveUser(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	}
	if !apperr.IsKind(err, apperr.KindNotFound) {
		return nil, err
	}

	newUser := &models.User{Email: gothUser.Email}
	linkProvider(newUser, gothUser)
	if err := h.store.CreateUser(ctx, newUser); err != nil {
		return nil, err
	}
	return newUser, nil
}

func linkProvider(user *models.User, gothUser goth.User) {
	provider := gothUser.Provider
	providerID := gothUser.UserID
	user.Provider = &provider
	switch provider {
	case "google":
		user.GoogleID = &providerID
	case "github":
		user.GitHubID = &providerID
	}
}
