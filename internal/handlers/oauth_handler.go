package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/markbates/goth/gothic"

	"velora_storefront/internal/auth"
	"velora_storefront/internal/config"
	"velora_storefront/internal/models"
	"velora_storefront/internal/utils"
)

type ctxKey string

const ProviderKey ctxKey = "provider"

// BeginAuth starts the delegated sign-in redirect flow.
func BeginAuth(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no provider specified"})
		return
	}

	c.Request = c.Request.WithContext(
		context.WithValue(c.Request.Context(), ProviderKey, provider),
	)

	gothic.BeginAuthHandler(c.Writer, c.Request)
}

// CallbackAuth completes the delegated sign-in and mints our session token.
// The identity provider owns authentication; all we keep is the identity.
func CallbackAuth(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no provider specified"})
		return
	}

	c.Request = c.Request.WithContext(
		context.WithValue(c.Request.Context(), ProviderKey, provider),
	)

	gothUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := models.User{
		ID:       gothUser.Provider + ":" + gothUser.UserID,
		Email:    gothUser.Email,
		Name:     gothUser.Name,
		Provider: gothUser.Provider,
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// AuthLinkURL hands the SPA popup flow a raw authorization URL instead of a
// redirect. Google only for now.
func AuthLinkURL(c *gin.Context) {
	if c.Param("provider") != "google" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported provider"})
		return
	}

	provider := auth.OAuthProvider{Name: "google", Config: config.GoogleOAuthConfig}
	c.JSON(http.StatusOK, gin.H{"url": provider.AuthURL(uuid.NewString())})
}
