package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/facebook"
	"github.com/markbates/goth/providers/google"

	"velora_storefront/internal/cart"
	"velora_storefront/internal/config"
	"velora_storefront/internal/handlers"
	"velora_storefront/internal/routes"
	"velora_storefront/internal/shopify"
	"velora_storefront/internal/store"
	"velora_storefront/internal/utils"
	"velora_storefront/internal/wishlist"
)

func main() {
	config.Load()

	catalog, err := shopify.NewFromEnv()
	if err != nil {
		log.Fatalf("❌ Cannot initialize the storefront gateway: %v", err)
	}
	log.Println("✅ Storefront gateway initialized")

	ctx := context.Background()
	if err := store.InitRedis(); err != nil {
		log.Fatalf("❌ Redis init failed: %v", err)
	}
	defer store.CloseRedis()

	if err := store.InitFirestore(ctx); err != nil {
		log.Fatalf("❌ Firestore init failed: %v", err)
	}
	defer store.CloseFirestore()

	initOAuthProviders()

	deviceStore := store.NewDeviceStore(store.Redis)
	sessionStore := store.NewSessionStore(store.Firestore)

	cartSvc := cart.New(catalog, sessionStore, deviceStore)
	wishlistSvc := wishlist.New(sessionStore, deviceStore)
	h := handlers.New(catalog, cartSvc, wishlistSvc, utils.SendWishlistEmail)

	r := gin.Default()
	routes.RegisterRoutes(r, h)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Velora storefront listening on port", port)
	r.Run(":" + port)
}

func initOAuthProviders() {
	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		log.Fatal("❌ SESSION_SECRET missing from .env")
	}

	cookieStore := sessions.NewCookieStore([]byte(sessionSecret))
	cookieStore.MaxAge(86400 * 30)
	cookieStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		Secure:   false, // false in dev, true in prod
		SameSite: http.SameSiteLaxMode,
	}

	gothic.Store = cookieStore

	gothic.GetProviderName = func(req *http.Request) (string, error) {
		if provider := req.URL.Query().Get("provider"); provider != "" {
			return provider, nil
		}
		if provider := req.FormValue("provider"); provider != "" {
			return provider, nil
		}
		return "", errors.New("provider not found")
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	googleClientID := os.Getenv("GOOGLE_CLIENT_ID")
	googleClientSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	facebookClientID := os.Getenv("FACEBOOK_CLIENT_ID")
	facebookClientSecret := os.Getenv("FACEBOOK_CLIENT_SECRET")

	var providers []goth.Provider

	if googleClientID != "" && googleClientSecret != "" {
		providers = append(providers, google.New(
			googleClientID,
			googleClientSecret,
			baseURL+"/api/auth/google/callback",
		))
		log.Println("✅ Google OAuth enabled")
	}

	if facebookClientID != "" && facebookClientSecret != "" {
		providers = append(providers, facebook.New(
			facebookClientID,
			facebookClientSecret,
			baseURL+"/api/auth/facebook/callback",
		))
		log.Println("✅ Facebook OAuth enabled")
	}

	if len(providers) == 0 {
		log.Println("⚠️ No OAuth provider configured — guests only")
		return
	}

	goth.UseProviders(providers...)
	log.Printf("✅ %d OAuth provider(s) initialized", len(providers))
}
