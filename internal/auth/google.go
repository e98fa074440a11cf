package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/examflow/examflow/internal/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	stateCookie   = "oauth_state"
	tokenLifetime = 7 * 24 * time.Hour
	userInfoURL   = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// ProfileStore is the slice of the user service the OAuth callback needs.
type ProfileStore interface {
	UpsertFromGoogle(ctx context.Context, id, email, name, picture string) error
}

type GoogleHandler struct {
	oauth    *oauth2.Config
	profiles ProfileStore
}

func NewGoogleHandler(profiles ProfileStore) *GoogleHandler {
	return &GoogleHandler{
		oauth: &oauth2.Config{
			ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
			ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
			RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		profiles: profiles,
	}
}

type googleUserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func newState() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}

func (h *GoogleHandler) Login(w http.ResponseWriter, r *http.Request) {
	state := newState()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, h.oauth.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

func (h *GoogleHandler) Callback(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	cookie, err := r.Cookie(stateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != r.URL.Query().Get("state") {
		log.Warn("oauth state mismatch")
		config.Error(w, http.StatusBadRequest, "invalid_state", "oauth state mismatch")
		return
	}

	token, err := h.oauth.Exchange(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		log.WithError(err).Error("oauth code exchange failed")
		config.Error(w, http.StatusUnauthorized, "exchange_failed", "could not exchange authorization code")
		return
	}

	info, err := h.fetchUserInfo(r.Context(), token)
	if err != nil {
		log.WithError(err).Error("failed to fetch google user info")
		config.Error(w, http.StatusBadGateway, "userinfo_failed", "could not load user profile")
		return
	}

	if err := h.profiles.UpsertFromGoogle(r.Context(), info.ID, info.Email, info.Name, info.Picture); err != nil {
		log.WithError(err).Error("failed to upsert user profile")
		config.Error(w, http.StatusInternalServerError, "internal_error", "could not store user profile")
		return
	}

	jwtStr, err := GenerateJWT(info.ID, info.Name, tokenLifetime)
	if err != nil {
		log.WithError(err).Error("failed to sign session token")
		config.Error(w, http.StatusInternalServerError, "internal_error", "could not create session")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "jwt",
		Value:    jwtStr,
		Path:     "/",
		MaxAge:   int(tokenLifetime.Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})

	if redirect := os.Getenv("POST_LOGIN_REDIRECT"); redirect != "" {
		http.Redirect(w, r, redirect, http.StatusTemporaryRedirect)
		return
	}
	config.JSON(w, http.StatusOK, map[string]string{"message": "login successful"})
}

func (h *GoogleHandler) fetchUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := h.oauth.Client(ctx, token)
	resp, err := client.Get(userInfoURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	return &info, nil
}
