package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"liftlog/workout-app/internal/config"
	"liftlog/workout-app/internal/domain"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type googleUserInfo struct {
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
}

type googleProvider struct {
	web         *oauth2.Config
	mobile      *oauth2.Config
	userInfoURL string
}

// NewGoogleProvider builds the Google login from the OAuth settings. The mobile flow
// calls back on RedirectURL + "/mobile".
func NewGoogleProvider(cfg config.OAuthConfig) IdentityProvider {
	base := oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{"openid", "profile", "email"},
	}
	web, mobile := base, base
	web.RedirectURL = cfg.RedirectURL
	mobile.RedirectURL = cfg.RedirectURL + "/mobile"

	return &googleProvider{web: &web, mobile: &mobile, userInfoURL: googleUserInfoURL}
}

func (p *googleProvider) config(mobile bool) *oauth2.Config {
	if mobile {
		return p.mobile
	}
	return p.web
}

func (p *googleProvider) AuthCodeURL(state string, mobile bool) string {
	return p.config(mobile).AuthCodeURL(state, oauth2.AccessTypeOnline)
}

func (p *googleProvider) Identify(ctx context.Context, code string, mobile bool) (*domain.Identity, error) {
	cfg := p.config(mobile)
	tok, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := cfg.Client(ctx, tok).Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch user info: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch user info: unexpected status %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode user info: %w", err)
	}
	if info.Email == "" || !info.VerifiedEmail {
		return nil, fmt.Errorf("google account has no verified email")
	}
	return &domain.Identity{Email: info.Email, Name: info.Name}, nil
}
