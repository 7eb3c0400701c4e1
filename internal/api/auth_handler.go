package api

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"liftlog/workout-app/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	oauthStateCookieName = "liftlog_oauth_state"
	oauthStateMaxAge     = 10 * 60 // seconds
)

// AuthConfig tells the auth handler where users go after a login.
type AuthConfig struct {
	ClientURL         string
	MobileRedirectURL string
}

func (c AuthConfig) secureCookies() bool {
	return strings.HasPrefix(c.ClientURL, "https://")
}

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService service.AuthService
	cfg         AuthConfig
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService, cfg AuthConfig) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

type MeResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// --- Handler Methods ---

// GoogleLogin redirects the browser to the Google consent screen.
// @Router /auth/google [get]
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	h.startLogin(c, false)
}

// GoogleMobileLogin starts the login used by the mobile app.
// @Router /auth/google/mobile [get]
func (h *AuthHandler) GoogleMobileLogin(c *gin.Context) {
	h.startLogin(c, true)
}

func (h *AuthHandler) startLogin(c *gin.Context, mobile bool) {
	state := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookieName, state, oauthStateMaxAge, "/", "", h.cfg.secureCookies(), true)
	c.Redirect(http.StatusFound, h.authService.LoginURL(state, mobile))
}

// GoogleCallback finishes the web login, sets the session cookie and sends the user to the dashboard.
// @Router /auth/google/redirect [get]
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	token, ok := h.completeLogin(c, false)
	if !ok {
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, int(h.authService.TokenTTL().Seconds()), "/", "", h.cfg.secureCookies(), true)
	c.Redirect(http.StatusFound, strings.TrimSuffix(h.cfg.ClientURL, "/")+"/dashboard")
}

// GoogleMobileCallback finishes the mobile login and hands the token to the app's deep link.
// @Router /auth/google/redirect/mobile [get]
func (h *AuthHandler) GoogleMobileCallback(c *gin.Context) {
	token, ok := h.completeLogin(c, true)
	if !ok {
		return
	}

	target, err := url.Parse(h.cfg.MobileRedirectURL)
	if err != nil || h.cfg.MobileRedirectURL == "" {
		log.WithError(err).Error("mobile redirect url is not configured")
		abortWithError(c, http.StatusInternalServerError, "Mobile login is not configured")
		return
	}
	query := target.Query()
	query.Set("token", token)
	target.RawQuery = query.Encode()
	c.Redirect(http.StatusFound, target.String())
}

func (h *AuthHandler) completeLogin(c *gin.Context, mobile bool) (string, bool) {
	if oauthErr := c.Query("error"); oauthErr != "" {
		abortWithError(c, http.StatusUnauthorized, "Login was cancelled: "+oauthErr)
		return "", false
	}

	expected, err := c.Cookie(oauthStateCookieName)
	if err != nil || expected == "" || expected != c.Query("state") {
		abortWithError(c, http.StatusBadRequest, "Invalid login state")
		return "", false
	}
	c.SetCookie(oauthStateCookieName, "", -1, "/", "", h.cfg.secureCookies(), true)

	token, identity, err := h.authService.CompleteLogin(c.Request.Context(), c.Query("code"), mobile)
	if err != nil {
		if errors.Is(err, service.ErrAuthenticationFailed) {
			log.WithError(err).Warn("google login failed")
			abortWithError(c, http.StatusUnauthorized, "Authentication failed")
		} else {
			log.WithError(err).Error("google login")
			abortWithError(c, http.StatusInternalServerError, "Could not process login")
		}
		return "", false
	}

	log.WithFields(log.Fields{"email": identity.Email, "mobile": mobile}).Info("user logged in")
	return token, true
}

// Logout clears the session cookie.
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", h.cfg.secureCookies(), true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me returns the identity bound to the session.
// @Router /me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	identity, err := getIdentityFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}
	c.JSON(http.StatusOK, MeResponse{Email: identity.Email, Name: identity.Name})
}
