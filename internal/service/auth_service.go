package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"liftlog/workout-app/internal/domain"

	"github.com/golang-jwt/jwt/v4"
)

// --- Error Definitions ---
var (
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
	ErrInvalidToken         = errors.New("invalid or expired token")
)

// IdentityProvider performs the external login. The mobile flow uses its own callback URL.
type IdentityProvider interface {
	AuthCodeURL(state string, mobile bool) string
	Identify(ctx context.Context, code string, mobile bool) (*domain.Identity, error)
}

// --- Service Interface ---
type AuthService interface {
	// LoginURL returns where to send the browser to start a login.
	LoginURL(state string, mobile bool) string
	// CompleteLogin exchanges the provider callback code for an identity and a session token.
	CompleteLogin(ctx context.Context, code string, mobile bool) (token string, identity *domain.Identity, err error)
	IssueToken(identity domain.Identity) (string, error)
	ParseToken(token string) (*domain.Identity, error)
	TokenTTL() time.Duration
}

// --- Service Implementation ---

type authService struct {
	provider      IdentityProvider
	jwtSecret     string
	jwtExpiration time.Duration
	now           func() time.Time
}

// NewAuthService creates a new instance of authService.
func NewAuthService(provider IdentityProvider, jwtSecret string, jwtExpiration time.Duration) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = 7 * 24 * time.Hour
	}
	return &authService{
		provider:      provider,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
		now:           time.Now,
	}
}

func (s *authService) LoginURL(state string, mobile bool) string {
	return s.provider.AuthCodeURL(state, mobile)
}

func (s *authService) CompleteLogin(ctx context.Context, code string, mobile bool) (string, *domain.Identity, error) {
	if code == "" {
		return "", nil, ErrAuthenticationFailed
	}
	identity, err := s.provider.Identify(ctx, code, mobile)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrAuthenticationFailed, err)
	}
	if identity.Email == "" {
		return "", nil, fmt.Errorf("%w: provider returned no email", ErrAuthenticationFailed)
	}

	token, err := s.IssueToken(*identity)
	if err != nil {
		return "", nil, err
	}
	return token, identity, nil
}

func (s *authService) TokenTTL() time.Duration {
	return s.jwtExpiration
}

// --- JWT Helper ---

// jwtClaims defines the structure of the JWT payload.
type jwtClaims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// IssueToken signs a session token for the identity.
func (s *authService) IssueToken(identity domain.Identity) (string, error) {
	now := s.now()
	claims := &jwtClaims{
		Email: identity.Email,
		Name:  identity.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.Email,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "liftlog",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTokenGeneration, err)
	}
	return signed, nil
}

// ParseToken verifies the signature and expiry and returns the identity the token was
// issued for.
func (s *authService) ParseToken(tokenString string) (*domain.Identity, error) {
	claims := &jwtClaims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Email == "" {
		return nil, ErrInvalidToken
	}
	return &domain.Identity{Email: claims.Email, Name: claims.Name}, nil
}
