package http

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

var (
	ErrUnauthenticated = errors.New("missing or invalid token")
	ErrForbidden       = errors.New("role not allowed")
)

const principalKey = "principal"

// Claims is the token payload issued by the identity service.
type Claims struct {
	ID    string `json:"id"`
	Role  string `json:"role"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Authenticator verifies HS256 bearer tokens.
type Authenticator struct {
	secret []byte
	now    func() time.Time
}

func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret), now: time.Now}
}

// Issue signs a token for p. Used by tooling and tests; production tokens come
// from the identity service sharing the secret.
func (a *Authenticator) Issue(p identity.Principal, ttl time.Duration) (string, error) {
	now := a.now()
	claims := Claims{
		ID:    p.UserID.String(),
		Role:  string(p.Role),
		Email: p.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// Verify parses raw and returns the principal it names.
func (a *Authenticator) Verify(raw string) (identity.Principal, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(a.now))
	if err != nil {
		return identity.Principal{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	userID, err := kernel.UUIDFromString(claims.ID)
	if err != nil {
		return identity.Principal{}, fmt.Errorf("%w: id claim: %w", ErrUnauthenticated, err)
	}
	role := identity.Role(claims.Role)
	if !role.IsValid() {
		return identity.Principal{}, fmt.Errorf("%w: unknown role %q", ErrUnauthenticated, claims.Role)
	}

	return identity.Principal{UserID: userID, Role: role, Email: claims.Email}, nil
}

// Authenticate requires a valid token in the Authorization header, or in the
// token query parameter for websocket clients that cannot set headers.
func Authenticate(a *Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := bearerToken(c)
			if err != nil {
				return err
			}
			principal, err := a.Verify(raw)
			if err != nil {
				return err
			}
			c.Set(principalKey, principal)
			return next(c)
		}
	}
}

// RequireRoles lets only the given roles through. Must run after Authenticate.
func RequireRoles(roles ...identity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := PrincipalFrom(c)
			if !ok {
				return ErrUnauthenticated
			}
			if !p.HasAnyRole(roles...) {
				return fmt.Errorf("%w: %s", ErrForbidden, p.Role)
			}
			return next(c)
		}
	}
}

// PrincipalFrom returns the caller set by Authenticate.
func PrincipalFrom(c echo.Context) (identity.Principal, bool) {
	p, ok := c.Get(principalKey).(identity.Principal)
	return p, ok
}

func bearerToken(c echo.Context) (string, error) {
	if header := c.Request().Header.Get(echo.HeaderAuthorization); header != "" {
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
			return "", fmt.Errorf("%w: malformed authorization header", ErrUnauthenticated)
		}
		return token, nil
	}

	var token string
	if err := runtime.BindQueryParameter("form", true, false, "token", c.QueryParams(), &token); err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}
	if token == "" {
		return "", ErrUnauthenticated
	}
	return token, nil
}
