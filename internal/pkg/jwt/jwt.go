package jwt

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// CookieName is the cookie jwtauth.TokenFromCookie reads.
const CookieName = "jwt"

var ErrInvalidSessionToken = errors.New("invalid session token")

// Service signs and reads the console's session cookie. The cookie only
// carries the session id and role. The backend bearer token stays server-side
// in the session store.
type Service interface {
	IssueSessionToken(sessionID string, role string, expiresAt time.Time) (string, error)
	SessionID(token jwt.Token) (string, error)
	JWTAuth() *jwtauth.JWTAuth
	SessionCookie(token string, expiresAt time.Time) *http.Cookie
	ClearCookie() *http.Cookie
}

type JWTService struct {
	tokenAuth    *jwtauth.JWTAuth
	cookieSecure bool
}

func NewJWTService(secretKey string, cookieSecure bool) Service {
	return &JWTService{
		tokenAuth:    jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		cookieSecure: cookieSecure,
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) IssueSessionToken(sessionID string, role string, expiresAt time.Time) (string, error) {
	claims := map[string]interface{}{
		"sid":  sessionID,
		"role": role,
		"type": "session",
	}
	jwtauth.SetIssuedNow(claims)
	jwtauth.SetExpiry(claims, expiresAt)

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, err
}

// SessionID validates the token type and returns its session id claim.
func (j *JWTService) SessionID(token jwt.Token) (string, error) {
	if token == nil {
		return "", ErrInvalidSessionToken
	}
	tokenType, ok := token.Get("type")
	if !ok || tokenType != "session" {
		return "", ErrInvalidSessionToken
	}
	sid, ok := token.Get("sid")
	if !ok {
		return "", ErrInvalidSessionToken
	}
	id, ok := sid.(string)
	if !ok || id == "" {
		return "", ErrInvalidSessionToken
	}
	return id, nil
}

func (j *JWTService) SessionCookie(token string, expiresAt time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   j.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (j *JWTService) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   j.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}
