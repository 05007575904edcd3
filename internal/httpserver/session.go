// internal/httpserver/session.go
//
// Session tokens: an HS256 JWT whose subject is the game session ID.
// Clients send it back as "Authorization: Bearer <token>" or in a cookie.
// Every successful session request re-issues the token (cookie and
// X-Session-Token header), so it only lapses after SessionTTL of inactivity,
// the same rule the store uses to expire sessions.

package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

// tokenHeader carries a re-issued session token for bearer clients.
const tokenHeader = "X-Session-Token"

// ctxSessionKey is the context key type for the session claims.
type ctxSessionKey struct{}

// sessionClaims identify a game session.
type sessionClaims struct {
	Daily bool `json:"daily,omitempty"` // session plays the word of the day
	jwt.RegisteredClaims
}

// signToken creates a session token for id that expires after SessionTTL.
func (s *Server) signToken(id string, daily bool) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.cfg.SessionTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		Daily: daily,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	ss, err := t.SignedString([]byte(s.cfg.JWTSecret))
	return ss, exp, err
}

// parseToken verifies a session token and returns its claims.
func (s *Server) parseToken(tok string) (*sessionClaims, error) {
	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no session")
	}
	return claims, nil
}

// issueToken signs a fresh token and hands it out as cookie and header.
// It must run before the response status is written.
func (s *Server) issueToken(w http.ResponseWriter, id string, daily bool) (string, time.Time, error) {
	tok, exp, err := s.signToken(id, daily)
	if err != nil {
		return "", time.Time{}, err
	}
	s.setSessionCookie(w, tok, exp)
	w.Header().Set(tokenHeader, tok)
	return tok, exp, nil
}

// refreshToken extends the current session's token. Failure only logs:
// the old token is still valid.
func (s *Server) refreshToken(w http.ResponseWriter, r *http.Request) {
	c := claimsFrom(r)
	if c == nil {
		return
	}
	if _, _, err := s.issueToken(w, c.Subject, c.Daily); err != nil {
		log.Warn().Err(err).Str("session", c.Subject).Msg("refresh session token")
	}
}

// requireSession enforces a valid session token and injects its claims
// into the request context.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok := s.bearerOrCookie(r)
		if tok == "" {
			writeError(w, http.StatusUnauthorized, "no_session")
			return
		}
		claims, err := s.parseToken(tok)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid_session")
			return
		}
		ctx := context.WithValue(r.Context(), ctxSessionKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func claimsFrom(r *http.Request) *sessionClaims {
	c, _ := r.Context().Value(ctxSessionKey{}).(*sessionClaims)
	return c
}

func sessionID(r *http.Request) string {
	if c := claimsFrom(r); c != nil {
		return c.Subject
	}
	return ""
}

// bearerOrCookie extracts a bearer token from Authorization header or session cookie.
func (s *Server) bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(s.cfg.CookieName); err == nil {
		return c.Value
	}
	return ""
}

// setSessionCookie writes the session cookie with appropriate security attributes.
func (s *Server) setSessionCookie(w http.ResponseWriter, token string, exp time.Time) {
	c := s.cookie(token)
	c.Expires = exp
	http.SetCookie(w, c)
}

// clearSessionCookie deletes the session cookie.
func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	c := s.cookie("")
	c.MaxAge = -1
	http.SetCookie(w, c)
}

func (s *Server) cookie(value string) *http.Cookie {
	secure := s.cfg.Production()
	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode // required for third-party contexts when Secure
	}
	return &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
	}
}
