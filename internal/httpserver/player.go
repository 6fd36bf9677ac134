package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/hlog"
)

const playerCookieName = "qalat_player"

// ctxPlayerKey is the context key type for the player ID.
type ctxPlayerKey struct{}

// tokens signs and verifies HS256 player tokens whose subject is the player ID.
type tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func newTokens(secret string, ttl time.Duration) *tokens {
	if secret == "" {
		secret = "dev_secret_change_me"
	}
	return &tokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// sign issues a token for player.
func (t *tokens) sign(player string) (string, time.Time, error) {
	now := t.now()
	exp := now.Add(t.ttl)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   player,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	ss, err := tok.SignedString(t.secret)
	return ss, exp, err
}

// parse returns the player ID held by a valid token.
func (t *tokens) parse(raw string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(t.now))
	if err != nil {
		return "", err
	}
	if !tok.Valid {
		return "", errors.New("invalid token")
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", errors.New("invalid player id")
	}
	return claims.Subject, nil
}

// withPlayer resolves the player from a bearer token or the player cookie.
// Missing or invalid tokens are replaced by a fresh identity; guests can
// always play.
func (s *Server) withPlayer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var player string
		if raw := bearerOrCookie(r); raw != "" {
			id, err := s.tokens.parse(raw)
			if err != nil {
				hlog.FromRequest(r).Debug().Err(err).Msg("discarding player token")
			}
			player = id
		}
		if player == "" {
			player = uuid.NewString()
			tok, exp, err := s.tokens.sign(player)
			if err != nil {
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "sign_failed"})
				return
			}
			s.setPlayerCookie(w, tok, exp)
			w.Header().Set("X-Player-Token", tok)
		}
		ctx := context.WithValue(r.Context(), ctxPlayerKey{}, player)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// playerID returns the player placed in the context by withPlayer.
func playerID(r *http.Request) string {
	id, _ := r.Context().Value(ctxPlayerKey{}).(string)
	return id
}

// setPlayerCookie writes the player token cookie with appropriate security attributes.
func (s *Server) setPlayerCookie(w http.ResponseWriter, token string, exp time.Time) {
	sameSite := http.SameSiteLaxMode
	if s.opts.Secure {
		sameSite = http.SameSiteNoneMode // required for third-party contexts when Secure
	}
	http.SetCookie(w, &http.Cookie{
		Name:     playerCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.opts.Secure,
		SameSite: sameSite,
		Expires:  exp,
	})
}

// bearerOrCookie extracts a token from the Authorization header or the player cookie.
func bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(playerCookieName); err == nil {
		return c.Value
	}
	return ""
}
