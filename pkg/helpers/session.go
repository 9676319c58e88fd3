package helpers

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionData is the per-browser identity payload kept server-side.
type SessionData struct {
	UserID string
	Name   string
}

// SessionStore persists session payloads keyed by an opaque session id.
// Get reports ok=false for an unknown or expired id. Delete is idempotent.
type SessionStore interface {
	Save(ctx context.Context, sid string, data SessionData, ttl time.Duration) error
	Get(ctx context.Context, sid string) (SessionData, bool, error)
	Delete(ctx context.Context, sid string) error
}

// SessionManager issues and validates browser session tokens. The token
// handed to the client is an HS256-signed JWT carrying only a random
// session id; the identity payload lives in the store under that id, so
// a token is worthless once its server-side session is gone.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
	store  SessionStore
}

func NewSessionManager(secret string, ttl time.Duration, store SessionStore) *SessionManager {
	return &SessionManager{secret: []byte(secret), ttl: ttl, store: store}
}

type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Create binds a new session to the given identity and returns the signed
// token plus its expiry.
func (m *SessionManager) Create(ctx context.Context, userID, userName string) (string, time.Time, error) {
	sid := uuid.NewString()
	exp := time.Now().Add(m.ttl)
	if err := m.store.Save(ctx, sid, SessionData{UserID: userID, Name: userName}, m.ttl); err != nil {
		return "", time.Time{}, err
	}
	claims := &sessionClaims{
		SessionID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.secret)
	return s, exp, err
}

// Resolve returns the identity bound to a token, if the token is valid and
// the server-side session still exists.
func (m *SessionManager) Resolve(ctx context.Context, token string) (SessionData, bool) {
	claims, err := m.parse(token)
	if err != nil {
		return SessionData{}, false
	}
	data, ok, err := m.store.Get(ctx, claims.SessionID)
	if err != nil || !ok {
		return SessionData{}, false
	}
	return data, true
}

// Destroy invalidates the session behind a token. Destroying an invalid or
// already-destroyed token is not an error.
func (m *SessionManager) Destroy(ctx context.Context, token string) error {
	claims, err := m.parse(token)
	if err != nil {
		return nil
	}
	return m.store.Delete(ctx, claims.SessionID)
}

func (m *SessionManager) parse(token string) (*sessionClaims, error) {
	claims := &sessionClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !tkn.Valid || claims.SessionID == "" {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
