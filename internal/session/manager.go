package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL applies when the refresh token carries no usable exp claim.
const DefaultTTL = 24 * time.Hour

// Manager is the single entry point for session state.
type Manager struct {
	store  Store
	sealer *Sealer
	ttl    time.Duration
	now    func() time.Time
	logger *slog.Logger
}

// NewManager wires a store and a sealer. ttl <= 0 selects DefaultTTL.
func NewManager(store Store, sealer *Sealer, ttl time.Duration, logger *slog.Logger) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{store: store, sealer: sealer, ttl: ttl, now: time.Now, logger: logger}
}

// Start persists a new session and returns it with its fresh id.
func (m *Manager) Start(ctx context.Context, v Values) (*Session, error) {
	if v.AccessToken == "" {
		return nil, ErrNoAccessToken
	}
	id, err := newID()
	if err != nil {
		return nil, err
	}
	now := m.now().UTC()
	sess := &Session{ID: id, CreatedAt: now, ExpiresAt: m.expiry(v.RefreshToken, now), Values: v}

	rec, err := m.seal(sess)
	if err != nil {
		return nil, err
	}
	if err := m.store.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return sess, nil
}

// Load returns the live session for id. Expired records are removed on sight.
func (m *Manager) Load(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	rec, err := m.store.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !rec.ExpiresAt.After(m.now()) {
		if err := m.store.Delete(ctx, id); err != nil {
			m.logger.WarnContext(ctx, "delete expired session", "error", err)
		}
		return nil, ErrNotFound
	}
	sess, err := m.open(rec)
	if err != nil {
		// Likely a rotated secret: the record is unusable.
		_ = m.store.Delete(ctx, id)
		return nil, ErrNotFound
	}
	return sess, nil
}

// Destroy removes the session. Unknown ids are not an error.
func (m *Manager) Destroy(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := m.store.Delete(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Prune deletes every expired record.
func (m *Manager) Prune(ctx context.Context) (int64, error) {
	return m.store.DeleteExpired(ctx, m.now())
}

// RunPruner calls Prune every interval until ctx is done.
func (m *Manager) RunPruner(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := m.Prune(ctx)
			if err != nil {
				m.logger.ErrorContext(ctx, "prune sessions", "error", err)
				continue
			}
			if n > 0 {
				m.logger.InfoContext(ctx, "pruned expired sessions", "count", n)
			}
		}
	}
}

// Ping checks the backing store.
func (m *Manager) Ping(ctx context.Context) error { return m.store.Ping(ctx) }

// expiry follows the refresh token's exp claim when it lies in the future.
// The signature is not checked: the backend owns the key and verifies it.
func (m *Manager) expiry(refresh string, now time.Time) time.Time {
	fallback := now.Add(m.ttl)
	if refresh == "" {
		return fallback
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(refresh, claims); err != nil {
		return fallback
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil || !exp.After(now) {
		return fallback
	}
	return exp.UTC()
}

func (m *Manager) seal(s *Session) (*Record, error) {
	access, err := m.sealer.Seal(s.AccessToken)
	if err != nil {
		return nil, err
	}
	refresh, err := m.sealer.Seal(s.RefreshToken)
	if err != nil {
		return nil, err
	}
	return &Record{
		ID:           s.ID,
		AccessToken:  access,
		RefreshToken: refresh,
		UserName:     s.UserName,
		CreatedAt:    s.CreatedAt,
		ExpiresAt:    s.ExpiresAt,
	}, nil
}

func (m *Manager) open(rec *Record) (*Session, error) {
	access, err := m.sealer.Open(rec.AccessToken)
	if err != nil {
		return nil, err
	}
	refresh, err := m.sealer.Open(rec.RefreshToken)
	if err != nil {
		return nil, err
	}
	return &Session{
		ID:        rec.ID,
		CreatedAt: rec.CreatedAt,
		ExpiresAt: rec.ExpiresAt,
		Values:    Values{AccessToken: access, RefreshToken: refresh, UserName: rec.UserName},
	}, nil
}

func newID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("session id: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
