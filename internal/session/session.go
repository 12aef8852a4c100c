// Package session keeps the authenticated user's tokens on the server side.
// A session holds exactly three values: the access token, the refresh token
// and the display name. It exists iff the access token is non-empty.
package session

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when the id is unknown or the session expired.
	ErrNotFound = errors.New("session: not found")
	// ErrNoAccessToken rejects a session that would carry no access token.
	ErrNoAccessToken = errors.New("session: access token required")
)

// Values are the three persisted fields of a session.
type Values struct {
	AccessToken  string
	RefreshToken string
	UserName     string
}

// Session is the decrypted view handed to handlers.
type Session struct {
	ID        string
	CreatedAt time.Time
	ExpiresAt time.Time
	Values
}

// Record is the at-rest form of a session. Tokens are sealed.
type Record struct {
	ID           string    `gorm:"primaryKey;size:64" json:"id"`
	AccessToken  string    `gorm:"type:text;not null" json:"access_token"`
	RefreshToken string    `gorm:"type:text" json:"refresh_token"`
	UserName     string    `gorm:"size:150" json:"user_name"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `gorm:"index;not null" json:"expires_at"`
}

// TableName pins the gorm table name.
func (Record) TableName() string { return "sessions" }

// Store persists session records.
type Store interface {
	Save(ctx context.Context, rec *Record) error
	// Find returns ErrNotFound when no record has the id.
	Find(ctx context.Context, id string) (*Record, error)
	Delete(ctx context.Context, id string) error
	// DeleteExpired removes records whose ExpiresAt is before now.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	Ping(ctx context.Context) error
}
