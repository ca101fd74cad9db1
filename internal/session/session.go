// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package session provides Valkey-backed shopper sessions. A session is
// identified by a cookie and names the shopper whose cart the requests
// operate on. Notices raised during one request are queued as flashes and
// shown on the next rendered page.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"zebaish/internal/notice"
)

const (
	// CookieName is the name of the session cookie sent to the browser.
	CookieName = "zb_session"

	// DefaultTTL is how long an idle session lives in Valkey.
	DefaultTTL = 30 * 24 * time.Hour

	// flashTTL bounds how long unread flashes are kept.
	flashTTL = 10 * time.Minute

	keyPrefix   = "session:"
	flashPrefix = "flash:"

	// idLength is the byte length of the random session ID (32 bytes = 64 hex chars).
	idLength = 32
)

// Data holds the session payload stored in Valkey.
type Data struct {
	ShopperID string    `json:"shopper_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is a loaded session and its id.
type Session struct {
	ID string
	Data
}

// Store manages session lifecycle in Valkey.
type Store struct {
	client *redis.Client
	ttl    time.Duration
	secure bool
}

// NewStore creates a session store backed by the given Valkey client.
// secure marks the cookie Secure and should be set behind TLS.
func NewStore(client *redis.Client, secure bool) *Store {
	return &Store{
		client: client,
		ttl:    DefaultTTL,
		secure: secure,
	}
}

// Open returns the session named by the request cookie, creating a new
// shopper session when the cookie is missing or the session has expired.
// Every call refreshes the TTL and the cookie.
func (s *Store) Open(ctx context.Context, w http.ResponseWriter, r *http.Request) (*Session, error) {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		payload, err := s.client.Get(ctx, keyPrefix+cookie.Value).Bytes()
		switch {
		case err == nil:
			var data Data
			if err := json.Unmarshal(payload, &data); err != nil {
				return nil, fmt.Errorf("session unmarshal: %w", err)
			}
			s.client.Expire(ctx, keyPrefix+cookie.Value, s.ttl)
			s.setCookie(w, cookie.Value)
			return &Session{ID: cookie.Value, Data: data}, nil
		case !errors.Is(err, redis.Nil):
			return nil, fmt.Errorf("session get: %w", err)
		}
	}
	return s.create(ctx, w)
}

func (s *Store) create(ctx context.Context, w http.ResponseWriter) (*Session, error) {
	id, err := generateID()
	if err != nil {
		return nil, fmt.Errorf("session create: %w", err)
	}

	data := Data{ShopperID: uuid.NewString(), CreatedAt: time.Now()}
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("session marshal: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+id, payload, s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("session store: %w", err)
	}

	s.setCookie(w, id)
	return &Session{ID: id, Data: data}, nil
}

func (s *Store) setCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.ttl.Seconds()),
	})
}

// PushFlashes queues notices for the next page rendered in this session.
func (s *Store) PushFlashes(ctx context.Context, id string, notices []notice.Notice) error {
	if len(notices) == 0 {
		return nil
	}
	values := make([]any, 0, len(notices))
	for _, n := range notices {
		b, err := json.Marshal(n)
		if err != nil {
			return fmt.Errorf("flash marshal: %w", err)
		}
		values = append(values, b)
	}

	key := flashPrefix + id
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, values...)
		pipe.Expire(ctx, key, flashTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("flash push: %w", err)
	}
	return nil
}

// PopFlashes returns and clears the queued notices, oldest first.
func (s *Store) PopFlashes(ctx context.Context, id string) ([]notice.Notice, error) {
	key := flashPrefix + id
	var lrange *redis.StringSliceCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		lrange = pipe.LRange(ctx, key, 0, -1)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("flash pop: %w", err)
	}

	raw := lrange.Val()
	out := make([]notice.Notice, 0, len(raw))
	for _, item := range raw {
		var n notice.Notice
		if err := json.Unmarshal([]byte(item), &n); err != nil {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

// Destroy removes the session and its flashes from Valkey and clears the
// cookie. The shopper's cart blob is left alone.
func (s *Store) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil
	}

	if err := s.client.Del(ctx, keyPrefix+cookie.Value, flashPrefix+cookie.Value).Err(); err != nil {
		return fmt.Errorf("session destroy: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	return nil
}

// generateID creates a cryptographically random session identifier.
func generateID() (string, error) {
	b := make([]byte, idLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
