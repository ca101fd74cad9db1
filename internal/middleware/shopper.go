// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"zebaish/internal/metrics"
	"zebaish/internal/notice"
	"zebaish/internal/session"
)

type shopperKey struct{}

type shopperState struct {
	session  *session.Session
	recorder *notice.Recorder
	notices  notice.Sink
}

// LoadShopper opens (or starts) the shopper session and stores it in the
// request context together with a notice sink. Notices raised while
// handling the request are queued as session flashes once the handler
// returns. Without a working session the request fails with 503, since
// no cart can be addressed.
func LoadShopper(store *session.Store, m *metrics.Storefront) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := store.Open(r.Context(), w, r)
			if err != nil {
				slog.Error("open shopper session failed", "error", err)
				http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
				return
			}

			rec := &notice.Recorder{}
			state := &shopperState{session: sess, recorder: rec, notices: m.Notices(rec)}
			ctx := context.WithValue(r.Context(), shopperKey{}, state)
			next.ServeHTTP(w, r.WithContext(ctx))

			if err := store.PushFlashes(context.WithoutCancel(ctx), sess.ID, rec.Drain()); err != nil {
				slog.Warn("queue flashes failed", "error", err)
			}
		})
	}
}

// ShopperFromCtx returns the shopper session, or nil outside LoadShopper.
func ShopperFromCtx(ctx context.Context) *session.Session {
	if st, ok := ctx.Value(shopperKey{}).(*shopperState); ok {
		return st.session
	}
	return nil
}

// TakeNotices returns the notices raised so far in this request and
// removes them from the flash queue. Handlers that render a page directly,
// instead of redirecting, show them inline.
func TakeNotices(ctx context.Context) []notice.Notice {
	if st, ok := ctx.Value(shopperKey{}).(*shopperState); ok {
		return st.recorder.Drain()
	}
	return nil
}

// NoticesFromCtx returns the request's notice sink. Outside LoadShopper
// notices are discarded.
func NoticesFromCtx(ctx context.Context) notice.Sink {
	if st, ok := ctx.Value(shopperKey{}).(*shopperState); ok {
		return st.notices
	}
	return notice.Discard
}
