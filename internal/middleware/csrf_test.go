// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(CSRFTokenFromCtx(r.Context())))
	})
}

func csrfCookie(rr *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == CSRFCookieName {
			return c
		}
	}
	return nil
}

func TestNewCSRFSecureFlag(t *testing.T) {
	for _, secure := range []bool{true, false} {
		rr := httptest.NewRecorder()
		NewCSRF(secure)(okHandler()).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		c := csrfCookie(rr)
		if c == nil {
			t.Fatal("CSRF cookie not set")
		}
		if c.Secure != secure {
			t.Errorf("cookie Secure: got %v, want %v", c.Secure, secure)
		}
		if c.SameSite != http.SameSiteStrictMode {
			t.Errorf("cookie SameSite: got %v, want StrictMode", c.SameSite)
		}
	}
}

func TestCSRFTokenAvailableOnFirstRequest(t *testing.T) {
	rr := httptest.NewRecorder()
	NewCSRF(false)(okHandler()).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	c := csrfCookie(rr)
	if c == nil {
		t.Fatal("CSRF cookie not set")
	}
	if rr.Body.String() != c.Value {
		t.Errorf("context token %q does not match cookie %q", rr.Body.String(), c.Value)
	}
	if len(c.Value) != csrfTokenLength*2 {
		t.Errorf("token length: got %d, want %d", len(c.Value), csrfTokenLength*2)
	}
}

func TestCSRFValidation(t *testing.T) {
	const token = "abc123"
	cookie := &http.Cookie{Name: CSRFCookieName, Value: token}

	tests := []struct {
		name   string
		build  func() *http.Request
		status int
	}{
		{"missing token", func() *http.Request {
			r := httptest.NewRequest(http.MethodPost, "/cart/1", nil)
			r.AddCookie(cookie)
			return r
		}, http.StatusForbidden},
		{"wrong token", func() *http.Request {
			r := httptest.NewRequest(http.MethodPost, "/cart/1", nil)
			r.AddCookie(cookie)
			r.Header.Set(CSRFHeaderName, "nope")
			return r
		}, http.StatusForbidden},
		{"header token", func() *http.Request {
			r := httptest.NewRequest(http.MethodPost, "/cart/1", nil)
			r.AddCookie(cookie)
			r.Header.Set(CSRFHeaderName, token)
			return r
		}, http.StatusOK},
		{"form token", func() *http.Request {
			form := url.Values{CSRFFormField: {token}}
			r := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(form.Encode()))
			r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			r.AddCookie(cookie)
			return r
		}, http.StatusOK},
		{"new cookie cannot be used for a post", func() *http.Request {
			r := httptest.NewRequest(http.MethodPost, "/checkout", nil)
			r.Header.Set(CSRFHeaderName, token)
			return r
		}, http.StatusForbidden},
		{"get is never checked", func() *http.Request {
			return httptest.NewRequest(http.MethodGet, "/cart", nil)
		}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			NewCSRF(false)(okHandler()).ServeHTTP(rr, tt.build())
			if rr.Code != tt.status {
				t.Errorf("status: got %d, want %d", rr.Code, tt.status)
			}
		})
	}
}
