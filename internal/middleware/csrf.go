package middleware

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
)

const (
	// csrfTokenLength is the byte length of CSRF tokens (32 bytes = 64 hex chars).
	csrfTokenLength = 32

	// CSRFCookieName is the cookie that holds the CSRF token.
	CSRFCookieName = "zb_csrf"

	// CSRFHeaderName is the header fetch-based requests send the token in.
	CSRFHeaderName = "X-CSRF-Token"

	// CSRFFormField is the hidden form field name.
	CSRFFormField = "csrf_token"
)

type csrfKey struct{}

// NewCSRF returns double-submit cookie CSRF protection. A token cookie is
// issued on first contact and stored in the request context, so the very
// first page can already embed it. POST, PUT, PATCH and DELETE requests
// must echo the token in CSRFHeaderName or CSRFFormField.
func NewCSRF(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ""
			if cookie, err := r.Cookie(CSRFCookieName); err == nil {
				token = cookie.Value
			}
			if token == "" {
				generated, err := generateCSRFToken()
				if err != nil {
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
					return
				}
				token = generated
				http.SetCookie(w, &http.Cookie{
					Name:     CSRFCookieName,
					Value:    token,
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteStrictMode,
				})
			}
			r = r.WithContext(context.WithValue(r.Context(), csrfKey{}, token))

			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			submitted := r.Header.Get(CSRFHeaderName)
			if submitted == "" {
				submitted = r.FormValue(CSRFFormField)
			}
			if subtle.ConstantTimeCompare([]byte(token), []byte(submitted)) != 1 {
				http.Error(w, "CSRF token mismatch", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// CSRFTokenFromCtx returns the request's CSRF token for embedding in forms.
func CSRFTokenFromCtx(ctx context.Context) string {
	token, _ := ctx.Value(csrfKey{}).(string)
	return token
}

// generateCSRFToken creates a cryptographically random token.
func generateCSRFToken() (string, error) {
	b := make([]byte, csrfTokenLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
