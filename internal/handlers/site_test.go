package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zebaish/internal/catalog"
	"zebaish/internal/persist"
	"zebaish/internal/render"
	"zebaish/internal/view"
)

func TestBackTo(t *testing.T) {
	tests := []struct {
		name    string
		form    url.Values
		referer string
		want    string
	}{
		{"return field", url.Values{"return": {"/products/4-gold"}}, "", "/products/4-gold"},
		{"protocol relative return is ignored", url.Values{"return": {"//evil.example"}}, "", "/"},
		{"absolute return is ignored", url.Values{"return": {"https://evil.example/"}}, "", "/"},
		{"same host referer", nil, "http://shop.test/?category=ring", "/?category=ring"},
		{"foreign referer", nil, "http://evil.example/cart", "/"},
		{"nothing", nil, "", "/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "http://shop.test/cart/1", strings.NewReader(tt.form.Encode()))
			r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			if tt.referer != "" {
				r.Header.Set("Referer", tt.referer)
			}
			assert.Equal(t, tt.want, backTo(r, "/"))
		})
	}
}

func TestGridHTMLWithoutCache(t *testing.T) {
	renderer, err := render.New()
	require.NoError(t, err)
	store := catalog.NewStore(nil, persist.NewMemory())
	store.Load(context.Background())

	site := &Site{Renderer: renderer, Catalog: store}
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	html := string(site.gridHTML(r, view.Filter{}.WithCategory("bangles")))
	assert.Contains(t, html, "Classic Red Velvet Bangles")
	assert.NotContains(t, html, "Royal Bridal Necklace Set")
	assert.NotContains(t, html, render.CSRFPlaceholder)
}
