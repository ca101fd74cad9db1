// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers holds the HTTP handlers of the storefront and the admin
// panel. Handlers that change state redirect afterwards; notices raised on
// the way reach the next page as flashes.
package handlers

import (
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"zebaish/internal/cache"
	"zebaish/internal/cart"
	"zebaish/internal/catalog"
	"zebaish/internal/metrics"
	"zebaish/internal/middleware"
	"zebaish/internal/persist"
	"zebaish/internal/render"
	"zebaish/internal/session"
	"zebaish/internal/view"
)

// Site bundles the dependencies shared by every handler group.
type Site struct {
	Renderer *render.Renderer
	Catalog  *catalog.Store
	Backend  persist.Backend
	Sessions *session.Store
	Grid     *cache.GridCache // optional
	Metrics  *metrics.Storefront
}

// openCart restores the cart of the request's shopper. Notices go to the
// request's sink.
func (s *Site) openCart(r *http.Request) *cart.Cart {
	ctx := r.Context()
	shopperID := ""
	if sess := middleware.ShopperFromCtx(ctx); sess != nil {
		shopperID = sess.ShopperID
	}
	return cart.Open(ctx, s.Backend, shopperID, s.Catalog, middleware.NoticesFromCtx(ctx))
}

// pageData starts the data of a full page: header cart count and the
// notices queued by earlier requests or raised during this one.
func (s *Site) pageData(r *http.Request, c *cart.Cart, title, section string) *render.PageData {
	ctx := r.Context()
	data := &render.PageData{
		Title:   title,
		Section: section,
		Data:    map[string]any{},
	}
	if c != nil {
		data.CartCount = c.ItemCount()
	}
	if sess := middleware.ShopperFromCtx(ctx); sess != nil {
		flashes, err := s.Sessions.PopFlashes(ctx, sess.ID)
		if err != nil {
			slog.Warn("pop flashes failed", "error", err)
		}
		data.Flashes = flashes
	}
	data.Flashes = append(data.Flashes, middleware.TakeNotices(ctx)...)
	return data
}

// notFound renders the error page with a 404 status.
func (s *Site) notFound(w http.ResponseWriter, r *http.Request, message string) {
	data := s.pageData(r, s.openCart(r), "Not found", "")
	data.Status = http.StatusNotFound
	data.Data["Message"] = message
	s.Renderer.Page(w, r, "error", data)
}

// gridHTML returns the product grid for f, from the grid cache when
// possible.
func (s *Site) gridHTML(r *http.Request, f view.Filter) template.HTML {
	ctx := r.Context()
	token := middleware.CSRFTokenFromCtx(ctx)

	if s.Grid != nil {
		if cached, ok := s.Grid.Get(ctx, f.Key()); ok {
			return render.Fragment(cached).WithToken(token)
		}
	}

	frag, err := s.Renderer.Fragment("grid", view.Products(s.Catalog, f))
	if err != nil {
		slog.Error("render product grid failed", "error", err)
		return ""
	}
	if s.Grid != nil {
		s.Grid.Set(ctx, f.Key(), frag)
	}
	return frag.WithToken(token)
}

// productID parses the {id} route parameter.
func productID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

// backTo picks where to send the shopper after a form post: the "return"
// field, else the same-host Referer, else fallback. Only local paths are
// accepted.
func backTo(r *http.Request, fallback string) string {
	if ret := r.PostFormValue("return"); isLocalPath(ret) {
		return ret
	}
	if ref, err := url.Parse(r.Referer()); err == nil && ref.Host == r.Host && isLocalPath(ref.Path) {
		if ref.RawQuery != "" {
			return ref.Path + "?" + ref.RawQuery
		}
		return ref.Path
	}
	return fallback
}

func isLocalPath(p string) bool {
	return strings.HasPrefix(p, "/") && !strings.HasPrefix(p, "//") && !strings.Contains(p, `\`)
}
