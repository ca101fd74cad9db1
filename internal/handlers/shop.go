package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"zebaish/internal/middleware"
	"zebaish/internal/notice"
	"zebaish/internal/slug"
	"zebaish/internal/view"
)

// Shop groups the shopper-facing handlers.
type Shop struct {
	*Site
}

// NewShop creates the storefront handler group.
func NewShop(site *Site) *Shop {
	return &Shop{Site: site}
}

// Storefront renders the catalog grid. ?category= selects a category and
// ?q= searches the whole catalog.
func (s *Shop) Storefront(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := view.Filter{}.WithCategory(q.Get("category")).WithSearch(strings.TrimSpace(q.Get("q")))

	data := s.pageData(r, s.openCart(r), "", "shop")
	data.Data["Filter"] = f
	data.Data["Buttons"] = view.FilterButtons(f)
	data.Data["Grid"] = s.gridHTML(r, f)
	s.Renderer.Page(w, r, "storefront", data)
}

// Product renders the detail view of /products/{ref}, where ref is
// "{id}-{slug}". Stale or missing slugs redirect to the canonical URL.
func (s *Shop) Product(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")
	id, ok := slug.ParseID(ref)
	if !ok {
		s.notFound(w, r, "That product does not exist.")
		return
	}
	p, ok := s.Catalog.Find(id)
	if !ok {
		s.notFound(w, r, "That product does not exist.")
		return
	}
	if canonical := view.ProductURL(&p); canonical != r.URL.Path {
		http.Redirect(w, r, canonical, http.StatusMovedPermanently)
		return
	}

	data := s.pageData(r, s.openCart(r), p.Name, "shop")
	data.Data["Product"] = view.ProductDetail(p)
	s.Renderer.Page(w, r, "product", data)
}

// Cart renders the shopper's cart.
func (s *Shop) Cart(w http.ResponseWriter, r *http.Request) {
	c := s.openCart(r)
	data := s.pageData(r, c, "Cart", "cart")
	data.Data["Cart"] = view.Cart(c)
	s.Renderer.Page(w, r, "cart", data)
}

// AddToCart adds one unit of {id} and goes back to the page the shopper
// came from.
func (s *Shop) AddToCart(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	applied := s.openCart(r).Add(r.Context(), id)
	s.Metrics.IncCartOp("add", applied)
	http.Redirect(w, r, backTo(r, "/"), http.StatusSeeOther)
}

// UpdateQuantity applies the signed "delta" form value to {id}.
func (s *Shop) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	delta, err := strconv.ParseInt(r.PostFormValue("delta"), 10, 64)
	if err != nil {
		http.Error(w, "invalid quantity change", http.StatusBadRequest)
		return
	}
	applied := s.openCart(r).UpdateQuantity(r.Context(), id, delta)
	s.Metrics.IncCartOp("update", applied)
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// RemoveFromCart drops {id} from the cart.
func (s *Shop) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	s.openCart(r).Remove(r.Context(), id)
	s.Metrics.IncCartOp("remove", true)
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// Checkout places the order and renders its summary. An empty cart sends
// the shopper back with a notice.
func (s *Shop) Checkout(w http.ResponseWriter, r *http.Request) {
	c := s.openCart(r)
	summary, ok := c.Checkout(r.Context())
	if !ok {
		http.Redirect(w, r, backTo(r, "/cart"), http.StatusSeeOther)
		return
	}
	s.Metrics.ObserveCheckout(summary.Total)
	slog.Info("order placed", "lines", len(summary.Lines), "total", summary.Total)

	data := s.pageData(r, c, "Order placed", "cart")
	data.Data["Order"] = view.Order(summary)
	s.Renderer.Page(w, r, "order", data)
}

// Contact acknowledges the contact form. Messages are not stored.
func (s *Shop) Contact(w http.ResponseWriter, r *http.Request) {
	slog.Info("contact form submitted", "message_length", len(r.PostFormValue("message")))
	middleware.NoticesFromCtx(r.Context()).Notify(notice.Success(notice.ContactReceived))
	http.Redirect(w, r, backTo(r, "/"), http.StatusSeeOther)
}
