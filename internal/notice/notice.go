// Package notice carries transient advisory messages shown to the shopper:
// stock-limit warnings, empty-cart warnings and success confirmations.
// Notices are not errors and are never logged as such.
package notice

import (
	"fmt"
	"sync"
	"time"
)

// DisplayDuration is how long a notice stays visible before it is dismissed.
const DisplayDuration = 3 * time.Second

// Kind classifies a notice for styling.
type Kind string

const (
	KindSuccess Kind = "success"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

// Messages emitted by the stores and the admin editor.
const (
	OutOfStock      = "Sorry, this item is out of stock!"
	StockLimit      = "Maximum stock limit reached!"
	AddedToCart     = "Added to cart!"
	EmptyCart       = "Your cart is empty!"
	OrderPlaced     = "Thank you for shopping with Zebaish Jewellers!"
	ProductSaved    = "Product saved successfully!"
	ProductDeleted  = "Product deleted!"
	ContactReceived = "Thank you! We will contact you soon."
)

// StockAvailable is the notice shown when a quantity change would exceed
// the catalog stock.
func StockAvailable(stock int64) string {
	return fmt.Sprintf("Maximum stock available: %d", stock)
}

// Notice is a single advisory message.
type Notice struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// Sink receives notices.
type Sink interface {
	Notify(n Notice)
}

// Discard drops every notice.
var Discard Sink = discard{}

type discard struct{}

func (discard) Notify(Notice) {}

// Recorder collects notices in order. It is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

// Notify appends n.
func (r *Recorder) Notify(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

// Notices returns a copy of the collected notices.
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notice, len(r.notices))
	copy(out, r.notices)
	return out
}

// Drain returns the collected notices and resets the recorder.
func (r *Recorder) Drain() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.notices
	r.notices = nil
	return out
}

// Success, Warning and Info build notices of the matching kind.
func Success(msg string) Notice { return Notice{Kind: KindSuccess, Message: msg} }
func Warning(msg string) Notice { return Notice{Kind: KindWarning, Message: msg} }
func Info(msg string) Notice    { return Notice{Kind: KindInfo, Message: msg} }
