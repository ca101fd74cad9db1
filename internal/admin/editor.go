// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package admin implements the catalog editor behind the admin panel: a
// product form with a "currently editing" slot per admin session, and
// confirmed deletes.
package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"zebaish/internal/catalog"
	"zebaish/internal/imaging"
	"zebaish/internal/models"
	"zebaish/internal/notice"
)

// ErrInvalid is returned by Submit when the form fails validation.
var ErrInvalid = errors.New("admin: invalid product form")

// ValidationError carries the per-field messages of a rejected form.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %d field(s)", ErrInvalid, len(e.Fields))
}

func (e *ValidationError) Unwrap() error { return ErrInvalid }

// Catalog is the catalog access the editor needs.
type Catalog interface {
	Find(id int64) (models.Product, bool)
	Upsert(ctx context.Context, p models.Product) models.Product
	Remove(ctx context.Context, id int64)
}

// Editor edits the catalog. Every admin session has its own editing slot,
// keyed by an opaque slot name such as the session id. A submit replaces
// the product named by the form's ID, or creates one when the ID is zero.
// It is safe for concurrent use.
type Editor struct {
	mu      sync.Mutex
	slots   map[string]int64
	catalog Catalog
	notices func(context.Context) notice.Sink
}

// New returns an editor over catalog. notices picks the sink for the
// request a call belongs to; nil discards notices.
func New(c Catalog, notices func(context.Context) notice.Sink) *Editor {
	if notices == nil {
		notices = func(context.Context) notice.Sink { return notice.Discard }
	}
	return &Editor{catalog: c, notices: notices, slots: make(map[string]int64)}
}

// Editing reports the product id in the given editing slot.
func (e *Editor) Editing(slot string) (int64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	id, ok := e.slots[slot]
	return id, ok
}

// StartEdit puts the product in the slot and returns its form, which
// carries the product id. Unknown ids leave the slot unchanged.
func (e *Editor) StartEdit(slot string, id int64) (Form, bool) {
	p, ok := e.catalog.Find(id)
	if !ok {
		return Form{}, false
	}

	e.mu.Lock()
	e.slots[slot] = id
	e.mu.Unlock()
	return FormFor(p), true
}

// Reset clears the slot.
func (e *Editor) Reset(slot string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.slots, slot)
}

// Submit saves the form. The image is the upload converted to a data URI
// when one is given, else the current image of the product named by f.ID,
// else catalog.DefaultImage. An ID that no longer exists is saved as a new
// product. On success the slot is cleared.
func (e *Editor) Submit(ctx context.Context, slot string, f Form, upload []byte) (models.Product, error) {
	if fields := f.Validate(); fields != nil {
		return models.Product{}, &ValidationError{Fields: fields}
	}

	existing, found := models.Product{}, false
	if f.ID != 0 {
		existing, found = e.catalog.Find(f.ID)
	}
	image, err := resolveImage(upload, existing)
	if err != nil {
		return models.Product{}, err
	}

	saved := e.catalog.Upsert(ctx, f.Product(image))
	slog.Info("product saved", "id", saved.ID, "name", saved.Name, "updated", found)

	e.Reset(slot)
	e.notices(ctx).Notify(notice.Success(notice.ProductSaved))
	return saved, nil
}

func resolveImage(upload []byte, existing models.Product) (string, error) {
	if len(upload) > 0 {
		uri, err := imaging.DataURI(upload)
		if err != nil {
			return "", fmt.Errorf("admin image: %w", err)
		}
		return uri, nil
	}
	if existing.Image != "" {
		return existing.Image, nil
	}
	return catalog.DefaultImage, nil
}

// Delete removes the product once confirmed. Without confirmation nothing
// happens. Every slot holding the product is cleared. It reports whether
// the delete ran.
func (e *Editor) Delete(ctx context.Context, id int64, confirmed bool) bool {
	if !confirmed {
		return false
	}

	e.mu.Lock()
	for slot, editing := range e.slots {
		if editing == id {
			delete(e.slots, slot)
		}
	}
	e.mu.Unlock()

	e.catalog.Remove(ctx, id)
	slog.Info("product deleted", "id", id)
	e.notices(ctx).Notify(notice.Success(notice.ProductDeleted))
	return true
}
