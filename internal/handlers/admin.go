// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"zebaish/internal/admin"
	"zebaish/internal/imaging"
	"zebaish/internal/middleware"
	"zebaish/internal/view"
)

// imageError is shown when an upload cannot be turned into a product image.
const imageError = "must be a JPEG, PNG, GIF or WebP image up to 5 MB"

// Admin groups the catalog editor handlers.
type Admin struct {
	*Site
	editor *admin.Editor
}

// NewAdmin creates the admin handler group.
func NewAdmin(site *Site, editor *admin.Editor) *Admin {
	return &Admin{Site: site, editor: editor}
}

// List renders the product list, filtered by ?q= over name and category.
func (a *Admin) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	data := a.pageData(r, a.openCart(r), "Products", "admin")
	data.Data["Query"] = q
	data.Data["Rows"] = view.AdminList(a.Catalog.Products(), q)
	a.Renderer.Page(w, r, "admin_list", data)
}

// New clears the session's editing slot and renders an empty product form.
func (a *Admin) New(w http.ResponseWriter, r *http.Request) {
	a.editor.Reset(editSlot(r))
	a.renderForm(w, r, admin.Form{Stock: admin.DefaultStock}, nil, http.StatusOK)
}

// Edit puts {id} in the session's editing slot and renders its form. The
// form carries the id, so the submit replaces exactly this product.
func (a *Admin) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		a.notFound(w, r, "That product does not exist.")
		return
	}
	form, ok := a.editor.StartEdit(editSlot(r), id)
	if !ok {
		a.notFound(w, r, "That product does not exist.")
		return
	}
	a.renderForm(w, r, form, nil, http.StatusOK)
}

// Submit saves the product form. A form with an id replaces that product;
// without one a new product is created.
func (a *Admin) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseMultipartForm(imaging.MaxUploadSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		a.renderForm(w, r, admin.ParseForm(r.PostForm), map[string]string{"image": imageError}, http.StatusRequestEntityTooLarge)
		return
	}
	form := admin.ParseForm(r.PostForm)

	upload, err := readUpload(r)
	if err != nil {
		a.renderForm(w, r, form, map[string]string{"image": imageError}, http.StatusUnprocessableEntity)
		return
	}

	saved, err := a.editor.Submit(ctx, editSlot(r), form, upload)
	if err != nil {
		var verr *admin.ValidationError
		fields := map[string]string{"image": imageError}
		if errors.As(err, &verr) {
			fields = verr.Fields
		} else {
			slog.Warn("product image rejected", "error", err)
		}
		a.renderForm(w, r, form, fields, http.StatusUnprocessableEntity)
		return
	}

	if a.Grid != nil {
		a.Grid.Invalidate(ctx, "product saved")
	}
	slog.Info("admin saved product", "id", saved.ID)
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// Reset clears the session's editing slot and returns to an empty form.
func (a *Admin) Reset(w http.ResponseWriter, r *http.Request) {
	a.editor.Reset(editSlot(r))
	http.Redirect(w, r, "/admin/products/new", http.StatusSeeOther)
}

// ConfirmDelete asks for confirmation before deleting {id}.
func (a *Admin) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		a.notFound(w, r, "That product does not exist.")
		return
	}
	p, ok := a.Catalog.Find(id)
	if !ok {
		a.notFound(w, r, "That product does not exist.")
		return
	}

	data := a.pageData(r, a.openCart(r), "Delete product", "admin")
	data.Data["Product"] = p
	a.Renderer.Page(w, r, "admin_delete", data)
}

// Delete removes {id} when the form carries confirm=yes.
func (a *Admin) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	if a.editor.Delete(r.Context(), id, r.PostFormValue("confirm") == "yes") && a.Grid != nil {
		a.Grid.Invalidate(r.Context(), "product deleted")
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (a *Admin) renderForm(w http.ResponseWriter, r *http.Request, form admin.Form, errs map[string]string, status int) {
	editing := form.ID != 0
	if editing && form.Image == "" {
		if p, ok := a.Catalog.Find(form.ID); ok {
			form.Image = p.Image
		}
	}

	title := "Add product"
	if editing {
		title = "Edit product"
	}
	data := a.pageData(r, a.openCart(r), title, "admin")
	data.Status = status
	data.Data["Editing"] = editing
	data.Data["Form"] = form
	data.Data["Errors"] = errs
	a.Renderer.Page(w, r, "admin_form", data)
}

// editSlot names the editing slot of the request's session.
func editSlot(r *http.Request) string {
	if sess := middleware.ShopperFromCtx(r.Context()); sess != nil {
		return sess.ID
	}
	return ""
}

// readUpload returns the bytes of the "image" file field, or nil when no
// file was sent.
func readUpload(r *http.Request) ([]byte, error) {
	file, _, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, imaging.MaxUploadSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > imaging.MaxUploadSize {
		return nil, errors.New("upload too large")
	}
	return data, nil
}
