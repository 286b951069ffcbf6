// Package webui serves the server-rendered pages of the demo app
// through the same routing engine the JSON API uses, proving the two
// routers are one parameterized dispatcher.
package webui

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/armature-dev/armature/crud"
	"github.com/armature-dev/armature/crypt"
	"github.com/armature-dev/armature/router"
	"github.com/armature-dev/armature/view"
)

// Handler renders note pages. cipher may be nil, which disables share
// links.
type Handler struct {
	notes  *crud.Model
	views  *view.Renderer
	cipher *crypt.Cipher
}

// New returns a Handler over the notes model.
func New(notes *crud.Model, views *view.Renderer, cipher *crypt.Cipher) *Handler {
	return &Handler{notes: notes, views: views, cipher: cipher}
}

// Register adds the page routes to t. The notes pages live in a route
// group; the share resolver sits outside it.
func (h *Handler) Register(t *router.Table) {
	t.Get("", h.Index)
	t.Group("notes", func(t *router.Table) {
		t.Get("", h.Index)
		t.Get("{id}", h.Show)
	})
	t.Get("share", h.Resolve)
}

// Index renders the note listing.
func (h *Handler) Index(c *router.Context) {
	records, err := h.notes.FindAll(c.Ctx)
	if err != nil {
		http.Error(c.Writer, "failed to load notes", http.StatusInternalServerError)
		return
	}
	h.views.HTML(c.Writer, "notes/index", view.Scope{"Notes": records}, "main")
}

// Show renders a single note, with an encrypted share link when the
// cipher is configured.
func (h *Handler) Show(c *router.Context) {
	id := c.Param("id")
	record, err := h.notes.FindByID(c.Ctx, id)
	if errors.Is(err, crud.ErrNotFound) {
		http.Error(c.Writer, "note not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(c.Writer, "failed to load note", http.StatusInternalServerError)
		return
	}

	scope := view.Scope{"Note": record}
	if h.cipher != nil {
		token := h.cipher.Encrypt([]byte(id))
		scope["ShareURL"] = "/share?t=" + url.QueryEscape(token)
	}
	h.views.HTML(c.Writer, "notes/show", scope, "main")
}

// Resolve decrypts a share token from the query string and renders the
// note it points at. Bad or forged tokens are indistinguishable from
// missing notes.
func (h *Handler) Resolve(c *router.Context) {
	if h.cipher == nil {
		http.Error(c.Writer, "sharing is not enabled", http.StatusNotFound)
		return
	}
	q, err := url.ParseQuery(c.Request.RawQuery)
	if err != nil {
		http.Error(c.Writer, "invalid share link", http.StatusBadRequest)
		return
	}
	id, err := h.cipher.Decrypt(q.Get("t"))
	if err != nil {
		http.Error(c.Writer, "note not found", http.StatusNotFound)
		return
	}

	record, err := h.notes.FindByID(c.Ctx, string(id))
	if errors.Is(err, crud.ErrNotFound) {
		http.Error(c.Writer, "note not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(c.Writer, "failed to load note", http.StatusInternalServerError)
		return
	}

	scope := view.Scope{
		"Note":      record,
		"Permalink": "/" + router.URL("notes/{id}", map[string]string{"id": string(id)}),
	}
	h.views.HTML(c.Writer, "notes/show", scope, "main")
}
