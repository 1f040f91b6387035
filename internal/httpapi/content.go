package httpapi

import (
	"net/http"
	"strconv"

	"github.com/chethancinemas/cinema-admin/internal/content"
	"github.com/chethancinemas/cinema-admin/internal/models"
)

// Uploads buffer at most this much in memory before spilling to disk.
const maxMultipartMemory = 8 << 20

func (a *API) handleList(w http.ResponseWriter, r *http.Request) {
	ns := r.PathValue("ns")
	if !models.ValidNamespace(ns) {
		writeError(w, http.StatusNotFound, "not found", loginRoute)
		return
	}

	q := r.URL.Query()
	filter := content.Filter{
		Query:  q.Get("q"),
		Status: q.Get("status"),
		Year:   q.Get("year"),
	}

	items, err := a.content.List(r.Context(), ns, filter)
	if err != nil {
		a.writeFailure(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"years": content.UniqueYears(items),
	})
}

func (a *API) handleCreate(w http.ResponseWriter, r *http.Request) {
	ns := r.PathValue("ns")
	if !models.ValidNamespace(ns) {
		writeError(w, http.StatusNotFound, "not found", loginRoute)
		return
	}

	in, file, cleanup, err := a.parseItemForm(r)
	if err != nil {
		a.writeFailure(w, r, err)
		return
	}
	defer cleanup()

	item, err := a.content.Create(r.Context(), ns, content.CreateInput{
		Title: in.Title,
		Year:  in.Year,
		Link:  in.Link,
		File:  file,
	}, a.progressLogger(ns))
	if err != nil {
		a.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (a *API) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ns := r.PathValue("ns")
	if !models.ValidNamespace(ns) {
		writeError(w, http.StatusNotFound, "not found", loginRoute)
		return
	}

	in, file, cleanup, err := a.parseItemForm(r)
	if err != nil {
		a.writeFailure(w, r, err)
		return
	}
	defer cleanup()

	item, err := a.content.Update(r.Context(), ns, r.PathValue("id"), content.UpdateInput{
		Title: in.Title,
		Year:  in.Year,
		Link:  in.Link,
		File:  file,
	}, a.progressLogger(ns))
	if err != nil {
		a.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (a *API) handleToggle(w http.ResponseWriter, r *http.Request) {
	ns := r.PathValue("ns")
	if !models.ValidNamespace(ns) {
		writeError(w, http.StatusNotFound, "not found", loginRoute)
		return
	}

	active, err := a.content.Toggle(r.Context(), ns, r.PathValue("id"))
	if err != nil {
		a.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"isActive": active})
}

func (a *API) handleDelete(w http.ResponseWriter, r *http.Request) {
	ns := r.PathValue("ns")
	if !models.ValidNamespace(ns) {
		writeError(w, http.StatusNotFound, "not found", loginRoute)
		return
	}

	if err := a.content.Delete(r.Context(), ns, r.PathValue("id")); err != nil {
		a.writeFailure(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type itemForm struct {
	Title string
	Year  int
	Link  string
}

// parseItemForm reads the multipart create/edit form. The returned
// cleanup closes the uploaded file and must always be called.
func (a *API) parseItemForm(r *http.Request) (itemForm, *content.FileInput, func(), error) {
	noop := func() {}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return itemForm{}, nil, noop, content.ErrValidation
	}

	form := itemForm{
		Title: r.FormValue("title"),
		Link:  r.FormValue("link"),
	}
	if y := r.FormValue("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			return itemForm{}, nil, noop, content.ErrValidation
		}
		form.Year = year
	}

	f, header, err := r.FormFile("image")
	if err == http.ErrMissingFile {
		return form, nil, noop, nil
	}
	if err != nil {
		return itemForm{}, nil, noop, content.ErrValidation
	}

	file := &content.FileInput{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Reader:      f,
	}
	return form, file, func() { _ = f.Close() }, nil
}

func (a *API) progressLogger(ns string) func(pct int) {
	return func(pct int) {
		a.log.Debug("upload progress", "namespace", ns, "pct", pct)
	}
}
