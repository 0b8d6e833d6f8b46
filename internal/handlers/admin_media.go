package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"hexphyre/internal/middleware"
	"hexphyre/internal/models"
	"hexphyre/internal/render"
)

// maxUploadBytes caps a single media upload at 10 MB.
const maxUploadBytes = 10 << 20

// mediaItem pairs a media record with its public URL for the template.
type mediaItem struct {
	*models.Media
	URL string
}

// MediaPage renders the media library.
func (a *Admin) MediaPage(w http.ResponseWriter, r *http.Request) {
	a.renderMedia(w, r, nil)
}

func (a *Admin) renderMedia(w http.ResponseWriter, r *http.Request, flashes []render.Flash) {
	records, err := a.mediaStore.List()
	if err != nil {
		slog.Error("list media failed", "error", err)
	}

	items := make([]mediaItem, 0, len(records))
	for _, m := range records {
		item := mediaItem{Media: m}
		if a.storageClient != nil {
			item.URL = a.storageClient.FileURL(m.S3Key)
		}
		items = append(items, item)
	}

	a.renderer.Page(w, r, "media", &render.PageData{
		Title:   "Media",
		Section: "media",
		Flashes: flashes,
		Data: map[string]any{
			"Items":             items,
			"StorageConfigured": a.storageClient != nil,
		},
	})
}

// MediaUpload stores an uploaded file in the bucket and records its
// metadata. The stored key is a fresh UUID plus the original extension,
// so uploads can never collide or traverse paths.
func (a *Admin) MediaUpload(w http.ResponseWriter, r *http.Request) {
	if a.storageClient == nil {
		a.renderMedia(w, r, []render.Flash{{Type: "error", Message: "Object storage is not configured."}})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		a.renderMedia(w, r, []render.Flash{{Type: "error", Message: "Upload too large (10 MB limit)."}})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		a.renderMedia(w, r, []render.Flash{{Type: "error", Message: "Choose a file to upload."}})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := fmt.Sprintf("media/%s%s", uuid.NewString(), filepath.Ext(header.Filename))
	if err := a.storageClient.Upload(r.Context(), key, contentType, file, header.Size); err != nil {
		slog.Error("media upload failed", "error", err, "key", key)
		a.renderMedia(w, r, []render.Flash{{Type: "error", Message: "Upload failed."}})
		return
	}

	record := &models.Media{
		OriginalName: header.Filename,
		ContentType:  contentType,
		SizeBytes:    header.Size,
		S3Key:        key,
	}
	if sess := middleware.SessionFromCtx(r.Context()); sess != nil {
		record.UploaderID = sess.UserID
	}

	if _, err := a.mediaStore.Create(record); err != nil {
		slog.Error("record media failed", "error", err, "key", key)
		// Best effort: don't leave an orphaned object behind.
		if delErr := a.storageClient.Delete(r.Context(), key); delErr != nil {
			slog.Error("cleanup orphaned upload failed", "error", delErr, "key", key)
		}
		a.renderMedia(w, r, []render.Flash{{Type: "error", Message: "Upload failed."}})
		return
	}

	http.Redirect(w, r, "/admin/media", http.StatusSeeOther)
}

// MediaDelete removes the object from the bucket and its metadata row.
func (a *Admin) MediaDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	m, err := a.mediaStore.FindByID(id)
	if err != nil {
		slog.Error("find media failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if m == nil {
		http.NotFound(w, r)
		return
	}

	if a.storageClient != nil {
		if err := a.storageClient.Delete(r.Context(), m.S3Key); err != nil {
			// The row still goes; a stray object is recoverable, a
			// dangling row pointing at nothing is not useful.
			slog.Error("delete object failed", "error", err, "key", m.S3Key)
		}
	}

	if err := a.mediaStore.Delete(id); err != nil {
		slog.Error("delete media failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	// HTMX delete refreshes the library in place.
	a.renderMedia(w, r, nil)
}
