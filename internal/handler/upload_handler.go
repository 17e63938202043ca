package handlers

import (
	"net/http"
)

const uploadField = "file"

// UploadImage stores a dashboard image and returns its URL.
func (h *Handlers) UploadImage(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodPost) {
		return
	}

	form, err := parseMultipart(w, r, h.Cfg.Uploads.MaxFileSize, 1)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}
	defer form.cleanup()

	url, err := h.MediaService.UploadImage(r.Context(), form.file(uploadField))
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}

	writeSuccess(w, map[string]interface{}{"ok": true, "url": url}, http.StatusOK)
}

func (h *Handlers) UploadPreview(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodPost) {
		return
	}

	form, err := parseMultipart(w, r, h.Cfg.Uploads.MaxPreviewSize, 1)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}
	defer form.cleanup()

	preview, err := h.MediaService.UploadPreview(r.Context(), form.file(uploadField))
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}

	h.logger().Infow("preview uploaded", "preview_id", preview.ID, "url", preview.FileURL)
	writeSuccess(w, map[string]interface{}{"ok": true, "preview": preview}, http.StatusCreated)
}

// LatestPreview is public.
func (h *Handlers) LatestPreview(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}

	preview, err := h.MediaService.LatestPreview(r.Context())
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}

	writeSuccess(w, map[string]string{"url": preview.FileURL}, http.StatusOK)
}
