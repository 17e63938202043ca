package handlers

import (
	"net/http"

	"pnsMembership/internal/apperr"
	"pnsMembership/internal/session"
)

const photoField = "photo"

// principalID returns the session subject put on the context by the auth middleware.
func principalID(r *http.Request) (int64, error) {
	principal, ok := session.FromContext(r.Context())
	if !ok {
		return 0, apperr.Auth("Unauthorized")
	}
	return principal.ID, nil
}

func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}

	memberID, err := principalID(r)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}

	member, err := h.ProfileService.GetProfile(r.Context(), memberID)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}

	writeSuccess(w, map[string]interface{}{"ok": true, "profile": member}, http.StatusOK)
}

func (h *Handlers) ChangePhoto(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodPost) {
		return
	}

	memberID, err := principalID(r)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}

	form, err := parseMultipart(w, r, h.Cfg.Uploads.MaxFileSize, 1)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}
	defer form.cleanup()

	url, err := h.ProfileService.ChangePhoto(r.Context(), memberID, form.file(photoField))
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}

	writeSuccess(w, map[string]interface{}{"ok": true, "url": url}, http.StatusOK)
}
