package handlers

import (
	"net/http"
	"time"

	"pnsMembership/internal/models"
	"pnsMembership/internal/service"
)

const postFieldsRequired = "title and content are required"

// PostView is a post as the dashboard editor uses it.
type PostView struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CoverURL  *string   `json:"coverUrl"`
	Published bool      `json:"published"`
	Created   time.Time `json:"created"`
}

func toPostView(p *models.Post) PostView {
	return PostView{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		CoverURL:  p.CoverImage,
		Published: p.Published,
		Created:   p.CreatedAt,
	}
}

type CreatePostRequest struct {
	Title     string `json:"title" validate:"required"`
	Content   string `json:"content" validate:"required"`
	CoverURL  string `json:"coverUrl"`
	Published bool   `json:"published"`
}

type UpdatePostRequest struct {
	Title     *string `json:"title"`
	Content   *string `json:"content"`
	CoverURL  *string `json:"coverUrl"`
	Published *bool   `json:"published"`
}

// Posts serves the post collection.
func (h *Handlers) Posts(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet, http.MethodPost) {
		return
	}

	if r.Method == http.MethodGet {
		posts, err := h.PostService.List(r.Context())
		if err != nil {
			h.writeAppError(w, r, err)
			return
		}
		views := make([]PostView, 0, len(posts))
		for i := range posts {
			views = append(views, toPostView(&posts[i]))
		}
		writeSuccess(w, map[string]interface{}{"posts": views}, http.StatusOK)
		return
	}

	staffID, err := principalID(r)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}

	var req CreatePostRequest
	if err := h.decodeJSON(r, &req, postFieldsRequired); err != nil {
		h.writeAppError(w, r, err)
		return
	}

	post, err := h.PostService.Create(r.Context(), staffID, service.CreatePostRequest{
		Title:     req.Title,
		Content:   req.Content,
		CoverURL:  req.CoverURL,
		Published: req.Published,
	})
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}

	writeSuccess(w, map[string]interface{}{"ok": true, "post": toPostView(post)}, http.StatusCreated)
}

// Post serves one post by id.
func (h *Handlers) Post(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet, http.MethodPatch, http.MethodDelete) {
		return
	}

	id, err := parseID(r)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		post, err := h.PostService.Get(r.Context(), id)
		if err != nil {
			h.writeAppError(w, r, err)
			return
		}
		writeSuccess(w, map[string]interface{}{"post": toPostView(post)}, http.StatusOK)

	case http.MethodPatch:
		var req UpdatePostRequest
		if err := h.decodeJSON(r, &req, postFieldsRequired); err != nil {
			h.writeAppError(w, r, err)
			return
		}
		post, err := h.PostService.Update(r.Context(), id, service.UpdatePostRequest{
			Title:     req.Title,
			Content:   req.Content,
			CoverURL:  req.CoverURL,
			Published: req.Published,
		})
		if err != nil {
			h.writeAppError(w, r, err)
			return
		}
		writeSuccess(w, map[string]interface{}{"ok": true, "post": toPostView(post)}, http.StatusOK)

	case http.MethodDelete:
		if err := h.PostService.Delete(r.Context(), id); err != nil {
			h.writeAppError(w, r, err)
			return
		}
		writeSuccess(w, okResponse{OK: true}, http.StatusOK)
	}
}
