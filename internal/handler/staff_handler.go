package handlers

import (
	"net/http"

	"pnsMembership/internal/service"
)

type CreateStaffRequest struct {
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Confirm  string `json:"confirm"`
	Title    string `json:"title"`
	Address  string `json:"address"`
	PhotoURL string `json:"photoUrl"`
}

type UpdateStaffRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Role     *string `json:"role"`
	Password *string `json:"password"`
	Title    *string `json:"title"`
	Address  *string `json:"address"`
	PhotoURL *string `json:"photoUrl"`
}

// StaffUsers serves the staff collection.
func (h *Handlers) StaffUsers(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet, http.MethodPost) {
		return
	}

	if r.Method == http.MethodGet {
		users, err := h.StaffService.List(r.Context())
		if err != nil {
			h.writeAppError(w, r, err)
			return
		}
		writeSuccess(w, map[string]interface{}{"users": users}, http.StatusOK)
		return
	}

	var req CreateStaffRequest
	if err := h.decodeJSON(r, &req, "Please correct the highlighted fields"); err != nil {
		h.writeAppError(w, r, err)
		return
	}

	staff, err := h.StaffService.Create(r.Context(), service.CreateStaffRequest{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Role:     req.Role,
		Password: req.Password,
		Confirm:  req.Confirm,
		Title:    req.Title,
		Address:  req.Address,
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}

	h.logger().Infow("staff account created", "staff_id", staff.ID, "role", staff.Role)
	writeSuccess(w, map[string]interface{}{"ok": true, "admin": staff}, http.StatusCreated)
}

// StaffUser serves one staff account by id.
func (h *Handlers) StaffUser(w http.ResponseWriter, r *http.Request) {
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
		staff, err := h.StaffService.Get(r.Context(), id)
		if err != nil {
			h.writeAppError(w, r, err)
			return
		}
		writeSuccess(w, map[string]interface{}{"user": staff}, http.StatusOK)

	case http.MethodPatch:
		var req UpdateStaffRequest
		if err := h.decodeJSON(r, &req, "Please correct the highlighted fields"); err != nil {
			h.writeAppError(w, r, err)
			return
		}
		staff, err := h.StaffService.Update(r.Context(), id, service.UpdateStaffRequest{
			Name:     req.Name,
			Phone:    req.Phone,
			Email:    req.Email,
			Role:     req.Role,
			Password: req.Password,
			Title:    req.Title,
			Address:  req.Address,
			PhotoURL: req.PhotoURL,
		})
		if err != nil {
			h.writeAppError(w, r, err)
			return
		}
		writeSuccess(w, map[string]interface{}{"ok": true, "user": staff}, http.StatusOK)

	case http.MethodDelete:
		if err := h.StaffService.Delete(r.Context(), id); err != nil {
			h.writeAppError(w, r, err)
			return
		}
		writeSuccess(w, okResponse{OK: true}, http.StatusOK)
	}
}
