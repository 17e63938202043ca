package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pnsMembership/internal/apperr"
	"pnsMembership/internal/models"
	"pnsMembership/internal/repository"
	"pnsMembership/internal/service"
)

const dateLayout = "2006-01-02"

// MemberView is a member as the dashboard table shows it.
type MemberView struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	NameBangla    string               `json:"nameBangla"`
	Email         string               `json:"email"`
	Phone         string               `json:"phone"`
	Status        string               `json:"status"`
	Sector        string               `json:"sector"`
	Road          string               `json:"road"`
	Plot          string               `json:"plot"`
	PlotSize      string               `json:"plotSize"`
	ProofType     string               `json:"ownershipProofType"`
	ProofFile     *string              `json:"ownershipProofFile"`
	Photo         *string              `json:"photo"`
	PaymentMethod models.PaymentMethod `json:"paymentMethod"`
	Receipt       *string              `json:"paymentReceipt"`
	MembershipFee int                  `json:"membershipFee"`
	JoinedAt      time.Time            `json:"joinedAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

func toMemberView(m *models.Member) MemberView {
	return MemberView{
		ID:            strconv.FormatInt(m.ID, 10),
		Name:          m.OwnerNameEnglish,
		NameBangla:    m.OwnerNameBangla,
		Email:         m.Email,
		Phone:         m.ContactNumber,
		Status:        m.Status.UIStatus(),
		Sector:        m.SectorNumber,
		Road:          m.RoadNumber,
		Plot:          m.PlotNumber,
		PlotSize:      m.PlotSize,
		ProofType:     string(m.OwnershipProofType),
		ProofFile:     m.OwnershipProofFile,
		Photo:         m.OwnerPhoto,
		PaymentMethod: m.PaymentMethod,
		Receipt:       m.PaymentReceipt,
		MembershipFee: m.MembershipFee,
		JoinedAt:      m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type ImportMemberRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Status   string `json:"status"`
	JoinedAt string `json:"joinedAt"`
}

// Memberships serves the collection: GET lists, POST imports.
func (h *Handlers) Memberships(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet, http.MethodPost) {
		return
	}
	if r.Method == http.MethodPost {
		h.importMembers(w, r)
		return
	}

	filter, err := memberFilter(r)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}

	members, err := h.MemberService.List(r.Context(), filter)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}

	views := make([]MemberView, 0, len(members))
	for i := range members {
		views = append(views, toMemberView(&members[i]))
	}
	writeSuccess(w, map[string]interface{}{"members": views}, http.StatusOK)
}

// Membership serves one member by id.
func (h *Handlers) Membership(w http.ResponseWriter, r *http.Request) {
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
		member, err := h.MemberService.Get(r.Context(), id)
		if err != nil {
			h.writeAppError(w, r, err)
			return
		}
		writeSuccess(w, map[string]interface{}{"member": toMemberView(member)}, http.StatusOK)

	case http.MethodPatch:
		var req UpdateStatusRequest
		if err := h.decodeJSON(r, &req, "Invalid status"); err != nil {
			h.writeAppError(w, r, err)
			return
		}
		member, err := h.MemberService.UpdateStatus(r.Context(), id, strings.TrimSpace(req.Status))
		if err != nil {
			h.writeAppError(w, r, err)
			return
		}
		writeSuccess(w, map[string]interface{}{"ok": true, "member": toMemberView(member)}, http.StatusOK)

	case http.MethodDelete:
		if err := h.MemberService.Delete(r.Context(), id); err != nil {
			h.writeAppError(w, r, err)
			return
		}
		h.logger().Infow("member deleted", "member_id", id)
		writeSuccess(w, okResponse{OK: true}, http.StatusOK)
	}
}

func (h *Handlers) MembershipStats(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}

	stats, err := h.StatsService.Members(r.Context())
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}
	writeSuccess(w, stats, http.StatusOK)
}

// importMembers accepts a single object or an array of them.
func (h *Handlers) importMembers(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeAppError(w, r, apperr.Validation("Invalid payload"))
		return
	}

	var items []ImportMemberRequest
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &items)
	} else {
		var item ImportMemberRequest
		if err = json.Unmarshal(trimmed, &item); err == nil {
			items = []ImportMemberRequest{item}
		}
	}
	if err != nil {
		h.writeAppError(w, r, apperr.Validation("Invalid payload"))
		return
	}

	rows := make([]service.ImportRow, 0, len(items))
	for i, item := range items {
		row := service.ImportRow{
			Name:   item.Name,
			Phone:  item.Phone,
			Email:  item.Email,
			Status: item.Status,
		}
		if raw := strings.TrimSpace(item.JoinedAt); raw != "" {
			joined, err := parseDate(raw)
			if err != nil {
				h.writeAppError(w, r, apperr.Validation(fmt.Sprintf("Row %d: Invalid joinedAt", i+1)))
				return
			}
			row.JoinedAt = &joined
		}
		rows = append(rows, row)
	}

	count, err := h.MemberService.Import(r.Context(), rows)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}

	h.logger().Infow("members imported", "count", count)
	writeSuccess(w, map[string]interface{}{"ok": true, "count": count}, http.StatusCreated)
}

// memberFilter reads start and end. The end date includes its whole day.
func memberFilter(r *http.Request) (repository.MemberFilter, error) {
	var filter repository.MemberFilter
	query := r.URL.Query()

	if raw := strings.TrimSpace(query.Get("start")); raw != "" {
		start, err := parseDate(raw)
		if err != nil {
			return filter, apperr.Validation("Invalid start date")
		}
		filter.CreatedFrom = &start
	}

	if raw := strings.TrimSpace(query.Get("end")); raw != "" {
		end, err := parseDate(raw)
		if err != nil {
			return filter, apperr.Validation("Invalid end date")
		}
		end = time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, int(999*time.Millisecond), end.Location())
		filter.CreatedTo = &end
	}

	return filter, nil
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.ParseInLocation(dateLayout, raw, time.UTC)
}
