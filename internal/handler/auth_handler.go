package handlers

import (
	"mime"
	"net/http"
	"strings"

	"pnsMembership/internal/apperr"
	"pnsMembership/internal/service"
	"pnsMembership/internal/session"
	"pnsMembership/internal/validation"
)

// registrationFiles is the number of file inputs on the registration form.
const registrationFiles = 3

const membershipFeeField = "membershipFee"

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type MemberSummary struct {
	ID     int64  `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

type StaffSummary struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type RegisterResponse struct {
	ID int64 `json:"id"`
}

// Register handles the multipart membership form.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodPost) {
		return
	}

	form, err := parseMultipart(w, r, h.Cfg.Uploads.MaxFileSize, registrationFiles)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}
	defer form.cleanup()

	req := &service.RegistrationRequest{
		Form: validation.RegistrationForm{
			SectorNumber:          form.value(validation.FieldSectorNumber),
			RoadNumber:            form.value(validation.FieldRoadNumber),
			PlotNumber:            form.value(validation.FieldPlotNumber),
			PlotSize:              form.value(validation.FieldPlotSize),
			OwnershipProofType:    form.value(validation.FieldOwnershipProofType),
			OwnerNameEnglish:      form.value(validation.FieldOwnerNameEnglish),
			OwnerNameBangla:       form.value(validation.FieldOwnerNameBangla),
			ContactNumber:         form.value(validation.FieldContactNumber),
			NIDNumber:             form.value(validation.FieldNIDNumber),
			PresentAddress:        form.value(validation.FieldPresentAddress),
			PermanentAddress:      form.value(validation.FieldPermanentAddress),
			Email:                 form.value(validation.FieldEmail),
			PaymentMethod:         form.value(validation.FieldPaymentMethod),
			BkashTransactionID:    form.value(validation.FieldBkashTransactionID),
			BkashAccountNumber:    form.value(validation.FieldBkashAccountNumber),
			BankAccountNumberFrom: form.value(validation.FieldBankAccountNumberFrom),
			AgreeDataUse:          validation.ParseLooseBool(form.value(validation.FieldAgreeDataUse)),
			Password:              form.value(validation.FieldPassword),
		},
		OwnershipProof: form.file(validation.FieldOwnershipProofFile),
		OwnerPhoto:     form.file(validation.FieldOwnerPhoto),
		PaymentReceipt: form.file(validation.FieldPaymentReceipt),
		MembershipFee:  form.value(membershipFeeField),
	}

	member, err := h.RegistrationService.Register(r.Context(), req)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}

	h.logger().Infow("member registered", "member_id", member.ID, "payment_method", member.PaymentMethod)
	writeSuccess(w, RegisterResponse{ID: member.ID}, http.StatusCreated)
}

func (h *Handlers) MemberLogin(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodPost) {
		return
	}

	req, err := h.decodeCredentials(r)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}

	member, token, err := h.AuthService.MemberLogin(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}

	h.MemberSessions.SetCookie(w, r, token)
	if wantsHTML(r) {
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
		return
	}

	writeSuccess(w, map[string]interface{}{
		"ok": true,
		"user": MemberSummary{
			ID:     member.ID,
			Email:  member.Email,
			Name:   member.OwnerNameEnglish,
			Status: string(member.Status),
		},
	}, http.StatusOK)
}

func (h *Handlers) MemberLogout(w http.ResponseWriter, r *http.Request) {
	h.logout(w, r, h.MemberSessions)
}

func (h *Handlers) StaffLogin(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodPost) {
		return
	}

	req, err := h.decodeCredentials(r)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}

	staff, token, err := h.AuthService.StaffLogin(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}

	h.StaffSessions.SetCookie(w, r, token)
	if wantsHTML(r) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	writeSuccess(w, map[string]interface{}{
		"ok": true,
		"admin": StaffSummary{
			ID:    staff.ID,
			Email: staff.Email,
			Name:  staff.Name,
			Role:  string(staff.Role),
		},
	}, http.StatusOK)
}

func (h *Handlers) StaffLogout(w http.ResponseWriter, r *http.Request) {
	h.logout(w, r, h.StaffSessions)
}

// logout always succeeds, with or without a session.
func (h *Handlers) logout(w http.ResponseWriter, r *http.Request, sessions *session.Manager) {
	if !allowMethods(w, r, http.MethodPost) {
		return
	}
	sessions.ClearCookie(w, r)
	writeSuccess(w, okResponse{OK: true}, http.StatusOK)
}

// decodeCredentials accepts a JSON body or an HTML form post.
func (h *Handlers) decodeCredentials(r *http.Request) (*LoginRequest, error) {
	const message = "Email and password are required"

	if isFormPost(r) {
		req := &LoginRequest{
			Email:    r.PostFormValue("email"),
			Password: r.PostFormValue("password"),
		}
		if h.Validate != nil && h.Validate.Struct(req) != nil {
			return nil, apperr.Validation(message)
		}
		return req, nil
	}

	req := &LoginRequest{}
	if err := h.decodeJSON(r, req, message); err != nil {
		return nil, err
	}
	return req, nil
}

func isFormPost(r *http.Request) bool {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return mediaType == "application/x-www-form-urlencoded" || mediaType == "multipart/form-data"
}

// wantsHTML reports whether the client is a browser form rather than fetch.
func wantsHTML(r *http.Request) bool {
	return isFormPost(r) || strings.Contains(r.Header.Get("Accept"), "text/html")
}
