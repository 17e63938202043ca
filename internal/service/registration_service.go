package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"pnsMembership/internal/apperr"
	"pnsMembership/internal/config"
	"pnsMembership/internal/metrics"
	"pnsMembership/internal/models"
	"pnsMembership/internal/repository"
	"pnsMembership/internal/storage"
	"pnsMembership/internal/validation"
)

// Stored file name prefixes for the three registration documents.
const (
	fieldOwnershipProof = "ownershipProof"
	fieldOwnerPhoto     = "ownerPhoto"
	fieldPaymentReceipt = "paymentReceipt"
)

// RegistrationRequest is a parsed registration submission. File fields on
// Form are derived from the uploads and need not be set by the caller.
type RegistrationRequest struct {
	Form           validation.RegistrationForm
	OwnershipProof *storage.Upload
	OwnerPhoto     *storage.Upload
	PaymentReceipt *storage.Upload
	MembershipFee  string
}

type RegistrationService interface {
	Register(ctx context.Context, req *RegistrationRequest) (*models.Member, error)
}

type registrationService struct {
	memberRepo repository.MemberRepository
	files      *fileStore
	cfg        *config.Config
	metrics    *metrics.Registry
}

func NewRegistrationService(memberRepo repository.MemberRepository, files *fileStore, cfg *config.Config, reg *metrics.Registry) RegistrationService {
	return &registrationService{
		memberRepo: memberRepo,
		files:      files,
		cfg:        cfg,
		metrics:    reg,
	}
}

func (s *registrationService) Register(ctx context.Context, req *RegistrationRequest) (*models.Member, error) {
	member, err := s.register(ctx, req)

	outcome := metrics.OutcomeSuccess
	switch {
	case err == nil:
	case apperr.KindOf(err) == apperr.KindValidation:
		outcome = metrics.OutcomeInvalid
	default:
		outcome = metrics.OutcomeFailure
	}
	if s.metrics != nil {
		s.metrics.RegistrationsTotal.WithLabelValues(outcome).Inc()
	}

	return member, err
}

func (s *registrationService) register(ctx context.Context, req *RegistrationRequest) (*models.Member, error) {
	form := req.Form
	form.Email = validation.NormalizeEmail(form.Email)
	form.Password = strings.TrimSpace(form.Password)
	form.PaymentMethod = strings.TrimSpace(form.PaymentMethod)
	form.OwnershipProofType = strings.TrimSpace(form.OwnershipProofType)
	form.OwnershipProofFile = fileInfo(req.OwnershipProof)
	form.OwnerPhoto = fileInfo(req.OwnerPhoto)
	form.PaymentReceipt = fileInfo(req.PaymentReceipt)

	if form.Email == "" {
		return nil, apperr.Validation("Email is required")
	}
	if form.Password == "" {
		return nil, apperr.Validation("Password is required")
	}
	if msg := validation.ValidateRegistrationField(validation.FieldPassword, &form); msg != "" {
		return nil, apperr.Validation(msg)
	}

	if errs := validation.ValidateRegistration(&form); !errs.Empty() {
		return nil, apperr.Invalid("Please correct the highlighted fields", errs)
	}

	proofType := models.OwnershipProofType(form.OwnershipProofType)
	method := models.PaymentMethod(form.PaymentMethod)
	if !proofType.Valid() {
		return nil, apperr.Invalid("Please correct the highlighted fields", map[string]string{
			validation.FieldOwnershipProofType: "Select a valid document type",
		})
	}
	if !method.Valid() {
		return nil, apperr.Invalid("Please correct the highlighted fields", map[string]string{
			validation.FieldPaymentMethod: "Select a valid payment method",
		})
	}

	hash, err := hashPassword(form.Password, passwordCost)
	if err != nil {
		return nil, err
	}

	// Every file is stored before the member row is written.
	proofURL, err := s.store(ctx, req.OwnershipProof, fieldOwnershipProof)
	if err != nil {
		return nil, err
	}
	photoURL, err := s.store(ctx, req.OwnerPhoto, fieldOwnerPhoto)
	if err != nil {
		return nil, err
	}
	receiptURL, err := s.store(ctx, req.PaymentReceipt, fieldPaymentReceipt)
	if err != nil {
		return nil, err
	}

	member := &models.Member{
		Email:                 form.Email,
		PasswordHash:          hash,
		SectorNumber:          strings.TrimSpace(form.SectorNumber),
		RoadNumber:            strings.TrimSpace(form.RoadNumber),
		PlotNumber:            strings.TrimSpace(form.PlotNumber),
		PlotSize:              strings.TrimSpace(form.PlotSize),
		OwnershipProofType:    proofType,
		OwnershipProofFile:    &proofURL,
		OwnerNameEnglish:      strings.TrimSpace(form.OwnerNameEnglish),
		OwnerNameBangla:       strings.TrimSpace(form.OwnerNameBangla),
		ContactNumber:         strings.TrimSpace(form.ContactNumber),
		NIDNumber:             strings.TrimSpace(form.NIDNumber),
		PresentAddress:        strings.TrimSpace(form.PresentAddress),
		PermanentAddress:      strings.TrimSpace(form.PermanentAddress),
		OwnerPhoto:            &photoURL,
		PaymentMethod:         method,
		BkashTransactionID:    optional(strings.TrimSpace(form.BkashTransactionID)),
		BkashAccountNumber:    optional(strings.TrimSpace(form.BkashAccountNumber)),
		BankAccountNumberFrom: optional(strings.TrimSpace(form.BankAccountNumberFrom)),
		PaymentReceipt:        &receiptURL,
		MembershipFee:         s.membershipFee(req.MembershipFee),
		AgreeDataUse:          form.AgreeDataUse,
		Status:                models.StatusPending,
	}

	if err := s.memberRepo.Create(ctx, member); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Conflict("Email already exists")
		}
		return nil, apperr.Server("Server error", err)
	}

	return member, nil
}

func (s *registrationService) store(ctx context.Context, upload *storage.Upload, field string) (string, error) {
	upload.Field = field
	return s.files.save(ctx, upload)
}

// membershipFee honours a positive integer from the form and falls back to the configured fee.
func (s *registrationService) membershipFee(raw string) int {
	fallback := s.cfg.MembershipFee
	if fallback <= 0 {
		fallback = models.DefaultMembershipFee
	}

	fee, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || fee <= 0 {
		return fallback
	}
	return fee
}

func fileInfo(upload *storage.Upload) *validation.FileInfo {
	if upload == nil || upload.TempPath == "" {
		return nil
	}
	return &validation.FileInfo{Size: upload.Size, ContentType: upload.ContentType}
}
