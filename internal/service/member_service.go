package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pnsMembership/internal/apperr"
	"pnsMembership/internal/config"
	"pnsMembership/internal/models"
	"pnsMembership/internal/repository"
	"pnsMembership/internal/validation"

	"github.com/google/uuid"
)

// Placeholder values for members created by import rather than registration.
const (
	importPlaceholder  = "NA"
	importDefaultName  = "Unnamed"
	importPasswordCost = 8
)

// ImportRow is one member from the dashboard import.
type ImportRow struct {
	Name     string
	Phone    string
	Email    string
	Status   string
	JoinedAt *time.Time
}

type MemberService interface {
	List(ctx context.Context, filter repository.MemberFilter) ([]models.Member, error)
	Get(ctx context.Context, id int64) (*models.Member, error)
	UpdateStatus(ctx context.Context, id int64, uiStatus string) (*models.Member, error)
	Delete(ctx context.Context, id int64) error
	Import(ctx context.Context, rows []ImportRow) (int, error)
}

type memberService struct {
	memberRepo repository.MemberRepository
	cfg        *config.Config
}

func NewMemberService(memberRepo repository.MemberRepository, cfg *config.Config) MemberService {
	return &memberService{memberRepo: memberRepo, cfg: cfg}
}

func (s *memberService) List(ctx context.Context, filter repository.MemberFilter) ([]models.Member, error) {
	members, err := s.memberRepo.List(ctx, filter)
	if err != nil {
		return nil, apperr.Server("Failed to load members", err)
	}
	return members, nil
}

func (s *memberService) Get(ctx context.Context, id int64) (*models.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Not found")
	}
	return member, nil
}

func (s *memberService) UpdateStatus(ctx context.Context, id int64, uiStatus string) (*models.Member, error) {
	status, ok := models.StatusFromUI(uiStatus)
	if !ok {
		return nil, apperr.Validation("Invalid status")
	}

	member, err := s.memberRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, lookupError(err, "Not found")
	}
	return member, nil
}

func (s *memberService) Delete(ctx context.Context, id int64) error {
	if err := s.memberRepo.DeleteWithPosts(ctx, id); err != nil {
		return lookupError(err, "Not found")
	}
	return nil
}

// Import creates placeholder members for every row in one transaction.
func (s *memberService) Import(ctx context.Context, rows []ImportRow) (int, error) {
	if len(rows) == 0 {
		return 0, apperr.Validation("Invalid payload")
	}

	members := make([]*models.Member, 0, len(rows))
	for i, row := range rows {
		member, err := s.importedMember(row)
		if err != nil {
			if apperr.KindOf(err) != apperr.KindValidation {
				return 0, err
			}
			return 0, apperr.Validation(fmt.Sprintf("Row %d: %s", i+1, apperr.MessageOf(err)))
		}
		members = append(members, member)
	}

	if err := s.memberRepo.CreateMany(ctx, members); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return 0, apperr.Conflict("Email already exists")
		}
		return 0, apperr.Server("Failed to import members", err)
	}

	return len(members), nil
}

func (s *memberService) importedMember(row ImportRow) (*models.Member, error) {
	email := validation.NormalizeEmail(row.Email)
	if email == "" {
		email = fmt.Sprintf("imported+%s@example.com", uuid.NewString())
	} else if !validation.IsEmail(email) {
		return nil, apperr.Validation("Invalid email")
	}

	uiStatus := strings.TrimSpace(row.Status)
	if uiStatus == "" {
		uiStatus = models.UIStatusActive
	}
	status, ok := models.StatusFromUI(uiStatus)
	if !ok {
		status = models.StatusApproved
	}

	name := strings.TrimSpace(row.Name)
	if name == "" {
		name = importDefaultName
	}

	hash, err := hashPassword(uuid.NewString(), importPasswordCost)
	if err != nil {
		return nil, err
	}

	fee := s.cfg.MembershipFee
	if fee <= 0 {
		fee = models.DefaultMembershipFee
	}

	member := &models.Member{
		Email:              email,
		PasswordHash:       hash,
		SectorNumber:       importPlaceholder,
		RoadNumber:         importPlaceholder,
		PlotNumber:         importPlaceholder,
		PlotSize:           importPlaceholder,
		OwnershipProofType: models.ProofLDTaxReceipt,
		OwnerNameEnglish:   name,
		OwnerNameBangla:    name,
		ContactNumber:      strings.TrimSpace(row.Phone),
		NIDNumber:          importPlaceholder,
		PresentAddress:     importPlaceholder,
		PermanentAddress:   importPlaceholder,
		PaymentMethod:      models.PaymentBkash,
		MembershipFee:      fee,
		Status:             status,
	}
	if row.JoinedAt != nil {
		member.CreatedAt = row.JoinedAt.UTC()
	}

	return member, nil
}
