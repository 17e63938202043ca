package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"pnsMembership/internal/apperr"
	"pnsMembership/internal/models"
	"pnsMembership/internal/repository"
	"pnsMembership/internal/validation"
)

type CreateStaffRequest struct {
	Name     string
	Phone    string
	Email    string
	Role     string
	Password string
	Confirm  string
	Title    string
	Address  string
	PhotoURL string
}

// UpdateStaffRequest changes only the non-nil fields. An empty Password keeps the current hash.
type UpdateStaffRequest struct {
	Name     *string
	Phone    *string
	Email    *string
	Role     *string
	Password *string
	Title    *string
	Address  *string
	PhotoURL *string
}

type StaffService interface {
	List(ctx context.Context) ([]models.Staff, error)
	Get(ctx context.Context, id int64) (*models.Staff, error)
	Create(ctx context.Context, req CreateStaffRequest) (*models.Staff, error)
	Update(ctx context.Context, id int64, req UpdateStaffRequest) (*models.Staff, error)
	Delete(ctx context.Context, id int64) error
}

type staffService struct {
	staffRepo repository.StaffRepository
}

func NewStaffService(staffRepo repository.StaffRepository) StaffService {
	return &staffService{staffRepo: staffRepo}
}

func (s *staffService) List(ctx context.Context) ([]models.Staff, error) {
	staff, err := s.staffRepo.List(ctx)
	if err != nil {
		return nil, apperr.Server("Failed to load users", err)
	}
	return staff, nil
}

func (s *staffService) Get(ctx context.Context, id int64) (*models.Staff, error) {
	staff, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Not found")
	}
	return staff, nil
}

func (s *staffService) Create(ctx context.Context, req CreateStaffRequest) (*models.Staff, error) {
	// stored trimmed, as login trims
	password := strings.TrimSpace(req.Password)
	confirm := strings.TrimSpace(req.Confirm)

	form := validation.StaffForm{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Role:     req.Role,
		Password: password,
		Confirm:  confirm,
	}
	if errs := validation.ValidateStaff(form, confirm != ""); !errs.Empty() {
		return nil, apperr.Invalid("Please correct the highlighted fields", errs)
	}

	role, ok := parseRole(req.Role)
	if !ok {
		return nil, apperr.Validation("Invalid role. Use ADMIN, EDITOR or VIEWER.")
	}

	hash, err := hashPassword(password, passwordCost)
	if err != nil {
		return nil, err
	}

	staff := &models.Staff{
		Email:        validation.NormalizeEmail(req.Email),
		PasswordHash: hash,
		Name:         strings.TrimSpace(req.Name),
		Phone:        strings.TrimSpace(req.Phone),
		Title:        optional(strings.TrimSpace(req.Title)),
		Address:      optional(strings.TrimSpace(req.Address)),
		PhotoURL:     optional(strings.TrimSpace(req.PhotoURL)),
		Role:         role,
	}

	if err := s.staffRepo.Create(ctx, staff); err != nil {
		return nil, writeError(err)
	}
	return staff, nil
}

func (s *staffService) Update(ctx context.Context, id int64, req UpdateStaffRequest) (*models.Staff, error) {
	staff, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Not found")
	}

	if req.Role != nil {
		role, ok := parseRole(*req.Role)
		if !ok {
			return nil, apperr.Validation("Invalid role")
		}
		staff.Role = role
	}
	if req.Name != nil {
		staff.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		staff.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Email != nil {
		email := validation.NormalizeEmail(*req.Email)
		if email == "" {
			return nil, apperr.Validation("Email is required")
		}
		staff.Email = email
	}
	if req.Title != nil {
		staff.Title = optional(strings.TrimSpace(*req.Title))
	}
	if req.Address != nil {
		staff.Address = optional(strings.TrimSpace(*req.Address))
	}
	if req.PhotoURL != nil {
		staff.PhotoURL = optional(strings.TrimSpace(*req.PhotoURL))
	}
	if req.Password != nil {
		if password := strings.TrimSpace(*req.Password); password != "" {
			if utf8.RuneCountInString(password) < 6 {
				return nil, apperr.Invalid("Please correct the highlighted fields", map[string]string{
					"password": "Min 6 characters",
				})
			}
			hash, err := hashPassword(password, passwordCost)
			if err != nil {
				return nil, err
			}
			staff.PasswordHash = hash
		}
	}

	if err := s.staffRepo.Update(ctx, staff); err != nil {
		return nil, writeError(err)
	}
	return staff, nil
}

func (s *staffService) Delete(ctx context.Context, id int64) error {
	if err := s.staffRepo.Delete(ctx, id); err != nil {
		return lookupError(err, "Not found")
	}
	return nil
}

func parseRole(raw string) (models.StaffRole, bool) {
	role := models.StaffRole(strings.ToUpper(strings.TrimSpace(raw)))
	return role, role.Valid()
}
