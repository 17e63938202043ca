package service

import (
	"context"
	"errors"
	"strings"

	"pnsMembership/internal/apperr"
	"pnsMembership/internal/metrics"
	"pnsMembership/internal/models"
	"pnsMembership/internal/repository"
	"pnsMembership/internal/session"
	"pnsMembership/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

const invalidCredentials = "Invalid email or password"

type AuthService interface {
	MemberLogin(ctx context.Context, email, password string) (*models.Member, string, error)
	StaffLogin(ctx context.Context, email, password string) (*models.Staff, string, error)
}

type authService struct {
	memberRepo repository.MemberRepository
	staffRepo  repository.StaffRepository
	sessions   Sessions
	metrics    *metrics.Registry
}

func NewAuthService(memberRepo repository.MemberRepository, staffRepo repository.StaffRepository, sessions Sessions, reg *metrics.Registry) AuthService {
	return &authService{
		memberRepo: memberRepo,
		staffRepo:  staffRepo,
		sessions:   sessions,
		metrics:    reg,
	}
}

func (s *authService) MemberLogin(ctx context.Context, email, password string) (*models.Member, string, error) {
	email, password, err := credentials(email, password)
	if err != nil {
		s.count(session.KindMember, metrics.OutcomeInvalid)
		return nil, "", err
	}

	member, err := s.memberRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", s.lookupFailed(session.KindMember, err)
	}
	if !passwordMatches(member.PasswordHash, password) {
		s.count(session.KindMember, metrics.OutcomeFailure)
		return nil, "", apperr.Auth(invalidCredentials)
	}

	token, err := s.sessions.Member.Issue(member.ID, member.Email, "")
	if err != nil {
		return nil, "", apperr.Server("Server error", err)
	}

	s.count(session.KindMember, metrics.OutcomeSuccess)
	return member, token, nil
}

func (s *authService) StaffLogin(ctx context.Context, email, password string) (*models.Staff, string, error) {
	email, password, err := credentials(email, password)
	if err != nil {
		s.count(session.KindStaff, metrics.OutcomeInvalid)
		return nil, "", err
	}

	staff, err := s.staffRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", s.lookupFailed(session.KindStaff, err)
	}
	if !passwordMatches(staff.PasswordHash, password) {
		s.count(session.KindStaff, metrics.OutcomeFailure)
		return nil, "", apperr.Auth(invalidCredentials)
	}

	token, err := s.sessions.Staff.Issue(staff.ID, staff.Email, string(staff.Role))
	if err != nil {
		return nil, "", apperr.Server("Server error", err)
	}

	s.count(session.KindStaff, metrics.OutcomeSuccess)
	return staff, token, nil
}

func credentials(email, password string) (string, string, error) {
	email = validation.NormalizeEmail(email)
	password = strings.TrimSpace(password)
	if email == "" || password == "" {
		return "", "", apperr.Validation("Email and password are required")
	}
	return email, password, nil
}

// lookupFailed hides a missing account behind the same error as a wrong password.
func (s *authService) lookupFailed(kind session.Kind, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		s.count(kind, metrics.OutcomeFailure)
		return apperr.Auth(invalidCredentials)
	}
	return apperr.Server("Server error", err)
}

func passwordMatches(hash, password string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (s *authService) count(kind session.Kind, outcome string) {
	if s.metrics != nil {
		s.metrics.LoginsTotal.WithLabelValues(string(kind), outcome).Inc()
	}
}
