package handlers

import (
	"context"
	"reflect"
	"strings"

	"pnsMembership/internal/config"
	"pnsMembership/internal/service"
	"pnsMembership/internal/session"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// HealthChecker reports whether the database answers.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type Handlers struct {
	RegistrationService service.RegistrationService
	AuthService         service.AuthService
	ProfileService      service.ProfileService
	MemberService       service.MemberService
	StaffService        service.StaffService
	PostService         service.PostService
	MediaService        service.MediaService
	StatsService        service.StatsService
	MemberSessions      *session.Manager
	StaffSessions       *session.Manager
	DB                  HealthChecker
	Cfg                 *config.Config
	Logger              *zap.SugaredLogger
	Validate            *validator.Validate
}

func NewHandlers(services *service.Service, sessions service.Sessions, db HealthChecker, cfg *config.Config, logger *zap.SugaredLogger) *Handlers {
	return &Handlers{
		RegistrationService: services.Registration,
		AuthService:         services.Auth,
		ProfileService:      services.Profile,
		MemberService:       services.Member,
		StaffService:        services.Staff,
		PostService:         services.Post,
		MediaService:        services.Media,
		StatsService:        services.Stats,
		MemberSessions:      sessions.Member,
		StaffSessions:       sessions.Staff,
		DB:                  db,
		Cfg:                 cfg,
		Logger:              logger,
		Validate:            NewValidator(),
	}
}

// NewValidator reports struct fields under their JSON names.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	return v
}

func (h *Handlers) logger() *zap.SugaredLogger {
	if h.Logger == nil {
		return zap.NewNop().Sugar()
	}
	return h.Logger
}
