package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"pnsMembership/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

type Kind string

const (
	KindMember Kind = "member"
	KindStaff  Kind = "staff"
)

const (
	MemberCookie = "pns_token"
	StaffCookie  = "admin_token"
)

// ErrUnauthorized covers every verification failure; callers never learn which check failed.
var ErrUnauthorized = errors.New("unauthorized")

var localHost = regexp.MustCompile(`^(localhost|127\.0\.0\.1)(:\d+)?$`)

type Claims struct {
	Kind  Kind   `json:"kind"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Principal is the verified identity behind a request.
type Principal struct {
	ID    int64
	Email string
	Role  string
	Kind  Kind
}

// Manager issues and verifies one token family.
type Manager struct {
	kind       Kind
	cookieName string
	secret     []byte
	ttl        time.Duration
	production bool
	now        func() time.Time
}

func newManager(kind Kind, cookieName, secret string, cfg *config.Config) *Manager {
	return &Manager{
		kind:       kind,
		cookieName: cookieName,
		secret:     []byte(secret),
		ttl:        cfg.Session.Duration,
		production: cfg.IsProduction(),
		now:        time.Now,
	}
}

func NewMemberManager(cfg *config.Config) *Manager {
	return newManager(KindMember, MemberCookie, cfg.Session.MemberSecret, cfg)
}

func NewStaffManager(cfg *config.Config) *Manager {
	return newManager(KindStaff, StaffCookie, cfg.Session.StaffSecret, cfg)
}

func (m *Manager) Kind() Kind {
	return m.kind
}

func (m *Manager) CookieName() string {
	return m.cookieName
}

// Issue signs a token for the subject with the configured lifetime.
func (m *Manager) Issue(id int64, email, role string) (string, error) {
	now := m.now()
	claims := &Claims{
		Kind:  m.kind,
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(id, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", m.kind, err)
	}
	return signed, nil
}

// Verify checks signature, expiry and that the token belongs to this family.
func (m *Manager) Verify(tokenString string) (*Principal, error) {
	if tokenString == "" {
		return nil, ErrUnauthorized
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, ErrUnauthorized
	}

	if claims.Kind != m.kind {
		return nil, ErrUnauthorized
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return nil, ErrUnauthorized
	}

	return &Principal{ID: id, Email: claims.Email, Role: claims.Role, Kind: claims.Kind}, nil
}

// FromRequest verifies the family's cookie on r.
func (m *Manager) FromRequest(r *http.Request) (*Principal, error) {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil {
		return nil, ErrUnauthorized
	}
	return m.Verify(cookie.Value)
}

func (m *Manager) SetCookie(w http.ResponseWriter, r *http.Request, token string) {
	http.SetCookie(w, m.cookie(r, token, int(m.ttl.Seconds())))
}

// ClearCookie expires the cookie with the same attributes it was set with.
func (m *Manager) ClearCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, m.cookie(r, "", -1))
}

func (m *Manager) cookie(r *http.Request, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     m.cookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   m.production && !localHost.MatchString(r.Host),
		MaxAge:   maxAge,
	}
}

type contextKey struct{}

func NewContext(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

func FromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(contextKey{}).(*Principal)
	return p, ok && p != nil
}
