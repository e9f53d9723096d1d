package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/rebound/internal/auth"
	"github.com/alexanderramin/rebound/internal/contract"
	"github.com/alexanderramin/rebound/internal/domain"
	rmail "github.com/alexanderramin/rebound/internal/mail"
	"github.com/alexanderramin/rebound/internal/repository"
)

type authService struct {
	users      repository.UserRepo
	tokens     *auth.Manager
	mailer     rmail.Mailer
	bcryptCost int
	resetURL   string
	observer   UseCaseObserver
	now        func() time.Time
}

// NewAuthService wires account use cases. resetURL is the page the emailed
// reset token is appended to.
func NewAuthService(
	users repository.UserRepo,
	tokens *auth.Manager,
	mailer rmail.Mailer,
	bcryptCost int,
	resetURL string,
	observers ...UseCaseObserver,
) AuthService {
	return &authService{
		users:      users,
		tokens:     tokens,
		mailer:     mailer,
		bcryptCost: bcryptCost,
		resetURL:   resetURL,
		observer:   useCaseObserverOrNoop(observers),
		now:        systemNow,
	}
}

func (s *authService) Register(ctx context.Context, req contract.RegisterRequest) (resp *contract.AuthResponse, err error) {
	startedAt := s.now()
	fields := map[string]any{}
	defer func() { observe(ctx, s.observer, "register", startedAt, fields, err) }()

	if err = validateRequest(req); err != nil {
		return nil, err
	}

	now := s.now()
	u := &domain.User{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Email:     domain.NormalizeEmail(req.Email),
		Role:      domain.RoleStudent,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err = u.SetPassword(req.Password, s.bcryptCost); err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	if err = s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("user already exists: %w", ErrConflict)
		}
		return nil, err
	}
	fields["user_id"] = u.ID

	return s.session(u)
}

func (s *authService) Login(ctx context.Context, req contract.LoginRequest) (resp *contract.AuthResponse, err error) {
	startedAt := s.now()
	fields := map[string]any{}
	defer func() { observe(ctx, s.observer, "login", startedAt, fields, err) }()

	if err = validateRequest(req); err != nil {
		return nil, err
	}

	u, err := s.users.GetByEmail(ctx, domain.NormalizeEmail(req.Email))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if u.CheckPassword(req.Password) != nil {
		return nil, ErrInvalidCredentials
	}
	fields["user_id"] = u.ID

	return s.session(u)
}

func (s *authService) session(u *domain.User) (*contract.AuthResponse, error) {
	token, err := s.tokens.IssueSession(u, s.now())
	if err != nil {
		return nil, err
	}
	return &contract.AuthResponse{Token: token, User: contract.NewUserView(u)}, nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.tokens.Parse(token, auth.PurposeSession)
	if err != nil {
		return nil, err
	}
	u, err := s.users.GetByID(ctx, claims.UserID())
	if errors.Is(err, repository.ErrNotFound) {
		return nil, auth.ErrInvalidToken
	}
	return u, err
}

func (s *authService) UpdateProfile(ctx context.Context, userID string, req contract.ProfileRequest) (*domain.User, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	u.Apply(domain.UserPatch{Name: req.Name, Email: req.Email}, s.now())

	if err := s.users.Update(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("email already in use: %w", ErrConflict)
		}
		return nil, err
	}
	return u, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID string, req contract.ChangePasswordRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u.CheckPassword(req.CurrentPassword) != nil {
		return ErrInvalidCredentials
	}
	return s.setPassword(ctx, u, req.NewPassword)
}

func (s *authService) setPassword(ctx context.Context, u *domain.User, pwd string) error {
	if err := u.SetPassword(pwd, s.bcryptCost); err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	return s.users.UpdatePassword(ctx, u.ID, u.PasswordHash, s.now())
}

func (s *authService) RequestPasswordReset(ctx context.Context, req contract.ForgotPasswordRequest) (err error) {
	startedAt := s.now()
	fields := map[string]any{}
	defer func() { observe(ctx, s.observer, "request-password-reset", startedAt, fields, err) }()

	if err = validateRequest(req); err != nil {
		return err
	}

	u, err := s.users.GetByEmail(ctx, domain.NormalizeEmail(req.Email))
	if errors.Is(err, repository.ErrNotFound) {
		fields["known"] = false
		return nil
	}
	if err != nil {
		return err
	}
	fields["known"] = true
	fields["user_id"] = u.ID

	token, err := s.tokens.IssueReset(u, s.now())
	if err != nil {
		return err
	}

	return s.mailer.Send(ctx, rmail.Message{
		To:      mail.Address{Name: u.Name, Address: u.Email},
		Subject: "Reset your password",
		Text: fmt.Sprintf("Hi %s,\n\nUse the link below to choose a new password. It expires in one hour.\n\n%s\n\nIf you did not ask for this, ignore this email.\n",
			u.Name, s.resetLink(token)),
	})
}

func (s *authService) resetLink(token string) string {
	if s.resetURL == "" {
		return token
	}
	return s.resetURL + url.PathEscape(token)
}

func (s *authService) ResetPassword(ctx context.Context, req contract.ResetPasswordRequest) (err error) {
	startedAt := s.now()
	fields := map[string]any{}
	defer func() { observe(ctx, s.observer, "reset-password", startedAt, fields, err) }()

	if err = validateRequest(req); err != nil {
		return err
	}

	claims, err := s.tokens.Parse(req.Token, auth.PurposeReset)
	if err != nil {
		return err
	}
	u, err := s.users.GetByID(ctx, claims.UserID())
	if errors.Is(err, repository.ErrNotFound) {
		return auth.ErrInvalidToken
	}
	if err != nil {
		return err
	}
	fields["user_id"] = u.ID

	return s.setPassword(ctx, u, req.NewPassword)
}
