package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/rebound/internal/contract"
	"github.com/alexanderramin/rebound/internal/domain"
	"github.com/alexanderramin/rebound/internal/repository"
)

type adminService struct {
	users      repository.UserRepo
	bcryptCost int
	observer   UseCaseObserver
	now        func() time.Time
}

func NewAdminService(users repository.UserRepo, bcryptCost int, observers ...UseCaseObserver) AdminService {
	return &adminService{
		users:      users,
		bcryptCost: bcryptCost,
		observer:   useCaseObserverOrNoop(observers),
		now:        systemNow,
	}
}

func (s *adminService) ListUsers(ctx context.Context, role domain.Role) ([]*domain.User, error) {
	if role != "" && !domain.ValidRoles[role] {
		return nil, invalidField("role", fmt.Sprintf("unknown role %q", role))
	}
	return s.users.List(ctx, role)
}

func (s *adminService) CreateUser(ctx context.Context, req contract.CreateUserRequest) (u *domain.User, err error) {
	startedAt := s.now()
	fields := map[string]any{"role": req.Role}
	defer func() { observe(ctx, s.observer, "create-user", startedAt, fields, err) }()

	if err = validateRequest(req); err != nil {
		return nil, err
	}
	u, err = s.newUser(req)
	if err != nil {
		return nil, err
	}
	if err = s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("user already exists: %w", ErrConflict)
		}
		return nil, err
	}
	fields["user_id"] = u.ID
	return u, nil
}

func (s *adminService) newUser(req contract.CreateUserRequest) (*domain.User, error) {
	now := s.now()
	u := &domain.User{
		ID:                uuid.New().String(),
		Name:              req.Name,
		Email:             domain.NormalizeEmail(req.Email),
		Role:              domain.RoleStudent,
		AssignedTeacherID: req.AssignedTeacherID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if req.Role != "" {
		u.Role = domain.Role(req.Role)
	}
	if err := u.SetPassword(req.Password, s.bcryptCost); err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	return u, nil
}

func (s *adminService) EnsureUser(ctx context.Context, req contract.CreateUserRequest) (*domain.User, bool, error) {
	if err := validateRequest(req); err != nil {
		return nil, false, err
	}

	existing, err := s.users.GetByEmail(ctx, domain.NormalizeEmail(req.Email))
	if errors.Is(err, repository.ErrNotFound) {
		u, err := s.CreateUser(ctx, req)
		return u, err == nil, err
	}
	if err != nil {
		return nil, false, err
	}

	patch := contract.UpdateUserRequest{Name: &req.Name, Password: &req.Password}
	if req.Role != "" {
		patch.Role = &req.Role
	}
	u, err := s.UpdateUser(ctx, existing.ID, patch)
	return u, false, err
}

func (s *adminService) UpdateUser(ctx context.Context, id string, req contract.UpdateUserRequest) (*domain.User, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch := domain.UserPatch{Name: req.Name, Email: req.Email, AssignedTeacherID: req.AssignedTeacherID}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		patch.Role = &role
	}
	if req.AssignedTeacherID != nil && *req.AssignedTeacherID != "" {
		teacher, err := s.users.GetByID(ctx, *req.AssignedTeacherID)
		if errors.Is(err, repository.ErrNotFound) || (err == nil && !teacher.IsTeacher()) {
			return nil, invalidField("assignedTeacherId", "unknown teacher")
		}
		if err != nil {
			return nil, err
		}
	}

	now := s.now()
	u.Apply(patch, now)
	if err := s.users.Update(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("email already in use: %w", ErrConflict)
		}
		return nil, err
	}

	if req.Password != nil {
		if err := u.SetPassword(*req.Password, s.bcryptCost); err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
		if err := s.users.UpdatePassword(ctx, u.ID, u.PasswordHash, now); err != nil {
			return nil, err
		}
	}
	return u, nil
}

// DeleteUser removes a user and everything they own. Admins cannot delete
// their own account.
func (s *adminService) DeleteUser(ctx context.Context, actorID, id string) (err error) {
	startedAt := s.now()
	fields := map[string]any{"actor_id": actorID, "user_id": id}
	defer func() { observe(ctx, s.observer, "delete-user", startedAt, fields, err) }()

	if actorID == id {
		return fmt.Errorf("deleting own account: %w", ErrForbidden)
	}
	return s.users.Delete(ctx, id)
}
