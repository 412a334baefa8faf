package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"fieldside/internal/adapters/persistence/models"
	"fieldside/internal/adapters/persistence/repositories"
	"fieldside/internal/core/domain"
	"fieldside/internal/pkg/password"
	"fieldside/internal/pkg/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User service errors
var (
	ErrOldPasswordWrong = fmt.Errorf("%w: old password is incorrect", domain.ErrValidation)
	ErrCannotDeleteSelf = fmt.Errorf("%w: cannot delete your own account", domain.ErrConflict)
)

// UserService handles user management business logic
type UserService struct {
	userRepo         repositories.UserRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	directoryRepo    repositories.DirectoryRepository
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repositories.UserRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	directoryRepo repositories.DirectoryRepository,
) *UserService {
	return &UserService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		directoryRepo:    directoryRepo,
	}
}

// UpdateProfileInput represents update profile input (for self)
type UpdateProfileInput struct {
	Email     *string `json:"email" validate:"omitempty,email"`
	FirstName *string `json:"first_name" validate:"omitempty,max=50"`
	LastName  *string `json:"last_name" validate:"omitempty,max=50"`
}

// ChangePasswordInput represents change password input
type ChangePasswordInput struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// GetProfile returns the acting user's profile
func (s *UserService) GetProfile(ctx context.Context, actor domain.Actor) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	return user.ToResponse(), nil
}

// UpdateProfile updates the acting user's own profile fields
func (s *UserService) UpdateProfile(ctx context.Context, actor domain.Actor, input *UpdateProfileInput) (*models.UserResponse, error) {
	// 1. Validate input
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	// 2. Email change must stay unique
	if input.Email != nil && *input.Email != user.Email {
		exists, err := s.userRepo.ExistsByEmail(ctx, *input.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrUserAlreadyExists
		}
		user.Email = *input.Email
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user.ToResponse(), nil
}

// ChangePassword changes the acting user's password after verifying the old
// one, then revokes all refresh tokens so stolen sessions die with it.
func (s *UserService) ChangePassword(ctx context.Context, actor domain.Actor, input *ChangePasswordInput) error {
	// 1. Validate input
	if err := validation.Struct(input); err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(ctx, actor.UserID)
	if err != nil {
		return err
	}

	// 2. Verify old password
	if !password.Verify(input.OldPassword, user.Password) {
		return ErrOldPasswordWrong
	}

	// 3. Hash and store new password
	hashed, err := password.Hash(input.NewPassword)
	if err != nil {
		return err
	}
	user.Password = hashed
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	// 4. Revoke all sessions
	if err := s.refreshTokenRepo.RevokeAllByUserID(ctx, user.ID); err != nil {
		return err
	}

	log.Printf("✅ Password changed for user: %s", user.Username)
	return nil
}

// RotateBadge replaces the user's badge UUID with a fresh one. The old badge
// stops working immediately.
func (s *UserService) RotateBadge(ctx context.Context, actor domain.Actor) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	user.BadgeUUID = uuid.New().String()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ Badge rotated for user: %s", user.Username)
	return user.ToResponse(), nil
}

// ListUsers lists all users. Admin only.
func (s *UserService) ListUsers(ctx context.Context, actor domain.Actor, offset, limit int) ([]*models.UserResponse, int64, error) {
	if !actor.IsAdmin {
		return nil, 0, domain.ErrForbidden
	}

	users, total, err := s.userRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*models.UserResponse, len(users))
	for i, user := range users {
		responses[i] = user.ToResponse()
	}
	return responses, total, nil
}

// SetUserActive enables or disables a user account. Admin only.
func (s *UserService) SetUserActive(ctx context.Context, actor domain.Actor, userID uint, active bool) error {
	if !actor.IsAdmin {
		return domain.ErrForbidden
	}
	if userID == actor.UserID {
		return ErrCannotDeleteSelf
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}

	user.IsActive = active
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	if !active {
		// a disabled account must not keep live sessions
		if err := s.refreshTokenRepo.RevokeAllByUserID(ctx, userID); err != nil {
			return err
		}
	}

	log.Printf("✅ User %d active=%t", userID, active)
	return nil
}

// DeleteCoachUser removes a coach and its user account in lockstep. Deleting
// the coach record alone would leave an orphaned login, so the coach delete
// flow always runs through here.
func (s *UserService) DeleteCoachUser(ctx context.Context, actor domain.Actor, coachID uint) error {
	coach, err := s.directoryRepo.CoachByID(ctx, coachID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}

	// only the hiring manager or the admin may fire a coach
	if !actor.IsAdmin && !(actor.IsManager() && coach.ManagerID == actor.ManagerID) {
		return domain.ErrNotFound
	}

	// 1. Unassign teams and soft delete the coach record
	if err := s.directoryRepo.DeleteCoach(ctx, coach.ID); err != nil {
		return err
	}

	// 2. Revoke sessions, then soft delete the user account
	if err := s.refreshTokenRepo.RevokeAllByUserID(ctx, coach.UserID); err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, coach.UserID); err != nil {
		return err
	}

	log.Printf("✅ Coach %d and user %d deleted", coach.ID, coach.UserID)
	return nil
}
