package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"fieldside/internal/adapters/persistence/models"
	"fieldside/internal/adapters/persistence/repositories"
	"fieldside/internal/config"
	"fieldside/internal/core/domain"
	"fieldside/internal/pkg/jwt"
	"fieldside/internal/pkg/password"
	"fieldside/internal/pkg/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Auth errors. Each wraps a domain sentinel so handlers map them with a
// single errors.Is branch per status code.
var (
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	ErrUserAlreadyExists  = fmt.Errorf("%w: user already exists", domain.ErrConflict)
	ErrInvalidToken       = fmt.Errorf("%w: invalid token", domain.ErrUnauthorized)
	ErrTokenExpired       = fmt.Errorf("%w: token expired", domain.ErrUnauthorized)
	ErrTokenRevoked       = fmt.Errorf("%w: token revoked", domain.ErrUnauthorized)
	ErrUserInactive       = fmt.Errorf("%w: user account is inactive", domain.ErrUnauthorized)
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo         repositories.UserRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	directoryRepo    repositories.DirectoryRepository
	schoolRepo       repositories.SchoolRepository
	cfg              *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	directoryRepo repositories.DirectoryRepository,
	schoolRepo repositories.SchoolRepository,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		directoryRepo:    directoryRepo,
		schoolRepo:       schoolRepo,
		cfg:              cfg,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	Username    string `json:"username" validate:"required,min=3,max=25"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number" validate:"required,min=10,max=20"`
	Password    string `json:"password" validate:"required,min=8"`
	FirstName   string `json:"first_name" validate:"max=50"`
	LastName    string `json:"last_name" validate:"max=50"`
	Role        string `json:"role" validate:"required,oneof=manager coach player"`

	// Role-record fields. SchoolID is required for coach and player
	// registrations and ignored for managers.
	SchoolID          uint    `json:"school_id"`
	BankAccountNumber *string `json:"bank_account_number" validate:"omitempty,sheba"`
}

// LoginInput represents login input. The phone number is the login identifier.
type LoginInput struct {
	PhoneNumber string `json:"phone_number" validate:"required"`
	Password    string `json:"password" validate:"required"`
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User         *models.UserResponse `json:"user"`
	AccessToken  string               `json:"access_token"`
	RefreshToken string               `json:"refresh_token"`
}

// Register registers a new user together with its role record
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*AuthResponse, error) {
	// 1. Validate input
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	role := domain.Role(input.Role)

	// 2. Check uniqueness of username, email, phone
	exists, err := s.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	exists, err = s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	exists, err = s.userRepo.ExistsByPhone(ctx, input.PhoneNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	// 3. Coach and player registrations need an existing school
	var school *models.School
	if role == domain.RoleCoach || role == domain.RolePlayer {
		if input.SchoolID == 0 {
			return nil, domain.NewValidationError("school_id", "is required")
		}
		school, err = s.schoolByID(ctx, input.SchoolID)
		if err != nil {
			return nil, err
		}
	}

	// 4. Hash password
	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	// 5. Create user with a fresh badge UUID
	user := &models.User{
		Username:    input.Username,
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
		Password:    hashedPassword,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Role:        role,
		IsActive:    true,
		BadgeUUID:   uuid.New().String(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	// 6. Create the role record. If it fails, remove the user row again so
	// the failed registration does not leave a role-less user holding the
	// unique username, email and phone.
	if err := s.createRoleRecord(ctx, user, input, school); err != nil {
		if delErr := s.userRepo.Delete(ctx, user.ID); delErr != nil {
			log.Printf("❌ Failed to remove user %d after role record error: %v", user.ID, delErr)
		}
		return nil, err
	}

	// 7. Generate and store tokens
	tokens, err := s.generateTokens(user)
	if err != nil {
		return nil, err
	}
	if err := s.storeRefreshToken(ctx, user.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	log.Printf("✅ User registered: %s (role: %s)", user.Username, user.Role)

	return &AuthResponse{
		User:         user.ToResponse(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// Login authenticates a user by phone number
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	// 1. Validate input
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	// 2. Find user by phone number
	user, err := s.userRepo.GetByPhone(ctx, input.PhoneNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// 3. Check if user is active
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	// 4. Verify password
	if !password.Verify(input.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	// 5. Generate and store tokens
	tokens, err := s.generateTokens(user)
	if err != nil {
		return nil, err
	}
	if err := s.storeRefreshToken(ctx, user.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	log.Printf("✅ User logged in: %s", user.Username)

	return &AuthResponse{
		User:         user.ToResponse(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// RefreshToken refreshes the access token using refresh token
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	// 1. Validate refresh token JWT
	claims, err := jwt.ValidateRefreshToken(refreshToken, s.cfg.JWT.RefreshSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	// 2. Find the stored token by hash
	tokenHash := password.HashToken(refreshToken)
	storedToken, err := s.refreshTokenRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	// 3. Check revocation and expiry
	if storedToken.IsRevoked() {
		return nil, ErrTokenRevoked
	}
	if storedToken.IsExpired() {
		return nil, ErrTokenExpired
	}

	// 4. Get user
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	// 5. Revoke old refresh token (token rotation)
	if err := s.refreshTokenRepo.Revoke(ctx, storedToken.ID); err != nil {
		return nil, err
	}

	// 6. Generate and store new tokens
	tokens, err := s.generateTokens(user)
	if err != nil {
		return nil, err
	}
	if err := s.storeRefreshToken(ctx, user.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	log.Printf("✅ Token refreshed for user: %s", user.Username)

	return &AuthResponse{
		User:         user.ToResponse(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// Logout revokes the refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	tokenHash := password.HashToken(refreshToken)
	if err := s.refreshTokenRepo.RevokeByTokenHash(ctx, tokenHash); err != nil {
		return err
	}

	log.Printf("✅ User logged out")
	return nil
}

// LogoutAll revokes all refresh tokens for a user
func (s *AuthService) LogoutAll(ctx context.Context, userID uint) error {
	if err := s.refreshTokenRepo.RevokeAllByUserID(ctx, userID); err != nil {
		return err
	}

	log.Printf("✅ All sessions revoked for user ID: %d", userID)
	return nil
}

// ValidateAccessToken validates an access token
func (s *AuthService) ValidateAccessToken(accessToken string) (*jwt.Claims, error) {
	return jwt.ValidateAccessToken(accessToken, s.cfg.JWT.Secret)
}

// createRoleRecord creates the Manager, Coach or Player record for a new user
func (s *AuthService) createRoleRecord(ctx context.Context, user *models.User, input *RegisterInput, school *models.School) error {
	switch user.Role {
	case domain.RoleManager:
		return s.directoryRepo.CreateManager(ctx, &models.Manager{
			UserID:            user.ID,
			BankAccountNumber: input.BankAccountNumber,
		})

	case domain.RoleCoach:
		return s.directoryRepo.CreateCoach(ctx, &models.Coach{
			UserID:            user.ID,
			ManagerID:         school.ManagerID,
			SchoolID:          school.ID,
			BankAccountNumber: input.BankAccountNumber,
			IsActive:          true,
		})

	case domain.RolePlayer:
		managerID := school.ManagerID
		return s.directoryRepo.CreatePlayer(ctx, &models.Player{
			UserID:    user.ID,
			SchoolID:  school.ID,
			ManagerID: &managerID,
		})
	}
	return nil
}

func (s *AuthService) schoolByID(ctx context.Context, id uint) (*models.School, error) {
	// registration needs a real, active school to attach the role record to
	school, err := s.schoolRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewValidationError("school_id", "school does not exist")
		}
		return nil, err
	}
	if !school.IsActive {
		return nil, domain.NewValidationError("school_id", "school is not active")
	}
	return school, nil
}

// generateTokens generates access and refresh tokens
func (s *AuthService) generateTokens(user *models.User) (*TokenPair, error) {
	accessToken, err := jwt.GenerateAccessToken(
		user.ID,
		user.Username,
		string(user.Role),
		user.IsAdmin,
		s.cfg.JWT.Secret,
		s.cfg.JWT.AccessTokenMins,
	)
	if err != nil {
		return nil, err
	}

	tokenID := uuid.New().String()

	refreshToken, err := jwt.GenerateRefreshToken(
		user.ID,
		tokenID,
		s.cfg.JWT.RefreshSecret,
		s.cfg.JWT.RefreshTokenDays,
	)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// storeRefreshToken stores a refresh token in the database
func (s *AuthService) storeRefreshToken(ctx context.Context, userID uint, refreshToken string) error {
	token := &models.RefreshToken{
		UserID:    userID,
		TokenHash: password.HashToken(refreshToken),
		ExpiresAt: jwt.GetExpiryTime(s.cfg.JWT.RefreshTokenDays),
	}
	return s.refreshTokenRepo.Create(ctx, token)
}
