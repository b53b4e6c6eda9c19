package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"asdcare/models"
	"asdcare/services/apperr"
	"asdcare/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Register creates an account and signs a token for it. Therapists start
// pending and inactive until an admin approves them.
func (s *DefaultUserService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.TrimSpace(req.Username)
	if email == "" || username == "" || req.Password == "" {
		return nil, apperr.New(apperr.KindValidation, "username, email and password are required")
	}
	if len(req.Password) < 6 {
		return nil, apperr.New(apperr.KindValidation, "password must be at least 6 characters long")
	}

	role, ok := models.ParseRole(req.Role)
	if !ok {
		return nil, apperr.New(apperr.KindValidation, "unknown role %q", req.Role)
	}
	if role == models.RoleAdmin {
		return nil, apperr.New(apperr.KindAccessDenied, "admin accounts cannot be self-registered")
	}
	license := strings.TrimSpace(req.LicenseNumber)
	if role == models.RoleTherapist && license == "" {
		return nil, apperr.New(apperr.KindValidation, "professional license number is required for therapist registration")
	}

	if _, err := s.Users.GetByEmail(ctx, email); err == nil {
		return nil, apperr.New(apperr.KindConflict, "user already exists")
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		s.Logger.Error("Register: existing user check failed", zap.Error(err))
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	roleID, err := utils.GenerateRoleID(role, now)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, err, "unknown role")
	}

	u := &models.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		RoleID:       roleID,
		Status:       models.AccountApproved,
		IsActive:     true,
		Specialty:    strings.TrimSpace(req.Specialty),
	}
	if role == models.RoleTherapist {
		u.Status = models.AccountPending
		u.IsActive = false
		u.LicenseNumber = license
	}

	if err := s.Users.Create(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperr.Wrap(apperr.KindConflict, err, "user already exists")
		}
		return nil, err
	}
	s.Logger.Info("user registered", zap.String("userId", u.ID), zap.String("role", string(role)))

	return s.issue(u)
}

// Login checks credentials and the requested role. Admins may log in from
// any role selector.
func (s *DefaultUserService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, apperr.New(apperr.KindValidation, "email and password are required")
	}

	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.New(apperr.KindUnauthorized, "invalid credentials")
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, apperr.New(apperr.KindUnauthorized, "invalid credentials")
	}

	if u.Role != models.RoleAdmin {
		requested, _ := models.ParseRole(req.Role)
		if requested != u.Role {
			return nil, apperr.New(apperr.KindAccessDenied, "you do not have the required role to log in")
		}
	}
	if u.Role == models.RoleTherapist && u.Status != models.AccountApproved {
		return nil, apperr.New(apperr.KindAccessDenied, "therapist account is %s", u.Status)
	}
	if !u.IsActive {
		return nil, apperr.New(apperr.KindAccessDenied, "account is inactive")
	}

	return s.issue(u)
}

func (s *DefaultUserService) issue(u *models.User) (*models.AuthResponse, error) {
	token, err := utils.GenerateToken(u.ID, u.Email, string(u.Role), s.TokenTTL)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: u.Public()}, nil
}

// Logout revokes the presented token for the rest of its lifetime.
func (s *DefaultUserService) Logout(ctx context.Context, claims *utils.TokenClaims) error {
	if claims == nil {
		return apperr.New(apperr.KindUnauthorized, "not authenticated")
	}
	if s.Revocations == nil {
		return nil
	}
	if err := utils.RevokeToken(ctx, s.Revocations, claims.TokenID, claims.ExpiresAt); err != nil {
		return apperr.Wrap(apperr.KindExternal, err, "could not revoke token")
	}
	return nil
}

func (s *DefaultUserService) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if s.Revocations == nil {
		return false, nil
	}
	return utils.IsTokenRevoked(ctx, s.Revocations, tokenID)
}

func (s *DefaultUserService) GetUser(ctx context.Context, id string) (*models.PublicUser, error) {
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.New(apperr.KindNotFound, "user not found")
		}
		return nil, err
	}
	pub := u.Public()
	return &pub, nil
}
