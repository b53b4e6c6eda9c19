package user

import (
	"context"
	"time"

	childRepo "asdcare/database/repository/child"
	userRepo "asdcare/database/repository/user"
	"asdcare/models"
	"asdcare/services/notification"
	"asdcare/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// UserService covers accounts, children and therapist approval.
type UserService interface {
	// Authentication
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Logout(ctx context.Context, claims *utils.TokenClaims) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	GetUser(ctx context.Context, id string) (*models.PublicUser, error)

	// Therapist directory
	ResolveTherapist(ctx context.Context, identifier string) (*models.User, error)
	ListTherapists(ctx context.Context) ([]models.PublicUser, error)

	// Children
	AddChild(ctx context.Context, parentID string, req models.AddChildRequest) (*models.Child, error)
	ListChildren(ctx context.Context, parentID string) ([]models.Child, error)
	ListClients(ctx context.Context, therapistID string) ([]models.Child, error)
	DeleteChild(ctx context.Context, parentID, childID string) error
	ChildOwnedBy(ctx context.Context, parentID, childID string) (*models.Child, error)
	SetChildRiskLevel(ctx context.Context, childID string, level models.RiskLevel) error

	// Admin
	PendingTherapists(ctx context.Context) ([]models.User, error)
	ApproveTherapist(ctx context.Context, userID string) (*models.User, error)
	RejectTherapist(ctx context.Context, userID, reason string) (*models.User, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Users       userRepo.UserRepository
	Children    childRepo.ChildRepository
	Revocations *redis.Client
	Notifier    notification.Notifier
	TokenTTL    time.Duration
	Logger      *zap.Logger
}

func NewUserService(users userRepo.UserRepository, children childRepo.ChildRepository, revocations *redis.Client, notifier notification.Notifier, tokenTTL time.Duration, logger *zap.Logger) *DefaultUserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if notifier == nil {
		notifier = notification.NewLogNotifier(logger)
	}
	if tokenTTL <= 0 {
		tokenTTL = 7 * 24 * time.Hour
	}
	return &DefaultUserService{
		Users:       users,
		Children:    children,
		Revocations: revocations,
		Notifier:    notifier,
		TokenTTL:    tokenTTL,
		Logger:      logger,
	}
}
