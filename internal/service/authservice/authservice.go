package authservice

//go:generate mockgen -source=authservice.go -destination=mock_authservice.go -package=authservice

import (
	"context"
	"errors"
	"time"

	"github.com/GlebRadaev/securebank/internal/domain"
	"github.com/GlebRadaev/securebank/pkg/auth"
	"go.uber.org/zap"
)

const tokenTTL = 15 * time.Minute

var (
	ErrLoginTaken         = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

type UserRepo interface {
	FindByLogin(ctx context.Context, login string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

type ActivityRepo interface {
	Create(ctx context.Context, entry *domain.ActivityLog) (*domain.ActivityLog, error)
}

type RegisterInput struct {
	Login     string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
	Address   string
}

type Service struct {
	userRepo     UserRepo
	activityRepo ActivityRepo
	hashService  auth.HashServiceInterface
	jwtService   auth.JWTServiceInterface
}

func New(userRepo UserRepo, activityRepo ActivityRepo, hashService auth.HashServiceInterface, jwtService auth.JWTServiceInterface) *Service {
	return &Service{
		userRepo:     userRepo,
		activityRepo: activityRepo,
		hashService:  hashService,
		jwtService:   jwtService,
	}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	existingUser, err := s.userRepo.FindByLogin(ctx, in.Login)
	if err != nil {
		zap.L().Error("can't find user: ", zap.Error(err))
		return nil, err
	}
	if existingUser != nil {
		zap.L().Info("user already exists", zap.String("login", in.Login))
		return nil, ErrLoginTaken
	}
	existingUser, err = s.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		zap.L().Error("can't find user by email: ", zap.Error(err))
		return nil, err
	}
	if existingUser != nil {
		zap.L().Info("email already registered", zap.String("login", in.Login))
		return nil, ErrEmailTaken
	}

	hashedPassword, err := s.hashService.HashPassword(in.Password)
	if err != nil {
		zap.L().Error("can't hash password: ", zap.Error(err))
		return nil, err
	}
	user := &domain.User{
		Login:        in.Login,
		Email:        in.Email,
		PasswordHash: hashedPassword,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Phone:        in.Phone,
		Address:      in.Address,
	}
	newUser, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, ErrLoginTaken) || errors.Is(err, ErrEmailTaken) {
			zap.L().Info("user registered concurrently", zap.String("login", in.Login), zap.Error(err))
			return nil, err
		}
		zap.L().Error("can't create user: ", zap.Error(err))
		return nil, err
	}

	zap.L().Info("user successfully registered", zap.String("login", in.Login))
	return newUser, nil
}

// Authenticate records a login activity entry for every successful attempt.
func (s *Service) Authenticate(ctx context.Context, login, password string) (*domain.User, error) {
	user, err := s.userRepo.FindByLogin(ctx, login)
	if err != nil {
		zap.L().Error("can't find user: ", zap.String("login", login), zap.Error(err))
		return nil, err
	}
	if user == nil {
		zap.L().Error("invalid credentials", zap.String("login", login))
		return nil, ErrInvalidCredentials
	}
	if ok := s.hashService.ComparePassword(user.PasswordHash, password); !ok {
		zap.L().Error("invalid credentials", zap.String("login", login))
		return nil, ErrInvalidCredentials
	}
	if err := s.logActivity(ctx, login, domain.ActivityLogin); err != nil {
		return nil, err
	}
	zap.L().Info("user successfully authenticated", zap.String("login", login))
	return user, nil
}

func (s *Service) Logout(ctx context.Context, login string) error {
	if err := s.logActivity(ctx, login, domain.ActivityLogout); err != nil {
		return err
	}
	zap.L().Info("user logged out", zap.String("login", login))
	return nil
}

func (s *Service) GetProfile(ctx context.Context, login string) (*domain.User, error) {
	user, err := s.userRepo.FindByLogin(ctx, login)
	if err != nil {
		zap.L().Error("can't find user: ", zap.String("login", login), zap.Error(err))
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *Service) GenerateToken(user *domain.User) (string, error) {
	expirationTime := time.Now().Add(tokenTTL)

	token, err := s.jwtService.GenerateJWT(user.ID, user.Login, expirationTime)
	if err != nil {
		zap.L().Error("can't generate token: ", zap.Error(err))
		return "", err
	}
	return token, nil
}

func (s *Service) logActivity(ctx context.Context, login string, activity domain.ActivityType) error {
	_, err := s.activityRepo.Create(ctx, &domain.ActivityLog{Username: login, Activity: activity})
	if err != nil {
		zap.L().Error("can't log activity", zap.String("login", login), zap.String("activity", string(activity)), zap.Error(err))
		return err
	}
	return nil
}
