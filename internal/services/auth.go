package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/coverbridge/coverbridge-backend/internal/logger"
	"github.com/coverbridge/coverbridge-backend/internal/repos"
	"github.com/coverbridge/coverbridge-backend/internal/types"
	"github.com/coverbridge/coverbridge-backend/internal/utils"
)

var (
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAdmin           = errors.New("admin access required")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserInactive       = errors.New("account is deactivated")
)

type SignupInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenPair struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*types.User, error)
	Login(ctx context.Context, input LoginInput) (*TokenPair, *types.User, error)
	AdminLogin(ctx context.Context, input LoginInput) (*TokenPair, *types.User, error)
	UserFromToken(ctx context.Context, tokenString string) (*types.User, error)
}

type authService struct {
	log           *logger.Logger
	userRepo      repos.UserRepo
	jwtSecret     []byte
	expireMinutes int
}

func NewAuthService(baseLog *logger.Logger, userRepo repos.UserRepo, jwtSecret string, expireMinutes int) AuthService {
	return &authService{
		log:           baseLog.With("service", "AuthService"),
		userRepo:      userRepo,
		jwtSecret:     []byte(jwtSecret),
		expireMinutes: expireMinutes,
	}
}

func (s *authService) Signup(ctx context.Context, input SignupInput) (*types.User, error) {
	existing, err := s.userRepo.GetByEmail(ctx, nil, input.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailRegistered
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &types.User{
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, nil, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.log.Info("user signed up", "user_id", user.UserID)
	return user, nil
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*TokenPair, *types.User, error) {
	user, err := s.authenticate(ctx, input)
	if err != nil {
		return nil, nil, err
	}
	pair, err := s.issueToken(user)
	if err != nil {
		return nil, nil, err
	}
	return pair, user, nil
}

func (s *authService) AdminLogin(ctx context.Context, input LoginInput) (*TokenPair, *types.User, error) {
	user, err := s.authenticate(ctx, input)
	if err != nil {
		return nil, nil, err
	}
	if !user.IsAdmin {
		return nil, nil, ErrNotAdmin
	}
	pair, err := s.issueToken(user)
	if err != nil {
		return nil, nil, err
	}
	return pair, user, nil
}

func (s *authService) authenticate(ctx context.Context, input LoginInput) (*types.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, nil, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if !utils.VerifyPassword(input.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}
	return user, nil
}

func (s *authService) issueToken(user *types.User) (*TokenPair, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.Email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.expireMinutes) * time.Minute)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &TokenPair{AccessToken: signed, TokenType: "bearer"}, nil
}

func (s *authService) UserFromToken(ctx context.Context, tokenString string) (*types.User, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	user, err := s.userRepo.GetByEmail(ctx, nil, claims.Subject)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}
	return user, nil
}
