package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"yatube/internal/config"
	"yatube/internal/forms"
	"yatube/internal/models"
	"yatube/internal/repository"
)

type AuthService interface {
	Register(ctx context.Context, form *forms.SignupForm) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.User, string, error)
	ValidateToken(tokenString string) (*jwt.Token, error)
	Authenticate(ctx context.Context, tokenString string) (*models.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

func (s *authService) Register(ctx context.Context, form *forms.SignupForm) (*models.User, error) {
	user := &models.User{
		Username:  form.Username,
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
	}

	err := s.userRepo.CreateUser(ctx, user, form.Password1)
	if err != nil {
		if errors.Is(err, models.ErrUsernameTaken) {
			return nil, forms.Errors{"username": {"A user with that username already exists."}}
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	return user, nil
}

// Login checks the credentials and issues a session token.
func (s *authService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	user, err := s.userRepo.VerifyPassword(ctx, username, password)
	if err != nil {
		return nil, "", err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *authService) generateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":  user.UserID,
		"username": user.Username,
		"exp":      now.Add(s.cfg.SessionDuration).Unix(),
		"iat":      now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

func (s *authService) ValidateToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecretKey), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return token, nil
}

// Authenticate resolves a session token to a stored user, so sessions of
// deleted users stop working.
func (s *authService) Authenticate(ctx context.Context, tokenString string) (*models.User, error) {
	token, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return nil, errors.New("token has no user")
	}

	return s.userRepo.GetUserByID(ctx, userID)
}
