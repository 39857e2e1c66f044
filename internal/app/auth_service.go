package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"quiz-contest-service/internal/domain"
)

// Claims is the token payload issued on register/login.
type Claims struct {
	UserID string      `json:"userId"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// AuthService handles registration, login and token verification.
type AuthService struct {
	users    UserRepository
	secret   []byte
	tokenTTL time.Duration
	validate *validator.Validate
	now      func() time.Time
}

func NewAuthService(users UserRepository, secret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:    users,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		validate: newValidator(),
		now:      time.Now,
	}
}

// RegisterInput carries the registration form.
type RegisterInput struct {
	FullNameEnglish    string `json:"fullNameEnglish" validate:"required"`
	FullNameBangla     string `json:"fullNameBangla" validate:"required"`
	Contact            string `json:"contact" validate:"required,min=6"`
	ContactType        string `json:"contactType"`
	Password           string `json:"password" validate:"required,min=6"`
	Gender             string `json:"gender"`
	Age                int    `json:"age" validate:"omitempty,min=1,max=120"`
	Grade              string `json:"grade"`
	InstitutionName    string `json:"institutionName"`
	InstitutionAddress string `json:"institutionAddress"`
	District           string `json:"district"`
	Upazila            string `json:"upazila"`
	Address            string `json:"address"`
	WhatsappNumber     string `json:"whatsappNumber"`
}

// Register creates a user with a bcrypt-hashed password and issues a token.
// The contact number must be unused.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, string, error) {
	if err := validateStruct(s.validate, in); err != nil {
		return nil, "", err
	}

	if existing, err := s.users.GetByContact(ctx, in.Contact); err == nil && existing != nil {
		return nil, "", domain.ErrContactTaken
	} else if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		FullNameEnglish:    in.FullNameEnglish,
		FullNameBangla:     in.FullNameBangla,
		Contact:            in.Contact,
		ContactType:        in.ContactType,
		PasswordHash:       string(hash),
		Role:               domain.RoleUser,
		Gender:             in.Gender,
		Age:                in.Age,
		Grade:              in.Grade,
		InstitutionName:    in.InstitutionName,
		InstitutionAddress: in.InstitutionAddress,
		District:           in.District,
		Upazila:            in.Upazila,
		Address:            in.Address,
		WhatsappNumber:     in.WhatsappNumber,
		IsActive:           true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies credentials and issues a token. Deactivated accounts are
// rejected before the password check result can leak their existence.
func (s *AuthService) Login(ctx context.Context, contact, password string) (*domain.User, string, error) {
	user, err := s.users.GetByContact(ctx, contact)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, "", domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}
	if !user.IsActive {
		return nil, "", domain.ErrAccountDisabled
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	now := s.now()
	user.LastLogin = &now
	if err := s.users.Update(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Profile fetches the user behind a validated token.
func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

// GenerateToken signs an HS256 token for the user.
func (s *AuthService) GenerateToken(user *domain.User) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken parses and verifies a token string.
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
