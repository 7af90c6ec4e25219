package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Hemachand25/FreshGrocery/entity"
	"github.com/Hemachand25/FreshGrocery/repository"
	"github.com/Hemachand25/FreshGrocery/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService handles registration, login and the caller's own profile.
type AuthService struct {
	userRepo  *repository.UserRepository
	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthService(repo *repository.UserRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		userRepo:  repo,
		jwtSecret: secret,
		jwtTTL:    ttl,
	}
}

type RegisterIn struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
}

// Register creates a customer account.
func (s *AuthService) Register(ctx context.Context, in RegisterIn) (*entity.User, error) {
	return s.createUser(ctx, in, entity.RoleCustomer, "")
}

func (s *AuthService) createUser(ctx context.Context, in RegisterIn, role entity.Role, storeName string) (*entity.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	count, err := s.userRepo.CountByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Email:       email,
		Password:    string(hashed),
		FirstName:   strings.TrimSpace(in.FirstName),
		LastName:    strings.TrimSpace(in.LastName),
		PhoneNumber: strings.TrimSpace(in.PhoneNumber),
		Address:     strings.TrimSpace(in.Address),
		Role:        role,
		StoreName:   strings.TrimSpace(storeName),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks the password and issues a JWT.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if user.Blocked {
		return "", nil, ErrAccountBlocked
	}

	token, err := utils.GenerateToken(user.ID, user.Role, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) GetProfile(ctx context.Context, userID uint) (*entity.User, error) {
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "user %d", userID)
	}
	return u, nil
}

type UpdateProfileIn struct {
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	PhoneNumber *string `json:"phoneNumber"`
	Address     *string `json:"address"`
}

// UpdateProfile changes contact fields only; email, role and password stay.
func (s *AuthService) UpdateProfile(ctx context.Context, userID uint, in UpdateProfileIn) (*entity.User, error) {
	u, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	for col, v := range map[string]*string{
		"first_name":   in.FirstName,
		"last_name":    in.LastName,
		"phone_number": in.PhoneNumber,
		"address":      in.Address,
	} {
		if v != nil {
			updates[col] = strings.TrimSpace(*v)
		}
	}
	if n, ok := updates["first_name"]; ok && n == "" {
		return nil, fmt.Errorf("firstName must not be empty: %w", ErrInvalidInput)
	}
	if n, ok := updates["last_name"]; ok && n == "" {
		return nil, fmt.Errorf("lastName must not be empty: %w", ErrInvalidInput)
	}
	if len(updates) == 0 {
		return u, nil
	}
	if err := s.userRepo.Update(ctx, userID, updates); err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, userID)
}

// Deactivate blocks the caller's own account. Tokens already issued stay
// valid until they expire.
func (s *AuthService) Deactivate(ctx context.Context, userID uint) error {
	n, err := s.userRepo.SetBlocked(ctx, userID, true)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}
	return nil
}
