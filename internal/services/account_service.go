package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"negar/internal/models"
	"negar/internal/storage"
	"negar/internal/validation"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// Validation errors, one per check, in the order the checks run. Handlers
// map these to status codes and user-facing messages.
var (
	ErrFieldsRequired   = errors.New("all fields are required")
	ErrInvalidName      = errors.New("name must be at least 3 characters")
	ErrInvalidPhone     = errors.New("invalid mobile number")
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrInvalidPassword  = errors.New("password too weak")
	ErrInvalidBrandName = errors.New("brand name must be at least 2 characters")
	ErrEmailTaken       = errors.New("email already registered")
)

const bcryptCost = 10

type AccountService struct {
	store  storage.AccountStore
	logger zerolog.Logger
}

func NewAccountService(store storage.AccountStore, logger zerolog.Logger) *AccountService {
	return &AccountService{
		store:  store,
		logger: logger,
	}
}

// Register runs the checks in a fixed order and stops at the first failure:
// required fields, then name, phone, email, password, brand name, then the
// uniqueness lookup. The phone is normalized only after it has validated.
func (s *AccountService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AccountSummary, error) {
	if req.Name == "" || req.Phone == "" || req.Email == "" || req.Password == "" || req.BrandName == "" {
		return nil, ErrFieldsRequired
	}
	if !validation.IsValidName(req.Name) {
		return nil, ErrInvalidName
	}
	if !validation.IsValidPhone(req.Phone) {
		return nil, ErrInvalidPhone
	}
	if !validation.IsValidEmail(req.Email) {
		return nil, ErrInvalidEmail
	}
	if !validation.IsValidPassword(req.Password) {
		return nil, ErrInvalidPassword
	}
	if !validation.IsValidBrandName(req.BrandName) {
		return nil, ErrInvalidBrandName
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	_, err := s.store.FindByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, storage.ErrNotFound) {
		// A real lookup failure must not be read as "email available".
		s.logger.Error().Err(err).Msg("Uniqueness check failed")
		return nil, fmt.Errorf("uniqueness check: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error hashing password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &models.Account{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
		Phone:        validation.NormalizePhone(req.Phone),
		BrandName:    strings.TrimSpace(req.BrandName),
		Status:       models.StatusPending,
		Credits:      0,
	}

	if err := s.store.Create(ctx, account); err != nil {
		if errors.Is(err, storage.ErrDuplicateEmail) {
			// Lost the race against a concurrent registration; the partial
			// unique index caught it.
			return nil, ErrEmailTaken
		}
		s.logger.Error().Err(err).Msg("Error creating account")
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.logger.Info().Str("account_id", account.ID).Str("email", account.Email).Msg("Account registered")
	return account.Summary(), nil
}
