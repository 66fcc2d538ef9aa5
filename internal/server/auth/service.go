package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/config"
	"github.com/dmitrijs2005/authkeeper/internal/server/credentials"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

// credentialsInput is the validation gate for both signin and signup.
type credentialsInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

// Result is a successful authentication outcome.
type Result struct {
	Token  string
	AuthID string
}

// Service orchestrates signin and signup against the credential store.
// All expected business outcomes are returned as sentinel errors from
// internal/common; unexpected failures are logged with full detail and
// collapsed to common.ErrorInternal so no internals leak to the caller.
type Service struct {
	repo                  credentials.Repository
	hasher                *PasswordHasher
	secretKey             []byte
	tokenValidityDuration time.Duration
	logger                logging.Logger
}

func NewService(repo credentials.Repository, hasher *PasswordHasher, cfg *config.Config, logger logging.Logger) *Service {
	return &Service{
		repo:                  repo,
		hasher:                hasher,
		secretKey:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
		logger:                logger.With("module", "auth_service"),
	}
}

func (s *Service) log(ctx context.Context) logging.Logger {
	return logging.FromContext(ctx, s.logger)
}

func (s *Service) validateInput(email, password string) error {
	in := credentialsInput{Email: email, Password: password}
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}
	return nil
}

// SignIn authenticates an email/password pair and issues a token for the
// matching credential record.
//
// Outcomes: ErrorValidation (no store access), ErrorMissingSecret,
// ErrorNotFound, ErrorInvalidPassword, ErrorInternal, or a Result.
func (s *Service) SignIn(ctx context.Context, email, password string) (*Result, error) {

	if err := s.validateInput(email, password); err != nil {
		return nil, err
	}
	if len(s.secretKey) == 0 {
		return nil, common.ErrorMissingSecret
	}

	cred, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		s.log(ctx).Error(ctx, "credential lookup failed", "operation", "signin", "error", err)
		return nil, common.ErrorInternal
	}

	if !s.hasher.Verify(password, cred.PasswordHash) {
		return nil, common.ErrorInvalidPassword
	}

	token, err := GenerateToken(cred.ID, s.secretKey, s.tokenValidityDuration)
	if err != nil {
		s.log(ctx).Error(ctx, "token generation failed", "operation", "signin", "error", err)
		return nil, common.ErrorInternal
	}

	return &Result{Token: token, AuthID: cred.ID}, nil
}

// SignUp provisions a new credential record and issues a token for it.
//
// The pre-check lookup keeps the common path cheap, but the store's
// uniqueness constraint stays authoritative: a duplicate-key failure from
// Create (a concurrent signup won the race) is the same Conflict outcome
// as a pre-check hit.
//
// Outcomes: ErrorValidation, ErrorMissingSecret, ErrorAlreadyExists,
// ErrorInternal, or a Result.
func (s *Service) SignUp(ctx context.Context, email, password string) (*Result, error) {

	if err := s.validateInput(email, password); err != nil {
		return nil, err
	}
	if len(s.secretKey) == 0 {
		return nil, common.ErrorMissingSecret
	}

	_, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return nil, common.ErrorAlreadyExists
	}
	if !errors.Is(err, common.ErrorNotFound) {
		s.log(ctx).Error(ctx, "credential lookup failed", "operation", "signup", "error", err)
		return nil, common.ErrorInternal
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.log(ctx).Error(ctx, "password hashing failed", "operation", "signup", "error", err)
		return nil, common.ErrorInternal
	}

	cred := &credentials.Credential{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
	}

	created, err := s.repo.Create(ctx, cred)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		s.log(ctx).Error(ctx, "credential creation failed", "operation", "signup", "error", err)
		return nil, common.ErrorInternal
	}

	token, err := GenerateToken(created.ID, s.secretKey, s.tokenValidityDuration)
	if err != nil {
		s.log(ctx).Error(ctx, "token generation failed", "operation", "signup", "error", err)
		return nil, common.ErrorInternal
	}

	return &Result{Token: token, AuthID: created.ID}, nil
}
