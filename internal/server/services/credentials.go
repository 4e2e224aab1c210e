// Package services contains server-side business logic. CredentialService
// registers users, logs them in and verifies (and reissues) session tokens.
package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// AuthResult is returned by every successful operation: the hash-free
// user and a freshly signed token.
type AuthResult struct {
	User  models.Profile
	Token string
}

// TokenSigner issues and verifies session tokens.
type TokenSigner interface {
	Sign(p models.Profile) (string, error)
	Verify(token string) (models.Profile, error)
}

type CredentialService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      auth.PasswordHasher
	signer      TokenSigner
	logger      logging.Logger

	// dummyHash is compared against on unknown emails so that login takes
	// the same time whether or not the user exists.
	dummyHash string
}

// NewCredentialService wires the service. db is owned by the caller.
func NewCredentialService(db *sql.DB, m repomanager.RepositoryManager, hasher auth.PasswordHasher,
	signer TokenSigner, logger logging.Logger) (*CredentialService, error) {

	dummy, err := hasher.Hash(uuid.NewString())
	if err != nil {
		return nil, err
	}

	return &CredentialService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		signer:      signer,
		logger:      logger.With("module", "credential_service"),
		dummyHash:   dummy,
	}, nil
}

// Register creates a user unless the email is taken and returns it with a
// token. The lookup is advisory; concurrent registrations are settled by
// the unique index, which is reported the same way.
func (s *CredentialService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	user, err := dbx.WithTxResult(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (*models.User, error) {
		repo := s.repomanager.Users(tx)

		_, err := repo.GetUserByEmail(ctx, email)
		if err == nil {
			return nil, ErrDuplicateUser
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}

		hash, err := s.hasher.Hash(password)
		if err != nil {
			if errors.Is(err, auth.ErrPasswordTooLong) {
				return nil, NewValidationError("password is too long", err)
			}
			return nil, err
		}

		return repo.Create(ctx, &models.User{
			ID:           uuid.NewString(),
			Name:         name,
			Email:        email,
			PasswordHash: hash,
		})
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			return nil, err
		case errors.Is(err, ErrDuplicateUser), errors.Is(err, common.ErrorAlreadyExists):
			s.logger.Info(ctx, "registration rejected: email taken")
			return nil, newError(KindDuplicateUser, common.ErrorAlreadyExists)
		default:
			s.logger.Error(ctx, "registration failed", "error", err)
			return nil, newError(KindRepository, err)
		}
	}

	result, err := s.issue(ctx, user.Profile())
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)
	return result, nil
}

// Login checks the password of the user with email. Unknown email and wrong
// password are different kinds but share the outward status and message.
func (s *CredentialService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.Check(password, s.dummyHash)
			s.logger.Info(ctx, "login rejected")
			return nil, newError(KindUserNotFound, err)
		}
		s.logger.Error(ctx, "login lookup failed", "error", err)
		return nil, newError(KindRepository, err)
	}

	if !s.hasher.Check(password, user.PasswordHash) {
		s.logger.Info(ctx, "login rejected", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	return s.issue(ctx, user.Profile())
}

// VerifyToken authenticates token and reissues it: every successful
// verification extends the session by one validity period.
func (s *CredentialService) VerifyToken(ctx context.Context, token string) (*AuthResult, error) {
	profile, err := s.signer.Verify(token)
	if err != nil {
		s.logger.Debug(ctx, "token rejected", "error", err)
		return nil, newError(KindInvalidToken, err)
	}

	return s.issue(ctx, profile)
}

func (s *CredentialService) issue(ctx context.Context, p models.Profile) (*AuthResult, error) {
	token, err := s.signer.Sign(p)
	if err != nil {
		s.logger.Error(ctx, "token signing failed", "error", err)
		return nil, newError(KindRepository, err)
	}
	return &AuthResult{User: p, Token: token}, nil
}
