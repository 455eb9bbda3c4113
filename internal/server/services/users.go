// Package services contains the server-side business logic. Services
// sit between the HTTP layer and the repositories: they enforce
// permissions, run multi-statement writes in transactions, and map
// repository results onto the error taxonomy in internal/common.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rivalrockets/rivalrockets/internal/common"
	"github.com/rivalrockets/rivalrockets/internal/dbx"
	"github.com/rivalrockets/rivalrockets/internal/server/auth"
	"github.com/rivalrockets/rivalrockets/internal/server/config"
	"github.com/rivalrockets/rivalrockets/internal/server/models"
	"github.com/rivalrockets/rivalrockets/internal/server/repositories/repomanager"
)

// RegisterInput is the registration payload.
type RegisterInput struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserService handles registration, authentication, and the four
// token flows (session, confirmation, password reset, email change).
type UserService struct {
	db                 *sql.DB
	repomanager        repomanager.RepositoryManager
	issuer             *auth.Issuer
	adminEmail         string
	authTokenValidity  time.Duration
	emailTokenValidity time.Duration
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                 db,
		repomanager:        m,
		issuer:             auth.NewIssuer([]byte(cfg.SecretKey)),
		adminEmail:         cfg.AdminEmail,
		authTokenValidity:  cfg.AuthTokenValidityDuration,
		emailTokenValidity: cfg.EmailTokenValidityDuration,
	}
}

// SeedRoles upserts the canonical role set. Safe to run on every
// startup.
func (s *UserService) SeedRoles(ctx context.Context) error {
	repo := s.repomanager.Roles(s.db)
	for _, role := range models.SeedRoles() {
		r := role
		if err := repo.Upsert(ctx, &r); err != nil {
			return fmt.Errorf("error seeding role %s: %w", role.Name, err)
		}
	}
	return nil
}

// Register creates a new account. The email and username must be
// unused; the password is stored as a bcrypt hash. The configured
// admin email receives the Administrator role, everyone else the
// default role.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if in.Email == "" {
		return nil, common.NewValidationError("user", "email")
	}
	if in.Username == "" {
		return nil, common.NewValidationError("user", "username")
	}
	if in.Password == "" {
		return nil, common.NewValidationError("user", "password")
	}

	user := &models.User{
		Email:      in.Email,
		Username:   in.Username,
		AvatarHash: models.AvatarHash(in.Email),
	}
	if err := user.SetPassword(in.Password); err != nil {
		return nil, common.ErrorInternal
	}

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		userRepo := s.repomanager.Users(tx)

		if _, err := userRepo.GetByEmail(ctx, in.Email); err == nil {
			return common.ErrorEmailTaken
		} else if !errors.Is(err, common.ErrorNotFound) {
			return err
		}
		if _, err := userRepo.GetByUsername(ctx, in.Username); err == nil {
			return common.ErrorUsernameTaken
		} else if !errors.Is(err, common.ErrorNotFound) {
			return err
		}

		role, err := s.roleFor(ctx, tx, in.Email)
		if err != nil {
			return err
		}
		user.RoleID = role.ID
		user.Role = role

		created, err := userRepo.Create(ctx, user)
		if err != nil {
			return fmt.Errorf("error creating user: %w", err)
		}
		user = created
		return nil
	}); err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate verifies email+password credentials and returns the
// account. Unknown emails and wrong passwords are indistinguishable
// to the caller.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}
	if !user.VerifyPassword(password) {
		return nil, common.ErrorUnauthorized
	}
	return user, nil
}

// Get returns a user together with the number of machines they have
// registered, since the profile projection links the collection and
// reports its size.
func (s *UserService) Get(ctx context.Context, id int64) (*models.User, int64, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.repomanager.Machines(s.db).CountByAuthor(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	return user, count, nil
}

// IssueAuthToken mints a session token. A non-positive validity falls
// back to the configured default, so callers can request shorter
// sessions but never unbounded ones.
func (s *UserService) IssueAuthToken(user *models.User, validity time.Duration) (string, time.Duration, error) {
	if validity <= 0 || validity > s.authTokenValidity {
		validity = s.authTokenValidity
	}
	token, err := s.issuer.Issue(auth.Claim{UserID: user.ID, Purpose: auth.PurposeSession}, validity)
	if err != nil {
		return "", 0, common.ErrorInternal
	}
	return token, validity, nil
}

// UserFromToken resolves a session token to its account and refreshes
// the account's last_seen stamp. Tokens minted for any other purpose
// are rejected.
func (s *UserService) UserFromToken(ctx context.Context, token string) (*models.User, error) {
	claim, err := s.issuer.Verify(token)
	if err != nil {
		return nil, err
	}
	if claim.Purpose != auth.PurposeSession {
		return nil, common.ErrorInvalidToken
	}
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, claim.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorInvalidToken
		}
		return nil, err
	}
	if err := repo.Ping(ctx, user.ID); err != nil {
		return nil, err
	}
	return user, nil
}

// IssueConfirmationToken mints a token for the account-confirmation
// flow.
func (s *UserService) IssueConfirmationToken(userID int64) (string, error) {
	return s.issuer.Issue(auth.Claim{UserID: userID, Purpose: auth.PurposeConfirm}, s.emailTokenValidity)
}

// IssueResetToken mints a password-reset token for the account behind
// the given email.
func (s *UserService) IssueResetToken(ctx context.Context, email string) (string, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return s.issuer.Issue(auth.Claim{UserID: user.ID, Purpose: auth.PurposeReset}, s.emailTokenValidity)
}

// IssueEmailChangeToken mints a token carrying the prospective new
// address. The address is only checked for availability at apply
// time.
func (s *UserService) IssueEmailChangeToken(userID int64, newEmail string) (string, error) {
	if newEmail == "" {
		return "", common.NewValidationError("user", "email")
	}
	return s.issuer.Issue(auth.Claim{
		UserID:   userID,
		Purpose:  auth.PurposeChangeEmail,
		NewEmail: newEmail,
	}, s.emailTokenValidity)
}

// ConfirmUser applies a confirmation token: the account named in the
// claim gets its confirmed flag set. Tokens for other purposes or for
// accounts that no longer exist fail with ErrorInvalidToken.
func (s *UserService) ConfirmUser(ctx context.Context, token string) error {
	claim, err := s.verifyPurpose(token, auth.PurposeConfirm)
	if err != nil {
		return err
	}
	if err := s.repomanager.Users(s.db).SetConfirmed(ctx, claim.UserID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorInvalidToken
		}
		return err
	}
	return nil
}

// ResetPassword applies a reset token, replacing the password of the
// account named in the claim.
func (s *UserService) ResetPassword(ctx context.Context, token, newPassword string) error {
	claim, err := s.verifyPurpose(token, auth.PurposeReset)
	if err != nil {
		return err
	}
	if newPassword == "" {
		return common.NewValidationError("user", "password")
	}

	user := &models.User{}
	if err := user.SetPassword(newPassword); err != nil {
		return common.ErrorInternal
	}

	if err := s.repomanager.Users(s.db).UpdatePassword(ctx, claim.UserID, user.PasswordHash); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorInvalidToken
		}
		return err
	}
	return nil
}

// ChangeEmail applies an email-change token. The new address must
// still be unregistered when the token is redeemed; the avatar hash
// is recomputed alongside the address.
func (s *UserService) ChangeEmail(ctx context.Context, token string) error {
	claim, err := s.verifyPurpose(token, auth.PurposeChangeEmail)
	if err != nil {
		return err
	}
	if claim.NewEmail == "" {
		return common.ErrorInvalidToken
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		if _, err := repo.GetByEmail(ctx, claim.NewEmail); err == nil {
			return common.ErrorEmailTaken
		} else if !errors.Is(err, common.ErrorNotFound) {
			return err
		}

		err := repo.UpdateEmail(ctx, claim.UserID, claim.NewEmail, models.AvatarHash(claim.NewEmail))
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorInvalidToken
		}
		return err
	})
}

func (s *UserService) verifyPurpose(token string, want auth.Purpose) (*auth.Claim, error) {
	claim, err := s.issuer.Verify(token)
	if err != nil {
		return nil, err
	}
	if claim.Purpose != want {
		return nil, common.ErrorInvalidToken
	}
	return claim, nil
}

func (s *UserService) roleFor(ctx context.Context, tx dbx.DBTX, email string) (*models.Role, error) {
	roleRepo := s.repomanager.Roles(tx)
	if s.adminEmail != "" && email == s.adminEmail {
		role, err := roleRepo.GetByPermissions(ctx, models.Permission(0xFF))
		if err == nil {
			return role, nil
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
	}
	return roleRepo.GetDefault(ctx)
}
