// Package services contains server-side business logic. UserService handles
// registration, login and the server-side sessions behind the cookie.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/oscardash/internal/common"
	"github.com/dmitrijs2005/oscardash/internal/cryptox"
	"github.com/dmitrijs2005/oscardash/internal/dbx"
	"github.com/dmitrijs2005/oscardash/internal/logging"
	"github.com/dmitrijs2005/oscardash/internal/server/auth"
	"github.com/dmitrijs2005/oscardash/internal/server/config"
	"github.com/dmitrijs2005/oscardash/internal/server/models"
	"github.com/dmitrijs2005/oscardash/internal/server/repositories/repomanager"
)

const sessionIDBytes = 32

// UserService provides authentication-related operations:
// - Register / Login: verify or create credentials and open a session
// - Logout: destroy the session
// - CurrentUser: resolve a cookie token to its user, sliding the session expiry
type UserService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	sessionSecret []byte
	sessionTTL    time.Duration
	now           func() time.Time
	logger        logging.Logger
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *UserService {
	return &UserService{
		db:            db,
		repomanager:   m,
		sessionSecret: []byte(cfg.SessionSecret),
		sessionTTL:    cfg.SessionTTL,
		now:           time.Now,
		logger:        logger.With("module", "user_service"),
	}
}

// SessionTTL is the lifetime of a session and of the cookie carrying it.
func (s *UserService) SessionTTL() time.Duration {
	return s.sessionTTL
}

// Register creates the account and opens a session for it. A taken username
// yields common.ErrorAlreadyExists and nothing is written.
func (s *UserService) Register(ctx context.Context, in models.NewUser) (*models.User, string, error) {
	birthdate := ""
	if in.Birthdate != "" {
		d, err := NormalizeDate(in.Birthdate)
		if err != nil {
			return nil, "", err
		}
		birthdate = d
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return nil, "", fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		UserName:  in.UserName,
		Password:  hash,
		Birthdate: birthdate,
		Email:     in.Email,
		Gender:    in.Gender,
		Country:   in.Country,
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)
		exists, err := repo.Exists(ctx, user.UserName)
		if err != nil {
			return err
		}
		if exists {
			return common.ErrorAlreadyExists
		}
		return repo.Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, "", common.ErrorAlreadyExists
		}
		return nil, "", fmt.Errorf("error creating user: %w", err)
	}

	token, err := s.openSession(ctx, user.UserName)
	if err != nil {
		return nil, "", err
	}

	user.Password = ""
	return user, token, nil
}

// Login checks the credentials and opens a new session. Unknown users and
// wrong passwords both yield common.ErrorInvalidCredentials.
func (s *UserService) Login(ctx context.Context, userName, password string) (*models.User, string, error) {
	if password == "" {
		return nil, "", common.ErrorInvalidCredentials
	}

	user, err := s.repomanager.Users(s.db).GetUserByLogin(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrorInvalidCredentials
		}
		return nil, "", fmt.Errorf("error loading user: %w", err)
	}

	if !cryptox.ComparePassword(password, user.Password) {
		return nil, "", common.ErrorInvalidCredentials
	}

	token, err := s.openSession(ctx, user.UserName)
	if err != nil {
		return nil, "", err
	}

	user.Password = ""
	return user, token, nil
}

// Logout destroys the session behind token. Empty, invalid and unknown
// tokens are not errors.
func (s *UserService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	sid, err := auth.GetSessionIDFromToken(token, s.sessionSecret)
	if err != nil {
		return nil
	}
	if err := s.repomanager.Sessions(s.db).Delete(ctx, sid); err != nil {
		return fmt.Errorf("error deleting session: %w", err)
	}
	return nil
}

// CurrentUser resolves token to its user and slides the session expiry
// forward. It returns a re-signed token matching the new expiry.
func (s *UserService) CurrentUser(ctx context.Context, token string) (*models.User, string, error) {
	if token == "" {
		return nil, "", common.ErrorUnauthorized
	}
	sid, err := auth.GetSessionIDFromToken(token, s.sessionSecret)
	if err != nil {
		return nil, "", common.ErrorUnauthorized
	}

	sessions := s.repomanager.Sessions(s.db)
	session, err := sessions.Find(ctx, sid)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrorUnauthorized
		}
		return nil, "", fmt.Errorf("error loading session: %w", err)
	}

	now := s.now()
	if !session.Expires.After(now) {
		// A failed delete leaves the row to the scheduled purge.
		if err := sessions.Delete(ctx, sid); err != nil {
			s.logger.Warn(ctx, "expired session delete failed", "error", err)
		}
		return nil, "", common.ErrorUnauthorized
	}

	user, err := s.repomanager.Users(s.db).GetUserByLogin(ctx, session.Data.UserName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrorUnauthorized
		}
		return nil, "", fmt.Errorf("error loading user: %w", err)
	}

	if err := sessions.Touch(ctx, sid, now.Add(s.sessionTTL)); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrorUnauthorized
		}
		return nil, "", fmt.Errorf("error extending session: %w", err)
	}

	refreshed, err := auth.GenerateToken(sid, s.sessionSecret, s.sessionTTL)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	user.Password = ""
	return user, refreshed, nil
}

// SetPassword replaces the stored hash for userName.
func (s *UserService) SetPassword(ctx context.Context, userName, password string) error {
	if userName == "" || password == "" {
		return common.ErrorValidation
	}
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}
	return s.repomanager.Users(s.db).UpdatePassword(ctx, userName, hash)
}

// PurgeExpiredSessions deletes every session past its expiry.
func (s *UserService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	return s.repomanager.Sessions(s.db).DeleteExpired(ctx, s.now())
}

func (s *UserService) openSession(ctx context.Context, userName string) (string, error) {
	sid, err := common.MakeRandHexString(sessionIDBytes)
	if err != nil {
		return "", common.ErrorInternal
	}

	session := &models.Session{
		ID:      sid,
		Expires: s.now().Add(s.sessionTTL),
		Data:    models.SessionData{UserName: userName},
	}
	if err := s.repomanager.Sessions(s.db).Create(ctx, session); err != nil {
		return "", fmt.Errorf("error creating session: %w", err)
	}

	token, err := auth.GenerateToken(sid, s.sessionSecret, s.sessionTTL)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}
