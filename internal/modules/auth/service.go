package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"blogapi/internal/domain"
	"blogapi/internal/pkg/password"
	"blogapi/internal/repository"
)

const (
	maxFailedLoginAttempts = 5
	lockoutDuration        = 15 * time.Minute
)

type jwtService interface {
	GenerateToken(userID int64, role string) (string, error)
}

// Service contains all business logic for authentication.
type Service struct {
	users              UserRepositoryInterface
	refreshTokens      RefreshTokenRepositoryInterface
	audit              AuditRecorder
	jwt                jwtService
	refreshTokenPepper string
	refreshTTL         time.Duration
}

type LoginResult struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
}

type RefreshResult struct {
	AccessToken  string
	RefreshToken string
}

func NewService(
	users UserRepositoryInterface,
	refreshTokens RefreshTokenRepositoryInterface,
	audit AuditRecorder,
	jwt jwtService,
	refreshTokenPepper string,
	refreshTTL time.Duration,
) *Service {
	return &Service{
		users:              users,
		refreshTokens:      refreshTokens,
		audit:              audit,
		jwt:                jwt,
		refreshTokenPepper: refreshTokenPepper,
		refreshTTL:         refreshTTL,
	}
}

// Register creates a new user. Uniqueness of username and email rests on the
// database constraints, so a race between two identical registrations leaves
// exactly one winner.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	if err := password.CheckPolicy(req.Password); err != nil {
		return nil, err
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}

	if err := s.users.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateUsername):
			return nil, ErrUsernameTaken
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	_ = s.audit.Record(ctx, &user.ID, "user.register", user.Username)

	user.PasswordHash = ""
	return user, nil
}

// Login verifies credentials and issues an access/refresh token pair.
// Unknown username and wrong password both come back as
// ErrInvalidCredentials so the endpoint cannot be used to enumerate users.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = s.audit.Record(ctx, nil, "user.login_failed", "unknown username")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	now := time.Now()
	if user.LockedUntil != nil {
		if user.LockedUntil.After(now) {
			return nil, ErrAccountLocked
		}
		// Lock expired: the failure window starts over.
		user.FailedLoginAttempts = 0
	}

	if !password.Verify(req.Password, user.PasswordHash) {
		failedAttempts := user.FailedLoginAttempts + 1
		var lockedUntil *time.Time
		if failedAttempts >= maxFailedLoginAttempts {
			t := now.Add(lockoutDuration)
			lockedUntil = &t
		}
		if updateErr := s.users.RecordFailedLogin(ctx, user.ID, failedAttempts, lockedUntil); updateErr != nil {
			return nil, updateErr
		}
		_ = s.audit.Record(ctx, &user.ID, "user.login_failed", "bad password")
		if lockedUntil != nil {
			return nil, ErrAccountLocked
		}
		return nil, ErrInvalidCredentials
	}

	if user.FailedLoginAttempts > 0 || user.LockedUntil != nil {
		if err := s.users.ResetLoginFailures(ctx, user.ID); err != nil {
			return nil, err
		}
	}

	accessToken, err := s.jwt.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}

	refreshRaw, err := s.issueRefreshToken(ctx, user.ID, now)
	if err != nil {
		return nil, err
	}

	_ = s.audit.Record(ctx, &user.ID, "user.login", user.Username)

	user.PasswordHash = ""
	return &LoginResult{User: user, AccessToken: accessToken, RefreshToken: refreshRaw}, nil
}

// Refresh rotates a refresh token: the presented token is revoked and
// replaced by a new one. A token that was already rotated is treated as
// stolen and every active token of the user is revoked.
func (s *Service) Refresh(ctx context.Context, refreshRaw string) (*RefreshResult, error) {
	hash := hashTokenWithPepper(refreshRaw, s.refreshTokenPepper)
	now := time.Now()

	current, err := s.refreshTokens.GetByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	if current.IsExpired(now) {
		return nil, ErrInvalidRefreshToken
	}

	if current.IsRevoked() {
		if err := s.refreshTokens.RevokeByUser(ctx, current.UserID); err != nil {
			return nil, err
		}
		_ = s.audit.Record(ctx, &current.UserID, "token.reuse_detected", "")
		return nil, ErrRefreshTokenReused
	}

	user, err := s.users.GetByID(ctx, current.UserID)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.jwt.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}

	newRaw, newHash, err := generateOpaqueRefreshToken(s.refreshTokenPepper)
	if err != nil {
		return nil, err
	}
	next := &domain.RefreshToken{
		UserID:    user.ID,
		TokenHash: newHash,
		ExpiresAt: now.Add(s.refreshTTL),
	}
	if err := s.refreshTokens.Create(ctx, next); err != nil {
		return nil, err
	}

	// Revoke is guarded by revoked_at IS NULL; zero rows affected means a
	// concurrent request consumed this token first.
	affected, err := s.refreshTokens.Revoke(ctx, current.ID, &next.ID)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		if err := s.refreshTokens.RevokeByUser(ctx, current.UserID); err != nil {
			return nil, err
		}
		_ = s.audit.Record(ctx, &current.UserID, "token.reuse_detected", "")
		return nil, ErrRefreshTokenReused
	}

	return &RefreshResult{AccessToken: accessToken, RefreshToken: newRaw}, nil
}

// Logout revokes the presented refresh token. Unknown tokens are a no-op.
func (s *Service) Logout(ctx context.Context, refreshRaw string) error {
	hash := hashTokenWithPepper(refreshRaw, s.refreshTokenPepper)

	token, err := s.refreshTokens.GetByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	_, err = s.refreshTokens.Revoke(ctx, token.ID, nil)
	return err
}

func (s *Service) GetCurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// ChangePassword verifies the current password, stores the new hash and
// revokes every refresh token of the user, so stolen sessions die with the
// old password. Outstanding access tokens expire on their own short TTL.
func (s *Service) ChangePassword(ctx context.Context, userID int64, req ChangePasswordRequest) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if !password.Verify(req.CurrentPassword, user.PasswordHash) {
		return ErrInvalidCredentials
	}
	if err := password.CheckPolicy(req.NewPassword); err != nil {
		return err
	}

	hash, err := password.Hash(req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}
	if err := s.refreshTokens.RevokeByUser(ctx, userID); err != nil {
		return err
	}

	_ = s.audit.Record(ctx, &userID, "user.password_changed", "")
	return nil
}

func (s *Service) issueRefreshToken(ctx context.Context, userID int64, now time.Time) (string, error) {
	raw, hash, err := generateOpaqueRefreshToken(s.refreshTokenPepper)
	if err != nil {
		return "", err
	}
	token := &domain.RefreshToken{
		UserID:    userID,
		TokenHash: hash,
		ExpiresAt: now.Add(s.refreshTTL),
	}
	if err := s.refreshTokens.Create(ctx, token); err != nil {
		return "", err
	}
	return raw, nil
}

func generateOpaqueRefreshToken(pepper string) (raw string, hash string, err error) {
	buf := make([]byte, 32)
	if _, err = rand.Read(buf); err != nil {
		return "", "", err
	}
	raw = hex.EncodeToString(buf)
	hash = hashTokenWithPepper(raw, pepper)
	return raw, hash, nil
}

func hashTokenWithPepper(raw, pepper string) string {
	sum := sha256.Sum256([]byte(raw + pepper))
	return hex.EncodeToString(sum[:])
}
