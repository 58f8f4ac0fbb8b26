package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	usercmd "github.com/teamhub/server/internal/app/command/user"
	"github.com/teamhub/server/internal/domain/auth"
	"github.com/teamhub/server/internal/domain/collaboration"
	"github.com/teamhub/server/internal/domain/user"
)

// TokenPairDTO is the wire form of an issued token pair.
type TokenPairDTO struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int64     `json:"expires_in"`
	ExpiresAt    time.Time `json:"expires_at"`
}

func toTokenPairDTO(p *auth.TokenPair) *TokenPairDTO {
	return &TokenPairDTO{
		AccessToken:  p.AccessToken(),
		RefreshToken: p.RefreshToken(),
		TokenType:    p.TokenType(),
		ExpiresIn:    p.ExpiresIn(),
		ExpiresAt:    p.ExpiresAt(),
	}
}

// sessions issues token pairs and records their refresh halves.
type sessions struct {
	issuer auth.TokenIssuer
	store  auth.RefreshTokenStore
	now    func() time.Time
}

func (s *sessions) open(ctx context.Context, u *user.User) (*auth.TokenPair, error) {
	accessToken, expiresAt, err := s.issuer.GenerateAccessToken(u.ID(), u.Email())
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refresh, err := s.issuer.GenerateRefreshToken(u.ID())
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}
	if err := s.store.Store(ctx, u.ID(), refresh.Hash(), refresh.TTL(s.now())); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return auth.NewTokenPair(
		accessToken,
		refresh.Raw(),
		int64(s.issuer.AccessTokenExpiry().Seconds()),
		expiresAt,
	), nil
}

// LoginCommand represents a command to log in with email and password.
type LoginCommand struct {
	Email    string
	Password string
}

// LoginResult is the result of logging in.
type LoginResult struct {
	Tokens *TokenPairDTO    `json:"tokens"`
	User   *usercmd.UserDTO `json:"user"`
}

// LoginHandler handles LoginCommand.
type LoginHandler struct {
	users    user.Repository
	hasher   auth.PasswordHasher
	sessions *sessions
	logger   *zap.Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewLoginHandler creates a new handler.
func NewLoginHandler(
	users user.Repository,
	hasher auth.PasswordHasher,
	issuer auth.TokenIssuer,
	store auth.RefreshTokenStore,
	logger *zap.Logger,
) *LoginHandler {
	return &LoginHandler{
		users:    users,
		hasher:   hasher,
		sessions: &sessions{issuer: issuer, store: store, now: time.Now},
		logger:   logger,
	}
}

// Handle executes the command.
func (h *LoginHandler) Handle(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	email, err := collaboration.ParseEmail(cmd.Email)
	if err != nil {
		return nil, user.ErrInvalidCredentials
	}

	u, err := h.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			h.compareDummy(cmd.Password)
			return nil, user.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if err := h.hasher.Compare(u.PasswordHash(), cmd.Password); err != nil {
		return nil, user.ErrInvalidCredentials
	}
	if !u.CanLogin() {
		return nil, user.ErrAccountSuspended
	}

	pair, err := h.sessions.open(ctx, u)
	if err != nil {
		return nil, err
	}

	h.logger.Info("user logged in", zap.String("user_id", u.ID().String()))
	return &LoginResult{Tokens: toTokenPairDTO(pair), User: usercmd.ToDTO(u)}, nil
}

// compareDummy spends one hash comparison so an unknown email costs as much
// as a wrong password.
func (h *LoginHandler) compareDummy(password string) {
	h.dummyOnce.Do(func() {
		hash, err := h.hasher.Hash("teamhub-unknown-account")
		if err != nil {
			h.logger.Warn("dummy password hash failed", zap.Error(err))
			return
		}
		h.dummyHash = hash
	})
	if h.dummyHash != "" {
		_ = h.hasher.Compare(h.dummyHash, password)
	}
}

// RefreshTokensCommand represents a command to refresh tokens.
type RefreshTokensCommand struct {
	UserID       string
	RefreshToken string
}

// RefreshTokensHandler handles RefreshTokensCommand.
type RefreshTokensHandler struct {
	users    user.Repository
	sessions *sessions
}

// NewRefreshTokensHandler creates a new handler.
func NewRefreshTokensHandler(
	users user.Repository,
	issuer auth.TokenIssuer,
	store auth.RefreshTokenStore,
) *RefreshTokensHandler {
	return &RefreshTokensHandler{
		users:    users,
		sessions: &sessions{issuer: issuer, store: store, now: time.Now},
	}
}

// Handle rotates the refresh token: the presented one is revoked and a
// fresh pair is issued.
func (h *RefreshTokensHandler) Handle(ctx context.Context, cmd RefreshTokensCommand) (*TokenPairDTO, error) {
	userID, err := collaboration.ParseUserID(cmd.UserID)
	if err != nil || cmd.RefreshToken == "" {
		return nil, auth.ErrInvalidToken
	}

	hash := h.sessions.issuer.HashRefreshToken(cmd.RefreshToken)
	// Deleting the key is the claim; a concurrent rotation sees nothing left.
	claimed, err := h.sessions.store.Revoke(ctx, userID, hash)
	if err != nil {
		return nil, fmt.Errorf("revoke old token: %w", err)
	}
	if !claimed {
		return nil, auth.ErrRevokedToken
	}

	u, err := h.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, auth.ErrInvalidToken
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if !u.CanLogin() {
		return nil, user.ErrAccountSuspended
	}

	pair, err := h.sessions.open(ctx, u)
	if err != nil {
		return nil, err
	}
	return toTokenPairDTO(pair), nil
}

// LogoutCommand represents a command to logout.
type LogoutCommand struct {
	UserID string
}

// LogoutHandler handles LogoutCommand.
type LogoutHandler struct {
	store auth.RefreshTokenStore
}

// NewLogoutHandler creates a new handler.
func NewLogoutHandler(store auth.RefreshTokenStore) *LogoutHandler {
	return &LogoutHandler{store: store}
}

// Handle revokes every refresh token of the user.
func (h *LogoutHandler) Handle(ctx context.Context, cmd LogoutCommand) error {
	userID, err := collaboration.ParseUserID(cmd.UserID)
	if err != nil {
		return err
	}
	if err := h.store.RevokeAll(ctx, userID); err != nil {
		return fmt.Errorf("revoke tokens: %w", err)
	}
	return nil
}
