package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"volunteerhub/internal/auth"
	apperrors "volunteerhub/internal/errors"
	"volunteerhub/internal/metrics"
	"volunteerhub/internal/model"
	"volunteerhub/internal/repository"
	"volunteerhub/internal/validation"
)

// SignInLinkExpiry bounds how long a mailed sign-in secret stays usable.
const SignInLinkExpiry = 24 * time.Hour

var (
	// ErrInvalidSignInLink is returned for unknown, used or expired sign-in secrets.
	ErrInvalidSignInLink = &apperrors.AuthorizationError{
		Reason:  apperrors.ReasonUnauthenticated,
		Message: "invalid or expired sign-in link",
	}
	// ErrInvalidRefreshToken is returned when refresh token is invalid or expired.
	ErrInvalidRefreshToken = &apperrors.AuthorizationError{
		Reason:  apperrors.ReasonUnauthenticated,
		Message: "invalid or expired refresh token",
	}
)

// LinkSender delivers the sign-in secret to the owner of an email address.
type LinkSender interface {
	SendSignInLink(ctx context.Context, email, secret string, expires time.Time) error
}

type logLinkSender struct {
	log zerolog.Logger
}

// NewLogLinkSender returns a LinkSender that only logs the secret. It is
// meant for development setups without mail delivery.
func NewLogLinkSender(log zerolog.Logger) LinkSender {
	return &logLinkSender{log: log}
}

func (s *logLinkSender) SendSignInLink(_ context.Context, email, secret string, expires time.Time) error {
	s.log.Info().
		Str("email", email).
		Str("token", secret).
		Time("expires", expires).
		Msg("sign-in link issued")
	return nil
}

// SignInResult is returned by a completed sign-in.
type SignInResult struct {
	User         *model.User `json:"user"`
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	ExpiresIn    int64       `json:"expiresIn"`
}

// AuthService handles email sign-in, token refresh and linked accounts.
type AuthService interface {
	RequestSignIn(ctx context.Context, input validation.EmailSignInInput) error
	VerifySignIn(ctx context.Context, input validation.EmailVerifyInput) (*SignInResult, error)
	Refresh(ctx context.Context, input validation.RefreshInput) (accessToken string, err error)
	// Logout ends the session of the refresh token and revokes access,
	// which may be nil for anonymous calls.
	Logout(ctx context.Context, input validation.RefreshInput, access *auth.Claims) error
	LinkAccount(ctx context.Context, input validation.AccountCreateInput) (*model.Account, error)
	Accounts(ctx context.Context) ([]model.Account, error)
	// PurgeExpired removes verification tokens past their expiry.
	PurgeExpired(ctx context.Context) (int64, error)
}

type authService struct {
	users      repository.UserRepository
	creds      repository.CredentialRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
	sender     LinkSender
	log        zerolog.Logger
	now        func() time.Time
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	users repository.UserRepository,
	creds repository.CredentialRepository,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	sender LinkSender,
	log zerolog.Logger,
) AuthService {
	return &authService{
		users:      users,
		creds:      creds,
		jwtService: jwtService,
		tokenStore: tokenStore,
		sender:     sender,
		log:        log,
		now:        time.Now,
	}
}

func digest(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

func newSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// RequestSignIn stores the digest of a fresh secret and hands the secret
// to the link sender.
func (s *authService) RequestSignIn(ctx context.Context, input validation.EmailSignInInput) (err error) {
	defer func() { metrics.SignIn("request", err) }()

	if err := validation.Check(input); err != nil {
		return err
	}
	email := validation.NormalizeEmail(input.Email)

	secret, err := newSecret()
	if err != nil {
		return fmt.Errorf("generate sign-in secret: %w", err)
	}
	expires := s.now().UTC().Add(SignInLinkExpiry)
	token := &model.VerificationToken{Identifier: email, Token: digest(secret), Expires: expires}
	if err := s.creds.CreateVerificationToken(ctx, token); err != nil {
		return fmt.Errorf("store verification token: %w", err)
	}

	if err := s.sender.SendSignInLink(ctx, email, secret, expires); err != nil {
		return fmt.Errorf("send sign-in link: %w", err)
	}
	return nil
}

// VerifySignIn consumes the sign-in secret, creating the user on first
// sign-in, and opens a session.
func (s *authService) VerifySignIn(ctx context.Context, input validation.EmailVerifyInput) (res *SignInResult, err error) {
	defer func() { metrics.SignIn("verify", err) }()

	if err := validation.Check(input); err != nil {
		return nil, err
	}
	email := validation.NormalizeEmail(input.Email)
	now := s.now().UTC()

	token, err := s.creds.ConsumeVerificationToken(ctx, email, digest(input.Token))
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, ErrInvalidSignInLink
		}
		return nil, fmt.Errorf("consume verification token: %w", err)
	}
	if token.Expired(now) {
		return nil, ErrInvalidSignInLink
	}

	user, err := s.verifiedUser(ctx, email, now)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.jwtService.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	session := &model.Session{SessionToken: tokenID, UserID: user.ID, Expires: now.Add(auth.RefreshTokenExpiry)}
	if err := s.creds.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	caller := auth.Caller{ID: user.ID, Email: user.Email}
	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, caller, auth.RefreshTokenExpiry); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("signed in")
	return &SignInResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(auth.AccessTokenExpiry.Seconds()),
	}, nil
}

// verifiedUser returns the user for email, creating it on first sign-in and
// stamping the verification time.
func (s *authService) verifiedUser(ctx context.Context, email string, now time.Time) (*model.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if apperrors.IsNotFound(err) {
		user = &model.User{Email: email, EmailVerified: &now}
		err = s.users.Create(ctx, user)
		if apperrors.IsConflict(err) {
			// A concurrent first sign-in created the row.
			user, err = s.users.FindByEmail(ctx, email)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("resolve user: %w", err)
	}

	if user.EmailVerified == nil {
		user, err = s.users.Update(ctx, user.ID, func(u *model.User) error {
			u.EmailVerified = &now
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("mark email verified: %w", err)
		}
	}
	return user, nil
}

// Refresh validates a refresh token against its session and returns a new
// access token.
func (s *authService) Refresh(ctx context.Context, input validation.RefreshInput) (token string, err error) {
	defer func() { metrics.SignIn("refresh", err) }()

	if err := validation.Check(input); err != nil {
		return "", err
	}
	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	stored, err := s.tokenStore.GetRefreshToken(ctx, claims.ID)
	if err != nil || stored.ID != claims.UserID {
		return "", ErrInvalidRefreshToken
	}

	session, err := s.creds.FindSession(ctx, claims.ID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return "", ErrInvalidRefreshToken
		}
		return "", fmt.Errorf("find session: %w", err)
	}
	if !s.now().Before(session.Expires) {
		return "", ErrInvalidRefreshToken
	}

	accessToken, err := s.jwtService.GenerateAccessToken(claims.UserID, claims.Email)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, nil
}

func (s *authService) Logout(ctx context.Context, input validation.RefreshInput, access *auth.Claims) error {
	if err := validation.Check(input); err != nil {
		return err
	}
	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		return ErrInvalidRefreshToken
	}

	if err := s.creds.DeleteSession(ctx, claims.ID); err != nil && !apperrors.IsNotFound(err) {
		return fmt.Errorf("delete session: %w", err)
	}
	if err := s.tokenStore.DeleteRefreshToken(ctx, claims.ID); err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}

	if access != nil {
		if err := s.tokenStore.BlacklistAccessToken(ctx, access.ID, access.Remaining(s.now())); err != nil {
			return fmt.Errorf("blacklist access token: %w", err)
		}
	}
	return nil
}

func (s *authService) LinkAccount(ctx context.Context, input validation.AccountCreateInput) (*model.Account, error) {
	caller, err := auth.Require(ctx)
	if err != nil {
		return nil, err
	}
	if err := validation.Check(input); err != nil {
		return nil, err
	}
	account := input.Model(caller.ID)
	if err := s.creds.CreateAccount(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *authService) Accounts(ctx context.Context) ([]model.Account, error) {
	caller, err := auth.Require(ctx)
	if err != nil {
		return nil, err
	}
	return s.creds.FindAccountsByUser(ctx, caller.ID)
}

func (s *authService) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := s.creds.DeleteExpiredVerificationTokens(ctx, s.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("purge verification tokens: %w", err)
	}
	metrics.VerificationTokensPurged.Add(float64(n))
	if n > 0 {
		s.log.Debug().Int64("count", n).Msg("purged expired verification tokens")
	}
	return n, nil
}

