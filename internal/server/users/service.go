// Package users implements account registration, login and token refresh.
//
// Passwords never reach storage directly: each account keeps a random salt
// and a verifier derived as SHA-256(Argon2id(password, salt)). Login
// compares verifiers in constant time.
package users

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/cvpro/internal/common"
	"github.com/dmitrijs2005/cvpro/internal/cryptox"
	"github.com/dmitrijs2005/cvpro/internal/server/auth"
	"github.com/dmitrijs2005/cvpro/internal/server/config"
	"github.com/dmitrijs2005/cvpro/internal/server/refreshtokens"
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type Service struct {
	repo                         Repository
	refreshTokenRepo             refreshtokens.Repository
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

func NewService(repo Repository, refreshTokenRepo refreshtokens.Repository, cfg *config.Config) *Service {
	return &Service{
		repo:                         repo,
		refreshTokenRepo:             refreshTokenRepo,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) makeVerifier(password string, salt []byte) []byte {
	key := cryptox.DeriveKey([]byte(password), salt)
	defer common.WipeByteArray(key)
	return cryptox.MakeVerifier(key)
}

// Register creates an account and returns a fresh token pair so the client
// is signed in immediately. A taken email yields common.ErrorDuplicate.
func (s *Service) Register(ctx context.Context, email, password string) (*User, *TokenPair, error) {

	email = normalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, nil, fmt.Errorf("%w: email", common.ErrorValidation)
	}
	if len(password) < 8 {
		return nil, nil, fmt.Errorf("%w: password must be at least 8 characters", common.ErrorValidation)
	}

	salt := common.GenerateRandByteArray(32)

	user := &User{
		Email:    email,
		Salt:     salt,
		Verifier: s.makeVerifier(password, salt),
	}

	user, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorDuplicate) {
			return nil, nil, common.ErrorDuplicate
		}
		return nil, nil, fmt.Errorf("error creating user: %v", err)
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, common.ErrorInternal
	}

	return user, pair, nil
}

func (s *Service) generateRefreshToken() (string, error) {
	token, err := common.MakeRandHexString(32)
	if err != nil {
		return "", err
	}
	return token, nil
}

func (s *Service) checkVerifier(verifier []byte, verifierCandidate []byte) bool {
	return subtle.ConstantTimeCompare(verifier, verifierCandidate) == 1
}

func (s *Service) issueTokens(ctx context.Context, user *User) (*TokenPair, error) {
	accessToken, err := auth.GenerateToken(user.ID, user.Email, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateRefreshToken()
	if err != nil {
		return nil, err
	}

	if err := s.refreshTokenRepo.Create(ctx, user.ID, refreshToken, s.refreshTokenValidityDuration); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*TokenPair, error) {

	user, err := s.repo.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if !s.checkVerifier(user.Verifier, s.makeVerifier(password, user.Salt)) {
		return nil, common.ErrorUnauthorized
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return pair, nil
}

// Refresh rotates a refresh token: the presented token is deleted and a new
// pair is issued. An unknown or expired token yields
// common.ErrRefreshTokenExpired so the client knows to log in again.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {

	rt, err := s.refreshTokenRepo.Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrRefreshTokenExpired
		}
		return nil, common.ErrorInternal
	}

	if time.Now().After(rt.ExpiresAt) {
		_ = s.refreshTokenRepo.Delete(ctx, rt.Token)
		return nil, common.ErrRefreshTokenExpired
	}

	user, err := s.repo.GetUserByID(ctx, rt.UserID)
	if err != nil {
		return nil, common.ErrorInternal
	}

	// one-time use
	if err := s.refreshTokenRepo.Delete(ctx, rt.Token); err != nil {
		return nil, common.ErrorInternal
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return pair, nil
}
