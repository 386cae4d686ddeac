package users

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/cvpro/internal/common"
	"github.com/dmitrijs2005/cvpro/internal/server/auth"
	"github.com/dmitrijs2005/cvpro/internal/server/config"
	"github.com/dmitrijs2005/cvpro/internal/server/refreshtokens"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	byEmail map[string]*User
	byID    map[string]*User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*User{}, byID: map[string]*User{}}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *User) (*User, error) {
	if _, ok := r.byEmail[user.Email]; ok {
		return nil, common.ErrorDuplicate
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	r.byEmail[user.Email] = user
	r.byID[user.ID] = user
	return user, nil
}

func (r *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetUserByID(ctx context.Context, id string) (*User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

type fakeTokenRepo struct {
	tokens map[string]*refreshtokens.RefreshToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: map[string]*refreshtokens.RefreshToken{}}
}

func (r *fakeTokenRepo) Create(ctx context.Context, userID, token string, validity time.Duration) error {
	r.tokens[token] = &refreshtokens.RefreshToken{UserID: userID, Token: token, ExpiresAt: time.Now().Add(validity)}
	return nil
}

func (r *fakeTokenRepo) Find(ctx context.Context, token string) (*refreshtokens.RefreshToken, error) {
	rt, ok := r.tokens[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return rt, nil
}

func (r *fakeTokenRepo) Delete(ctx context.Context, token string) error {
	delete(r.tokens, token)
	return nil
}

func newTestService() (*Service, *fakeUserRepo, *fakeTokenRepo, *config.Config) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	users := newFakeUserRepo()
	tokens := newFakeTokenRepo()
	return NewService(users, tokens, cfg), users, tokens, cfg
}

func TestRegisterAndLogin(t *testing.T) {
	s, _, _, cfg := newTestService()
	ctx := context.Background()

	user, pair, err := s.Register(ctx, " Chanda@Example.COM ", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "chanda@example.com", user.Email)
	require.NotNil(t, pair)

	claims, err := auth.ParseToken(pair.AccessToken, []byte(cfg.SecretKey))
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "chanda@example.com", claims.Email)

	got, err := s.Login(ctx, "chanda@example.com", "correct horse")
	require.NoError(t, err)
	assert.NotEmpty(t, got.AccessToken)
	assert.NotEmpty(t, got.RefreshToken)
}

func TestRegisterValidation(t *testing.T) {
	s, _, _, _ := newTestService()
	ctx := context.Background()

	_, _, err := s.Register(ctx, "not-an-email", "long enough pw")
	assert.ErrorIs(t, err, common.ErrorValidation)

	_, _, err = s.Register(ctx, "a@b.c", "short")
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	s, _, _, _ := newTestService()
	ctx := context.Background()

	_, _, err := s.Register(ctx, "dup@example.com", "password123")
	require.NoError(t, err)

	_, _, err = s.Register(ctx, "dup@example.com", "password456")
	assert.ErrorIs(t, err, common.ErrorDuplicate)
}

func TestLoginWrongPassword(t *testing.T) {
	s, _, _, _ := newTestService()
	ctx := context.Background()

	_, _, err := s.Register(ctx, "u@example.com", "password123")
	require.NoError(t, err)

	_, err = s.Login(ctx, "u@example.com", "password124")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	_, err = s.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestRefreshRotatesToken(t *testing.T) {
	s, _, tokens, _ := newTestService()
	ctx := context.Background()

	_, pair, err := s.Register(ctx, "r@example.com", "password123")
	require.NoError(t, err)

	next, err := s.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, next.RefreshToken)

	// the used token is gone
	_, ok := tokens.tokens[pair.RefreshToken]
	assert.False(t, ok)

	_, err = s.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, common.ErrRefreshTokenExpired)
}

func TestRefreshExpiredToken(t *testing.T) {
	s, _, tokens, _ := newTestService()
	ctx := context.Background()

	_, pair, err := s.Register(ctx, "e@example.com", "password123")
	require.NoError(t, err)

	tokens.tokens[pair.RefreshToken].ExpiresAt = time.Now().Add(-time.Minute)

	_, err = s.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, common.ErrRefreshTokenExpired)
}
