package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/teamhub/server/internal/domain/collaboration"
	"github.com/teamhub/server/internal/domain/user"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id collaboration.UserID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email collaboration.Email) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

type prefixHasher struct{}

func (prefixHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (prefixHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

func existingUser(t *testing.T) *user.User {
	t.Helper()
	email, err := collaboration.ParseEmail("ada@example.com")
	require.NoError(t, err)
	u, err := user.NewUser(email, "Ada", "hashed:password1", time.Now())
	require.NoError(t, err)
	return u
}

func TestRegisterHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user with hashed password", func(t *testing.T) {
		repo := new(mockUserRepo)
		repo.On("GetByEmail", ctx, collaboration.Email("ada@example.com")).Return(nil, user.ErrUserNotFound)
		repo.On("Create", ctx, mock.MatchedBy(func(u *user.User) bool {
			return u.PasswordHash() == "hashed:password1" && u.Email() == "ada@example.com"
		})).Return(nil)

		h := NewRegisterHandler(repo, prefixHasher{}, zap.NewNop())
		res, err := h.Handle(ctx, RegisterCommand{Email: " Ada@Example.com ", Password: "password1", Name: "Ada"})

		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", res.User.Email)
		assert.Equal(t, "Ada", res.User.Name)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := new(mockUserRepo)
		repo.On("GetByEmail", ctx, collaboration.Email("ada@example.com")).Return(existingUser(t), nil)

		h := NewRegisterHandler(repo, prefixHasher{}, zap.NewNop())
		_, err := h.Handle(ctx, RegisterCommand{Email: "ada@example.com", Password: "password1", Name: "Ada"})

		assert.ErrorIs(t, err, user.ErrEmailAlreadyRegistered)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("short password fails before lookup", func(t *testing.T) {
		repo := new(mockUserRepo)

		h := NewRegisterHandler(repo, prefixHasher{}, zap.NewNop())
		_, err := h.Handle(ctx, RegisterCommand{Email: "ada@example.com", Password: "short", Name: "Ada"})

		assert.ErrorIs(t, err, user.ErrPasswordTooShort)
		repo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	})

	t.Run("invalid email", func(t *testing.T) {
		h := NewRegisterHandler(new(mockUserRepo), prefixHasher{}, zap.NewNop())
		_, err := h.Handle(ctx, RegisterCommand{Email: "not-an-email", Password: "password1", Name: "Ada"})
		assert.ErrorIs(t, err, collaboration.ErrInvalidEmail)
	})

	t.Run("race on unique index surfaces as conflict", func(t *testing.T) {
		repo := new(mockUserRepo)
		repo.On("GetByEmail", ctx, mock.Anything).Return(nil, user.ErrUserNotFound)
		repo.On("Create", ctx, mock.Anything).Return(user.ErrEmailAlreadyRegistered)

		h := NewRegisterHandler(repo, prefixHasher{}, zap.NewNop())
		_, err := h.Handle(ctx, RegisterCommand{Email: "ada@example.com", Password: "password1", Name: "Ada"})
		assert.ErrorIs(t, err, user.ErrEmailAlreadyRegistered)
	})
}

func TestUpdateProfileHandler(t *testing.T) {
	ctx := context.Background()
	u := existingUser(t)

	repo := new(mockUserRepo)
	repo.On("GetByID", ctx, u.ID()).Return(u, nil)
	repo.On("Update", ctx, mock.MatchedBy(func(updated *user.User) bool {
		return updated.Name() == "Ada Lovelace"
	})).Return(nil)

	name := "Ada Lovelace"
	res, err := NewUpdateProfileHandler(repo).Handle(ctx, UpdateProfileCommand{UserID: u.ID().String(), Name: &name})

	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", res.Name)
	repo.AssertExpectations(t)
}

func TestDirectory_FindByID(t *testing.T) {
	ctx := context.Background()
	u := existingUser(t)
	missing := collaboration.NewUserID()

	repo := new(mockUserRepo)
	repo.On("GetByID", ctx, u.ID()).Return(u, nil)
	repo.On("GetByID", ctx, missing).Return(nil, user.ErrUserNotFound)

	dir := NewDirectory(repo)

	info, err := dir.FindByID(ctx, u.ID())
	require.NoError(t, err)
	assert.Equal(t, u.Email(), info.Email)

	_, err = dir.FindByID(ctx, missing)
	assert.ErrorIs(t, err, collaboration.ErrUserNotFound)
}
