package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/acmedash/acmedash/pkg/validator"
)

const testSecret = "test-secret-32-chars-long-123456"

// minCost keeps bcrypt fast in tests.
const minCost = bcrypt.MinCost

func hashOf(t *testing.T, password string) []byte {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), minCost)
	require.NoError(t, err)
	return hash
}

func TestPasswordService_Authenticate(t *testing.T) {
	t.Parallel()

	t.Run("succeeds with correct credentials", func(t *testing.T) {
		t.Parallel()

		storage := &MockPasswordStorage{}
		svc := NewPasswordService(storage, newMemoryConsumer(), testSecret, WithBcryptCost(minCost))

		user := &User{ID: uuid.New(), Email: "user@example.com", AuthMethod: MethodPassword}
		storage.On("GetUserByEmail", mock.Anything, "user@example.com").Return(user, nil)
		storage.On("GetPasswordHash", mock.Anything, user.ID).Return(hashOf(t, "secret99"), nil)

		got, err := svc.Authenticate(context.Background(), "user@example.com", "secret99")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		storage.AssertExpectations(t)
	})

	t.Run("normalizes email before lookup", func(t *testing.T) {
		t.Parallel()

		storage := &MockPasswordStorage{}
		svc := NewPasswordService(storage, newMemoryConsumer(), testSecret)

		user := &User{ID: uuid.New(), Email: "user@example.com"}
		storage.On("GetUserByEmail", mock.Anything, "user@example.com").Return(user, nil)
		storage.On("GetPasswordHash", mock.Anything, user.ID).Return(hashOf(t, "secret99"), nil)

		_, err := svc.Authenticate(context.Background(), "  User@EXAMPLE.com ", "secret99")
		require.NoError(t, err)
		storage.AssertExpectations(t)
	})

	t.Run("malformed email fails validation without store contact", func(t *testing.T) {
		t.Parallel()

		storage := &MockPasswordStorage{}
		svc := NewPasswordService(storage, newMemoryConsumer(), testSecret)

		_, err := svc.Authenticate(context.Background(), "not-an-email", "whatever")
		require.Error(t, err)

		ve := validator.Extract(err)
		require.NotNil(t, ve)
		assert.True(t, ve.Has("email"))
		storage.AssertNotCalled(t, "GetUserByEmail", mock.Anything, mock.Anything)
	})

	t.Run("empty password fails validation without store contact", func(t *testing.T) {
		t.Parallel()

		storage := &MockPasswordStorage{}
		svc := NewPasswordService(storage, newMemoryConsumer(), testSecret)

		_, err := svc.Authenticate(context.Background(), "user@example.com", "")
		require.Error(t, err)
		assert.True(t, validator.Extract(err).Has("password"))
		storage.AssertNotCalled(t, "GetUserByEmail", mock.Anything, mock.Anything)
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		t.Parallel()

		unknownStorage := &MockPasswordStorage{}
		unknownStorage.On("GetUserByEmail", mock.Anything, "ghost@example.com").Return(nil, ErrUserNotFound)
		svcUnknown := NewPasswordService(unknownStorage, newMemoryConsumer(), testSecret)
		_, errUnknown := svcUnknown.Authenticate(context.Background(), "ghost@example.com", "whatever")

		wrongStorage := &MockPasswordStorage{}
		user := &User{ID: uuid.New(), Email: "user@example.com"}
		wrongStorage.On("GetUserByEmail", mock.Anything, "user@example.com").Return(user, nil)
		wrongStorage.On("GetPasswordHash", mock.Anything, user.ID).Return(hashOf(t, "correct-password"), nil)
		svcWrong := NewPasswordService(wrongStorage, newMemoryConsumer(), testSecret)
		_, errWrong := svcWrong.Authenticate(context.Background(), "user@example.com", "wrong-password")

		require.Error(t, errUnknown)
		require.Error(t, errWrong)
		assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
		assert.ErrorIs(t, errWrong, ErrInvalidCredentials)
		assert.Equal(t, errUnknown.Error(), errWrong.Error())
	})
}

func TestPasswordService_Register(t *testing.T) {
	t.Parallel()

	t.Run("creates unverified user and stores hash", func(t *testing.T) {
		t.Parallel()

		storage := &MockPasswordStorage{}
		svc := NewPasswordService(storage, newMemoryConsumer(), testSecret, WithBcryptCost(minCost))

		storage.On("GetUserByEmail", mock.Anything, "new@example.com").Return(nil, ErrUserNotFound)
		storage.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *User) bool {
			return u.Email == "new@example.com" && u.AuthMethod == MethodPassword && !u.IsVerified
		})).Return(nil)
		storage.On("StorePasswordHash", mock.Anything, mock.AnythingOfType("uuid.UUID"), mock.AnythingOfType("[]uint8")).Return(nil)

		user, err := svc.Register(context.Background(), "new@example.com", "secret99")
		require.NoError(t, err)
		assert.False(t, user.IsVerified)
		storage.AssertExpectations(t)
	})

	t.Run("rejects short password before store contact", func(t *testing.T) {
		t.Parallel()

		storage := &MockPasswordStorage{}
		svc := NewPasswordService(storage, newMemoryConsumer(), testSecret)

		_, err := svc.Register(context.Background(), "new@example.com", "123")
		require.Error(t, err)
		assert.True(t, validator.Extract(err).Has("password"))
		storage.AssertNotCalled(t, "GetUserByEmail", mock.Anything, mock.Anything)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		t.Parallel()

		storage := &MockPasswordStorage{}
		svc := NewPasswordService(storage, newMemoryConsumer(), testSecret)

		existing := &User{ID: uuid.New(), Email: "taken@example.com"}
		storage.On("GetUserByEmail", mock.Anything, "taken@example.com").Return(existing, nil)

		_, err := svc.Register(context.Background(), "taken@example.com", "secret99")
		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	})

	t.Run("cleans up user when hash storage fails", func(t *testing.T) {
		t.Parallel()

		storage := &MockPasswordStorage{}
		svc := NewPasswordService(storage, newMemoryConsumer(), testSecret, WithBcryptCost(minCost))

		storage.On("GetUserByEmail", mock.Anything, "new@example.com").Return(nil, ErrUserNotFound)
		storage.On("CreateUser", mock.Anything, mock.Anything).Return(nil)
		storage.On("StorePasswordHash", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)
		storage.On("DeleteUser", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(nil)

		_, err := svc.Register(context.Background(), "new@example.com", "secret99")
		require.Error(t, err)
		storage.AssertCalled(t, "DeleteUser", mock.Anything, mock.AnythingOfType("uuid.UUID"))
	})
}

func TestPasswordService_ForgotPassword(t *testing.T) {
	t.Parallel()

	t.Run("issues recovery token for known email", func(t *testing.T) {
		t.Parallel()

		storage := &MockPasswordStorage{}
		svc := NewPasswordService(storage, newMemoryConsumer(), testSecret, WithResetTokenTTL(30*time.Minute))

		user := &User{ID: uuid.New(), Email: "user@example.com"}
		storage.On("GetUserByEmail", mock.Anything, "user@example.com").Return(user, nil)

		req, err := svc.ForgotPassword(context.Background(), "user@example.com")
		require.NoError(t, err)
		assert.Equal(t, "user@example.com", req.Email)
		assert.NotEmpty(t, req.Token)
		assert.WithinDuration(t, time.Now().Add(30*time.Minute), req.ExpiresAt, 5*time.Second)
	})

	t.Run("unknown email returns error for logging", func(t *testing.T) {
		t.Parallel()

		storage := &MockPasswordStorage{}
		svc := NewPasswordService(storage, newMemoryConsumer(), testSecret)

		storage.On("GetUserByEmail", mock.Anything, "ghost@example.com").Return(nil, ErrUserNotFound)

		_, err := svc.ForgotPassword(context.Background(), "ghost@example.com")
		assert.Error(t, err)
	})
}

func TestPasswordService_ResetPassword(t *testing.T) {
	t.Parallel()

	setup := func(t *testing.T) (PasswordAuthenticator, *MockPasswordStorage, string) {
		t.Helper()

		storage := &MockPasswordStorage{}
		svc := NewPasswordService(storage, newMemoryConsumer(), testSecret, WithBcryptCost(minCost))

		user := &User{ID: uuid.New(), Email: "user@example.com"}
		storage.On("GetUserByEmail", mock.Anything, "user@example.com").Return(user, nil)

		req, err := svc.ForgotPassword(context.Background(), "user@example.com")
		require.NoError(t, err)
		return svc, storage, req.Token
	}

	t.Run("resets password with a valid token", func(t *testing.T) {
		t.Parallel()

		svc, storage, tok := setup(t)
		storage.On("StorePasswordHash", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		user, err := svc.ResetPassword(context.Background(), tok, "brand-new-pass")
		require.NoError(t, err)
		assert.Equal(t, "user@example.com", user.Email)
	})

	t.Run("second reset with the same token fails", func(t *testing.T) {
		t.Parallel()

		svc, storage, tok := setup(t)
		storage.On("StorePasswordHash", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		_, err := svc.ResetPassword(context.Background(), tok, "brand-new-pass")
		require.NoError(t, err)

		_, err = svc.ResetPassword(context.Background(), tok, "another-pass")
		assert.ErrorIs(t, err, ErrTokenAlreadyUsed)
	})

	t.Run("rejects tampered token", func(t *testing.T) {
		t.Parallel()

		svc, _, tok := setup(t)
		_, err := svc.ResetPassword(context.Background(), tok+"x", "brand-new-pass")
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("rejects short replacement password", func(t *testing.T) {
		t.Parallel()

		svc, _, tok := setup(t)
		_, err := svc.ResetPassword(context.Background(), tok, "123")
		assert.True(t, validator.Extract(err).Has("password"))
	})

	t.Run("rejects expired token", func(t *testing.T) {
		t.Parallel()

		storage := &MockPasswordStorage{}
		svc := NewPasswordService(storage, newMemoryConsumer(), testSecret,
			WithBcryptCost(minCost),
			WithResetTokenTTL(-time.Minute),
		)

		user := &User{ID: uuid.New(), Email: "user@example.com"}
		storage.On("GetUserByEmail", mock.Anything, "user@example.com").Return(user, nil)

		req, err := svc.ForgotPassword(context.Background(), "user@example.com")
		require.NoError(t, err)

		_, err = svc.ResetPassword(context.Background(), req.Token, "brand-new-pass")
		assert.ErrorIs(t, err, ErrTokenExpired)
	})
}
