package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"bulkmart/internal/auth"
	"bulkmart/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	hash, err := auth.HashPassword("s3cret-pass")
	require.NoError(t, err)
	user := &model.User{ID: "r-1", Phone: "9800000001", Name: "Corner Store", Role: model.RoleRetailer, PasswordHash: hash}
	expiresAt := time.Now().Add(time.Hour).UTC()

	t.Run("Success", func(t *testing.T) {
		users := new(MockUserRepository)
		tokens := new(MockTokenIssuer)
		service := NewAuthService(users, tokens, zerolog.Nop())

		users.On("GetByPhone", ctx, "9800000001").Return(user, nil)
		tokens.On("Issue", user).Return("signed.jwt.token", expiresAt, nil)

		resp, err := service.Login(ctx, &model.LoginRequest{Phone: " 9800000001 ", Password: "s3cret-pass"})

		require.NoError(t, err)
		assert.Equal(t, "signed.jwt.token", resp.Token)
		assert.Equal(t, expiresAt, resp.ExpiresAt)
		assert.Equal(t, "r-1", resp.User.ID)
		users.AssertExpectations(t)
		tokens.AssertExpectations(t)
	})

	tests := []struct {
		name        string
		req         *model.LoginRequest
		mockUser    *model.User
		mockErr     error
		expectedErr error
	}{
		{name: "Nil request", req: nil, expectedErr: model.ErrInvalidCredentials},
		{name: "Blank phone", req: &model.LoginRequest{Phone: " ", Password: "x"}, expectedErr: model.ErrInvalidCredentials},
		{name: "Unknown phone", req: &model.LoginRequest{Phone: "9800000009", Password: "s3cret-pass"}, expectedErr: model.ErrInvalidCredentials},
		{name: "Wrong password", req: &model.LoginRequest{Phone: "9800000001", Password: "nope"}, mockUser: user, expectedErr: model.ErrInvalidCredentials},
		{
			name:        "Store down",
			req:         &model.LoginRequest{Phone: "9800000001", Password: "s3cret-pass"},
			mockErr:     errors.Join(model.ErrStoreUnavailable, errors.New("refused")),
			expectedErr: model.ErrStoreUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			tokens := new(MockTokenIssuer)
			service := NewAuthService(users, tokens, zerolog.Nop())

			users.On("GetByPhone", ctx, mock.AnythingOfType("string")).Return(tt.mockUser, tt.mockErr).Maybe()

			resp, err := service.Login(ctx, tt.req)

			assert.ErrorIs(t, err, tt.expectedErr)
			assert.Nil(t, resp)
			tokens.AssertNotCalled(t, "Issue", mock.Anything)
		})
	}
}

func TestMaskPhone(t *testing.T) {
	assert.Equal(t, "******0001", maskPhone("9800000001"))
	assert.Equal(t, "****", maskPhone("123"))
}
