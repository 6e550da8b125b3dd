package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/finance_tracker_app/internal/apperrors"
	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	"github.com/SscSPs/finance_tracker_app/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserService_GetUserByID(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindUserByID", mock.Anything, "u1").Return(&domain.User{UserID: "u1", Email: "a@b.co"}, nil).Once()

		user, err := services.NewUserService(repo).GetUserByID(ctx, "u1")

		require.NoError(t, err)
		assert.Equal(t, "a@b.co", user.Email)
		repo.AssertExpectations(t)
	})

	t.Run("not found passes through", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindUserByID", mock.Anything, "u2").Return(nil, apperrors.ErrNotFound).Once()

		_, err := services.NewUserService(repo).GetUserByID(ctx, "u2")

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("store error is wrapped", func(t *testing.T) {
		repo := new(MockUserRepository)
		dbErr := errors.New("pool exhausted")
		repo.On("FindUserByID", mock.Anything, "u3").Return(nil, dbErr).Once()

		_, err := services.NewUserService(repo).GetUserByID(ctx, "u3")

		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, apperrors.ErrNotFound)
	})
}
