package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/isolation-backend/internal/apperror"
	"github.com/rocketscienceinc/isolation-backend/internal/isolation"
	"github.com/rocketscienceinc/isolation-backend/internal/match"
	"github.com/rocketscienceinc/isolation-backend/internal/transcript"
	"github.com/rocketscienceinc/isolation-backend/testing/suite"
)

func newResult(id string) *match.Result {
	return &match.Result{
		ID:      id,
		Player1: "custom",
		Player2: "random",
		Winner:  isolation.Player1,
		History: []transcript.Turn{
			{isolation.Placed(3, 3), isolation.Placed(0, 0)},
			{isolation.Placed(1, 2)},
		},
		Termination: match.TerminationNormal,
		Width:       7,
		Height:      7,
		StartedAt:   time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		FinishedAt:  time.Date(2024, 1, 2, 3, 4, 6, 0, time.UTC),
	}
}

func TestMatchRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	matchRepo := NewMatchRepository(st.Storage)

	// When: CreateOrUpdate is called
	err := matchRepo.CreateOrUpdate(ctx, newResult("123"))

	// Then: no error should be returned and the match is indexed
	require.NoError(t, err)

	ids, err := matchRepo.ListIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"123"}, ids)
}

func TestMatchRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		matchRepo := NewMatchRepository(st.Storage)

		// Given: a stored match
		result := newResult("123")
		require.NoError(t, matchRepo.CreateOrUpdate(ctx, result))

		// When: GetByID is called with existing ID
		stored, err := matchRepo.GetByID(ctx, result.ID)

		// Then: the stored match should match the saved one, history included
		require.NoError(t, err)
		assert.Equal(t, result, stored)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		matchRepo := NewMatchRepository(st.Storage)

		// When: GetByID is called with non-existent ID
		stored, err := matchRepo.GetByID(ctx, "9999999")

		// Then: an ErrMatchNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrMatchNotFound)
		assert.Nil(t, stored)
	})
}

func TestMatchRepository_DeleteByID(t *testing.T) {
	t.Run("DeleteByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		matchRepo := NewMatchRepository(st.Storage)

		// Given: a stored match
		result := newResult("123")
		require.NoError(t, matchRepo.CreateOrUpdate(ctx, result))

		// When: DeleteByID is called with existing ID
		err := matchRepo.DeleteByID(ctx, result.ID)

		// Then: the match is gone and no longer listed
		require.NoError(t, err)

		_, err = matchRepo.GetByID(ctx, result.ID)
		require.ErrorIs(t, err, apperror.ErrMatchNotFound)

		ids, err := matchRepo.ListIDs(ctx)
		require.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("DeleteByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		matchRepo := NewMatchRepository(st.Storage)

		err := matchRepo.DeleteByID(ctx, "9999999")

		require.ErrorIs(t, err, apperror.ErrMatchNotFound)
	})
}
