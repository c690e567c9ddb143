package service

import (
	"context"
	"testing"

	"github.com/maheshrc27/dreamwall/internal/models"
	"github.com/maheshrc27/dreamwall/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateKeywordRejectsDuplicateWord(t *testing.T) {
	svc := NewKeywordService(newFakeKeywords())
	ctx := context.Background()

	kw, err := svc.Create(ctx, transfer.KeywordRequest{Word: "  scam ", Action: models.KeywordActionBlock})
	require.NoError(t, err)
	assert.Equal(t, "scam", kw.Word)

	_, err = svc.Create(ctx, transfer.KeywordRequest{Word: "scam"})
	assert.ErrorIs(t, err, ErrConflict)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestUpdateKeywordToTakenWord(t *testing.T) {
	repo := newFakeKeywords()
	svc := NewKeywordService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, transfer.KeywordRequest{Word: "scam"})
	require.NoError(t, err)
	other, err := svc.Create(ctx, transfer.KeywordRequest{Word: "spam"})
	require.NoError(t, err)

	word := "scam"
	err = svc.Update(ctx, other.ID, transfer.KeywordUpdate{Word: &word})
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, "spam", repo.keywords[other.ID].Word)

	blank := "   "
	err = svc.Update(ctx, other.ID, transfer.KeywordUpdate{Word: &blank})
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = svc.Update(ctx, 404, transfer.KeywordUpdate{Word: &word})
	assert.ErrorIs(t, err, ErrNotFound)
}
