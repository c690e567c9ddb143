package service

import (
	"context"
	"testing"

	"github.com/maheshrc27/dreamwall/internal/models"
	"github.com/maheshrc27/dreamwall/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdminFixture(t *testing.T) (AdminService, *postFixture) {
	t.Helper()
	f := newPostFixture(t)
	lucky := &luckyNumberService{pr: f.posts, cr: f.counter, intn: func(int) int { return 0 }}
	lotteries := &fakeLotteries{lotteries: map[int64]*models.Lottery{}}
	return NewAdminService(f.posts, f.users, &fakeComments{}, nil, nil, lotteries, lucky), f
}

func TestAdminUpdatePostSyncsLuckyNumber(t *testing.T) {
	svc, f := newAdminFixture(t)
	post := seedPost(t, f)

	lucky := "250"
	hidden := true
	updated, err := svc.UpdatePost(context.Background(), post.ID, transfer.AdminPostUpdate{LuckyNumber: &lucky, IsHidden: &hidden})
	require.NoError(t, err)

	assert.Equal(t, "250", updated.LuckyNumber)
	assert.True(t, updated.IsHidden)
	assert.Equal(t, []int{250}, f.counter.synced)
}

func TestAdminUpdatePostValidatesLuckyNumber(t *testing.T) {
	svc, f := newAdminFixture(t)
	post := seedPost(t, f)

	for _, bad := range []string{"000", "12", "1a2", "1000", "-12", "+12", "1.5", " 1.5"} {
		v := bad
		_, err := svc.UpdatePost(context.Background(), post.ID, transfer.AdminPostUpdate{LuckyNumber: &v})
		assert.ErrorIs(t, err, ErrInvalidInput, bad)
	}
	assert.Empty(t, f.counter.synced)
	stored, _, err := f.posts.GetByID(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.LuckyNumber)

	title := "x"
	_, err = svc.UpdatePost(context.Background(), 999, transfer.AdminPostUpdate{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdminRemoveUser(t *testing.T) {
	svc, f := newAdminFixture(t)

	require.NoError(t, svc.RemoveUser(context.Background(), f.owner.ID))
	assert.ErrorIs(t, svc.RemoveUser(context.Background(), f.owner.ID), ErrNotFound)
}

func TestAdminUpdateCommentNeedsFields(t *testing.T) {
	svc, _ := newAdminFixture(t)
	_, err := svc.UpdateComment(context.Background(), 1, transfer.AdminCommentUpdate{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAdminUpdatePostRejectsBlankTitle(t *testing.T) {
	svc, f := newAdminFixture(t)
	post := seedPost(t, f)

	blank := "   "
	_, err := svc.UpdatePost(context.Background(), post.ID, transfer.AdminPostUpdate{Title: &blank})
	assert.ErrorIs(t, err, ErrInvalidInput)

	stored, _, err := f.posts.GetByID(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, "t", stored.Title)
}

func TestAdminUpdateUserRejectsBlankName(t *testing.T) {
	svc, f := newAdminFixture(t)

	blank := " \t "
	_, err := svc.UpdateUser(context.Background(), f.owner.ID, transfer.AdminUserUpdate{Name: &blank})
	assert.ErrorIs(t, err, ErrInvalidInput)

	stored, _, err := f.users.GetByID(context.Background(), f.owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "Owner", stored.Name)
}
