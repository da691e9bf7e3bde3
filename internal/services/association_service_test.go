package services

import (
	"context"
	"testing"

	"github.com/justsurfingit/savvy/internal/dtos"
	apperrors "github.com/justsurfingit/savvy/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddSavedPostIsVisibleFromBothSides(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.mustUser(t, "Ada", "al123")
	p := env.mustPost(t, "Tutor")

	require.NoError(t, env.Associations.AddSavedPost(ctx, u.ID, p.ID))

	got, err := env.Users.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{p.ID}, postIDs(got.SavedPosts))
	assert.Empty(t, got.AppliedPosts)

	savers, err := env.Associations.SaversOf(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{u.ID}, userIDs(savers))
}

func TestAddSavedPostTwiceKeepsOneEdge(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.mustUser(t, "Ada", "al123")
	p := env.mustPost(t, "Tutor")

	require.NoError(t, env.Associations.AddSavedPost(ctx, u.ID, p.ID))
	require.NoError(t, env.Associations.AddSavedPost(ctx, u.ID, p.ID))

	got, err := env.Users.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{p.ID}, postIDs(got.SavedPosts))

	var rows int64
	require.NoError(t, env.DB.Table("user_saved_posts").Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}

func TestRemoveSavedPostRestoresPreviousState(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.mustUser(t, "Ada", "al123")
	kept := env.mustPost(t, "Tutor")
	p := env.mustPost(t, "Grader")
	require.NoError(t, env.Associations.AddSavedPost(ctx, u.ID, kept.ID))

	before, err := env.Users.GetUser(ctx, u.ID)
	require.NoError(t, err)

	require.NoError(t, env.Associations.AddSavedPost(ctx, u.ID, p.ID))
	require.NoError(t, env.Associations.RemoveSavedPost(ctx, u.ID, p.ID))

	after, err := env.Users.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, dtos.NewUserResponse(before), dtos.NewUserResponse(after))

	savers, err := env.Associations.SaversOf(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, savers)
}

func TestRemoveMissingEdgeFails(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.mustUser(t, "Ada", "al123")
	p := env.mustPost(t, "Tutor")
	tag := env.mustTag(t, "field", "Research")

	err := env.Associations.RemoveSavedPost(ctx, u.ID, p.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrTypeEdgeNotFound), "got %v", err)

	// An applied edge does not satisfy a saved removal.
	require.NoError(t, env.Associations.AddAppliedPost(ctx, u.ID, p.ID))
	err = env.Associations.RemoveSavedPost(ctx, u.ID, p.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrTypeEdgeNotFound))

	err = env.Associations.RemoveTagFromUser(ctx, u.ID, tag.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrTypeEdgeNotFound))

	err = env.Associations.RemoveTagFromPost(ctx, p.ID, tag.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrTypeEdgeNotFound))
}

func TestEdgeOperationsNameMissingSide(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.mustUser(t, "Ada", "al123")
	p := env.mustPost(t, "Tutor")

	err := env.Associations.AddSavedPost(ctx, 99, p.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrTypeNotFound))
	assert.Equal(t, "user 99 not found", apperrors.MessageOf(err))

	err = env.Associations.AddAppliedPost(ctx, u.ID, 77)
	assert.Equal(t, "post 77 not found", apperrors.MessageOf(err))

	err = env.Associations.RemoveTagFromUser(ctx, u.ID, 5)
	assert.Equal(t, "tag 5 not found", apperrors.MessageOf(err))

	err = env.Associations.AddTagToPost(ctx, 12, 1)
	assert.Equal(t, "post 12 not found", apperrors.MessageOf(err))
}

func TestAppliedPostsAndApplicants(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ada := env.mustUser(t, "Ada", "al123")
	bo := env.mustUser(t, "Bo", "bb22")
	p := env.mustPost(t, "Tutor")

	require.NoError(t, env.Associations.AddAppliedPost(ctx, bo.ID, p.ID))
	require.NoError(t, env.Associations.AddAppliedPost(ctx, ada.ID, p.ID))

	applicants, err := env.Associations.ApplicantsOf(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{ada.ID, bo.ID}, userIDs(applicants))

	savers, err := env.Associations.SaversOf(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, savers)

	require.NoError(t, env.Associations.RemoveAppliedPost(ctx, ada.ID, p.ID))
	applicants, err = env.Associations.ApplicantsOf(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{bo.ID}, userIDs(applicants))
}

func TestUserTags(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.mustUser(t, "Ada", "al123")
	remote := env.mustTag(t, "location", "Remote")
	paid := env.mustTag(t, "payment", "Paid")

	require.NoError(t, env.Associations.AddTagToUser(ctx, u.ID, paid.ID))
	require.NoError(t, env.Associations.AddTagToUser(ctx, u.ID, remote.ID))

	got, err := env.Users.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{remote.ID, paid.ID}, tagIDs(got.Tags))

	require.NoError(t, env.Associations.RemoveTagFromUser(ctx, u.ID, remote.ID))
	got, err = env.Users.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{paid.ID}, tagIDs(got.Tags))
}

func TestSharedTagAcrossPostsAndUsers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.mustUser(t, "Ada", "al123")
	a := env.mustPost(t, "Tutor")
	b := env.mustPost(t, "Grader")
	remote := env.mustTag(t, "location", "Remote")

	require.NoError(t, env.Associations.AddTagToPost(ctx, a.ID, remote.ID))
	require.NoError(t, env.Associations.AddTagToPost(ctx, b.ID, remote.ID))
	require.NoError(t, env.Associations.AddTagToUser(ctx, u.ID, remote.ID))

	// Removing one post's tag leaves the other post and the user alone.
	require.NoError(t, env.Associations.RemoveTagFromPost(ctx, a.ID, remote.ID))

	gotA, err := env.Posts.GetPost(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, gotA.Tags)
	gotB, err := env.Posts.GetPost(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{remote.ID}, tagIDs(gotB.Tags))
	user, err := env.Users.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{remote.ID}, tagIDs(user.Tags))
}

func TestSavedPostSerializationEndToEnd(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		env.mustPost(t, "Seeded")
	}
	u, err := env.Users.CreateUser(ctx, &dtos.CreateUserRequest{Name: "Ada", NetID: "al123"})
	require.NoError(t, err)
	require.Equal(t, uint(1), u.ID)

	require.NoError(t, env.Associations.AddSavedPost(ctx, 1, 5))

	got, err := env.Users.GetUser(ctx, 1)
	require.NoError(t, err)
	resp := dtos.NewUserResponse(got)
	require.Len(t, resp.PostsSaved, 1)
	assert.Equal(t, uint(5), resp.PostsSaved[0].ID)
	assert.Empty(t, resp.PostsApplied)
}
