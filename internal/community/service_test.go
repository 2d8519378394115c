package community_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paddlespot/paddlespot/internal/community"
	"github.com/paddlespot/paddlespot/internal/store"
	"github.com/paddlespot/paddlespot/internal/validation"
)

func newService() *community.Service {
	return community.NewService(community.ServiceConfig{
		Collection: store.NewMemory[community.Post](),
		Logger:     zerolog.Nop(),
		Now:        func() time.Time { return time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC) },
	})
}

var alice = community.Author{UserID: "usr_alice", UserName: "Alice"}

func TestService_CreatePrepends(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	first, err := svc.Create(ctx, alice, community.NewPost{Content: "Premier message", Category: community.CategoryQuestion})
	require.NoError(t, err)
	second, err := svc.Create(ctx, community.Author{UserID: "usr_bob"}, community.NewPost{Content: "  Deuxième  "})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(first.ID, "pst_"))
	assert.Equal(t, community.CategoryDiscussion, second.Category)
	assert.Equal(t, community.DefaultUserName, second.UserName)
	assert.Equal(t, "Deuxième", second.Content)

	posts, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, second.ID, posts[0].ID)
	assert.Equal(t, first.ID, posts[1].ID)

	questions, err := svc.List(ctx, community.CategoryQuestion)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, first.ID, questions[0].ID)
}

func TestService_CreateValidation(t *testing.T) {
	svc := newService()

	tests := []struct {
		name  string
		input community.NewPost
		field string
	}{
		{"blank content", community.NewPost{Content: "   "}, "content"},
		{"unknown category", community.NewPost{Content: "Salut", Category: "spam"}, "category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), alice, tt.input)

			var verr *validation.Error
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Fields[0].Field)
		})
	}
}

func TestService_ToggleLike(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	post, err := svc.Create(ctx, alice, community.NewPost{Content: "Belle journée sur l'eau"})
	require.NoError(t, err)

	liked, err := svc.ToggleLike(ctx, post.ID, "usr_bob")
	require.NoError(t, err)
	assert.Equal(t, 1, liked.Likes)
	assert.Equal(t, []string{"usr_bob"}, liked.LikedBy)

	liked, err = svc.ToggleLike(ctx, post.ID, "usr_carol")
	require.NoError(t, err)
	assert.Equal(t, 2, liked.Likes)

	unliked, err := svc.ToggleLike(ctx, post.ID, "usr_bob")
	require.NoError(t, err)
	assert.Equal(t, 1, unliked.Likes)
	assert.Equal(t, []string{"usr_carol"}, unliked.LikedBy)

	_, err = svc.ToggleLike(ctx, "pst_missing", "usr_bob")
	assert.ErrorIs(t, err, community.ErrPostNotFound)
}

func TestService_Reply(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	post, err := svc.Create(ctx, alice, community.NewPost{Content: "Quel lac pour débuter ?", Category: community.CategoryQuestion})
	require.NoError(t, err)

	updated, err := svc.Reply(ctx, post.ID, community.Author{UserID: "usr_bob", UserName: "Bob"}, community.NewReply{Content: "Lac-Beauport !"})
	require.NoError(t, err)
	require.Len(t, updated.Replies, 1)
	assert.Equal(t, "Bob", updated.Replies[0].UserName)
	assert.True(t, strings.HasPrefix(updated.Replies[0].ID, "rpl_"))

	posts, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, posts[0].Replies, 1)

	_, err = svc.Reply(ctx, post.ID, alice, community.NewReply{Content: ""})
	var verr *validation.Error
	assert.True(t, errors.As(err, &verr))

	_, err = svc.Reply(ctx, "pst_missing", alice, community.NewReply{Content: "?"})
	assert.ErrorIs(t, err, community.ErrPostNotFound)
}
