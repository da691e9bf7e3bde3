package dtos

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/justsurfingit/savvy/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toMap(t *testing.T, v interface{}) map[string]interface{} {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestNewUserResponseEmptyUser(t *testing.T) {
	u := &models.User{ID: 1, Name: "Ada", NetID: "al123"}

	got := toMap(t, NewUserResponse(u))

	assert.Equal(t, map[string]interface{}{
		"id":            float64(1),
		"name":          "Ada",
		"netid":         "al123",
		"class_year":    nil,
		"posts_saved":   []interface{}{},
		"posts_applied": []interface{}{},
		"tags":          []interface{}{},
	}, got)
}

func TestNewUserResponseNeverSerializesPassword(t *testing.T) {
	secret := "hunter2"
	u := &models.User{ID: 2, Name: "Bo", NetID: "bb1", Password: &secret}

	raw, err := json.Marshal(NewUserResponse(u))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "hunter2")
	assert.NotContains(t, string(raw), "password")
}

func TestNestedPostsDoNotEmbedUsers(t *testing.T) {
	tag := models.Tag{ID: 3, Type: models.TagTypeLocation, Name: "Remote"}
	owner := models.User{ID: 1, Name: "Ada", NetID: "al123"}
	post := models.Post{ID: 5, Position: "Research Assistant", Tags: []models.Tag{tag}, SavedBy: []models.User{owner}}
	owner.SavedPosts = []models.Post{post}
	owner.AppliedPosts = []models.Post{post}

	got := toMap(t, NewUserResponse(&owner))

	for _, key := range []string{"posts_saved", "posts_applied"} {
		posts := got[key].([]interface{})
		require.Len(t, posts, 1)
		nested := posts[0].(map[string]interface{})
		assert.Equal(t, float64(5), nested["id"])
		assert.NotContains(t, nested, "users_saved")
		assert.NotContains(t, nested, "users_applied")

		tags := nested["tags"].([]interface{})
		require.Len(t, tags, 1)
		assert.Equal(t, map[string]interface{}{"id": float64(3), "type": "location", "name": "Remote"}, tags[0])
	}
}

func TestNewPostResponseShape(t *testing.T) {
	p := &models.Post{ID: 9, Position: "Tutor", Employer: "Library", Link: "https://example.com"}

	got := toMap(t, NewPostResponse(p))

	assert.ElementsMatch(t,
		[]string{"id", "position", "employer", "description", "qualifications", "wage", "how_to_apply", "link", "tags"},
		keys(got))
	assert.Equal(t, []interface{}{}, got["tags"])
}

func TestNewAssetResponseUsesObjectURL(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	a := &models.Asset{BaseURL: "https://cdn.example/bucket/", Salt: "abc123", Extension: "png", CreatedAt: created}

	got := NewAssetResponse(a)

	assert.Equal(t, "https://cdn.example/bucket/abc123.png", got.URL)
	assert.Equal(t, created, got.CreatedAt)
}

func keys(m map[string]interface{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
