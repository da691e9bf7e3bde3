package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/justsurfingit/savvy/internal/database"
	"github.com/justsurfingit/savvy/internal/dtos"
	"github.com/justsurfingit/savvy/internal/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type testEnv struct {
	DB           *gorm.DB
	Users        *UserService
	Posts        *PostService
	Tags         *TagService
	Associations *AssociationManager
	Matcher      *MatcherService
	Seeder       *Seeder
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.Connect(database.Options{Driver: database.DriverSQLite, DSN: dsn}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	log := zap.NewNop()
	env := &testEnv{
		DB:           db,
		Users:        NewUserService(db, log),
		Posts:        NewPostService(db, log),
		Tags:         NewTagService(db, log),
		Associations: NewAssociationManager(db, log),
		Matcher:      NewMatcherService(db),
	}
	env.Seeder = NewSeeder(env.Posts, env.Tags, env.Associations, log)
	return env
}

func (e *testEnv) mustUser(t *testing.T, name, netid string) *models.User {
	t.Helper()
	u, err := e.Users.CreateUser(context.Background(), &dtos.CreateUserRequest{Name: name, NetID: netid})
	require.NoError(t, err)
	return u
}

func (e *testEnv) mustPost(t *testing.T, position string) *models.Post {
	t.Helper()
	p, err := e.Posts.CreatePost(context.Background(), &dtos.CreatePostRequest{
		Position:    position,
		Employer:    "Cornell",
		Description: position + " role",
		Wage:        "$15/hr",
	})
	require.NoError(t, err)
	return p
}

func (e *testEnv) mustTag(t *testing.T, tagType, name string) *models.Tag {
	t.Helper()
	tag, err := e.Tags.CreateTag(context.Background(), tagType, name)
	require.NoError(t, err)
	return tag
}

func postIDs(posts []models.Post) []uint {
	ids := make([]uint, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	return ids
}

func userIDs(users []models.User) []uint {
	ids := make([]uint, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids
}

func tagIDs(tags []models.Tag) []uint {
	ids := make([]uint, 0, len(tags))
	for _, tag := range tags {
		ids = append(ids, tag.ID)
	}
	return ids
}
