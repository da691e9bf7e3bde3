package dtos

import (
	"time"

	"github.com/justsurfingit/savvy/internal/models"
)

// Embedding only flows one way: users embed posts and tags, posts embed
// tags, tags embed nothing. None of these types has a field that could hold
// a user, so responses cannot recurse through the join tables.

type TagResponse struct {
	ID   uint   `json:"id"`
	Type string `json:"type"`
	Name string `json:"name"`
}

type PostResponse struct {
	ID             uint          `json:"id"`
	Position       string        `json:"position"`
	Employer       string        `json:"employer"`
	Description    string        `json:"description"`
	Qualifications string        `json:"qualifications"`
	Wage           string        `json:"wage"`
	HowToApply     string        `json:"how_to_apply"`
	Link           string        `json:"link"`
	Tags           []TagResponse `json:"tags"`
}

type UserResponse struct {
	ID           uint           `json:"id"`
	Name         string         `json:"name"`
	NetID        string         `json:"netid"`
	ClassYear    *string        `json:"class_year"`
	PostsSaved   []PostResponse `json:"posts_saved"`
	PostsApplied []PostResponse `json:"posts_applied"`
	Tags         []TagResponse  `json:"tags"`
}

// UserSummary is the user shape used for reverse lookups from a post.
type UserSummary struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	NetID     string  `json:"netid"`
	ClassYear *string `json:"class_year"`
}

type AssetResponse struct {
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

func NewTagResponse(t *models.Tag) TagResponse {
	return TagResponse{ID: t.ID, Type: t.Type, Name: t.Name}
}

func NewTagResponses(tags []models.Tag) []TagResponse {
	out := make([]TagResponse, 0, len(tags))
	for i := range tags {
		out = append(out, NewTagResponse(&tags[i]))
	}
	return out
}

func NewPostResponse(p *models.Post) PostResponse {
	return PostResponse{
		ID:             p.ID,
		Position:       p.Position,
		Employer:       p.Employer,
		Description:    p.Description,
		Qualifications: p.Qualifications,
		Wage:           p.Wage,
		HowToApply:     p.HowToApply,
		Link:           p.Link,
		Tags:           NewTagResponses(p.Tags),
	}
}

func NewPostResponses(posts []models.Post) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, NewPostResponse(&posts[i]))
	}
	return out
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		NetID:        u.NetID,
		ClassYear:    u.ClassYear,
		PostsSaved:   NewPostResponses(u.SavedPosts),
		PostsApplied: NewPostResponses(u.AppliedPosts),
		Tags:         NewTagResponses(u.Tags),
	}
}

func NewUserSummaries(users []models.User) []UserSummary {
	out := make([]UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, UserSummary{ID: u.ID, Name: u.Name, NetID: u.NetID, ClassYear: u.ClassYear})
	}
	return out
}

func NewAssetResponse(a *models.Asset) AssetResponse {
	return AssetResponse{URL: a.URL(), CreatedAt: a.CreatedAt}
}
