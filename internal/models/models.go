package models

import (
	"fmt"
	"strings"
	"time"
)

// Tag categories used by the seed data. Type is a free-form column, so the
// store does not restrict it to this set.
const (
	TagTypeField          = "field"
	TagTypeLocation       = "location"
	TagTypePayment        = "payment"
	TagTypeQualifications = "qualifications"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name  string `gorm:"not null" json:"name"`
	NetID string `gorm:"column:netid;not null" json:"netid"`
	// Stored verbatim, never serialized.
	Password  *string `json:"-"`
	ClassYear *string `json:"class_year"`

	// Each relation is one join table; Post holds the back-references
	// over the same tables.
	SavedPosts   []Post `gorm:"many2many:user_saved_posts;" json:"-"`
	AppliedPosts []Post `gorm:"many2many:user_applied_posts;" json:"-"`
	Tags         []Tag  `gorm:"many2many:user_tags;" json:"-"`
}

type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Position       string `gorm:"not null" json:"position"`
	Employer       string `gorm:"not null" json:"employer"`
	Description    string `gorm:"type:text;not null" json:"description"`
	Qualifications string `gorm:"type:text" json:"qualifications"`
	Wage           string `json:"wage"`
	HowToApply     string `gorm:"type:text" json:"how_to_apply"`
	Link           string `json:"link"`

	Tags      []Tag  `gorm:"many2many:post_tags;" json:"-"`
	SavedBy   []User `gorm:"many2many:user_saved_posts;" json:"-"`
	AppliedBy []User `gorm:"many2many:user_applied_posts;" json:"-"`
}

type Tag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	// Not unique: the seed loader deduplicates (type, name) pairs.
	Type string `gorm:"index:idx_tags_type_name;not null" json:"type"`
	Name string `gorm:"index:idx_tags_type_name;not null" json:"name"`

	Posts []Post `gorm:"many2many:post_tags;" json:"-"`
	Users []User `gorm:"many2many:user_tags;" json:"-"`
}

// Asset is an image that has been pushed to the object store.
type Asset struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	BaseURL   string `gorm:"not null" json:"base_url"`
	Salt      string `gorm:"uniqueIndex;not null" json:"salt"`
	Extension string `gorm:"not null" json:"extension"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

// ObjectKey is the name of the asset inside its bucket.
func (a *Asset) ObjectKey() string {
	return fmt.Sprintf("%s.%s", a.Salt, a.Extension)
}

func (a *Asset) URL() string {
	return fmt.Sprintf("%s/%s", strings.TrimRight(a.BaseURL, "/"), a.ObjectKey())
}

// All lists every model that the schema migration must create.
func All() []interface{} {
	return []interface{}{&User{}, &Post{}, &Tag{}, &Asset{}}
}
