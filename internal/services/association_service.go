package services

import (
	"context"
	"fmt"

	apperrors "github.com/justsurfingit/savvy/internal/errors"
	"github.com/justsurfingit/savvy/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// edge describes one many-to-many relation. Both directions of a relation
// read the same join table, so writing one row updates both sides.
type edge struct {
	relation    string // join table
	field       string // association field on the owner
	ownerKind   string
	targetKind  string
	targetTable string
	newOwner    func() interface{}
	newTarget   func() interface{}
}

var (
	savedPostsEdge = edge{
		relation: "user_saved_posts", field: "SavedPosts",
		ownerKind: "user", targetKind: "post", targetTable: "posts",
		newOwner:  func() interface{} { return &models.User{} },
		newTarget: func() interface{} { return &models.Post{} },
	}
	appliedPostsEdge = edge{
		relation: "user_applied_posts", field: "AppliedPosts",
		ownerKind: "user", targetKind: "post", targetTable: "posts",
		newOwner:  func() interface{} { return &models.User{} },
		newTarget: func() interface{} { return &models.Post{} },
	}
	userTagsEdge = edge{
		relation: "user_tags", field: "Tags",
		ownerKind: "user", targetKind: "tag", targetTable: "tags",
		newOwner:  func() interface{} { return &models.User{} },
		newTarget: func() interface{} { return &models.Tag{} },
	}
	postTagsEdge = edge{
		relation: "post_tags", field: "Tags",
		ownerKind: "post", targetKind: "tag", targetTable: "tags",
		newOwner:  func() interface{} { return &models.Post{} },
		newTarget: func() interface{} { return &models.Tag{} },
	}
)

// AssociationManager is the only writer of the join tables. Every call runs in
// its own transaction and resolves both endpoints before touching an edge.
//
// Edges have set semantics: adding an existing edge is a no-op, removing a
// missing one fails with EDGE_NOT_FOUND.
type AssociationManager struct {
	DB     *gorm.DB
	Logger *zap.Logger
}

func NewAssociationManager(db *gorm.DB, logger *zap.Logger) *AssociationManager {
	return &AssociationManager{
		DB:     db,
		Logger: logger,
	}
}

func (m *AssociationManager) AddSavedPost(ctx context.Context, userID, postID uint) error {
	return m.link(ctx, savedPostsEdge, userID, postID)
}

func (m *AssociationManager) RemoveSavedPost(ctx context.Context, userID, postID uint) error {
	return m.unlink(ctx, savedPostsEdge, userID, postID)
}

func (m *AssociationManager) AddAppliedPost(ctx context.Context, userID, postID uint) error {
	return m.link(ctx, appliedPostsEdge, userID, postID)
}

func (m *AssociationManager) RemoveAppliedPost(ctx context.Context, userID, postID uint) error {
	return m.unlink(ctx, appliedPostsEdge, userID, postID)
}

func (m *AssociationManager) AddTagToUser(ctx context.Context, userID, tagID uint) error {
	return m.link(ctx, userTagsEdge, userID, tagID)
}

func (m *AssociationManager) RemoveTagFromUser(ctx context.Context, userID, tagID uint) error {
	return m.unlink(ctx, userTagsEdge, userID, tagID)
}

func (m *AssociationManager) AddTagToPost(ctx context.Context, postID, tagID uint) error {
	return m.link(ctx, postTagsEdge, postID, tagID)
}

func (m *AssociationManager) RemoveTagFromPost(ctx context.Context, postID, tagID uint) error {
	return m.unlink(ctx, postTagsEdge, postID, tagID)
}

// SaversOf lists the users that saved the post, ordered by id.
func (m *AssociationManager) SaversOf(ctx context.Context, postID uint) ([]models.User, error) {
	return m.usersOf(ctx, postID, "SavedBy")
}

// ApplicantsOf lists the users that applied to the post, ordered by id.
func (m *AssociationManager) ApplicantsOf(ctx context.Context, postID uint) ([]models.User, error) {
	return m.usersOf(ctx, postID, "AppliedBy")
}

func (m *AssociationManager) usersOf(ctx context.Context, postID uint, field string) ([]models.User, error) {
	db := m.DB.WithContext(ctx)
	var post models.Post
	if err := findByID(db, &post, "post", postID); err != nil {
		return nil, err
	}

	users := []models.User{}
	assoc := byUserID(db.Model(&post)).Association(field)
	if err := assoc.Find(&users); err != nil {
		return nil, apperrors.Internal(fmt.Sprintf("failed to list %s of post %d", field, postID), err)
	}
	return users, nil
}

func (m *AssociationManager) link(ctx context.Context, e edge, ownerID, targetID uint) error {
	err := m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owner, target, err := e.resolve(tx, ownerID, targetID)
		if err != nil {
			return err
		}
		exists, err := e.has(tx, owner, targetID)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}
		if err := tx.Model(owner).Association(e.field).Append(target); err != nil {
			return apperrors.Internal(fmt.Sprintf("failed to add %s edge", e.relation), err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	m.Logger.Debug("edge added",
		zap.String("relation", e.relation),
		zap.Uint("owner_id", ownerID),
		zap.Uint("target_id", targetID))
	return nil
}

func (m *AssociationManager) unlink(ctx context.Context, e edge, ownerID, targetID uint) error {
	err := m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owner, target, err := e.resolve(tx, ownerID, targetID)
		if err != nil {
			return err
		}
		exists, err := e.has(tx, owner, targetID)
		if err != nil {
			return err
		}
		if !exists {
			return apperrors.EdgeNotFound(e.relation, ownerID, targetID)
		}
		if err := tx.Model(owner).Association(e.field).Delete(target); err != nil {
			return apperrors.Internal(fmt.Sprintf("failed to remove %s edge", e.relation), err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	m.Logger.Debug("edge removed",
		zap.String("relation", e.relation),
		zap.Uint("owner_id", ownerID),
		zap.Uint("target_id", targetID))
	return nil
}

// resolve loads both endpoints, owner first, so a NOT_FOUND error names the
// side that is missing.
func (e edge) resolve(tx *gorm.DB, ownerID, targetID uint) (interface{}, interface{}, error) {
	owner := e.newOwner()
	if err := findByID(tx, owner, e.ownerKind, ownerID); err != nil {
		return nil, nil, err
	}
	target := e.newTarget()
	if err := findByID(tx, target, e.targetKind, targetID); err != nil {
		return nil, nil, err
	}
	return owner, target, nil
}

func (e edge) has(tx *gorm.DB, owner interface{}, targetID uint) (bool, error) {
	assoc := tx.Model(owner).
		Where(fmt.Sprintf("%s.id = ?", e.targetTable), targetID).
		Association(e.field)
	count := assoc.Count()
	if assoc.Error != nil {
		return false, apperrors.Internal(fmt.Sprintf("failed to read %s edge", e.relation), assoc.Error)
	}
	return count > 0, nil
}
