package services

import (
	"errors"
	"fmt"

	apperrors "github.com/justsurfingit/savvy/internal/errors"
	"gorm.io/gorm"
)

// findByID loads the row with the given primary key into dest. A missing row
// becomes a NOT_FOUND error naming kind and id.
func findByID(tx *gorm.DB, dest interface{}, kind string, id uint) error {
	err := tx.First(dest, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(kind, id)
	}
	if err != nil {
		return apperrors.Internal(fmt.Sprintf("failed to load %s %d", kind, id), err)
	}
	return nil
}

func byPostID(db *gorm.DB) *gorm.DB {
	return db.Order("posts.id")
}

func byTagID(db *gorm.DB) *gorm.DB {
	return db.Order("tags.id")
}

func byUserID(db *gorm.DB) *gorm.DB {
	return db.Order("users.id")
}
