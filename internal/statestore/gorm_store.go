package statestore

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mirelabs/chatskins-backend/pkg/db/models"
)

// GormStore persists documents in the state_documents table.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore binds the store to the provided GORM connection.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Get(ctx context.Context, userID uuid.UUID, key string) ([]byte, bool, error) {
	var doc models.StateDocument
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND doc_key = ?", userID, key).
		First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return doc.Value, true, nil
}

func (s *GormStore) Set(ctx context.Context, userID uuid.UUID, key string, value []byte) error {
	doc := models.StateDocument{
		UserID: userID,
		DocKey: key,
		Value:  value,
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "doc_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&doc).Error
}
