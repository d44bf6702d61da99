package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"tradedocs/go_backend/internal/domain/store"
)

// Document is one stored record. Pk orders records by first insert.
type Document struct {
	Pk         uint   `gorm:"primaryKey"`
	Collection string `gorm:"size:64;not null;uniqueIndex:idx_documents_key"`
	RecordID   string `gorm:"size:64;not null;uniqueIndex:idx_documents_key"`
	Data       []byte `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Store struct {
	db *gorm.DB
}

// Open opens (or creates) a sqlite database at dsn and migrates it.
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, err
	}
	return New(db)
}

func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&Document{}); err != nil {
		return nil, fmt.Errorf("migrate documents: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) List(ctx context.Context, collection string) ([]store.Record, error) {
	if err := store.CheckCollection(collection); err != nil {
		return nil, err
	}
	var rows []Document
	if err := s.db.WithContext(ctx).Where("collection = ?", collection).Order("pk").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	out := make([]store.Record, 0, len(rows))
	for _, r := range rows {
		out = append(out, store.Record{ID: r.RecordID, Data: r.Data})
	}
	return out, nil
}

func (s *Store) Put(ctx context.Context, collection string, rec store.Record) error {
	if err := store.CheckCollection(collection); err != nil {
		return err
	}
	if rec.ID == "" {
		return errors.New("sqlite store: empty id")
	}
	row := Document{Collection: collection, RecordID: rec.ID, Data: rec.Data}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "collection"}, {Name: "record_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", collection, rec.ID, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	if err := store.CheckCollection(collection); err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Where("collection = ? AND record_id = ?", collection, id).Delete(&Document{})
	if res.Error != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s/%s", store.ErrNotFound, collection, id)
	}
	return nil
}
