package database

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Store wraps the raw SQL primitives the reporting and CRUD layers run on.
// Every call is logged with method and arguments before it executes, and
// datastore errors are returned untouched so callers can inspect driver codes.
type Store struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewStore(db *gorm.DB, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{db: db, log: log}
}

// DB exposes the underlying handle for ORM-level operations.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Execute runs a mutation and returns the number of affected rows.
func (s *Store) Execute(ctx context.Context, query string, args ...interface{}) (int64, error) {
	s.log.Debug("store.execute", zap.String("sql", query), zap.Any("args", args))
	tx := s.db.WithContext(ctx).Exec(query, args...)
	return tx.RowsAffected, tx.Error
}

// QueryAll scans every result row into dest (a pointer to a slice).
func (s *Store) QueryAll(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	s.log.Debug("store.queryAll", zap.String("sql", query), zap.Any("args", args))
	return s.db.WithContext(ctx).Raw(query, args...).Scan(dest).Error
}

// QueryOne scans the first result row into dest. The boolean reports whether
// a row was found; a missing row is not an error.
func (s *Store) QueryOne(ctx context.Context, dest interface{}, query string, args ...interface{}) (bool, error) {
	s.log.Debug("store.queryOne", zap.String("sql", query), zap.Any("args", args))
	tx := s.db.WithContext(ctx).Raw(query, args...).Scan(dest)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// WithTransaction runs fn inside one transaction: commit on nil, rollback and
// return the original error otherwise. The batch runs sequentially because a
// gorm transaction handle must not be shared across goroutines.
func (s *Store) WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	s.log.Debug("store.withTransaction")
	return s.db.WithContext(ctx).Transaction(fn)
}
