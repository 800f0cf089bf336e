package kv

import (
	"context"
	"errors"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Record is the row shape of the SQL backend.
type Record struct {
	Key   string `gorm:"primaryKey;column:key"`
	Value string `gorm:"type:text;not null;column:value"`
}

// TableName keeps the table name stable across gorm naming strategies.
func (Record) TableName() string {
	return "kv_records"
}

// SQL is the gorm-backed Store. The dialector decides whether records live
// in a local sqlite file or a Postgres database.
type SQL struct {
	db *gorm.DB
}

// OpenSQLite opens (and migrates) a sqlite-backed store at path. Use
// ":memory:" for a throwaway database.
func OpenSQLite(path string) (*SQL, error) {
	return openSQL(sqlite.Open(path))
}

// OpenPostgres opens (and migrates) a Postgres-backed store.
func OpenPostgres(dsn string) (*SQL, error) {
	return openSQL(postgres.Open(dsn))
}

func openSQL(dialector gorm.Dialector) (*SQL, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, err
	}
	return &SQL{db: db}, nil
}

func (s *SQL) Set(ctx context.Context, key, value string) error {
	record := Record{Key: key, Value: value}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(&record).Error
}

func (s *SQL) Get(ctx context.Context, key string) (string, bool, error) {
	var record Record
	err := s.db.WithContext(ctx).First(&record, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return record.Value, true, nil
}

func (s *SQL) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Delete(&Record{}, "key = ?", key).Error
}

func (s *SQL) Entries(ctx context.Context) (map[string]string, error) {
	var records []Record
	if err := s.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, err
	}
	out := make(map[string]string, len(records))
	for _, record := range records {
		out[record.Key] = record.Value
	}
	return out, nil
}

func (s *SQL) Clear(ctx context.Context) error {
	return s.db.WithContext(ctx).Where("1 = 1").Delete(&Record{}).Error
}
