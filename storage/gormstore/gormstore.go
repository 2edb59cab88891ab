// Package gormstore provides a SessionRepo backed by a relational database
// through gorm. Session expiry is left to an external sweep of CreatedAt.
package gormstore

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/lnward/go-lnauth-server/lnauth"
)

var _ lnauth.SessionRepo = (*Store)(nil)

type sessionRecord struct {
	K1        string `gorm:"primaryKey;column:k1"`
	State     string
	Pubkey    string
	Sig       string
	Success   bool
	CreatedAt time.Time
}

func (sessionRecord) TableName() string {
	return "lnauth_sessions"
}

// Store persists sessions in a relational database.
type Store struct {
	db *gorm.DB
}

// New migrates the session table and returns a store bound to db.
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&sessionRecord{}); err != nil {
		return nil, errors.Wrap(err, "[New] AutoMigrate")
	}
	return &Store{db: db}, nil
}

func (s *Store) Set(ctx context.Context, k1 string, session *lnauth.Session) error {
	record := sessionRecord{
		K1:      k1,
		State:   session.State,
		Pubkey:  session.Pubkey,
		Sig:     session.Sig,
		Success: session.Success,
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return errors.Wrap(err, "[Set] Create")
	}
	return nil
}

func (s *Store) Get(ctx context.Context, k1 string) (*lnauth.Session, error) {
	var record sessionRecord
	err := s.db.WithContext(ctx).First(&record, "k1 = ?", k1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, lnauth.ErrSessionNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "[Get] First")
	}

	return &lnauth.Session{
		K1:      record.K1,
		State:   record.State,
		Pubkey:  record.Pubkey,
		Sig:     record.Sig,
		Success: record.Success,
	}, nil
}

func (s *Store) Update(ctx context.Context, k1 string, patch *lnauth.SessionPatch) error {
	values := map[string]any{}
	if patch.Pubkey != "" {
		values["pubkey"] = patch.Pubkey
	}
	if patch.Sig != "" {
		values["sig"] = patch.Sig
	}
	if patch.Success {
		values["success"] = true
	}
	if len(values) == 0 {
		return nil
	}

	result := s.db.WithContext(ctx).
		Model(&sessionRecord{}).
		Where("k1 = ?", k1).
		Updates(values)
	if result.Error != nil {
		return errors.Wrap(result.Error, "[Update] Updates")
	}
	if result.RowsAffected == 0 {
		return lnauth.ErrSessionNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, k1 string) error {
	if err := s.db.WithContext(ctx).Delete(&sessionRecord{}, "k1 = ?", k1).Error; err != nil {
		return errors.Wrap(err, "[Delete] Delete")
	}
	return nil
}
