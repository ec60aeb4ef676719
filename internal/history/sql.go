package history

import (
	"embed"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"moul.io/zapgorm2"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

type sqlStore struct {
	db *gorm.DB
}

// OpenSQL opens (creating and migrating if necessary) a SQLite journal.
func OpenSQL(path string, log *zap.Logger) (Store, error) {
	if log == nil {
		log = zap.L()
	}
	log = log.Named("history")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: zapgorm2.New(log)})
	if err != nil {
		return nil, err
	}
	s := &sqlStore{db: db}
	if err := s.migrate(log.Sugar()); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

func (s *sqlStore) migrate(log *zap.SugaredLogger) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	fs, err := iofs.New(embedMigrations, "migrations")
	if err != nil {
		return err
	}
	driver, err := sqlite3.WithInstance(sqlDB, &sqlite3.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithInstance("iofs", fs, "sqlite3", driver)
	if err != nil {
		return err
	}
	switch err := m.Up(); {
	case err == nil:
		log.Debug("history migration complete")
	case errors.Is(err, migrate.ErrNoChange):
		log.Debug("no history migration required")
	default:
		return err
	}
	return nil
}

func (s *sqlStore) Record(e *Entry) error {
	if e.ID == "" {
		e.ID = NewEntryID()
	}
	return s.db.Create(e).Error
}

func (s *sqlStore) List() ([]Entry, error) {
	var entries []Entry
	if err := s.db.Order("archived_at").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *sqlStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
