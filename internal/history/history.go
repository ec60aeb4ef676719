// Package history keeps a journal of archived videos. It is write-only from the archive path's point of view and is
// never consulted to skip or deduplicate work.
package history

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Entry records one successful archive.
type Entry struct {
	ID              string    `json:"id" gorm:"primaryKey"`
	Platform        string    `json:"platform" gorm:"index:idx_video"`
	VideoID         string    `json:"video_id" gorm:"index:idx_video"`
	Title           string    `json:"title"`
	UploaderID      string    `json:"uploader_id"`
	UploaderName    string    `json:"uploader_name"`
	SourcePath      string    `json:"source_path"`
	DestinationPath string    `json:"destination_path"`
	PublishedAt     time.Time `json:"published_at"`
	ArchivedAt      time.Time `json:"archived_at"`
}

func NewEntryID() string {
	return uuid.NewString()
}

type Store interface {
	// Record stores e, assigning e.ID if it is empty.
	Record(e *Entry) error
	// List returns every entry, oldest archive first.
	List() ([]Entry, error)
	Close() error
}

// NilStore discards everything.
type NilStore struct{}

func (NilStore) Record(_ *Entry) error { return nil }
func (NilStore) List() ([]Entry, error) { return nil, nil }
func (NilStore) Close() error { return nil }

// Open opens the store at path: SQLite for .sqlite/.sqlite3/.db files, bbolt otherwise. An empty path gives a
// NilStore.
func Open(path string, log *zap.Logger) (Store, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case "":
		if path == "" {
			return NilStore{}, nil
		}
		return OpenBolt(path)
	case ".sqlite", ".sqlite3", ".db":
		return OpenSQL(path, log)
	default:
		return OpenBolt(path)
	}
}
