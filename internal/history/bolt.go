package history

import (
	"encoding/json"
	"sort"

	"go.etcd.io/bbolt"
)

var Buckets = struct {
	Metadata []byte
	Entries  []byte
}{
	Metadata: []byte("__metadata__"),
	Entries:  []byte("entries"),
}

var MetadataKeys = struct {
	Version []byte
}{
	Version: []byte("version"),
}

const currentVersion = 1

type boltStore struct {
	*bbolt.DB
}

// OpenBolt opens (creating if necessary) a bbolt journal.
func OpenBolt(path string) (_ Store, err error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bbolt.Tx) (err error) {
		// Ensure buckets exist
		var metadata *bbolt.Bucket
		if metadata, err = tx.CreateBucketIfNotExists(Buckets.Metadata); err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists(Buckets.Entries); err != nil {
			return err
		}
		if versionBytes, err := json.Marshal(currentVersion); err != nil {
			return err
		} else if err = metadata.Put(MetadataKeys.Version, versionBytes); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &boltStore{db}, nil
}

func (s *boltStore) Record(e *Entry) error {
	if e.ID == "" {
		e.ID = NewEntryID()
	}
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return s.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(Buckets.Entries).Put([]byte(e.ID), data)
	})
}

func (s *boltStore) List() (entries []Entry, err error) {
	err = s.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(Buckets.Entries).ForEach(func(k, v []byte) error {
			var e Entry
			if err := json.Unmarshal(v, &e); err != nil {
				return err
			}
			entries = append(entries, e)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ArchivedAt.Before(entries[j].ArchivedAt)
	})
	return entries, nil
}
