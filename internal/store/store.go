package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/scrub/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// DBFile is the database file name inside the store directory.
const DBFile = "scrub.db"

// Bucket names
var (
	bucketPositions = []byte("positions")
)

// ResumeStore implements domain.ResumeStore using BoltDB.
type ResumeStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
}

var _ domain.ResumeStore = (*ResumeStore)(nil)

// NewResumeStore opens the store under dir. An empty dir keeps records in
// memory only.
func NewResumeStore(dir string) (*ResumeStore, error) {
	if dir == "" {
		// Memory-only mode (no persistence)
		return &ResumeStore{cache: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, DBFile)
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketPositions)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &ResumeStore{db: db, cache: make(map[string][]byte)}, nil
}

// Remove deletes the database file under dir. Other files in dir are left
// alone since the directory may be shared. The store must be closed.
func Remove(dir string) error {
	if dir == "" {
		return nil
	}
	if err := os.Remove(filepath.Join(dir, DBFile)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove resume data: %w", err)
	}
	return nil
}

// hashKey turns a media key (usually a path) into a short stable bucket key
func hashKey(mediaKey string) string {
	hash := sha256.Sum256([]byte(mediaKey))
	return hex.EncodeToString(hash[:8])
}

func (s *ResumeStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *ResumeStore) get(bucket []byte, key string, dest interface{}) bool {
	cacheKey := string(bucket) + ":" + key

	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *ResumeStore) set(bucket []byte, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	cacheKey := string(bucket) + ":" + key

	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		return b.Put([]byte(key), data)
	})
}

func (s *ResumeStore) delete(bucket []byte, key string) error {
	cacheKey := string(bucket) + ":" + key

	s.mu.Lock()
	delete(s.cache, cacheKey)
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		return b.Delete([]byte(key))
	})
}

// values returns every stored value in bucket. In memory-only mode the
// cache is the source of truth.
func (s *ResumeStore) values(bucket []byte) ([][]byte, error) {
	if s.db == nil {
		prefix := string(bucket) + ":"
		s.mu.RLock()
		defer s.mu.RUnlock()
		var out [][]byte
		for k, v := range s.cache {
			if strings.HasPrefix(k, prefix) {
				out = append(out, v)
			}
		}
		return out, nil
	}

	var out [][]byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		return b.ForEach(func(_, v []byte) error {
			data := make([]byte, len(v))
			copy(data, v)
			out = append(out, data)
			return nil
		})
	})
	return out, err
}

// === Resume positions ===

func (s *ResumeStore) Get(mediaKey string) (domain.ResumeRecord, bool) {
	var rec domain.ResumeRecord
	ok := s.get(bucketPositions, hashKey(mediaKey), &rec)
	return rec, ok
}

// Save stores the record, stamping UpdatedAt when unset.
func (s *ResumeStore) Save(rec domain.ResumeRecord) error {
	if rec.MediaKey == "" {
		return fmt.Errorf("resume record has no media key")
	}
	if rec.UpdatedAt == 0 {
		rec.UpdatedAt = time.Now().Unix()
	}
	return s.set(bucketPositions, hashKey(rec.MediaKey), rec)
}

func (s *ResumeStore) Delete(mediaKey string) error {
	return s.delete(bucketPositions, hashKey(mediaKey))
}

// List returns all records, most recently updated first.
func (s *ResumeStore) List() ([]domain.ResumeRecord, error) {
	raw, err := s.values(bucketPositions)
	if err != nil {
		return nil, err
	}

	records := make([]domain.ResumeRecord, 0, len(raw))
	for _, data := range raw {
		var rec domain.ResumeRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			continue // Skip corrupt entries
		}
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].UpdatedAt != records[j].UpdatedAt {
			return records[i].UpdatedAt > records[j].UpdatedAt
		}
		return records[i].MediaKey < records[j].MediaKey
	})
	return records, nil
}
