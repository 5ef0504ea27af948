package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/mmcdole/storefront/internal/domain"
)

// Bucket names
var (
	bucketSession     = []byte("session")
	bucketPreferences = []byte("preferences")
	bucketFavorites   = []byte("favorites")
	bucketCategories  = []byte("categories")

	allBuckets = [][]byte{bucketSession, bucketPreferences, bucketFavorites, bucketCategories}
)

const (
	keyCurrent = "current"
	keyTheme   = "theme"
	keyList    = "list"
)

// storedProduct is the on-disk shape of a favorite
type storedProduct struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Price       string   `json:"price"`
	Rating      float64  `json:"rating"`
	Category    string   `json:"category"`
	Images      []string `json:"images,omitempty"`
	Thumbnail   string   `json:"thumbnail,omitempty"`
	Brand       string   `json:"brand,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
}

type storedCategory struct {
	Slug string `json:"slug"`
	Name string `json:"name,omitempty"`
}

// LocalStore implements domain.Store using BoltDB.
type LocalStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
}

// NewLocalStore opens <baseDir>/<hash(serverURL)>/storefront.db.
// An empty baseDir keeps everything in memory.
func NewLocalStore(baseDir, serverURL string) (*LocalStore, error) {
	if baseDir == "" {
		// Memory-only mode (no persistence)
		return &LocalStore{cache: make(map[string][]byte)}, nil
	}

	dir := baseDir
	if serverURL != "" {
		dir = filepath.Join(baseDir, hashServerURL(serverURL))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "storefront.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	// Create buckets
	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range allBuckets {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &LocalStore{db: db, cache: make(map[string][]byte)}, nil
}

func hashServerURL(serverURL string) string {
	normalized := strings.TrimRight(strings.ToLower(serverURL), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

func (s *LocalStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *LocalStore) get(bucket []byte, key string, dest any) bool {
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
	_ = s.db.View(func(tx *bolt.Tx) error {
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

func (s *LocalStore) set(bucket []byte, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	if s.db != nil {
		err := s.db.Update(func(tx *bolt.Tx) error {
			return tx.Bucket(bucket).Put([]byte(key), data)
		})
		if err != nil {
			return err
		}
	}

	// Cache only what was written
	s.mu.Lock()
	s.cache[string(bucket)+":"+key] = data
	s.mu.Unlock()
	return nil
}

func (s *LocalStore) delete(bucket []byte, key string) error {
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

// === Session ===

func (s *LocalStore) GetSession() (*domain.Session, bool) {
	var session domain.Session
	if !s.get(bucketSession, keyCurrent, &session) {
		return nil, false
	}
	return &session, true
}

func (s *LocalStore) SaveSession(session domain.Session) error {
	return s.set(bucketSession, keyCurrent, session)
}

func (s *LocalStore) ClearSession() error {
	return s.delete(bucketSession, keyCurrent)
}

// === Preferences ===

func (s *LocalStore) GetTheme() (string, bool) {
	var theme string
	ok := s.get(bucketPreferences, keyTheme, &theme)
	return theme, ok
}

func (s *LocalStore) SaveTheme(theme string) error {
	return s.set(bucketPreferences, keyTheme, theme)
}

// === Favorites ===

func (s *LocalStore) GetFavorites() ([]domain.Product, bool) {
	var stored []storedProduct
	if !s.get(bucketFavorites, keyList, &stored) {
		return nil, false
	}
	products := make([]domain.Product, 0, len(stored))
	for _, sp := range stored {
		products = append(products, sp.toDomain())
	}
	return products, true
}

func (s *LocalStore) SaveFavorites(products []domain.Product) error {
	stored := make([]storedProduct, 0, len(products))
	for _, p := range products {
		stored = append(stored, fromDomain(p))
	}
	return s.set(bucketFavorites, keyList, stored)
}

// === Category vocabulary ===

func (s *LocalStore) GetCategories() ([]domain.Category, bool) {
	var stored []storedCategory
	if !s.get(bucketCategories, keyList, &stored) {
		return nil, false
	}
	categories := make([]domain.Category, 0, len(stored))
	for _, c := range stored {
		categories = append(categories, domain.Category{Slug: c.Slug, Name: c.Name})
	}
	return categories, true
}

func (s *LocalStore) SaveCategories(categories []domain.Category) error {
	stored := make([]storedCategory, 0, len(categories))
	for _, c := range categories {
		stored = append(stored, storedCategory{Slug: c.Slug, Name: c.Name})
	}
	return s.set(bucketCategories, keyList, stored)
}

// === Invalidation ===

// InvalidateCache drops data that can be fetched again (the category vocabulary).
// Session, preferences and favorites are kept.
func (s *LocalStore) InvalidateCache() error {
	prefix := string(bucketCategories) + ":"
	s.mu.Lock()
	for k := range s.cache {
		if strings.HasPrefix(k, prefix) {
			delete(s.cache, k)
		}
	}
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(bucketCategories) != nil {
			if err := tx.DeleteBucket(bucketCategories); err != nil {
				return err
			}
		}
		_, err := tx.CreateBucket(bucketCategories)
		return err
	})
}

var _ domain.Store = (*LocalStore)(nil)
