package pressflow

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrSecretMismatch is returned when a re-entered site secret does not match
// the stored hash.
var ErrSecretMismatch = errors.New("secret does not match the saved site")

// Store wraps a SQLite database holding saved WordPress sites and the local
// featured-image library.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Enable WAL mode for concurrent read/write access, set a busy timeout
	// so writers wait instead of returning SQLITE_BUSY immediately.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS sites (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    site_url TEXT NOT NULL,
    username TEXT NOT NULL,
    secret_hash TEXT NOT NULL,
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS images (
    filename TEXT PRIMARY KEY,
    original_name TEXT NOT NULL,
    width INTEGER NOT NULL,
    height INTEGER NOT NULL,
    size INTEGER NOT NULL,
    uploaded_at TEXT NOT NULL
);
`)
	return err
}

// SaveSite stores a site connection. The secret is bcrypt-hashed before it
// touches disk; the plaintext is never persisted.
func (s *Store) SaveSite(name, siteURL, username, secret string) (SavedSite, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return SavedSite{}, err
	}
	site := SavedSite{
		ID:        uuid.NewString(),
		Name:      name,
		SiteURL:   siteURL,
		Username:  username,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	_, err = s.db.Exec(`INSERT INTO sites (id, name, site_url, username, secret_hash, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		site.ID, site.Name, site.SiteURL, site.Username, string(hash), site.CreatedAt)
	if err != nil {
		return SavedSite{}, err
	}
	return site, nil
}

// ListSites returns all saved sites ordered by name. Secret hashes are never
// included in the result.
func (s *Store) ListSites() ([]SavedSite, error) {
	rows, err := s.db.Query(`SELECT id, name, site_url, username, created_at FROM sites ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sites []SavedSite
	for rows.Next() {
		var site SavedSite
		if err := rows.Scan(&site.ID, &site.Name, &site.SiteURL, &site.Username, &site.CreatedAt); err != nil {
			return nil, err
		}
		sites = append(sites, site)
	}
	return sites, rows.Err()
}

// GetSite returns a saved site by id.
func (s *Store) GetSite(id string) (SavedSite, error) {
	var site SavedSite
	err := s.db.QueryRow(`SELECT id, name, site_url, username, created_at FROM sites WHERE id = ?`, id).
		Scan(&site.ID, &site.Name, &site.SiteURL, &site.Username, &site.CreatedAt)
	if err != nil {
		return SavedSite{}, err
	}
	return site, nil
}

// DeleteSite removes a saved site by id.
func (s *Store) DeleteSite(id string) error {
	_, err := s.db.Exec(`DELETE FROM sites WHERE id = ?`, id)
	return err
}

// VerifySiteSecret checks a re-entered secret against the stored bcrypt hash
// and returns the site on success. A mismatch yields ErrSecretMismatch.
func (s *Store) VerifySiteSecret(id, secret string) (SavedSite, error) {
	var site SavedSite
	var hash string
	err := s.db.QueryRow(`SELECT id, name, site_url, username, secret_hash, created_at FROM sites WHERE id = ?`, id).
		Scan(&site.ID, &site.Name, &site.SiteURL, &site.Username, &hash, &site.CreatedAt)
	if err != nil {
		return SavedSite{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)); err != nil {
		return SavedSite{}, ErrSecretMismatch
	}
	return site, nil
}

// SaveImage upserts image metadata for the local library.
func (s *Store) SaveImage(img Image) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO images (filename, original_name, width, height, size, uploaded_at) VALUES (?, ?, ?, ?, ?, ?)`,
		img.Filename, img.OriginalName, img.Width, img.Height, img.Size, img.UploadedAt)
	return err
}

// ListImages returns all library images ordered by upload time descending.
func (s *Store) ListImages() ([]Image, error) {
	rows, err := s.db.Query(`SELECT filename, original_name, width, height, size, uploaded_at FROM images ORDER BY uploaded_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []Image
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.Filename, &img.OriginalName, &img.Width, &img.Height, &img.Size, &img.UploadedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// DeleteImage removes image metadata by filename.
func (s *Store) DeleteImage(filename string) error {
	_, err := s.db.Exec(`DELETE FROM images WHERE filename = ?`, filename)
	return err
}
