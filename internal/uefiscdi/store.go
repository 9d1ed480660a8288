package uefiscdi

import (
	"database/sql"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
	_ "modernc.org/sqlite"

	"github.com/alexfikl/uvt-scholarly/internal/publication"
)

const scoresDDL = `CREATE TABLE IF NOT EXISTS scores (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  year INTEGER NOT NULL,
  kind TEXT NOT NULL,
  journal TEXT NOT NULL,
  issn TEXT NULL,
  eissn TEXT NULL,
  score REAL NOT NULL,
  quartile TEXT NOT NULL DEFAULT '',
  UNIQUE(year, kind, issn, eissn)
)`

const scoresIndexDDL = `CREATE INDEX IF NOT EXISTS idx_scores_issn ON scores(issn, eissn, year)`

const metaDDL = `CREATE TABLE IF NOT EXISTS _meta (
  key TEXT PRIMARY KEY,
  value TEXT
)`

// Store is the on-disk registry cache: imported score list entries in
// SQLite, with per-list source fingerprints used to skip re-imports of
// unchanged files.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if needed) the registry cache at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening registry cache: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	for _, ddl := range []string{scoresDDL, scoresIndexDDL, metaDDL} {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("initializing registry cache: %w", err)
		}
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Fingerprint computes the content fingerprint stored alongside an imported
// list, used to detect source file changes between runs.
func Fingerprint(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// SourceFingerprint retrieves the stored fingerprint for a list, or "" when
// the list was never imported.
func (s *Store) SourceFingerprint(year int, kind ScoreKind) (string, error) {
	var value sql.NullString
	err := s.db.QueryRow("SELECT value FROM _meta WHERE key = ?", fingerprintKey(year, kind)).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value.String, nil
}

func fingerprintKey(year int, kind ScoreKind) string {
	return fmt.Sprintf("fingerprint_%s_%d", kind, year)
}

// ReplaceList replaces all cached entries of one list with a fresh import
// and records the source fingerprint, atomically.
func (s *Store) ReplaceList(year int, kind ScoreKind, entries []Entry, fingerprint string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("importing %s/%d: %w", kind, year, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM scores WHERE year = ? AND kind = ?", year, kind); err != nil {
		return fmt.Errorf("importing %s/%d: %w", kind, year, err)
	}

	insert, err := tx.Prepare(`INSERT OR REPLACE INTO scores
		(year, kind, journal, issn, eissn, score, quartile)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("importing %s/%d: %w", kind, year, err)
	}
	defer insert.Close()

	for _, e := range entries {
		_, err := insert.Exec(year, string(kind), e.Journal,
			issnColumn(e.ISSN), issnColumn(e.EISSN), e.Score, e.Quartile)
		if err != nil {
			return fmt.Errorf("importing %s/%d: journal %q: %w", kind, year, e.Journal, err)
		}
	}

	_, err = tx.Exec(`INSERT OR REPLACE INTO _meta (key, value) VALUES (?, ?)`,
		fingerprintKey(year, kind), fingerprint)
	if err != nil {
		return fmt.Errorf("importing %s/%d: %w", kind, year, err)
	}

	return tx.Commit()
}

// LoadEntries reads every cached entry, ready for NewRegistry.
func (s *Store) LoadEntries() ([]Entry, error) {
	rows, err := s.db.Query(`SELECT year, kind, journal, issn, eissn, score, quartile
		FROM scores ORDER BY year, kind, journal`)
	if err != nil {
		return nil, fmt.Errorf("loading registry cache: %w", err)
	}
	defer rows.Close()

	var result []Entry
	for rows.Next() {
		var e Entry
		var kind string
		var issn, eissn sql.NullString

		if err := rows.Scan(&e.Year, &kind, &e.Journal, &issn, &eissn, &e.Score, &e.Quartile); err != nil {
			return nil, fmt.Errorf("loading registry cache: %w", err)
		}

		e.Kind = ScoreKind(kind)
		e.ISSN = scanISSN(issn)
		e.EISSN = scanISSN(eissn)
		result = append(result, e)
	}
	return result, rows.Err()
}

func issnColumn(issn *publication.ISSN) any {
	if issn == nil {
		return nil
	}
	return issn.String()
}

func scanISSN(value sql.NullString) *publication.ISSN {
	if !value.Valid || value.String == "" {
		return nil
	}
	issn, ok := publication.NormalizeISSN(value.String)
	if !ok {
		return nil
	}
	return &issn
}
