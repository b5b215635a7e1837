package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/tursodatabase/libsql-client-go/libsql" // Turso driver
	"github.com/wadjakorntonsri/fanlink/pkg/core/domain"
	"github.com/wadjakorntonsri/fanlink/pkg/core/linkitems"
	"github.com/wadjakorntonsri/fanlink/pkg/ports"
	_ "modernc.org/sqlite" // Local SQLite driver
)

// SQLiteRepository stores profiles and templates as JSON documents.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbURL string) (*SQLiteRepository, error) {
	driverName := "sqlite"
	if strings.Contains(dbURL, "libsql://") || strings.Contains(dbURL, "wss://") {
		driverName = "libsql"
	}

	db, err := sql.Open(driverName, dbURL)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	if err := migrate(db); err != nil {
		return nil, err
	}

	return &SQLiteRepository{db: db}, nil
}

// NewWithDB wraps an open, already migrated database.
func NewWithDB(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func migrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS profiles (
		owner_id TEXT PRIMARY KEY,
		site_id TEXT NOT NULL UNIQUE,
		document JSON NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_profiles_site_id ON profiles(site_id);

	CREATE TABLE IF NOT EXISTS templates (
		key TEXT PRIMARY KEY,
		document JSON NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := db.Exec(query)
	return err
}

func (r *SQLiteRepository) Create(ctx context.Context, ownerID, siteID string, fields map[string]any) error {
	doc := linkitems.Compact(fields)
	doc["siteID"] = siteID

	docJSON, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	query := `INSERT INTO profiles (owner_id, site_id, document, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, ownerID, siteID, string(docJSON), now, now); err != nil {
		return mapConstraint(err)
	}
	return nil
}

func (r *SQLiteRepository) GetByOwner(ctx context.Context, ownerID string) (*domain.ProfileDocument, error) {
	query := `SELECT owner_id, document, created_at, updated_at FROM profiles WHERE owner_id = ?`
	return scanProfile(r.db.QueryRowContext(ctx, query, ownerID))
}

func (r *SQLiteRepository) GetBySiteID(ctx context.Context, siteID string) (*domain.ProfileDocument, error) {
	query := `SELECT owner_id, document, created_at, updated_at FROM profiles WHERE site_id = ?`
	return scanProfile(r.db.QueryRowContext(ctx, query, siteID))
}

// Update applies patch to the stored document inside a transaction. Unset
// keys are removed before Set values are merged.
func (r *SQLiteRepository) Update(ctx context.Context, ownerID string, patch domain.Patch) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var raw []byte
	err = tx.QueryRowContext(ctx, `SELECT document FROM profiles WHERE owner_id = ?`, ownerID).Scan(&raw)
	if err == sql.ErrNoRows {
		return domain.ErrProfileNotFound
	}
	if err != nil {
		return err
	}

	doc := map[string]any{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decode profile %s: %w", ownerID, err)
	}
	for _, key := range patch.Unset {
		delete(doc, key)
	}
	for k, v := range linkitems.Compact(patch.Set) {
		doc[k] = v
	}

	docJSON, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	siteID, _ := doc["siteID"].(string)

	query := `UPDATE profiles SET site_id = ?, document = ?, updated_at = ? WHERE owner_id = ?`
	if _, err := tx.ExecContext(ctx, query, siteID, string(docJSON), time.Now().UTC(), ownerID); err != nil {
		return mapConstraint(err)
	}
	return tx.Commit()
}

func (r *SQLiteRepository) Dump(ctx context.Context) ([]domain.ProfileDocument, error) {
	query := `SELECT owner_id, document, created_at, updated_at FROM profiles ORDER BY created_at, owner_id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []domain.ProfileDocument
	for rows.Next() {
		doc, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	return docs, rows.Err()
}

func (r *SQLiteRepository) GetTemplate(ctx context.Context, key string) (*domain.Template, error) {
	var raw []byte
	err := r.db.QueryRowContext(ctx, `SELECT document FROM templates WHERE key = ?`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var t domain.Template
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("decode template %s: %w", key, err)
	}
	return &t, nil
}

func (r *SQLiteRepository) ListTemplates(ctx context.Context) ([]domain.Template, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT document FROM templates ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []domain.Template
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var t domain.Template
		if err := json.Unmarshal(raw, &t); err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

func (r *SQLiteRepository) CreateTemplate(ctx context.Context, t *domain.Template) (bool, error) {
	docJSON, err := json.Marshal(t)
	if err != nil {
		return false, err
	}

	query := `INSERT INTO templates (key, document, created_at) VALUES (?, ?, ?) ON CONFLICT(key) DO NOTHING`
	res, err := r.db.ExecContext(ctx, query, t.TemplateEngName, string(docJSON), time.Now().UTC())
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProfile(row scanner) (*domain.ProfileDocument, error) {
	var ownerID string
	var raw []byte
	var createdAt, updatedAt time.Time

	err := row.Scan(&ownerID, &raw, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var doc domain.ProfileDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode profile %s: %w", ownerID, err)
	}
	doc.OwnerID = ownerID
	doc.CreatedAt = createdAt
	doc.UpdatedAt = updatedAt
	return &doc, nil
}

func mapConstraint(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "profiles.site_id"):
		return fmt.Errorf("%w: %v", domain.ErrSiteIDTaken, err)
	case strings.Contains(msg, "profiles.owner_id"):
		return fmt.Errorf("%w: %v", domain.ErrProfileExists, err)
	}
	return err
}

var (
	_ ports.ProfileRepository  = (*SQLiteRepository)(nil)
	_ ports.TemplateRepository = (*SQLiteRepository)(nil)
)
