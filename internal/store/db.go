package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"topology-builder/internal/model"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Store persists module schemas and translation runs in SQLite.
type Store struct {
	db *sql.DB
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS modules (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		type TEXT,
		language TEXT,
		libraries TEXT
	);`,
	`CREATE TABLE IF NOT EXISTS module_versions (
		id TEXT PRIMARY KEY,
		module_id TEXT,
		version_code INTEGER,
		fields TEXT
	);`,
	`CREATE TABLE IF NOT EXISTS translations (
		id TEXT PRIMARY KEY,
		name TEXT,
		status TEXT,
		topology TEXT,
		descriptor TEXT,
		dependencies TEXT,
		workspace TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`,
	`CREATE TABLE IF NOT EXISTS translation_diagnostics (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		translation_id TEXT,
		element TEXT,
		element_index INTEGER,
		name TEXT,
		message TEXT
	);`,
	`CREATE TABLE IF NOT EXISTS translation_errors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		translation_id TEXT,
		error_message TEXT,
		created_at DATETIME
	);`,
}

// Open opens (creating if needed) the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// sqlite allows one writer
	db.SetMaxOpenConns(1)

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create tables: %w", err)
		}
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveModule inserts or replaces a module record.
func (s *Store) SaveModule(ctx context.Context, m model.Module) error {
	libs, err := json.Marshal(m.Libraries)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO modules (id, name, type, language, libraries) VALUES (?, ?, ?, ?, ?)`,
		m.ID, m.Name, m.Type, m.Language, string(libs))
	return err
}

// GetModulesByIDs returns the known modules among ids, in the order given.
func (s *Store) GetModulesByIDs(ctx context.Context, ids []string) ([]model.Module, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	query := `SELECT id, name, type, language, libraries FROM modules WHERE id IN (?` +
		strings.Repeat(",?", len(ids)-1) + `)`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[string]model.Module, len(ids))
	for rows.Next() {
		var m model.Module
		var typ, lang, libs sql.NullString
		if err := rows.Scan(&m.ID, &m.Name, &typ, &lang, &libs); err != nil {
			return nil, err
		}
		m.Type, m.Language = typ.String, lang.String
		if libs.Valid && libs.String != "" {
			if err := json.Unmarshal([]byte(libs.String), &m.Libraries); err != nil {
				return nil, fmt.Errorf("module %s: bad libraries: %w", m.ID, err)
			}
		}
		byID[m.ID] = m
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]model.Module, 0, len(byID))
	for _, id := range ids {
		if m, ok := byID[id]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

// SaveModuleVersion inserts or replaces a module version schema.
func (s *Store) SaveModuleVersion(ctx context.Context, mv model.ModuleVersion) error {
	fields, err := json.Marshal(mv.Fields)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO module_versions (id, module_id, version_code, fields) VALUES (?, ?, ?, ?)`,
		mv.ID, mv.ModuleID, mv.VersionCode, string(fields))
	return err
}

// GetSchemaVersion fetches a module version schema by id.
func (s *Store) GetSchemaVersion(ctx context.Context, id string) (*model.ModuleVersion, error) {
	var mv model.ModuleVersion
	var moduleID sql.NullString
	var fields string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, module_id, version_code, fields FROM module_versions WHERE id = ?`, id).
		Scan(&mv.ID, &moduleID, &mv.VersionCode, &fields)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("module version %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	mv.ModuleID = moduleID.String
	if err := json.Unmarshal([]byte(fields), &mv.Fields); err != nil {
		return nil, fmt.Errorf("module version %s: bad fields: %w", id, err)
	}
	return &mv, nil
}

// SaveTranslation stores a new translation run.
func (s *Store) SaveTranslation(ctx context.Context, t *model.Translation) error {
	topo, err := json.Marshal(t.Topology)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
	if t.Status == "" {
		t.Status = model.StatusPending
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO translations (id, name, status, topology, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, t.Name, t.Status, string(topo), t.CreatedAt, t.UpdatedAt)
	return err
}

// UpdateTranslationStatus updates the status of a translation.
func (s *Store) UpdateTranslationStatus(ctx context.Context, id, status string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE translations SET status = ?, updated_at = ? WHERE id = ?`, status, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return requireRow(res, id)
}

// UpdateTranslation stores the outcome of a translation run.
func (s *Store) UpdateTranslation(ctx context.Context, t *model.Translation) error {
	desc, err := nullJSON(t.Descriptor, t.Descriptor == nil)
	if err != nil {
		return err
	}
	deps, err := nullJSON(t.Dependencies, t.Dependencies == nil)
	if err != nil {
		return err
	}
	t.UpdatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`UPDATE translations SET status = ?, descriptor = ?, dependencies = ?, workspace = ?, updated_at = ? WHERE id = ?`,
		t.Status, desc, deps, t.Workspace, t.UpdatedAt, t.ID)
	if err != nil {
		return err
	}
	return requireRow(res, t.ID)
}

// GetTranslation fetches a full translation record.
func (s *Store) GetTranslation(ctx context.Context, id string) (*model.Translation, error) {
	var t model.Translation
	var name, workspace, topo, desc, deps sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, status, topology, descriptor, dependencies, workspace, created_at, updated_at
		 FROM translations WHERE id = ?`, id).
		Scan(&t.ID, &name, &t.Status, &topo, &desc, &deps, &workspace, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("translation %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	t.Name, t.Workspace = name.String, workspace.String

	if topo.Valid && topo.String != "" {
		t.Topology = &model.Topology{}
		if err := json.Unmarshal([]byte(topo.String), t.Topology); err != nil {
			return nil, fmt.Errorf("translation %s: bad topology: %w", id, err)
		}
	}
	if desc.Valid {
		t.Descriptor = &model.Descriptor{}
		if err := json.Unmarshal([]byte(desc.String), t.Descriptor); err != nil {
			return nil, fmt.Errorf("translation %s: bad descriptor: %w", id, err)
		}
	}
	if deps.Valid {
		if err := json.Unmarshal([]byte(deps.String), &t.Dependencies); err != nil {
			return nil, fmt.Errorf("translation %s: bad dependencies: %w", id, err)
		}
	}
	return &t, nil
}

// ListTranslations returns all translations, newest first, without their
// payloads.
func (s *Store) ListTranslations(ctx context.Context) ([]model.Translation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, status, workspace, created_at, updated_at FROM translations ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Translation
	for rows.Next() {
		var t model.Translation
		var name, workspace sql.NullString
		if err := rows.Scan(&t.ID, &name, &t.Status, &workspace, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		t.Name, t.Workspace = name.String, workspace.String
		out = append(out, t)
	}
	return out, rows.Err()
}

// DeleteTranslation removes a translation with its diagnostics and errors.
func (s *Store) DeleteTranslation(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM translations WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if err := requireRow(res, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM translation_diagnostics WHERE translation_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM translation_errors WHERE translation_id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

// SaveDiagnostics records the structural diagnostics of a translation.
func (s *Store) SaveDiagnostics(ctx context.Context, translationID string, diags []model.Diagnostic) error {
	if len(diags) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO translation_diagnostics (translation_id, element, element_index, name, message) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, d := range diags {
		if _, err := stmt.ExecContext(ctx, translationID, d.Element, d.Index, d.Name, d.Message); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetDiagnostics returns the diagnostics of a translation in recorded order.
func (s *Store) GetDiagnostics(ctx context.Context, translationID string) ([]model.Diagnostic, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT element, element_index, name, message FROM translation_diagnostics WHERE translation_id = ? ORDER BY id`,
		translationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Diagnostic{}
	for rows.Next() {
		var d model.Diagnostic
		var name sql.NullString
		if err := rows.Scan(&d.Element, &d.Index, &name, &d.Message); err != nil {
			return nil, err
		}
		d.Name = name.String
		out = append(out, d)
	}
	return out, rows.Err()
}

// SaveTranslationError records a fatal error for a translation
func (s *Store) SaveTranslationError(ctx context.Context, translationID string, err error) error {
	if err == nil {
		return nil
	}
	_, e := s.db.ExecContext(ctx,
		`INSERT INTO translation_errors (translation_id, error_message, created_at) VALUES (?, ?, ?)`,
		translationID, err.Error(), time.Now().UTC())
	return e
}

// GetTranslationErrors returns the errors recorded for a translation.
func (s *Store) GetTranslationErrors(ctx context.Context, translationID string) ([]model.TranslationError, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT error_message, created_at FROM translation_errors WHERE translation_id = ? ORDER BY id`,
		translationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.TranslationError{}
	for rows.Next() {
		var te model.TranslationError
		if err := rows.Scan(&te.Message, &te.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, te)
	}
	return out, rows.Err()
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("translation %s: %w", id, ErrNotFound)
	}
	return nil
}

func nullJSON(v any, isNil bool) (sql.NullString, error) {
	if isNil {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}
