package datasets

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/symburst/internal/db"
	"github.com/ziadkadry99/symburst/internal/progress"
	"github.com/ziadkadry99/symburst/internal/symbols"
)

// Store provides persistence for imported symbol documents.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Save stores doc under a new UUID and returns its summary. Records are
// written in file order inside one transaction. reporter may be nil.
func (s *Store) Save(ctx context.Context, doc *symbols.Document, source string, reporter progress.Reporter) (*Dataset, error) {
	if doc == nil {
		return nil, errors.New("datasets: nil document")
	}
	if reporter == nil {
		reporter = progress.Nop{}
	}

	malformed := doc.Malformed
	if malformed == nil {
		malformed = []symbols.Malformed{}
	}
	malformedJSON, err := json.Marshal(malformed)
	if err != nil {
		return nil, fmt.Errorf("marshalling malformed records: %w", err)
	}

	ds := &Dataset{
		ID:             uuid.New().String(),
		App:            doc.App,
		Source:         source,
		RecordCount:    len(doc.Symbols),
		MalformedCount: len(doc.Malformed),
		CreatedAt:      time.Now().UTC().Truncate(time.Second),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO datasets (id, app, source, record_count, malformed, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		ds.ID, ds.App, ds.Source, ds.RecordCount, string(malformedJSON),
		ds.CreatedAt.Format(time.DateTime),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting dataset: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO symbols (dataset_id, seq, path, obj, sym, type, size, source_index)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("preparing symbol insert: %w", err)
	}
	defer stmt.Close()

	reporter.Start(len(doc.Symbols))
	for i, rec := range doc.Symbols {
		path := rec.Path
		if path == nil {
			path = []string{}
		}
		pathJSON, err := json.Marshal(path)
		if err != nil {
			return nil, fmt.Errorf("marshalling path of %s: %w", rec.Sym, err)
		}
		if _, err := stmt.ExecContext(ctx, ds.ID, i, string(pathJSON), rec.Obj, rec.Sym, string(rec.Type), rec.Size, rec.Index); err != nil {
			return nil, fmt.Errorf("inserting symbol %s: %w", rec.Sym, err)
		}
		reporter.Update(i+1, rec.Sym)
	}
	reporter.Finish()

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing dataset: %w", err)
	}
	return ds, nil
}

// Get retrieves the summary of a single dataset.
func (s *Store) Get(ctx context.Context, id string) (*Dataset, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, app, source, record_count, malformed, created_at
		FROM datasets WHERE id = ?`, id)

	ds, _, err := scanDataset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("dataset %s: %w", id, ErrNotFound)
	}
	return ds, err
}

// Document reassembles the stored symbol document with its records in their
// original order.
func (s *Store) Document(ctx context.Context, id string) (*symbols.Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, app, source, record_count, malformed, created_at
		FROM datasets WHERE id = ?`, id)

	ds, malformed, err := scanDataset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("dataset %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT path, obj, sym, type, size, source_index
		FROM symbols WHERE dataset_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("querying symbols: %w", err)
	}
	defer rows.Close()

	doc := &symbols.Document{
		App:       ds.App,
		Symbols:   make([]symbols.Record, 0, ds.RecordCount),
		Malformed: malformed,
	}
	for rows.Next() {
		var (
			rec      symbols.Record
			pathJSON string
			typ      string
		)
		if err := rows.Scan(&pathJSON, &rec.Obj, &rec.Sym, &typ, &rec.Size, &rec.Index); err != nil {
			return nil, fmt.Errorf("scanning symbol: %w", err)
		}
		if err := json.Unmarshal([]byte(pathJSON), &rec.Path); err != nil {
			return nil, fmt.Errorf("decoding path of %s: %w", rec.Sym, err)
		}
		rec.Type = symbols.Type(typ)
		doc.Symbols = append(doc.Symbols, rec)
	}
	return doc, rows.Err()
}

// List returns all datasets, newest first.
func (s *Store) List(ctx context.Context) ([]Dataset, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, app, source, record_count, malformed, created_at
		FROM datasets ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying datasets: %w", err)
	}
	defer rows.Close()

	var list []Dataset
	for rows.Next() {
		ds, _, err := scanDataset(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *ds)
	}
	return list, rows.Err()
}

// Delete removes a dataset and its symbols.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM datasets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting dataset: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("dataset %s: %w", id, ErrNotFound)
	}
	return nil
}

// scanner is implemented by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanDataset(sc scanner) (*Dataset, []symbols.Malformed, error) {
	var (
		ds            Dataset
		malformedJSON string
		created       string
	)
	if err := sc.Scan(&ds.ID, &ds.App, &ds.Source, &ds.RecordCount, &malformedJSON, &created); err != nil {
		return nil, nil, err
	}

	var malformed []symbols.Malformed
	if err := json.Unmarshal([]byte(malformedJSON), &malformed); err != nil {
		return nil, nil, fmt.Errorf("decoding malformed records of dataset %s: %w", ds.ID, err)
	}
	ds.MalformedCount = len(malformed)
	if len(malformed) == 0 {
		malformed = nil
	}

	if t, err := time.Parse(time.DateTime, created); err == nil {
		ds.CreatedAt = t
	} else if t, err := time.Parse(time.RFC3339, created); err == nil {
		ds.CreatedAt = t
	}
	return &ds, malformed, nil
}
