package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/agencyops/internal/db"
	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when no document exists for a collection and id.
	ErrNotFound = errors.New("document not found")
	// ErrUnknownCollection is returned for collection names outside Collections.
	ErrUnknownCollection = errors.New("unknown collection")
	// ErrInvalidDocument is returned when data cannot be stored as a JSON
	// object, for example a NaN amount. Retrying never helps.
	ErrInvalidDocument = errors.New("invalid document")
	// ErrReadOnly is returned for writes inside Store.View.
	ErrReadOnly = errors.New("read-only transaction")
)

type Collection string

const (
	UpcomingProjects      Collection = "upcomingProjects"
	OnDevelopmentProjects Collection = "onDevelopmentProjects"
	CompletedProjects     Collection = "completedProjects"
	OperationalBudgets    Collection = "operationalBudgets"
	Expenses              Collection = "expenses"
)

// Collections lists every collection the store accepts.
var Collections = []Collection{UpcomingProjects, OnDevelopmentProjects, CompletedProjects, OperationalBudgets, Expenses}

func (c Collection) Valid() bool {
	for _, known := range Collections {
		if c == known {
			return true
		}
	}
	return false
}

// Document is one stored record. Data is a JSON object without the id.
type Document struct {
	ID        string
	Data      json.RawMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Docs is the per-collection document API. It is satisfied by *Store, where
// every write commits on its own, and by *Tx, where writes commit together.
type Docs interface {
	Get(ctx context.Context, c Collection, id string) (Document, error)
	List(ctx context.Context, c Collection) ([]Document, error)
	Create(ctx context.Context, c Collection, data any) (string, error)
	Replace(ctx context.Context, c Collection, id string, data any) error
	Merge(ctx context.Context, c Collection, id string, partial any) error
	Delete(ctx context.Context, c Collection, id string) error
}

// docs runs document statements against a DBTX and records which
// collections it wrote to.
type docs struct {
	conn    db.DBTX
	now     func() time.Time
	touched map[Collection]struct{}
	// readOnly rejects writes; set for View transactions.
	readOnly bool
}

func (d *docs) mark(c Collection) {
	if d.touched != nil {
		d.touched[c] = struct{}{}
	}
}

// checkWrite validates c and that d accepts writes.
func (d *docs) checkWrite(c Collection) error {
	if d.readOnly {
		return fmt.Errorf("writing %s: %w", c, ErrReadOnly)
	}
	return checkCollection(c)
}

func checkCollection(c Collection) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownCollection, c)
	}
	return nil
}

func (d *docs) Get(ctx context.Context, c Collection, id string) (Document, error) {
	if err := checkCollection(c); err != nil {
		return Document{}, err
	}
	row := d.conn.QueryRowContext(ctx,
		`SELECT id, data, created_at, updated_at FROM documents WHERE collection = ? AND id = ?`,
		string(c), id)
	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, fmt.Errorf("%s/%s: %w", c, id, ErrNotFound)
	}
	if err != nil {
		return Document{}, fmt.Errorf("loading %s/%s: %w", c, id, err)
	}
	return doc, nil
}

func (d *docs) List(ctx context.Context, c Collection) ([]Document, error) {
	if err := checkCollection(c); err != nil {
		return nil, err
	}
	rows, err := d.conn.QueryContext(ctx,
		`SELECT id, data, created_at, updated_at FROM documents WHERE collection = ? ORDER BY created_at, rowid`,
		string(c))
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", c, err)
	}
	defer rows.Close()

	list := []Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning %s document: %w", c, err)
		}
		list = append(list, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s: %w", c, err)
	}
	return list, nil
}

func (d *docs) Create(ctx context.Context, c Collection, data any) (string, error) {
	if err := d.checkWrite(c); err != nil {
		return "", err
	}
	body, err := encodeBody(data)
	if err != nil {
		return "", err
	}
	id := uuid.New().String()
	now := d.timestamp()
	if _, err := d.conn.ExecContext(ctx,
		`INSERT INTO documents (collection, id, data, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		string(c), id, body, now, now); err != nil {
		return "", fmt.Errorf("inserting %s document: %w", c, err)
	}
	d.mark(c)
	return id, nil
}

// Replace overwrites the whole document, creating it when absent.
func (d *docs) Replace(ctx context.Context, c Collection, id string, data any) error {
	if err := d.checkWrite(c); err != nil {
		return err
	}
	body, err := encodeBody(data)
	if err != nil {
		return err
	}
	now := d.timestamp()
	if _, err := d.conn.ExecContext(ctx,
		`INSERT INTO documents (collection, id, data, created_at, updated_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (collection, id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		string(c), id, body, now, now); err != nil {
		return fmt.Errorf("replacing %s/%s: %w", c, id, err)
	}
	d.mark(c)
	return nil
}

// Merge deep-merges the provided fields into an existing document: nested
// objects merge key by key, every other value overwrites.
func (d *docs) Merge(ctx context.Context, c Collection, id string, partial any) error {
	if err := d.checkWrite(c); err != nil {
		return err
	}
	current, err := d.Get(ctx, c, id)
	if err != nil {
		return err
	}
	base := map[string]any{}
	if err := json.Unmarshal(current.Data, &base); err != nil {
		return fmt.Errorf("decoding %s/%s: %w", c, id, err)
	}
	patch, err := toObject(partial)
	if err != nil {
		return err
	}
	delete(patch, "id")
	mergeObjects(base, patch)

	body, err := json.Marshal(base)
	if err != nil {
		return fmt.Errorf("encoding merged %s/%s: %w", c, id, err)
	}
	if _, err := d.conn.ExecContext(ctx,
		`UPDATE documents SET data = ?, updated_at = ? WHERE collection = ? AND id = ?`,
		string(body), d.timestamp(), string(c), id); err != nil {
		return fmt.Errorf("merging %s/%s: %w", c, id, err)
	}
	d.mark(c)
	return nil
}

// Delete removes a document. Deleting an absent document is not an error.
func (d *docs) Delete(ctx context.Context, c Collection, id string) error {
	if err := d.checkWrite(c); err != nil {
		return err
	}
	if _, err := d.conn.ExecContext(ctx,
		`DELETE FROM documents WHERE collection = ? AND id = ?`, string(c), id); err != nil {
		return fmt.Errorf("deleting %s/%s: %w", c, id, err)
	}
	d.mark(c)
	return nil
}

// timestampLayout is fixed width so stored timestamps sort lexically.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

func (d *docs) timestamp() string {
	return d.now().UTC().Format(timestampLayout)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (Document, error) {
	var doc Document
	var data, createdAt, updatedAt string
	if err := row.Scan(&doc.ID, &data, &createdAt, &updatedAt); err != nil {
		return Document{}, err
	}
	doc.Data = json.RawMessage(data)

	var err error
	if doc.CreatedAt, err = time.Parse(timestampLayout, createdAt); err != nil {
		return Document{}, fmt.Errorf("parsing created_at: %w", err)
	}
	if doc.UpdatedAt, err = time.Parse(timestampLayout, updatedAt); err != nil {
		return Document{}, fmt.Errorf("parsing updated_at: %w", err)
	}
	return doc, nil
}

// encodeBody normalises a record to a JSON object and drops its id field.
func encodeBody(data any) (string, error) {
	obj, err := toObject(data)
	if err != nil {
		return "", err
	}
	delete(obj, "id")
	body, err := json.Marshal(obj)
	if err != nil {
		return "", fmt.Errorf("%w: encoding: %w", ErrInvalidDocument, err)
	}
	return string(body), nil
}

func toObject(data any) (map[string]any, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding: %w", ErrInvalidDocument, err)
	}
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("%w: must be a JSON object: %w", ErrInvalidDocument, err)
	}
	if obj == nil {
		return nil, fmt.Errorf("%w: must be a JSON object, got null", ErrInvalidDocument)
	}
	return obj, nil
}

func mergeObjects(dst, src map[string]any) {
	for k, v := range src {
		if srcObj, ok := v.(map[string]any); ok {
			if dstObj, ok := dst[k].(map[string]any); ok {
				mergeObjects(dstObj, srcObj)
				continue
			}
		}
		dst[k] = v
	}
}
