// Package crud implements armature's table-driven model/controller
// pair: a generic sqlx-backed model whose writes are gated by the
// validation engine, and a controller that translates model outcomes
// into JSON response codes. Concrete resources configure a Model with
// their table name, primary key, fillable column set, and rule set
// instead of writing per-entity SQL.
package crud

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	"github.com/jmoiron/sqlx"

	"github.com/armature-dev/armature/validate"
)

// identRe matches the SQL identifiers a Model may be configured with.
// Table, key, and column names are interpolated into statements, so
// they are locked down at construction time; only values travel as
// bind parameters.
var identRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Record is a generic row: column name → scalar value.
type Record map[string]any

// Model provides uniform list/get/create/update/delete semantics over
// one table. Fields are fixed at construction and never mutated.
type Model struct {
	db     *sqlx.DB
	engine *validate.Engine

	// Table is the backing table name.
	Table string
	// PrimaryKey is the single designated key column.
	PrimaryKey string
	// Fillable is the allow-list of columns writable via mass input;
	// any other key in incoming data is dropped before persistence.
	Fillable []string
	// Rules gates every write through the validation engine.
	Rules validate.RuleSet
	// KeyGen, when set, supplies a primary-key value for inserts whose
	// input data carries no usable key (e.g. client-generated UUIDs).
	// When nil, the key must come from the input or from the database
	// itself.
	KeyGen func() any
}

// NewModel constructs a Model. It panics when table, key, or a fillable
// column is not a plain SQL identifier; that is a programming error
// caught at startup, not a runtime condition.
func NewModel(db *sqlx.DB, table, primaryKey string, fillable []string, rules validate.RuleSet) *Model {
	for _, ident := range append([]string{table, primaryKey}, fillable...) {
		if !identRe.MatchString(ident) {
			panic(fmt.Sprintf("crud: invalid SQL identifier %q", ident))
		}
	}
	return &Model{
		db:         db,
		engine:     validate.New(),
		Table:      table,
		PrimaryKey: primaryKey,
		Fillable:   fillable,
		Rules:      rules,
	}
}

// Engine exposes the model's validation engine so callers can register
// custom rules before serving traffic.
func (m *Model) Engine() *validate.Engine {
	return m.engine
}

// FindAll returns every record ordered by primary key.
func (m *Model) FindAll(ctx context.Context) ([]Record, error) {
	query := fmt.Sprintf("SELECT * FROM %s ORDER BY %s", m.Table, m.PrimaryKey)
	rows, err := m.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("crud: list %s: %w", m.Table, err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		rec := Record{}
		if err := rows.MapScan(rec); err != nil {
			return nil, fmt.Errorf("crud: scan %s: %w", m.Table, err)
		}
		records = append(records, normalize(rec))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("crud: list %s: %w", m.Table, err)
	}
	return records, nil
}

// FindByID returns the record with the given primary key, or
// ErrNotFound.
func (m *Model) FindByID(ctx context.Context, id any) (Record, error) {
	return m.findByID(ctx, m.db, id)
}

// queryer covers *sqlx.DB and *sqlx.Tx.
type queryer interface {
	QueryRowxContext(ctx context.Context, query string, args ...any) *sqlx.Row
	Rebind(query string) string
}

func (m *Model) findByID(ctx context.Context, q queryer, id any) (Record, error) {
	query := q.Rebind(fmt.Sprintf("SELECT * FROM %s WHERE %s = ?", m.Table, m.PrimaryKey))
	rec := Record{}
	err := q.QueryRowxContext(ctx, query, id).MapScan(rec)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("crud: get %s: %w", m.Table, err)
	}
	return normalize(rec), nil
}

// Create validates data, filters it to the fillable set, inserts, and
// returns the freshly-read record so column defaults and triggers are
// reflected. The insert and the read-back share one transaction, so a
// concurrent delete cannot make the round-trip come back empty-handed.
func (m *Model) Create(ctx context.Context, data Record) (Record, error) {
	if err := m.check(data); err != nil {
		return nil, err
	}
	cols, vals := m.fill(data)
	if len(cols) == 0 {
		return nil, fmt.Errorf("crud: create %s: no fillable columns in input", m.Table)
	}

	id, haveID := data[m.PrimaryKey]
	if haveID && !m.isFillable(m.PrimaryKey) {
		// A key outside the fillable set is dropped like any other
		// non-fillable column; it never names the inserted row.
		id, haveID = nil, false
	}
	if !haveID && m.KeyGen != nil {
		id = m.KeyGen()
		haveID = true
		cols = append([]string{m.PrimaryKey}, cols...)
		vals = append([]any{id}, vals...)
	}

	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("crud: create %s: %w", m.Table, err)
	}
	defer tx.Rollback()

	query := tx.Rebind(fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		m.Table, joinIdents(cols), placeholders(len(cols)),
	))
	res, err := tx.ExecContext(ctx, query, vals...)
	if err != nil {
		return nil, fmt.Errorf("crud: create %s: %w", m.Table, err)
	}

	// Prefer the inserted or generated key; fall back to the driver's.
	// Drivers without LastInsertId support (lib/pq) require the key in
	// the input data or a KeyGen.
	if !haveID {
		id, err = res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("crud: create %s: resolve key: %w", m.Table, err)
		}
	}

	rec, err := m.findByID(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("crud: create %s: %w", m.Table, err)
	}
	return rec, nil
}

// Update requires an existing record (ErrNotFound otherwise, a
// distinct failure from validation), validates, filters, updates by
// primary key, and returns the refreshed record from the same
// transaction.
func (m *Model) Update(ctx context.Context, id any, data Record) (Record, error) {
	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("crud: update %s: %w", m.Table, err)
	}
	defer tx.Rollback()

	if _, err := m.findByID(ctx, tx, id); err != nil {
		return nil, err
	}
	if err := m.check(data); err != nil {
		return nil, err
	}

	cols, vals := m.fill(data)
	if len(cols) > 0 {
		set := ""
		for i, c := range cols {
			if i > 0 {
				set += ", "
			}
			set += c + " = ?"
		}
		query := tx.Rebind(fmt.Sprintf(
			"UPDATE %s SET %s WHERE %s = ?", m.Table, set, m.PrimaryKey,
		))
		if _, err := tx.ExecContext(ctx, query, append(vals, id)...); err != nil {
			return nil, fmt.Errorf("crud: update %s: %w", m.Table, err)
		}
	}

	rec, err := m.findByID(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("crud: update %s: %w", m.Table, err)
	}
	return rec, nil
}

// Delete requires an existing record and removes it. A missing record
// yields ErrNotFound, never a data-access error.
func (m *Model) Delete(ctx context.Context, id any) error {
	if _, err := m.FindByID(ctx, id); err != nil {
		return err
	}
	query := m.db.Rebind(fmt.Sprintf("DELETE FROM %s WHERE %s = ?", m.Table, m.PrimaryKey))
	if _, err := m.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("crud: delete %s: %w", m.Table, err)
	}
	return nil
}

// check runs the model's rule set and converts a non-empty error bag
// into a *ValidationError.
func (m *Model) check(data Record) error {
	errs, err := m.engine.Validate(m.Rules, data)
	if err != nil {
		return fmt.Errorf("crud: validate %s: %w", m.Table, err)
	}
	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

func (m *Model) isFillable(col string) bool {
	for _, c := range m.Fillable {
		if c == col {
			return true
		}
	}
	return false
}

// fill filters data to the fillable allow-list, in Fillable order, so
// statement column order is deterministic.
func (m *Model) fill(data Record) (cols []string, vals []any) {
	for _, c := range m.Fillable {
		if v, ok := data[c]; ok {
			cols = append(cols, c)
			vals = append(vals, v)
		}
	}
	return cols, vals
}

func joinIdents(cols []string) string {
	out := ""
	for i, c := range cols {
		if i > 0 {
			out += ", "
		}
		out += c
	}
	return out
}

func placeholders(n int) string {
	out := ""
	for i := 0; i < n; i++ {
		if i > 0 {
			out += ", "
		}
		out += "?"
	}
	return out
}

// normalize converts driver byte slices to strings so records behave
// the same across sqlite, mysql, and postgres.
func normalize(rec Record) Record {
	for k, v := range rec {
		if b, ok := v.([]byte); ok {
			rec[k] = string(b)
		}
	}
	return rec
}
