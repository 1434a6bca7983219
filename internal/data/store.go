package data

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"

	"senateur-site/internal/retry"
)

// Row is a generic table row as handled by the Store. Values are normalized
// so that text columns always surface as string regardless of the driver.
type Row map[string]any

// tableColumns is the registry of tables the Store may touch, with the
// writable columns of each. Identifiers never come from user input; every
// table and column name is checked against this registry before being
// spliced into SQL.
var tableColumns = map[string][]string{
	"news":               {"title", "description", "content", "image", "tag", "date", "link"},
	"programs":           {"title", "description", "image", "tag", "link"},
	"activities":         {"title", "description", "day", "month"},
	"documents":          {"title", "description", "link", "category", "file_type", "file_size", "icon"},
	"media":              {"title", "category", "date", "thumbnail", "media_type", "src", "duration"},
	"upcoming_events":    {"title", "description", "date", "time", "location", "image", "category"},
	"event_photos":       {"title", "description", "image_url", "event_id", "date", "photographer"},
	"categories":         {"name", "description", "type"},
	"hero_section":       {"title", "subtitle", "description", "image", "cta_label", "cta_link"},
	"site_settings":      {"site_name", "tagline", "contact_email", "contact_phone", "address", "facebook", "twitter"},
	"about_page":         {"title", "subtitle", "biography", "image", "vision_title", "vision_text"},
	"about_values":       {"title", "description", "icon"},
	"about_achievements": {"title", "description", "year"},
	"contact_messages":   {"name", "email", "phone", "subject", "message", "is_read"},
}

// Store provides table-parameterized CRUD over the registered content tables.
// Its operations never panic; failures are returned as wrapped errors that
// classify through the retry package.
type Store struct {
	db *sqlx.DB
}

// NewStore creates a new Store.
func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// checkTable validates the table name and returns its writable column set.
func checkTable(table string) (map[string]bool, error) {
	cols, ok := tableColumns[table]
	if !ok {
		return nil, fmt.Errorf("unknown table %q", table)
	}
	set := make(map[string]bool, len(cols))
	for _, c := range cols {
		set[c] = true
	}
	return set, nil
}

// sortedKeys returns the field names in a stable order so generated SQL is
// deterministic (and testable).
func sortedKeys(fields Row) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Create inserts one row and returns the stored row including the
// server-generated id and timestamps.
func (s *Store) Create(ctx context.Context, table string, fields Row) (Row, error) {
	allowed, err := checkTable(table)
	if err != nil {
		return nil, err
	}

	keys := sortedKeys(fields)
	cols := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys))
	for _, k := range keys {
		if !allowed[k] {
			return nil, fmt.Errorf("unknown column %q in table %s", k, table)
		}
		cols = append(cols, k)
		args = append(args, fields[k])
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("no fields to insert into %s", table)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(cols, ", "), placeholders(len(cols)))
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to insert into %s: %w", table, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read inserted id for %s: %w", table, err)
	}
	return s.fetchRow(ctx, table, id)
}

// Read returns all rows matching the equality filters, newest first. An
// empty result is not an error. Filter keys are validated like columns;
// filtering by id is also allowed.
func (s *Store) Read(ctx context.Context, table string, filters Row) ([]Row, error) {
	allowed, err := checkTable(table)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT * FROM %s", table)
	var args []any
	if len(filters) > 0 {
		conds := make([]string, 0, len(filters))
		for _, k := range sortedKeys(filters) {
			if k != "id" && !allowed[k] {
				return nil, fmt.Errorf("unknown filter column %q in table %s", k, table)
			}
			conds = append(conds, k+" = ?")
			args = append(args, filters[k])
		}
		sb.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}
	sb.WriteString(" ORDER BY created_at DESC, id DESC")

	rows, err := s.db.QueryxContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to read from %s: %w", table, err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		row := Row{}
		if err := rows.MapScan(row); err != nil {
			return nil, fmt.Errorf("failed to scan row from %s: %w", table, err)
		}
		out = append(out, normalizeRow(row))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed while reading %s: %w", table, err)
	}
	return out, nil
}

// ReadOne returns the row with the given id. A missing row is an
// application-level not-found error, distinct from transport failures.
func (s *Store) ReadOne(ctx context.Context, table string, id int64) (Row, error) {
	if _, err := checkTable(table); err != nil {
		return nil, err
	}
	return s.fetchRow(ctx, table, id)
}

// Update modifies an existing row. The row's existence is checked before any
// mutating statement is issued, so a missing id short-circuits with a
// not-found error. Because an UPDATE that matches zero rows is
// indistinguishable from one whose driver reports nothing useful, the row is
// re-read once after the statement and that row is returned.
func (s *Store) Update(ctx context.Context, table string, id int64, fields Row) (Row, error) {
	allowed, err := checkTable(table)
	if err != nil {
		return nil, err
	}
	if err := s.exists(ctx, table, id); err != nil {
		return nil, err
	}

	keys := sortedKeys(fields)
	sets := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys)+1)
	for _, k := range keys {
		if !allowed[k] {
			return nil, fmt.Errorf("unknown column %q in table %s", k, table)
		}
		sets = append(sets, k+" = ?")
		args = append(args, fields[k])
	}
	if len(sets) == 0 {
		return s.fetchRow(ctx, table, id)
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", table, strings.Join(sets, ", "))
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", table, err)
	}

	// Confirmatory read: one bounded re-fetch, never a loop.
	return s.fetchRow(ctx, table, id)
}

// Upsert inserts the row, or updates it when a row with the same id already
// exists. Calling it twice with identical data yields the same stored row
// both times. Rows without an id fall through to Create.
func (s *Store) Upsert(ctx context.Context, table string, fields Row) (Row, error) {
	if _, err := checkTable(table); err != nil {
		return nil, err
	}

	id, hasID := rowID(fields)
	if !hasID {
		return s.Create(ctx, table, fields)
	}

	rest := Row{}
	for k, v := range fields {
		if k != "id" {
			rest[k] = v
		}
	}

	if err := s.exists(ctx, table, id); err != nil {
		if retry.IsNotFound(err) {
			return s.insertWithID(ctx, table, id, rest)
		}
		return nil, err
	}
	return s.Update(ctx, table, id, rest)
}

// Delete removes a row. Like Update it checks existence first so "no such
// id" is reported distinctly, and it returns the row as it was before the
// delete since the statement itself yields nothing.
func (s *Store) Delete(ctx context.Context, table string, id int64) (Row, error) {
	if _, err := checkTable(table); err != nil {
		return nil, err
	}
	row, err := s.fetchRow(ctx, table, id)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf("DELETE FROM %s WHERE id = ?", table)
	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return nil, fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	return row, nil
}

// exists checks for a row by id without reading its columns.
func (s *Store) exists(ctx context.Context, table string, id int64) error {
	var found int64
	query := fmt.Sprintf("SELECT id FROM %s WHERE id = ?", table)
	if err := s.db.GetContext(ctx, &found, query, id); err != nil {
		if err == sql.ErrNoRows {
			return retry.NotFound(table, id)
		}
		return fmt.Errorf("failed existence check on %s: %w", table, err)
	}
	return nil
}

// fetchRow reads a full row by id.
func (s *Store) fetchRow(ctx context.Context, table string, id int64) (Row, error) {
	query := fmt.Sprintf("SELECT * FROM %s WHERE id = ?", table)
	rows, err := s.db.QueryxContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch row from %s: %w", table, err)
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to fetch row from %s: %w", table, err)
		}
		return nil, retry.NotFound(table, id)
	}
	row := Row{}
	if err := rows.MapScan(row); err != nil {
		return nil, fmt.Errorf("failed to scan row from %s: %w", table, err)
	}
	return normalizeRow(row), nil
}

// insertWithID inserts a row with an explicit id, used by Upsert.
func (s *Store) insertWithID(ctx context.Context, table string, id int64, fields Row) (Row, error) {
	allowed, err := checkTable(table)
	if err != nil {
		return nil, err
	}
	keys := sortedKeys(fields)
	cols := []string{"id"}
	args := []any{id}
	for _, k := range keys {
		if !allowed[k] {
			return nil, fmt.Errorf("unknown column %q in table %s", k, table)
		}
		cols = append(cols, k)
		args = append(args, fields[k])
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(cols, ", "), placeholders(len(cols)))
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("failed to insert into %s: %w", table, err)
	}
	return s.fetchRow(ctx, table, id)
}

// placeholders returns "?, ?, ..." for n parameters.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// normalizeRow converts driver-specific byte slices to strings in place.
// The MySQL driver returns TEXT columns as []byte under MapScan.
func normalizeRow(row Row) Row {
	for k, v := range row {
		if b, ok := v.([]byte); ok {
			row[k] = string(b)
		}
	}
	return row
}

// rowID extracts an int64 id from a generic field map.
func rowID(fields Row) (int64, bool) {
	v, ok := fields["id"]
	if !ok || v == nil {
		return 0, false
	}
	switch id := v.(type) {
	case int64:
		return id, true
	case int:
		return int64(id), true
	case float64:
		return int64(id), true
	}
	return 0, false
}
