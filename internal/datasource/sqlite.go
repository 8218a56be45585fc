package datasource

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/vanderheijden86/listfold/pkg/model"
)

// SQLiteReader provides read access to a ListHub SQLite database.
type SQLiteReader struct {
	db   *sql.DB
	path string
}

// NewSQLiteReader opens a ListHub database for reading.
func NewSQLiteReader(source DataSource) (*SQLiteReader, error) {
	if source.Type != SourceTypeSQLite {
		return nil, fmt.Errorf("source is not SQLite: %s", source.Type)
	}

	// Read-only; the viewer never writes to the backend's store.
	dsn := fmt.Sprintf("file:%s?mode=ro&_busy_timeout=5000", source.Path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}

	return &SQLiteReader{db: db, path: source.Path}, nil
}

// Close closes the database connection.
func (r *SQLiteReader) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// LoadItems reads all items (optionally scoped to one owner) ordered by
// file path, which is the pre-order the flattener expects its input in.
func (r *SQLiteReader) LoadItems(ownerID string) ([]model.Item, error) {
	query := `
		SELECT id, slug, title, content, file_path, item_type,
		       visibility, revision, created_at, updated_at
		FROM item
	`
	var args []any
	if ownerID != "" {
		query += " WHERE owner_id = ?"
		args = append(args, ownerID)
	}
	query += " ORDER BY file_path"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		var it model.Item
		var title, content, filePath, itemType, visibility sql.NullString
		var createdAt, updatedAt sql.NullString
		if err := rows.Scan(&it.ID, &it.Slug, &title, &content, &filePath,
			&itemType, &visibility, &it.Revision, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		it.Title = title.String
		it.Content = content.String
		it.FilePath = filePath.String
		it.ItemType = itemType.String
		it.Visibility = model.Visibility(visibility.String)
		it.CreatedAt = parseTimestamp(createdAt.String)
		it.UpdatedAt = parseTimestamp(updatedAt.String)

		tags, err := r.loadTags(it.ID)
		if err != nil {
			return nil, err
		}
		it.Tags = tags

		items = append(items, it)
	}
	return items, rows.Err()
}

// loadTags reads the item_tag rows for one item.
func (r *SQLiteReader) loadTags(itemID string) ([]string, error) {
	rows, err := r.db.Query(`SELECT tag FROM item_tag WHERE item_id = ? ORDER BY tag`, itemID)
	if err != nil {
		return nil, fmt.Errorf("query tags for %s: %w", itemID, err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// parseTimestamp handles the timestamp formats SQLite emits for
// CURRENT_TIMESTAMP columns. Unparseable values yield the zero time.
func parseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{
		"2006-01-02 15:04:05",
		time.RFC3339,
		"2006-01-02T15:04:05",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
