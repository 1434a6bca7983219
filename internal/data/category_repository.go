package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// kindTargets maps each category kind to the content table it partitions and
// the column of that table carrying the category name. Content rows reference
// categories by name string, not by id; renaming a category therefore orphans
// existing rows. That behavior is kept on purpose.
var kindTargets = map[CategoryKind]struct {
	table  string
	column string
}{
	KindNews:      {"news", "tag"},
	KindPrograms:  {"programs", "tag"},
	KindDocuments: {"documents", "category"},
	KindMedia:     {"media", "category"},
}

// CategoryRepository handles database operations for the polymorphic
// categories table.
type CategoryRepository struct {
	DB *sqlx.DB
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

// GetByKind retrieves all categories of one kind ordered by name, each with
// its usage count. The count is computed with one COUNT query per category
// against the kind's content table. Category lists are small and this runs
// on admin screens only, so the N+1 shape is acceptable.
func (r *CategoryRepository) GetByKind(ctx context.Context, kind CategoryKind) ([]*Category, error) {
	target, ok := kindTargets[kind]
	if !ok {
		return nil, fmt.Errorf("unknown category kind %q", kind)
	}

	var categories []*Category
	err := r.DB.SelectContext(ctx, &categories,
		"SELECT * FROM categories WHERE type = ? ORDER BY name", kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s categories: %w", kind, err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s = ?", target.table, target.column)
	for _, c := range categories {
		if err := r.DB.GetContext(ctx, &c.Count, countQuery, c.Name); err != nil {
			return nil, fmt.Errorf("failed to count items of category %q: %w", c.Name, err)
		}
	}
	return categories, nil
}

// FindByName finds a category by name within one kind.
func (r *CategoryRepository) FindByName(ctx context.Context, kind CategoryKind, name string) (*Category, error) {
	var category Category
	err := r.DB.GetContext(ctx, &category,
		"SELECT * FROM categories WHERE name = ? AND type = ?", name, kind)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Not found is not an error
		}
		return nil, err
	}
	return &category, nil
}

// GetByID finds a category by its ID.
func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*Category, error) {
	var category Category
	err := r.DB.GetContext(ctx, &category, "SELECT * FROM categories WHERE id = ?", id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Not found is not an error
		}
		return nil, err
	}
	return &category, nil
}

// Save creates a new category and returns its ID.
func (r *CategoryRepository) Save(ctx context.Context, category *Category) (int64, error) {
	res, err := r.DB.NamedExecContext(ctx,
		"INSERT INTO categories (name, description, type) VALUES (:name, :description, :type)", category)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Update renames or re-describes a category. It does not cascade to content
// rows carrying the old name.
func (r *CategoryRepository) Update(ctx context.Context, category *Category) error {
	res, err := r.DB.NamedExecContext(ctx,
		"UPDATE categories SET name = :name, description = :description WHERE id = :id", category)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("no category found to update with id %d", category.ID)
	}
	return nil
}

// Delete removes a category. Content rows referencing it by name are left
// as-is.
func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM categories WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("no category found to delete with id %d", id)
	}
	return nil
}

// NamesByKind returns just the category names of one kind, for pickers.
func (r *CategoryRepository) NamesByKind(ctx context.Context, kind CategoryKind) ([]string, error) {
	var names []string
	err := r.DB.SelectContext(ctx, &names,
		"SELECT name FROM categories WHERE type = ? ORDER BY name", kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s category names: %w", kind, err)
	}
	return names, nil
}
