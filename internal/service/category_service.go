package service

import (
	"context"
	"fmt"
	"strings"

	"senateur-site/internal/data"
)

// CategoryRepository defines the category operations the service needs.
type CategoryRepository interface {
	GetByKind(ctx context.Context, kind data.CategoryKind) ([]*data.Category, error)
	FindByName(ctx context.Context, kind data.CategoryKind, name string) (*data.Category, error)
	GetByID(ctx context.Context, id int64) (*data.Category, error)
	Save(ctx context.Context, category *data.Category) (int64, error)
	Update(ctx context.Context, category *data.Category) error
	Delete(ctx context.Context, id int64) error
	NamesByKind(ctx context.Context, kind data.CategoryKind) ([]string, error)
}

// CategoryService manages the polymorphic category table shared by news,
// programs, documents and media.
type CategoryService struct {
	repo CategoryRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(repo CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// Categories returns the categories of one kind with computed usage counts.
func (s *CategoryService) Categories(ctx context.Context, kind data.CategoryKind) ([]*data.Category, error) {
	if !data.ValidKind(kind) {
		return nil, fmt.Errorf("unknown category kind %q", kind)
	}
	return s.repo.GetByKind(ctx, kind)
}

// CreateCategory creates a category after trimming the free-text fields.
func (s *CategoryService) CreateCategory(ctx context.Context, kind data.CategoryKind, name, description string) (*data.Category, error) {
	if !data.ValidKind(kind) {
		return nil, fmt.Errorf("unknown category kind %q", kind)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("category name is required")
	}
	category := &data.Category{Name: name, Type: kind}
	if d := strings.TrimSpace(description); d != "" {
		category.Description = &d
	}

	id, err := s.repo.Save(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s category: %w", kind, err)
	}
	category.ID = id
	return category, nil
}

// UpdateCategory renames or re-describes a category. Content rows carrying
// the old name keep it; the rename does not cascade.
func (s *CategoryService) UpdateCategory(ctx context.Context, id int64, name, description string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("category name is required")
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("category with id %d not found", id)
	}
	existing.Name = name
	if d := strings.TrimSpace(description); d != "" {
		existing.Description = &d
	} else {
		existing.Description = nil
	}
	return s.repo.Update(ctx, existing)
}

// DeleteCategory removes a category without reassigning or blocking on
// content rows that reference its name.
func (s *CategoryService) DeleteCategory(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// CategoryOptions returns just the names of one kind, for form pickers.
func (s *CategoryService) CategoryOptions(ctx context.Context, kind data.CategoryKind) ([]string, error) {
	if !data.ValidKind(kind) {
		return nil, fmt.Errorf("unknown category kind %q", kind)
	}
	return s.repo.NamesByKind(ctx, kind)
}
