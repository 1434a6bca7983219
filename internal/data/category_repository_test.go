//go:build integration

package data

import (
	"context"
	"testing"
)

func TestCategoryRepository_Save(t *testing.T) {
	db, teardown := newTestDB(t)
	defer teardown()
	repo := NewCategoryRepository(db)

	id, err := repo.Save(context.Background(), &Category{Name: "Santé", Type: KindPrograms})
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if id == 0 {
		t.Error("expected non-zero id")
	}
}

func TestCategoryRepository_FindByName(t *testing.T) {
	db, teardown := newTestDB(t)
	defer teardown()
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	// The same name may exist under two kinds; lookups are kind-scoped.
	if _, err := repo.Save(ctx, &Category{Name: "Environnement", Type: KindNews}); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Save(ctx, &Category{Name: "Environnement", Type: KindPrograms}); err != nil {
		t.Fatal(err)
	}

	found, err := repo.FindByName(ctx, KindNews, "Environnement")
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if found == nil {
		t.Fatal("expected to find category, but got nil")
	}
	if found.Type != KindNews {
		t.Errorf("expected kind news, got '%s'", found.Type)
	}

	found, err = repo.FindByName(ctx, KindMedia, "Environnement")
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if found != nil {
		t.Errorf("expected nil for missing kind, but found category: %v", found)
	}
}

func TestCategoryRepository_GetByKindCounts(t *testing.T) {
	db, teardown := newTestDB(t)
	defer teardown()
	repo := NewCategoryRepository(db)
	store := NewStore(db)
	ctx := context.Background()

	if _, err := repo.Save(ctx, &Category{Name: "Institution", Type: KindNews}); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Save(ctx, &Category{Name: "Terrain", Type: KindNews}); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		if _, err := store.Create(ctx, "news", Row{"title": "n", "tag": "Institution"}); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := store.Create(ctx, "news", Row{"title": "n", "tag": "Terrain"}); err != nil {
		t.Fatal(err)
	}
	// Case-sensitive match: lower-case tag must not be counted.
	if _, err := store.Create(ctx, "news", Row{"title": "n", "tag": "institution"}); err != nil {
		t.Fatal(err)
	}

	categories, err := repo.GetByKind(ctx, KindNews)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(categories))
	}
	// Ordered by name: Institution before Terrain.
	if categories[0].Name != "Institution" || categories[0].Count != 3 {
		t.Errorf("expected Institution with count 3, got %s/%d", categories[0].Name, categories[0].Count)
	}
	if categories[1].Name != "Terrain" || categories[1].Count != 1 {
		t.Errorf("expected Terrain with count 1, got %s/%d", categories[1].Name, categories[1].Count)
	}
}

func TestCategoryRepository_GetByKindRejectsUnknown(t *testing.T) {
	db, teardown := newTestDB(t)
	defer teardown()
	repo := NewCategoryRepository(db)

	if _, err := repo.GetByKind(context.Background(), CategoryKind("users")); err == nil {
		t.Error("expected unknown kind to be rejected")
	}
}

func TestCategoryRepository_UpdateDoesNotCascade(t *testing.T) {
	db, teardown := newTestDB(t)
	defer teardown()
	repo := NewCategoryRepository(db)
	store := NewStore(db)
	ctx := context.Background()

	id, err := repo.Save(ctx, &Category{Name: "Lois", Type: KindDocuments})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.Create(ctx, "documents", Row{"title": "d", "category": "Lois"}); err != nil {
		t.Fatal(err)
	}

	if err := repo.Update(ctx, &Category{ID: id, Name: "Législation", Type: KindDocuments}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The document still carries the old name, so the renamed category counts zero.
	categories, err := repo.GetByKind(ctx, KindDocuments)
	if err != nil {
		t.Fatal(err)
	}
	if len(categories) != 1 || categories[0].Count != 0 {
		t.Errorf("expected renamed category with count 0, got %+v", categories[0])
	}
}

func TestCategoryRepository_DeleteMissing(t *testing.T) {
	db, teardown := newTestDB(t)
	defer teardown()
	repo := NewCategoryRepository(db)

	if err := repo.Delete(context.Background(), 12345); err == nil {
		t.Error("expected error deleting a missing category")
	}
}

func TestCategoryRepository_NamesByKind(t *testing.T) {
	db, teardown := newTestDB(t)
	defer teardown()
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	for _, name := range []string{"Reportage", "Interview"} {
		if _, err := repo.Save(ctx, &Category{Name: name, Type: KindMedia}); err != nil {
			t.Fatal(err)
		}
	}

	names, err := repo.NamesByKind(ctx, KindMedia)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) != 2 || names[0] != "Interview" || names[1] != "Reportage" {
		t.Errorf("unexpected names: %v", names)
	}
}
