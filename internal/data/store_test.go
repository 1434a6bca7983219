//go:build integration

package data

import (
	"context"
	"testing"

	"senateur-site/internal/retry"
)

func TestStore_CreateThenReadOne(t *testing.T) {
	db, teardown := newTestDB(t)
	defer teardown()
	store := NewStore(db)
	ctx := context.Background()

	created, err := store.Create(ctx, "news", Row{
		"title":       "Session budgétaire",
		"description": "Ouverture de la session",
		"content":     "Le Sénat a ouvert sa session.",
		"tag":         "Institution",
		"date":        "2025-03-01",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	id, ok := rowID(created)
	if !ok || id == 0 {
		t.Fatalf("expected server-generated id, got %v", created["id"])
	}
	if created["created_at"] == nil {
		t.Error("expected server-generated created_at")
	}

	fetched, err := store.ReadOne(ctx, "news", id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, col := range []string{"title", "description", "content", "tag", "date"} {
		if fetched[col] != created[col] {
			t.Errorf("column %s: got %v, want %v", col, fetched[col], created[col])
		}
	}
}

func TestStore_ReadFiltersAndOrder(t *testing.T) {
	db, teardown := newTestDB(t)
	defer teardown()
	store := NewStore(db)
	ctx := context.Background()

	for _, title := range []string{"Première", "Deuxième", "Troisième"} {
		if _, err := store.Create(ctx, "programs", Row{"title": title, "tag": "Santé"}); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}
	if _, err := store.Create(ctx, "programs", Row{"title": "Autre", "tag": "Éducation"}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	rows, err := store.Read(ctx, "programs", Row{"tag": "Santé"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	// Newest first: id is the tiebreak for rows created in the same second.
	if rows[0]["title"] != "Troisième" || rows[2]["title"] != "Première" {
		t.Errorf("unexpected order: %v, %v, %v", rows[0]["title"], rows[1]["title"], rows[2]["title"])
	}

	all, err := store.Read(ctx, "programs", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("expected 4 rows without filters, got %d", len(all))
	}

	empty, err := store.Read(ctx, "programs", Row{"tag": "Inexistant"})
	if err != nil {
		t.Fatalf("empty result must not be an error: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected empty result, got %d rows", len(empty))
	}
}

func TestStore_ReadOneNotFound(t *testing.T) {
	db, teardown := newTestDB(t)
	defer teardown()
	store := NewStore(db)

	_, err := store.ReadOne(context.Background(), "documents", 424242)
	if err == nil {
		t.Fatal("expected error for missing row")
	}
	if !retry.IsNotFound(err) {
		t.Errorf("expected not-found classification, got %v", err)
	}
}

func TestStore_UpdateMissingShortCircuits(t *testing.T) {
	db, teardown := newTestDB(t)
	defer teardown()
	store := NewStore(db)
	ctx := context.Background()

	seeded, err := store.Create(ctx, "activities", Row{"title": "Tournée", "day": "12", "month": "Mars"})
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	_, err = store.Update(ctx, "activities", 999, Row{"title": "Changé"})
	if !retry.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}

	// The existing row must be untouched by the failed update.
	id, _ := rowID(seeded)
	after, err := store.ReadOne(ctx, "activities", id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if after["title"] != "Tournée" {
		t.Errorf("row mutated by short-circuited update: %v", after["title"])
	}
}

func TestStore_UpdateReturnsConfirmedRow(t *testing.T) {
	db, teardown := newTestDB(t)
	defer teardown()
	store := NewStore(db)
	ctx := context.Background()

	created, err := store.Create(ctx, "documents", Row{"title": "Rapport", "category": "Lois"})
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	id, _ := rowID(created)

	updated, err := store.Update(ctx, "documents", id, Row{"title": "Rapport annuel"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated["title"] != "Rapport annuel" {
		t.Errorf("expected confirmed new title, got %v", updated["title"])
	}
	if updated["category"] != "Lois" {
		t.Errorf("untouched column lost: %v", updated["category"])
	}
}

func TestStore_UpsertIdempotent(t *testing.T) {
	db, teardown := newTestDB(t)
	defer teardown()
	store := NewStore(db)
	ctx := context.Background()

	fields := Row{"id": int64(5), "title": "Galerie", "media_type": "photo", "thumbnail": "/uploads/images/g.jpg"}

	first, err := store.Upsert(ctx, "media", fields)
	if err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}
	second, err := store.Upsert(ctx, "media", fields)
	if err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}
	if first["title"] != second["title"] || first["thumbnail"] != second["thumbnail"] {
		t.Errorf("upsert not idempotent: %v vs %v", first, second)
	}

	rows, err := store.Read(ctx, "media", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("expected a single row after repeated upsert, got %d", len(rows))
	}
}

func TestStore_UpsertWithoutIDCreates(t *testing.T) {
	db, teardown := newTestDB(t)
	defer teardown()
	store := NewStore(db)

	row, err := store.Upsert(context.Background(), "media", Row{"title": "Clip", "media_type": "video"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id, ok := rowID(row); !ok || id == 0 {
		t.Errorf("expected generated id, got %v", row["id"])
	}
}

func TestStore_DeleteThenReadOne(t *testing.T) {
	db, teardown := newTestDB(t)
	defer teardown()
	store := NewStore(db)
	ctx := context.Background()

	created, err := store.Create(ctx, "news", Row{"title": "À supprimer"})
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	id, _ := rowID(created)

	deleted, err := store.Delete(ctx, "news", id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted["title"] != "À supprimer" {
		t.Errorf("expected the deleted row back, got %v", deleted["title"])
	}

	_, err = store.ReadOne(ctx, "news", id)
	if !retry.IsNotFound(err) {
		t.Errorf("expected not-found after delete, got %v", err)
	}

	_, err = store.Delete(ctx, "news", id)
	if !retry.IsNotFound(err) {
		t.Errorf("expected not-found on double delete, got %v", err)
	}
}

func TestStore_RejectsUnknownTableAndColumn(t *testing.T) {
	db, teardown := newTestDB(t)
	defer teardown()
	store := NewStore(db)
	ctx := context.Background()

	if _, err := store.Read(ctx, "users; DROP TABLE news", nil); err == nil {
		t.Error("expected unknown table to be rejected")
	}
	if _, err := store.Create(ctx, "news", Row{"title": "x", "evil": "y"}); err == nil {
		t.Error("expected unknown column to be rejected")
	}
	if _, err := store.Read(ctx, "news", Row{"evil": "y"}); err == nil {
		t.Error("expected unknown filter column to be rejected")
	}
}

// Rows created with only some of their columns must still read back through
// the typed repositories; the schema fills the omitted text columns with
// empty strings rather than NULL.
func TestStore_PartialCreateReadsBackTyped(t *testing.T) {
	db, teardown := newTestDB(t)
	defer teardown()
	store := NewStore(db)
	content := NewContentRepository(db)
	ctx := context.Background()

	if _, err := store.Create(ctx, "news", Row{"title": "À supprimer"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	news, err := content.GetNews(ctx)
	if err != nil {
		t.Fatalf("typed read after partial create failed: %v", err)
	}
	if len(news) != 1 {
		t.Fatalf("news count = %d, want 1", len(news))
	}
	if news[0].Title != "À supprimer" {
		t.Errorf("title = %q", news[0].Title)
	}
	if news[0].Description != "" || news[0].Content != "" {
		t.Errorf("omitted columns should read back empty, got %q / %q", news[0].Description, news[0].Content)
	}
}
