//go:build integration

package data

import (
	"context"
	"testing"

	"senateur-site/internal/retry"
)

func TestEventRepository_CreateAndListOrdering(t *testing.T) {
	db, teardown := newTestDB(t)
	defer teardown()
	repo := NewEventRepository(db)
	ctx := context.Background()

	seed := []*UpcomingEvent{
		{Title: "Forum", Date: "2025-01-01", Time: "10:00", Location: "Lomé", Category: "Conférence"},
		{Title: "Audience", Date: "2024-12-15", Time: "09:00", Location: "Kara"},
		{Title: "Séance plénière", Date: "2025-01-01", Time: "08:30", Location: "Lomé"},
	}
	for _, e := range seed {
		if _, err := repo.CreateUpcomingEvent(ctx, e); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	events, err := repo.GetUpcomingEvents(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	// Ascending by date, then time.
	want := []string{"Audience", "Séance plénière", "Forum"}
	for i, title := range want {
		if events[i].Title != title {
			t.Errorf("position %d: expected %q, got %q", i, title, events[i].Title)
		}
	}
}

func TestEventRepository_UpdateAndDelete(t *testing.T) {
	db, teardown := newTestDB(t)
	defer teardown()
	repo := NewEventRepository(db)
	ctx := context.Background()

	id, err := repo.CreateUpcomingEvent(ctx, &UpcomingEvent{Title: "Forum", Date: "2025-01-01"})
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	if err := repo.UpdateUpcomingEvent(ctx, &UpcomingEvent{ID: id, Title: "Forum national", Date: "2025-01-02"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	events, err := repo.GetUpcomingEvents(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if events[0].Title != "Forum national" || events[0].Date != "2025-01-02" {
		t.Errorf("update not applied: %+v", events[0])
	}

	if err := repo.UpdateUpcomingEvent(ctx, &UpcomingEvent{ID: 999, Title: "x"}); !retry.IsNotFound(err) {
		t.Errorf("expected not-found on missing id, got %v", err)
	}

	if err := repo.DeleteUpcomingEvent(ctx, id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.DeleteUpcomingEvent(ctx, id); !retry.IsNotFound(err) {
		t.Errorf("expected not-found on double delete, got %v", err)
	}
}

func TestEventRepository_Photos(t *testing.T) {
	db, teardown := newTestDB(t)
	defer teardown()
	repo := NewEventRepository(db)
	ctx := context.Background()

	eventID, err := repo.CreateUpcomingEvent(ctx, &UpcomingEvent{Title: "Forum", Date: "2025-01-01"})
	if err != nil {
		t.Fatal(err)
	}

	// One photo attached to the event, one orphan (weak reference is optional).
	if _, err := repo.CreateEventPhoto(ctx, &EventPhoto{Title: "Tribune", ImageURL: "/uploads/images/a.jpg", EventID: &eventID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.CreateEventPhoto(ctx, &EventPhoto{Title: "Archive", ImageURL: "/uploads/images/b.jpg"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	all, err := repo.GetEventPhotos(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 photos, got %d", len(all))
	}

	attached, err := repo.GetEventPhotosByEvent(ctx, eventID)
	if err != nil {
		t.Fatal(err)
	}
	if len(attached) != 1 || attached[0].Title != "Tribune" {
		t.Errorf("unexpected attached photos: %+v", attached)
	}

	if err := repo.UpdateEventPhoto(ctx, &EventPhoto{ID: 999, Title: "x"}); !retry.IsNotFound(err) {
		t.Errorf("expected not-found on missing photo, got %v", err)
	}
}
