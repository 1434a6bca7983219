package data

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"senateur-site/internal/retry"
)

// EventRepository handles database operations for upcoming events and event
// photos. Unlike the generic Store it does not pre-check row existence before
// mutating; a zero-row UPDATE or DELETE is reported as not-found afterwards.
type EventRepository struct {
	DB *sqlx.DB
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{DB: db}
}

// GetUpcomingEvents returns all upcoming events ordered by ascending date,
// then time.
func (r *EventRepository) GetUpcomingEvents(ctx context.Context) ([]*UpcomingEvent, error) {
	var events []*UpcomingEvent
	err := r.DB.SelectContext(ctx, &events,
		"SELECT * FROM upcoming_events ORDER BY date, time")
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming events: %w", err)
	}
	return events, nil
}

// CreateUpcomingEvent inserts an event and returns its id.
func (r *EventRepository) CreateUpcomingEvent(ctx context.Context, e *UpcomingEvent) (int64, error) {
	res, err := r.DB.NamedExecContext(ctx, `
		INSERT INTO upcoming_events (title, description, date, time, location, image, category)
		VALUES (:title, :description, :date, :time, :location, :image, :category)`, e)
	if err != nil {
		return 0, fmt.Errorf("failed to create upcoming event: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted event id: %w", err)
	}
	return id, nil
}

// UpdateUpcomingEvent updates an event in place.
func (r *EventRepository) UpdateUpcomingEvent(ctx context.Context, e *UpcomingEvent) error {
	res, err := r.DB.NamedExecContext(ctx, `
		UPDATE upcoming_events
		SET title = :title, description = :description, date = :date, time = :time,
		    location = :location, image = :image, category = :category
		WHERE id = :id`, e)
	if err != nil {
		return fmt.Errorf("failed to update upcoming event: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return retry.NotFound("upcoming_events", e.ID)
	}
	return nil
}

// DeleteUpcomingEvent removes an event by id.
func (r *EventRepository) DeleteUpcomingEvent(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM upcoming_events WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete upcoming event: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return retry.NotFound("upcoming_events", id)
	}
	return nil
}

// GetEventPhotos returns all event photos, newest first.
func (r *EventRepository) GetEventPhotos(ctx context.Context) ([]*EventPhoto, error) {
	var photos []*EventPhoto
	err := r.DB.SelectContext(ctx, &photos,
		"SELECT * FROM event_photos ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list event photos: %w", err)
	}
	return photos, nil
}

// GetEventPhotosByEvent returns the photos attached to one event.
func (r *EventRepository) GetEventPhotosByEvent(ctx context.Context, eventID int64) ([]*EventPhoto, error) {
	var photos []*EventPhoto
	err := r.DB.SelectContext(ctx, &photos,
		"SELECT * FROM event_photos WHERE event_id = ? ORDER BY created_at DESC, id DESC", eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos of event %d: %w", eventID, err)
	}
	return photos, nil
}

// CreateEventPhoto inserts a photo and returns its id.
func (r *EventRepository) CreateEventPhoto(ctx context.Context, p *EventPhoto) (int64, error) {
	res, err := r.DB.NamedExecContext(ctx, `
		INSERT INTO event_photos (title, description, image_url, event_id, date, photographer)
		VALUES (:title, :description, :image_url, :event_id, :date, :photographer)`, p)
	if err != nil {
		return 0, fmt.Errorf("failed to create event photo: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted photo id: %w", err)
	}
	return id, nil
}

// UpdateEventPhoto updates a photo in place.
func (r *EventRepository) UpdateEventPhoto(ctx context.Context, p *EventPhoto) error {
	res, err := r.DB.NamedExecContext(ctx, `
		UPDATE event_photos
		SET title = :title, description = :description, image_url = :image_url,
		    event_id = :event_id, date = :date, photographer = :photographer
		WHERE id = :id`, p)
	if err != nil {
		return fmt.Errorf("failed to update event photo: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return retry.NotFound("event_photos", p.ID)
	}
	return nil
}

// DeleteEventPhoto removes a photo by id.
func (r *EventRepository) DeleteEventPhoto(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM event_photos WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete event photo: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return retry.NotFound("event_photos", id)
	}
	return nil
}
