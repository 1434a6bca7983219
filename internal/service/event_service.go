package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"senateur-site/internal/data"
	"senateur-site/internal/retry"
)

// EventRepository defines the event operations the service needs.
type EventRepository interface {
	GetUpcomingEvents(ctx context.Context) ([]*data.UpcomingEvent, error)
	CreateUpcomingEvent(ctx context.Context, e *data.UpcomingEvent) (int64, error)
	UpdateUpcomingEvent(ctx context.Context, e *data.UpcomingEvent) error
	DeleteUpcomingEvent(ctx context.Context, id int64) error
	GetEventPhotos(ctx context.Context) ([]*data.EventPhoto, error)
	GetEventPhotosByEvent(ctx context.Context, eventID int64) ([]*data.EventPhoto, error)
	CreateEventPhoto(ctx context.Context, p *data.EventPhoto) (int64, error)
	UpdateEventPhoto(ctx context.Context, p *data.EventPhoto) error
	DeleteEventPhoto(ctx context.Context, id int64) error
}

// Event is the narrowed public shape of an upcoming event; database
// timestamps stay internal.
type Event struct {
	ID          int64
	Title       string
	Description string
	Date        string
	Time        string
	Location    string
	Image       string
	Category    string
}

// EventPhoto is the narrowed public shape of an event photo.
type EventPhoto struct {
	ID           int64
	Title        string
	Description  string
	ImageURL     string
	EventID      *int64
	Date         string
	Photographer string
}

// EventService manages upcoming events and event photos. Every operation
// runs through the retry helper; transient failures get a second attempt,
// constraint and not-found errors do not.
type EventService struct {
	repo     EventRepository
	policy   retry.Policy
	attempts int
	delay    time.Duration
}

// NewEventService creates a new EventService with the default retry policy.
func NewEventService(repo EventRepository) *EventService {
	return &EventService{
		repo:     repo,
		policy:   retry.DefaultPolicy,
		attempts: retry.DefaultAttempts,
		delay:    retry.DefaultDelay,
	}
}

// do wraps one repository call in the bounded retry.
func (s *EventService) do(ctx context.Context, op func(ctx context.Context) error) error {
	return retry.Do(ctx, s.policy, s.attempts, s.delay, op)
}

// UpcomingEvents returns all events ordered by ascending date.
func (s *EventService) UpcomingEvents(ctx context.Context) ([]Event, error) {
	var rows []*data.UpcomingEvent
	err := s.do(ctx, func(ctx context.Context) (err error) {
		rows, err = s.repo.GetUpcomingEvents(ctx)
		return
	})
	if err != nil {
		return nil, err
	}
	events := make([]Event, len(rows))
	for i, r := range rows {
		events[i] = toEvent(r)
	}
	return events, nil
}

// CreateUpcomingEvent validates and stores a new event, returning it with
// its generated id.
func (s *EventService) CreateUpcomingEvent(ctx context.Context, e Event) (Event, error) {
	e.Title = strings.TrimSpace(e.Title)
	if e.Title == "" {
		return Event{}, fmt.Errorf("event title is required")
	}
	if e.Date == "" {
		return Event{}, fmt.Errorf("event date is required")
	}
	row := fromEvent(e)
	err := s.do(ctx, func(ctx context.Context) error {
		id, err := s.repo.CreateUpcomingEvent(ctx, row)
		if err != nil {
			return err
		}
		row.ID = id
		return nil
	})
	if err != nil {
		return Event{}, err
	}
	return toEvent(row), nil
}

// UpdateUpcomingEvent overwrites an existing event.
func (s *EventService) UpdateUpcomingEvent(ctx context.Context, e Event) error {
	if e.ID == 0 {
		return fmt.Errorf("event id is required")
	}
	row := fromEvent(e)
	return s.do(ctx, func(ctx context.Context) error {
		return s.repo.UpdateUpcomingEvent(ctx, row)
	})
}

// DeleteUpcomingEvent removes an event.
func (s *EventService) DeleteUpcomingEvent(ctx context.Context, id int64) error {
	return s.do(ctx, func(ctx context.Context) error {
		return s.repo.DeleteUpcomingEvent(ctx, id)
	})
}

// EventPhotos returns all event photos, newest first.
func (s *EventService) EventPhotos(ctx context.Context) ([]EventPhoto, error) {
	var rows []*data.EventPhoto
	err := s.do(ctx, func(ctx context.Context) (err error) {
		rows, err = s.repo.GetEventPhotos(ctx)
		return
	})
	if err != nil {
		return nil, err
	}
	photos := make([]EventPhoto, len(rows))
	for i, r := range rows {
		photos[i] = toEventPhoto(r)
	}
	return photos, nil
}

// CreateEventPhoto validates and stores a new photo.
func (s *EventService) CreateEventPhoto(ctx context.Context, p EventPhoto) (EventPhoto, error) {
	p.Title = strings.TrimSpace(p.Title)
	if p.ImageURL == "" {
		return EventPhoto{}, fmt.Errorf("photo image URL is required")
	}
	row := fromEventPhoto(p)
	err := s.do(ctx, func(ctx context.Context) error {
		id, err := s.repo.CreateEventPhoto(ctx, row)
		if err != nil {
			return err
		}
		row.ID = id
		return nil
	})
	if err != nil {
		return EventPhoto{}, err
	}
	return toEventPhoto(row), nil
}

// UpdateEventPhoto overwrites an existing photo.
func (s *EventService) UpdateEventPhoto(ctx context.Context, p EventPhoto) error {
	if p.ID == 0 {
		return fmt.Errorf("photo id is required")
	}
	row := fromEventPhoto(p)
	return s.do(ctx, func(ctx context.Context) error {
		return s.repo.UpdateEventPhoto(ctx, row)
	})
}

// DeleteEventPhoto removes a photo.
func (s *EventService) DeleteEventPhoto(ctx context.Context, id int64) error {
	return s.do(ctx, func(ctx context.Context) error {
		return s.repo.DeleteEventPhoto(ctx, id)
	})
}

func toEvent(r *data.UpcomingEvent) Event {
	return Event{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Date:        r.Date,
		Time:        r.Time,
		Location:    r.Location,
		Image:       r.Image,
		Category:    r.Category,
	}
}

func fromEvent(e Event) *data.UpcomingEvent {
	return &data.UpcomingEvent{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date,
		Time:        e.Time,
		Location:    e.Location,
		Image:       e.Image,
		Category:    e.Category,
	}
}

func toEventPhoto(r *data.EventPhoto) EventPhoto {
	return EventPhoto{
		ID:           r.ID,
		Title:        r.Title,
		Description:  r.Description,
		ImageURL:     r.ImageURL,
		EventID:      r.EventID,
		Date:         r.Date,
		Photographer: r.Photographer,
	}
}

func fromEventPhoto(p EventPhoto) *data.EventPhoto {
	return &data.EventPhoto{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		ImageURL:     p.ImageURL,
		EventID:      p.EventID,
		Date:         p.Date,
		Photographer: p.Photographer,
	}
}
