package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ContentRepository provides the typed read side of the public site. All
// lists come back newest first except activities, which keep their editorial
// order from the admin (also newest first by creation).
type ContentRepository struct {
	db *sqlx.DB
}

// NewContentRepository creates a new ContentRepository.
func NewContentRepository(db *sqlx.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

// GetNews retrieves all news items.
func (r *ContentRepository) GetNews(ctx context.Context) ([]*NewsItem, error) {
	var items []*NewsItem
	if err := r.db.SelectContext(ctx, &items,
		"SELECT * FROM news ORDER BY created_at DESC, id DESC"); err != nil {
		return nil, fmt.Errorf("failed to get news: %w", err)
	}
	return items, nil
}

// GetNewsByID retrieves a single news item.
func (r *ContentRepository) GetNewsByID(ctx context.Context, id int64) (*NewsItem, error) {
	var item NewsItem
	if err := r.db.GetContext(ctx, &item, "SELECT * FROM news WHERE id = ?", id); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("news item with id %d not found", id)
		}
		return nil, fmt.Errorf("failed to get news item: %w", err)
	}
	return &item, nil
}

// GetPrograms retrieves all programs.
func (r *ContentRepository) GetPrograms(ctx context.Context) ([]*Program, error) {
	var items []*Program
	if err := r.db.SelectContext(ctx, &items,
		"SELECT * FROM programs ORDER BY created_at DESC, id DESC"); err != nil {
		return nil, fmt.Errorf("failed to get programs: %w", err)
	}
	return items, nil
}

// GetActivities retrieves all activities.
func (r *ContentRepository) GetActivities(ctx context.Context) ([]*Activity, error) {
	var items []*Activity
	if err := r.db.SelectContext(ctx, &items,
		"SELECT * FROM activities ORDER BY created_at DESC, id DESC"); err != nil {
		return nil, fmt.Errorf("failed to get activities: %w", err)
	}
	return items, nil
}

// GetDocuments retrieves all documents.
func (r *ContentRepository) GetDocuments(ctx context.Context) ([]*Document, error) {
	var items []*Document
	if err := r.db.SelectContext(ctx, &items,
		"SELECT * FROM documents ORDER BY created_at DESC, id DESC"); err != nil {
		return nil, fmt.Errorf("failed to get documents: %w", err)
	}
	return items, nil
}

// GetMedia retrieves all media items.
func (r *ContentRepository) GetMedia(ctx context.Context) ([]*MediaItem, error) {
	var items []*MediaItem
	if err := r.db.SelectContext(ctx, &items,
		"SELECT * FROM media ORDER BY created_at DESC, id DESC"); err != nil {
		return nil, fmt.Errorf("failed to get media: %w", err)
	}
	return items, nil
}

// GetHero retrieves the hero section. A site without one yet returns nil.
func (r *ContentRepository) GetHero(ctx context.Context) (*HeroSection, error) {
	var hero HeroSection
	if err := r.db.GetContext(ctx, &hero,
		"SELECT * FROM hero_section ORDER BY id LIMIT 1"); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get hero section: %w", err)
	}
	return &hero, nil
}

// GetSettings retrieves the site settings. A site without them yet returns nil.
func (r *ContentRepository) GetSettings(ctx context.Context) (*SiteSettings, error) {
	var settings SiteSettings
	if err := r.db.GetContext(ctx, &settings,
		"SELECT * FROM site_settings ORDER BY id LIMIT 1"); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get site settings: %w", err)
	}
	return &settings, nil
}

// GetAboutPage retrieves the about page copy, or nil when unset.
func (r *ContentRepository) GetAboutPage(ctx context.Context) (*AboutPage, error) {
	var about AboutPage
	if err := r.db.GetContext(ctx, &about,
		"SELECT * FROM about_page ORDER BY id LIMIT 1"); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get about page: %w", err)
	}
	return &about, nil
}

// GetAboutValues retrieves the values listed on the about page.
func (r *ContentRepository) GetAboutValues(ctx context.Context) ([]*AboutValue, error) {
	var items []*AboutValue
	if err := r.db.SelectContext(ctx, &items,
		"SELECT * FROM about_values ORDER BY id"); err != nil {
		return nil, fmt.Errorf("failed to get about values: %w", err)
	}
	return items, nil
}

// GetAboutAchievements retrieves the achievements listed on the about page.
func (r *ContentRepository) GetAboutAchievements(ctx context.Context) ([]*AboutAchievement, error) {
	var items []*AboutAchievement
	if err := r.db.SelectContext(ctx, &items,
		"SELECT * FROM about_achievements ORDER BY year DESC, id DESC"); err != nil {
		return nil, fmt.Errorf("failed to get about achievements: %w", err)
	}
	return items, nil
}

// GetContactMessages retrieves contact messages, newest first.
func (r *ContentRepository) GetContactMessages(ctx context.Context) ([]*ContactMessage, error) {
	var items []*ContactMessage
	if err := r.db.SelectContext(ctx, &items,
		"SELECT * FROM contact_messages ORDER BY created_at DESC, id DESC"); err != nil {
		return nil, fmt.Errorf("failed to get contact messages: %w", err)
	}
	return items, nil
}

// CountUnreadMessages returns how many contact messages are still unread.
func (r *ContentRepository) CountUnreadMessages(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n,
		"SELECT COUNT(*) FROM contact_messages WHERE is_read = ?", false); err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return n, nil
}
