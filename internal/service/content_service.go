package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"senateur-site/internal/cache"
	"senateur-site/internal/data"
)

// ContentRepository defines the read side the public site needs.
type ContentRepository interface {
	GetNews(ctx context.Context) ([]*data.NewsItem, error)
	GetNewsByID(ctx context.Context, id int64) (*data.NewsItem, error)
	GetPrograms(ctx context.Context) ([]*data.Program, error)
	GetActivities(ctx context.Context) ([]*data.Activity, error)
	GetDocuments(ctx context.Context) ([]*data.Document, error)
	GetMedia(ctx context.Context) ([]*data.MediaItem, error)
	GetHero(ctx context.Context) (*data.HeroSection, error)
	GetSettings(ctx context.Context) (*data.SiteSettings, error)
	GetAboutPage(ctx context.Context) (*data.AboutPage, error)
	GetAboutValues(ctx context.Context) ([]*data.AboutValue, error)
	GetAboutAchievements(ctx context.Context) ([]*data.AboutAchievement, error)
}

// Snapshot holds every table the public pages render from. It is loaded in
// one fan-out and cached; admin mutations invalidate it. Two processes (or a
// stale TTL window) can serve diverging snapshots; the last database write
// wins, as in the original system.
type Snapshot struct {
	News       []*data.NewsItem     `json:"news"`
	Programs   []*data.Program      `json:"programs"`
	Activities []*data.Activity     `json:"activities"`
	Documents  []*data.Document     `json:"documents"`
	Media      []*data.MediaItem    `json:"media"`
	Hero       *data.HeroSection    `json:"hero"`
	Settings   *data.SiteSettings   `json:"settings"`
	LoadedAt   time.Time            `json:"loaded_at"`
}

// About bundles the about page copy with its values and achievements; it is
// fetched ad hoc, not cached in the snapshot.
type About struct {
	Page         *data.AboutPage
	Values       []*data.AboutValue
	Achievements []*data.AboutAchievement
}

const snapshotKey = "public_content_snapshot"

// ContentService loads and caches the public content and renders markdown
// bodies to sanitized HTML.
type ContentService struct {
	repo      ContentRepository
	cache     *cache.Cache
	ttl       time.Duration
	sanitizer *bluemonday.Policy
	markdown  goldmark.Markdown
}

// NewContentService creates a new ContentService. ttl bounds how long a
// cached snapshot may be served.
func NewContentService(repo ContentRepository, c *cache.Cache, ttl time.Duration) *ContentService {
	return &ContentService{
		repo:      repo,
		cache:     c,
		ttl:       ttl,
		sanitizer: bluemonday.UGCPolicy(),
		markdown:  goldmark.New(),
	}
}

// Render converts markdown to HTML and strips anything the UGC policy
// disallows.
func (s *ContentService) Render(md string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return template.HTML(s.sanitizer.SanitizeBytes(buf.Bytes())), nil
}

// Snapshot returns the cached public content, loading it from the database
// when the cache is empty or expired.
func (s *ContentService) Snapshot(ctx context.Context) (*Snapshot, error) {
	if raw, err := s.cache.Get(snapshotKey); err == nil && raw != nil {
		var snap Snapshot
		if err := json.Unmarshal(raw, &snap); err == nil {
			return &snap, nil
		}
		// A corrupt entry is treated as a miss and overwritten below.
	}

	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(snap); err == nil {
		// Failing to cache is not fatal; the next request reloads.
		_ = s.cache.Set(snapshotKey, raw, s.ttl)
	}
	return snap, nil
}

// Invalidate drops the cached snapshot. Admin handlers call this after every
// mutation so the public pages pick up the change on the next request.
func (s *ContentService) Invalidate() {
	_ = s.cache.Delete(snapshotKey)
}

// load fans out one query per content table and assembles the snapshot.
// Each goroutine writes a distinct field; the first error wins.
func (s *ContentService) load(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{LoadedAt: time.Now()}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}
	run := func(f func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := f(); err != nil {
				fail(err)
			}
		}()
	}

	run(func() (err error) { snap.News, err = s.repo.GetNews(ctx); return })
	run(func() (err error) { snap.Programs, err = s.repo.GetPrograms(ctx); return })
	run(func() (err error) { snap.Activities, err = s.repo.GetActivities(ctx); return })
	run(func() (err error) { snap.Documents, err = s.repo.GetDocuments(ctx); return })
	run(func() (err error) { snap.Media, err = s.repo.GetMedia(ctx); return })
	run(func() (err error) { snap.Hero, err = s.repo.GetHero(ctx); return })
	run(func() (err error) { snap.Settings, err = s.repo.GetSettings(ctx); return })
	wg.Wait()

	if firstErr != nil {
		return nil, fmt.Errorf("failed to load content snapshot: %w", firstErr)
	}

	for _, n := range snap.News {
		html, err := s.Render(n.Content)
		if err != nil {
			return nil, err
		}
		n.RenderedContent = html
	}
	return snap, nil
}

// NewsItem returns one news article with its body rendered.
func (s *ContentService) NewsItem(ctx context.Context, id int64) (*data.NewsItem, error) {
	item, err := s.repo.GetNewsByID(ctx, id)
	if err != nil {
		return nil, err
	}
	html, err := s.Render(item.Content)
	if err != nil {
		return nil, err
	}
	item.RenderedContent = html
	return item, nil
}

// About returns the about page, its values and achievements, with the
// biography rendered.
func (s *ContentService) About(ctx context.Context) (*About, error) {
	page, err := s.repo.GetAboutPage(ctx)
	if err != nil {
		return nil, err
	}
	values, err := s.repo.GetAboutValues(ctx)
	if err != nil {
		return nil, err
	}
	achievements, err := s.repo.GetAboutAchievements(ctx)
	if err != nil {
		return nil, err
	}
	if page != nil {
		html, err := s.Render(page.Biography)
		if err != nil {
			return nil, err
		}
		page.RenderedBiography = html
	}
	return &About{Page: page, Values: values, Achievements: achievements}, nil
}
