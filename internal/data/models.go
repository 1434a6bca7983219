package data

import (
	"html/template"
	"time"
)

// NewsItem is a news article shown on the public site and edited in the
// back-office. Content is stored as markdown; RenderedContent is filled by
// the content service before display.
type NewsItem struct {
	ID              int64         `db:"id"`
	Title           string        `db:"title"`
	Description     string        `db:"description"`
	Content         string        `db:"content"`
	Image           string        `db:"image"`
	Tag             string        `db:"tag"`
	Date            string        `db:"date"`
	Link            string        `db:"link"`
	CreatedAt       time.Time     `db:"created_at"`
	UpdatedAt       time.Time     `db:"updated_at"`
	RenderedContent template.HTML `db:"-"`
}

// Program is a programme entry. Unlike news there is no freeform content body.
type Program struct {
	ID          int64     `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Image       string    `db:"image"`
	Tag         string    `db:"tag"`
	Link        string    `db:"link"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// Activity is a timeline entry. Day and Month are free text, not validated
// as calendar dates.
type Activity struct {
	ID          int64     `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Day         string    `db:"day"`
	Month       string    `db:"month"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// Document is a downloadable file reference.
type Document struct {
	ID          int64     `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Link        string    `db:"link"`
	Category    string    `db:"category"`
	FileType    string    `db:"file_type"`
	FileSize    string    `db:"file_size"`
	Icon        string    `db:"icon"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// MediaItem is a gallery entry. Src falls back to Thumbnail when empty.
type MediaItem struct {
	ID        int64     `db:"id"`
	Title     string    `db:"title"`
	Category  string    `db:"category"`
	Date      string    `db:"date"`
	Thumbnail string    `db:"thumbnail"`
	MediaType string    `db:"media_type"`
	Src       *string   `db:"src"`
	Duration  *string   `db:"duration"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// URL returns the playable source of the media item, defaulting to the
// thumbnail when no dedicated source was uploaded.
func (m *MediaItem) URL() string {
	if m.Src != nil && *m.Src != "" {
		return *m.Src
	}
	return m.Thumbnail
}

// UpcomingEvent is an agenda entry managed in the back-office.
type UpcomingEvent struct {
	ID          int64     `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Date        string    `db:"date"`
	Time        string    `db:"time"`
	Location    string    `db:"location"`
	Image       string    `db:"image"`
	Category    string    `db:"category"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// EventPhoto is a photo from a past event. EventID is a weak reference to
// upcoming_events and may be nil.
type EventPhoto struct {
	ID           int64     `db:"id"`
	Title        string    `db:"title"`
	Description  string    `db:"description"`
	ImageURL     string    `db:"image_url"`
	EventID      *int64    `db:"event_id"`
	Date         string    `db:"date"`
	Photographer string    `db:"photographer"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// CategoryKind discriminates the polymorphic categories table.
type CategoryKind string

const (
	KindNews      CategoryKind = "news"
	KindPrograms  CategoryKind = "programs"
	KindDocuments CategoryKind = "documents"
	KindMedia     CategoryKind = "media"
)

// ValidKind reports whether k names a known category kind.
func ValidKind(k CategoryKind) bool {
	switch k {
	case KindNews, KindPrograms, KindDocuments, KindMedia:
		return true
	}
	return false
}

// Category is one row of the polymorphic categories table. Count is never
// stored; it is computed at read time by counting content rows whose tag or
// category column equals Name.
type Category struct {
	ID          int64        `db:"id"`
	Name        string       `db:"name"`
	Description *string      `db:"description"`
	Type        CategoryKind `db:"type"`
	CreatedAt   time.Time    `db:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at"`
	Count       int          `db:"-"`
}

// HeroSection is the singleton hero block of the home page.
type HeroSection struct {
	ID          int64     `db:"id"`
	Title       string    `db:"title"`
	Subtitle    string    `db:"subtitle"`
	Description string    `db:"description"`
	Image       string    `db:"image"`
	CTALabel    string    `db:"cta_label"`
	CTALink     string    `db:"cta_link"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// SiteSettings is the singleton site-wide copy and contact block.
type SiteSettings struct {
	ID           int64     `db:"id"`
	SiteName     string    `db:"site_name"`
	Tagline      string    `db:"tagline"`
	ContactEmail string    `db:"contact_email"`
	ContactPhone string    `db:"contact_phone"`
	Address      string    `db:"address"`
	Facebook     string    `db:"facebook"`
	Twitter      string    `db:"twitter"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// AboutPage is the singleton "about" page copy. Biography is markdown.
type AboutPage struct {
	ID                int64         `db:"id"`
	Title             string        `db:"title"`
	Subtitle          string        `db:"subtitle"`
	Biography         string        `db:"biography"`
	Image             string        `db:"image"`
	VisionTitle       string        `db:"vision_title"`
	VisionText        string        `db:"vision_text"`
	CreatedAt         time.Time     `db:"created_at"`
	UpdatedAt         time.Time     `db:"updated_at"`
	RenderedBiography template.HTML `db:"-"`
}

// AboutValue is one of the values listed on the about page.
type AboutValue struct {
	ID          int64     `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Icon        string    `db:"icon"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// AboutAchievement is one of the achievements listed on the about page.
type AboutAchievement struct {
	ID          int64     `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Year        string    `db:"year"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// ContactMessage is a message submitted through the public contact form.
type ContactMessage struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Phone     *string   `db:"phone"`
	Subject   string    `db:"subject"`
	Message   string    `db:"message"`
	IsRead    bool      `db:"is_read"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
