package handler

import (
	"net/http"
	"strconv"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"senateur-site/internal/logger"
	"senateur-site/internal/middleware"
	"senateur-site/internal/service"
	"senateur-site/internal/view"
)

// PublicHandler renders the visitor-facing pages of the site.
type PublicHandler struct {
	content  *service.ContentService
	events   *service.EventService
	messages *service.MessageService
	view     *view.View
	session  *scs.SessionManager
	log      logger.Logger
}

// NewPublicHandler creates a new PublicHandler with the given dependencies.
func NewPublicHandler(content *service.ContentService, events *service.EventService, messages *service.MessageService, v *view.View, sm *scs.SessionManager, log logger.Logger) *PublicHandler {
	return &PublicHandler{
		content:  content,
		events:   events,
		messages: messages,
		view:     v,
		session:  sm,
		log:      log,
	}
}

// pageData assembles the fields every public template expects.
func (h *PublicHandler) pageData(r *http.Request, snap *service.Snapshot) map[string]interface{} {
	userInfo := middleware.GetUserInfo(r.Context())
	return map[string]interface{}{
		"Settings": snap.Settings,
		"UserInfo": userInfo,
		"Flash":    h.session.PopString(r.Context(), "flash"),
	}
}

// homeHandler renders the hero section, the latest news and the next events.
func (h *PublicHandler) homeHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	snap, err := h.content.Snapshot(r.Context())
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load content", Code: http.StatusInternalServerError}
	}
	events, err := h.events.UpcomingEvents(r.Context())
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load events", Code: http.StatusInternalServerError}
	}

	news := snap.News
	if len(news) > 3 {
		news = news[:3]
	}
	if len(events) > 3 {
		events = events[:3]
	}

	data := h.pageData(r, snap)
	data["Hero"] = snap.Hero
	data["News"] = news
	data["Events"] = events
	if err := h.view.Render(w, r, "home.html", data); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render home page", Code: http.StatusInternalServerError}
	}
	return nil
}

// aboutHandler renders the biography, values and achievements.
func (h *PublicHandler) aboutHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	snap, err := h.content.Snapshot(r.Context())
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load content", Code: http.StatusInternalServerError}
	}
	about, err := h.content.About(r.Context())
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load about page", Code: http.StatusInternalServerError}
	}

	data := h.pageData(r, snap)
	data["About"] = about
	if err := h.view.Render(w, r, "about.html", data); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render about page", Code: http.StatusInternalServerError}
	}
	return nil
}

// newsListHandler renders all news items.
func (h *PublicHandler) newsListHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	snap, err := h.content.Snapshot(r.Context())
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load content", Code: http.StatusInternalServerError}
	}
	data := h.pageData(r, snap)
	data["News"] = snap.News
	if err := h.view.Render(w, r, "news.html", data); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render news page", Code: http.StatusInternalServerError}
	}
	return nil
}

// newsItemHandler renders one article.
func (h *PublicHandler) newsItemHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid article id", Code: http.StatusBadRequest}
	}
	snap, err := h.content.Snapshot(r.Context())
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load content", Code: http.StatusInternalServerError}
	}
	item, err := h.content.NewsItem(r.Context(), id)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Article not found", Code: http.StatusNotFound}
	}

	data := h.pageData(r, snap)
	data["Item"] = item
	if err := h.view.Render(w, r, "news_item.html", data); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render article", Code: http.StatusInternalServerError}
	}
	return nil
}

// programsHandler renders the programs page.
func (h *PublicHandler) programsHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	return h.renderSnapshotPage(w, r, "programs.html", func(snap *service.Snapshot, data map[string]interface{}) {
		data["Programs"] = snap.Programs
	})
}

// activitiesHandler renders the activity timeline.
func (h *PublicHandler) activitiesHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	return h.renderSnapshotPage(w, r, "activities.html", func(snap *service.Snapshot, data map[string]interface{}) {
		data["Activities"] = snap.Activities
	})
}

// documentsHandler renders the documents page.
func (h *PublicHandler) documentsHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	return h.renderSnapshotPage(w, r, "documents.html", func(snap *service.Snapshot, data map[string]interface{}) {
		data["Documents"] = snap.Documents
	})
}

// mediaHandler renders the media gallery.
func (h *PublicHandler) mediaHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	return h.renderSnapshotPage(w, r, "media.html", func(snap *service.Snapshot, data map[string]interface{}) {
		data["Media"] = snap.Media
	})
}

// renderSnapshotPage factors the snapshot-then-render pattern shared by the
// simple list pages.
func (h *PublicHandler) renderSnapshotPage(w http.ResponseWriter, r *http.Request, tmpl string, fill func(*service.Snapshot, map[string]interface{})) *middleware.AppError {
	snap, err := h.content.Snapshot(r.Context())
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load content", Code: http.StatusInternalServerError}
	}
	data := h.pageData(r, snap)
	fill(snap, data)
	if err := h.view.Render(w, r, tmpl, data); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render page", Code: http.StatusInternalServerError}
	}
	return nil
}

// contactFormHandler renders the contact page.
func (h *PublicHandler) contactFormHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	return h.renderSnapshotPage(w, r, "contact.html", func(snap *service.Snapshot, data map[string]interface{}) {})
}

// contactSubmitHandler stores a message from the contact form.
func (h *PublicHandler) contactSubmitHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	if err := r.ParseForm(); err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid form submission", Code: http.StatusBadRequest}
	}
	err := h.messages.Submit(r.Context(),
		r.FormValue("name"),
		r.FormValue("email"),
		r.FormValue("phone"),
		r.FormValue("subject"),
		r.FormValue("message"),
	)
	if err != nil {
		h.log.Error(err, "Contact form submission failed")
		h.session.Put(r.Context(), "flash", "L'envoi du message a échoué. Veuillez réessayer.")
	} else {
		h.session.Put(r.Context(), "flash", "Votre message a bien été envoyé. Merci !")
	}
	http.Redirect(w, r, "/contact", http.StatusSeeOther)
	return nil
}
