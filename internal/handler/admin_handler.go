package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"senateur-site/internal/data"
	"senateur-site/internal/logger"
	"senateur-site/internal/middleware"
	"senateur-site/internal/retry"
	"senateur-site/internal/service"
	"senateur-site/internal/storage"
	"senateur-site/internal/view"
)

// formField describes one input of a generic admin edit screen.
type formField struct {
	Name   string
	Label  string
	Widget string // "text" or "textarea"
	// Kind, when set, turns the field into a category picker of that kind.
	Kind data.CategoryKind
}

// adminTable describes one content table editable through the generic screens.
type adminTable struct {
	Label  string
	Fields []formField
}

// adminTables drives the generic back-office screens. Every table here must
// also be registered in the data.Store allow-list.
var adminTables = map[string]adminTable{
	"news": {Label: "Actualités", Fields: []formField{
		{Name: "title", Label: "Titre", Widget: "text"},
		{Name: "description", Label: "Description", Widget: "textarea"},
		{Name: "content", Label: "Contenu (markdown)", Widget: "textarea"},
		{Name: "image", Label: "Image", Widget: "text"},
		{Name: "tag", Label: "Catégorie", Widget: "text", Kind: data.KindNews},
		{Name: "date", Label: "Date", Widget: "text"},
		{Name: "link", Label: "Lien", Widget: "text"},
	}},
	"programs": {Label: "Programmes", Fields: []formField{
		{Name: "title", Label: "Titre", Widget: "text"},
		{Name: "description", Label: "Description", Widget: "textarea"},
		{Name: "image", Label: "Image", Widget: "text"},
		{Name: "tag", Label: "Catégorie", Widget: "text", Kind: data.KindPrograms},
		{Name: "link", Label: "Lien", Widget: "text"},
	}},
	"activities": {Label: "Activités", Fields: []formField{
		{Name: "title", Label: "Titre", Widget: "text"},
		{Name: "description", Label: "Description", Widget: "textarea"},
		{Name: "day", Label: "Jour", Widget: "text"},
		{Name: "month", Label: "Mois", Widget: "text"},
	}},
	"documents": {Label: "Documents", Fields: []formField{
		{Name: "title", Label: "Titre", Widget: "text"},
		{Name: "description", Label: "Description", Widget: "textarea"},
		{Name: "link", Label: "Lien", Widget: "text"},
		{Name: "category", Label: "Catégorie", Widget: "text", Kind: data.KindDocuments},
		{Name: "file_type", Label: "Type de fichier", Widget: "text"},
		{Name: "file_size", Label: "Taille", Widget: "text"},
		{Name: "icon", Label: "Icône", Widget: "text"},
	}},
	"media": {Label: "Galerie", Fields: []formField{
		{Name: "title", Label: "Titre", Widget: "text"},
		{Name: "category", Label: "Catégorie", Widget: "text", Kind: data.KindMedia},
		{Name: "date", Label: "Date", Widget: "text"},
		{Name: "thumbnail", Label: "Miniature", Widget: "text"},
		{Name: "media_type", Label: "Type (photo, video, audio)", Widget: "text"},
		{Name: "src", Label: "Source", Widget: "text"},
		{Name: "duration", Label: "Durée", Widget: "text"},
	}},
	"hero_section": {Label: "Section héro", Fields: []formField{
		{Name: "title", Label: "Titre", Widget: "text"},
		{Name: "subtitle", Label: "Sous-titre", Widget: "text"},
		{Name: "description", Label: "Description", Widget: "textarea"},
		{Name: "image", Label: "Image", Widget: "text"},
		{Name: "cta_label", Label: "Libellé du bouton", Widget: "text"},
		{Name: "cta_link", Label: "Lien du bouton", Widget: "text"},
	}},
	"site_settings": {Label: "Paramètres du site", Fields: []formField{
		{Name: "site_name", Label: "Nom du site", Widget: "text"},
		{Name: "tagline", Label: "Slogan", Widget: "text"},
		{Name: "contact_email", Label: "Email de contact", Widget: "text"},
		{Name: "contact_phone", Label: "Téléphone", Widget: "text"},
		{Name: "address", Label: "Adresse", Widget: "textarea"},
		{Name: "facebook", Label: "Facebook", Widget: "text"},
		{Name: "twitter", Label: "Twitter", Widget: "text"},
	}},
	"about_page": {Label: "Page à propos", Fields: []formField{
		{Name: "title", Label: "Titre", Widget: "text"},
		{Name: "subtitle", Label: "Sous-titre", Widget: "text"},
		{Name: "biography", Label: "Biographie (markdown)", Widget: "textarea"},
		{Name: "image", Label: "Image", Widget: "text"},
		{Name: "vision_title", Label: "Titre de la vision", Widget: "text"},
		{Name: "vision_text", Label: "Texte de la vision", Widget: "textarea"},
	}},
	"about_values": {Label: "Valeurs", Fields: []formField{
		{Name: "title", Label: "Titre", Widget: "text"},
		{Name: "description", Label: "Description", Widget: "textarea"},
		{Name: "icon", Label: "Icône", Widget: "text"},
	}},
	"about_achievements": {Label: "Réalisations", Fields: []formField{
		{Name: "title", Label: "Titre", Widget: "text"},
		{Name: "description", Label: "Description", Widget: "textarea"},
		{Name: "year", Label: "Année", Widget: "text"},
	}},
}

// adminNav fixes the order of the generic tables in the back-office menu.
var adminNav = []string{
	"news", "programs", "activities", "documents", "media",
	"hero_section", "site_settings", "about_page", "about_values", "about_achievements",
}

// AdminHandler holds the dependencies for the back-office screens.
type AdminHandler struct {
	store      *data.Store
	content    *service.ContentService
	categories *service.CategoryService
	events     *service.EventService
	messages   *service.MessageService
	uploads    *storage.Store
	view       *view.View
	session    *scs.SessionManager
	log        logger.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(store *data.Store, content *service.ContentService, categories *service.CategoryService, events *service.EventService, messages *service.MessageService, uploads *storage.Store, v *view.View, sm *scs.SessionManager, log logger.Logger) *AdminHandler {
	return &AdminHandler{
		store:      store,
		content:    content,
		categories: categories,
		events:     events,
		messages:   messages,
		uploads:    uploads,
		view:       v,
		session:    sm,
		log:        log,
	}
}

// navEntry is one back-office menu item.
type navEntry struct {
	Table string
	Label string
}

// pageData assembles the fields every admin template expects.
func (h *AdminHandler) pageData(r *http.Request) map[string]interface{} {
	nav := make([]navEntry, 0, len(adminNav))
	for _, t := range adminNav {
		nav = append(nav, navEntry{Table: t, Label: adminTables[t].Label})
	}
	return map[string]interface{}{
		"UserInfo": middleware.GetUserInfo(r.Context()),
		"Nav":      nav,
		"Flash":    h.session.PopString(r.Context(), "flash"),
	}
}

// flashError records a failure for the editor in domain terms and logs the
// underlying cause.
func (h *AdminHandler) flashError(r *http.Request, op retry.Op, table string, err error) {
	h.log.Error(err, fmt.Sprintf("Admin %s on %s failed", op, table))
	h.session.Put(r.Context(), "flash", retry.Describe(op, table, err))
}

// dashboardHandler renders the back-office landing page.
func (h *AdminHandler) dashboardHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	unread, err := h.messages.UnreadCount(r.Context())
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load dashboard", Code: http.StatusInternalServerError}
	}

	// Recent uploads per bucket, so editors can copy URLs without re-uploading.
	files := map[string][]string{}
	for _, bucket := range []string{storage.BucketImages, storage.BucketDocuments, storage.BucketMedia} {
		keys, err := h.uploads.List(bucket)
		if err != nil {
			return &middleware.AppError{Error: err, Message: "Failed to list uploads", Code: http.StatusInternalServerError}
		}
		urls := make([]string, 0, len(keys))
		for _, key := range keys {
			urls = append(urls, h.uploads.PublicURL(bucket, key))
		}
		files[bucket] = urls
	}

	data := h.pageData(r)
	data["UnreadMessages"] = unread
	data["Uploads"] = files
	if err := h.view.Render(w, r, "admin_dashboard.html", data); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render dashboard", Code: http.StatusInternalServerError}
	}
	return nil
}

// contentListHandler lists the rows of one generic table.
func (h *AdminHandler) contentListHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	table := chi.URLParam(r, "table")
	spec, ok := adminTables[table]
	if !ok {
		return &middleware.AppError{Error: fmt.Errorf("unknown table %q", table), Message: "Unknown content type", Code: http.StatusNotFound}
	}

	rows, err := h.store.Read(r.Context(), table, nil)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to list content", Code: http.StatusInternalServerError}
	}

	data := h.pageData(r)
	data["Table"] = table
	data["Spec"] = spec
	data["Rows"] = rows
	if err := h.view.Render(w, r, "admin_list.html", data); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render list", Code: http.StatusInternalServerError}
	}
	return nil
}

// contentFormHandler renders the create or edit form of one generic table.
func (h *AdminHandler) contentFormHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	table := chi.URLParam(r, "table")
	spec, ok := adminTables[table]
	if !ok {
		return &middleware.AppError{Error: fmt.Errorf("unknown table %q", table), Message: "Unknown content type", Code: http.StatusNotFound}
	}

	row := data.Row{}
	var id int64
	if rawID := chi.URLParam(r, "id"); rawID != "" {
		var err error
		id, err = strconv.ParseInt(rawID, 10, 64)
		if err != nil {
			return &middleware.AppError{Error: err, Message: "Invalid id", Code: http.StatusBadRequest}
		}
		row, err = h.store.ReadOne(r.Context(), table, id)
		if err != nil {
			return &middleware.AppError{Error: err, Message: "Record not found", Code: http.StatusNotFound}
		}
	}
	// Blank out absent fields so the form template always sees strings.
	for _, f := range spec.Fields {
		if _, ok := row[f.Name]; !ok || row[f.Name] == nil {
			row[f.Name] = ""
		}
	}

	// Category pickers need their option lists.
	options := map[string][]string{}
	for _, f := range spec.Fields {
		if f.Kind != "" {
			names, err := h.categories.CategoryOptions(r.Context(), f.Kind)
			if err != nil {
				return &middleware.AppError{Error: err, Message: "Failed to load categories", Code: http.StatusInternalServerError}
			}
			options[f.Name] = names
		}
	}

	pd := h.pageData(r)
	pd["Table"] = table
	pd["Spec"] = spec
	pd["Row"] = row
	pd["ID"] = id
	pd["Options"] = options
	if err := h.view.Render(w, r, "admin_edit.html", pd); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render form", Code: http.StatusInternalServerError}
	}
	return nil
}

// contentSaveHandler creates or updates a row of one generic table.
func (h *AdminHandler) contentSaveHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	table := chi.URLParam(r, "table")
	spec, ok := adminTables[table]
	if !ok {
		return &middleware.AppError{Error: fmt.Errorf("unknown table %q", table), Message: "Unknown content type", Code: http.StatusNotFound}
	}
	if err := r.ParseForm(); err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid form submission", Code: http.StatusBadRequest}
	}

	fields := data.Row{}
	for _, f := range spec.Fields {
		fields[f.Name] = r.FormValue(f.Name)
	}

	var err error
	op := retry.OpCreate
	if rawID := r.FormValue("id"); rawID != "" {
		op = retry.OpUpdate
		var id int64
		if id, err = strconv.ParseInt(rawID, 10, 64); err != nil {
			return &middleware.AppError{Error: err, Message: "Invalid id", Code: http.StatusBadRequest}
		}
		_, err = h.store.Update(r.Context(), table, id, fields)
	} else {
		_, err = h.store.Create(r.Context(), table, fields)
	}

	if err != nil {
		h.flashError(r, op, table, err)
	} else {
		h.content.Invalidate()
		h.session.Put(r.Context(), "flash", "Enregistrement effectué.")
	}
	http.Redirect(w, r, "/admin/content/"+table, http.StatusSeeOther)
	return nil
}

// contentDeleteHandler removes a row of one generic table.
func (h *AdminHandler) contentDeleteHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	table := chi.URLParam(r, "table")
	if _, ok := adminTables[table]; !ok {
		return &middleware.AppError{Error: fmt.Errorf("unknown table %q", table), Message: "Unknown content type", Code: http.StatusNotFound}
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid id", Code: http.StatusBadRequest}
	}

	if _, err := h.store.Delete(r.Context(), table, id); err != nil {
		h.flashError(r, retry.OpDelete, table, err)
	} else {
		h.content.Invalidate()
		h.session.Put(r.Context(), "flash", "Suppression effectuée.")
	}
	http.Redirect(w, r, "/admin/content/"+table, http.StatusSeeOther)
	return nil
}

// categoriesHandler lists the categories of one kind with usage counts.
func (h *AdminHandler) categoriesHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	kind := data.CategoryKind(r.URL.Query().Get("type"))
	if kind == "" {
		kind = data.KindNews
	}
	categories, err := h.categories.Categories(r.Context(), kind)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to list categories", Code: http.StatusInternalServerError}
	}

	pd := h.pageData(r)
	pd["Kind"] = kind
	pd["Kinds"] = []data.CategoryKind{data.KindNews, data.KindPrograms, data.KindDocuments, data.KindMedia}
	pd["Categories"] = categories
	if err := h.view.Render(w, r, "admin_categories.html", pd); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render categories", Code: http.StatusInternalServerError}
	}
	return nil
}

// categorySaveHandler creates or renames a category.
func (h *AdminHandler) categorySaveHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	if err := r.ParseForm(); err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid form submission", Code: http.StatusBadRequest}
	}
	kind := data.CategoryKind(r.FormValue("type"))
	name := r.FormValue("name")
	description := r.FormValue("description")

	var err error
	if rawID := r.FormValue("id"); rawID != "" {
		var id int64
		if id, err = strconv.ParseInt(rawID, 10, 64); err != nil {
			return &middleware.AppError{Error: err, Message: "Invalid id", Code: http.StatusBadRequest}
		}
		err = h.categories.UpdateCategory(r.Context(), id, name, description)
	} else {
		_, err = h.categories.CreateCategory(r.Context(), kind, name, description)
	}

	if err != nil {
		h.flashError(r, retry.OpUpsert, "categories", err)
	} else {
		h.session.Put(r.Context(), "flash", "Catégorie enregistrée.")
	}
	http.Redirect(w, r, "/admin/categories?type="+string(kind), http.StatusSeeOther)
	return nil
}

// categoryDeleteHandler removes a category without touching content rows
// that reference its name.
func (h *AdminHandler) categoryDeleteHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid id", Code: http.StatusBadRequest}
	}
	kind := r.FormValue("type")

	if err := h.categories.DeleteCategory(r.Context(), id); err != nil {
		h.flashError(r, retry.OpDelete, "categories", err)
	} else {
		h.session.Put(r.Context(), "flash", "Catégorie supprimée.")
	}
	http.Redirect(w, r, "/admin/categories?type="+kind, http.StatusSeeOther)
	return nil
}

// eventsHandler lists upcoming events with an inline form.
func (h *AdminHandler) eventsHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	events, err := h.events.UpcomingEvents(r.Context())
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to list events", Code: http.StatusInternalServerError}
	}
	options, err := h.categories.CategoryOptions(r.Context(), data.KindPrograms)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load categories", Code: http.StatusInternalServerError}
	}

	pd := h.pageData(r)
	pd["Events"] = events
	pd["Options"] = options
	if err := h.view.Render(w, r, "admin_events.html", pd); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render events", Code: http.StatusInternalServerError}
	}
	return nil
}

// eventSaveHandler creates or updates an upcoming event.
func (h *AdminHandler) eventSaveHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	if err := r.ParseForm(); err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid form submission", Code: http.StatusBadRequest}
	}
	event := service.Event{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Date:        r.FormValue("date"),
		Time:        r.FormValue("time"),
		Location:    r.FormValue("location"),
		Image:       r.FormValue("image"),
		Category:    r.FormValue("category"),
	}

	var err error
	if rawID := r.FormValue("id"); rawID != "" {
		if event.ID, err = strconv.ParseInt(rawID, 10, 64); err != nil {
			return &middleware.AppError{Error: err, Message: "Invalid id", Code: http.StatusBadRequest}
		}
		err = h.events.UpdateUpcomingEvent(r.Context(), event)
	} else {
		_, err = h.events.CreateUpcomingEvent(r.Context(), event)
	}

	if err != nil {
		h.flashError(r, retry.OpUpsert, "upcoming_events", err)
	} else {
		h.session.Put(r.Context(), "flash", "Événement enregistré.")
	}
	http.Redirect(w, r, "/admin/events", http.StatusSeeOther)
	return nil
}

// eventDeleteHandler removes an upcoming event.
func (h *AdminHandler) eventDeleteHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid id", Code: http.StatusBadRequest}
	}
	if err := h.events.DeleteUpcomingEvent(r.Context(), id); err != nil {
		h.flashError(r, retry.OpDelete, "upcoming_events", err)
	} else {
		h.session.Put(r.Context(), "flash", "Événement supprimé.")
	}
	http.Redirect(w, r, "/admin/events", http.StatusSeeOther)
	return nil
}

// eventPhotosHandler lists event photos with an inline form.
func (h *AdminHandler) eventPhotosHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	photos, err := h.events.EventPhotos(r.Context())
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to list photos", Code: http.StatusInternalServerError}
	}
	events, err := h.events.UpcomingEvents(r.Context())
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to list events", Code: http.StatusInternalServerError}
	}

	pd := h.pageData(r)
	pd["Photos"] = photos
	pd["Events"] = events
	if err := h.view.Render(w, r, "admin_event_photos.html", pd); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render photos", Code: http.StatusInternalServerError}
	}
	return nil
}

// eventPhotoSaveHandler creates or updates an event photo.
func (h *AdminHandler) eventPhotoSaveHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	if err := r.ParseForm(); err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid form submission", Code: http.StatusBadRequest}
	}
	photo := service.EventPhoto{
		Title:        r.FormValue("title"),
		Description:  r.FormValue("description"),
		ImageURL:     r.FormValue("image_url"),
		Date:         r.FormValue("date"),
		Photographer: r.FormValue("photographer"),
	}
	if rawEvent := r.FormValue("event_id"); rawEvent != "" {
		eventID, err := strconv.ParseInt(rawEvent, 10, 64)
		if err != nil {
			return &middleware.AppError{Error: err, Message: "Invalid event id", Code: http.StatusBadRequest}
		}
		photo.EventID = &eventID
	}

	var err error
	if rawID := r.FormValue("id"); rawID != "" {
		if photo.ID, err = strconv.ParseInt(rawID, 10, 64); err != nil {
			return &middleware.AppError{Error: err, Message: "Invalid id", Code: http.StatusBadRequest}
		}
		err = h.events.UpdateEventPhoto(r.Context(), photo)
	} else {
		_, err = h.events.CreateEventPhoto(r.Context(), photo)
	}

	if err != nil {
		h.flashError(r, retry.OpUpsert, "event_photos", err)
	} else {
		h.session.Put(r.Context(), "flash", "Photo enregistrée.")
	}
	http.Redirect(w, r, "/admin/event-photos", http.StatusSeeOther)
	return nil
}

// eventPhotoDeleteHandler removes an event photo.
func (h *AdminHandler) eventPhotoDeleteHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid id", Code: http.StatusBadRequest}
	}
	if err := h.events.DeleteEventPhoto(r.Context(), id); err != nil {
		h.flashError(r, retry.OpDelete, "event_photos", err)
	} else {
		h.session.Put(r.Context(), "flash", "Photo supprimée.")
	}
	http.Redirect(w, r, "/admin/event-photos", http.StatusSeeOther)
	return nil
}

// messagesHandler lists the contact inbox.
func (h *AdminHandler) messagesHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	messages, err := h.messages.Messages(r.Context())
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to list messages", Code: http.StatusInternalServerError}
	}
	pd := h.pageData(r)
	pd["Messages"] = messages
	if err := h.view.Render(w, r, "admin_messages.html", pd); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render messages", Code: http.StatusInternalServerError}
	}
	return nil
}

// messageReadHandler marks a message as read.
func (h *AdminHandler) messageReadHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid id", Code: http.StatusBadRequest}
	}
	if err := h.messages.MarkRead(r.Context(), id); err != nil {
		h.flashError(r, retry.OpUpdate, "contact_messages", err)
	}
	http.Redirect(w, r, "/admin/messages", http.StatusSeeOther)
	return nil
}

// messageDeleteHandler removes a message.
func (h *AdminHandler) messageDeleteHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid id", Code: http.StatusBadRequest}
	}
	if err := h.messages.Delete(r.Context(), id); err != nil {
		h.flashError(r, retry.OpDelete, "contact_messages", err)
	} else {
		h.session.Put(r.Context(), "flash", "Message supprimé.")
	}
	http.Redirect(w, r, "/admin/messages", http.StatusSeeOther)
	return nil
}

// uploadHandler stores a file in one of the media buckets and flashes its
// public URL so the editor can paste it into a content field.
func (h *AdminHandler) uploadHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	// 32 MB in memory before spilling to disk.
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid upload", Code: http.StatusBadRequest}
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Missing file", Code: http.StatusBadRequest}
	}
	defer file.Close()

	bucket := r.FormValue("bucket")
	url, err := h.uploads.Upload(bucket, header.Filename, file)
	if err != nil {
		h.flashError(r, retry.OpUpload, bucket, err)
	} else {
		h.session.Put(r.Context(), "flash", "Fichier téléversé : "+url)
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
	return nil
}
