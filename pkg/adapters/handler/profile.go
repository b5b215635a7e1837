package handler

import (
	"log/slog"
	"net/http"

	"github.com/wadjakorntonsri/fanlink/pkg/core/domain"
	"github.com/wadjakorntonsri/fanlink/pkg/ports"
	"github.com/wadjakorntonsri/fanlink/pkg/validation"
)

type ProfileHandler struct {
	service  ports.ProfileService
	validate *validation.Validator
	logger   *slog.Logger
}

func NewProfileHandler(service ports.ProfileService, validate *validation.Validator, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{service: service, validate: validate, logger: logger}
}

// ItemRequest is one link item as sent by the editor
type ItemRequest struct {
	ID       string             `json:"id,omitempty" validate:"max=100"`
	Type     string             `json:"type" validate:"required,linktype"`
	Order    int                `json:"order,omitempty"`
	Title    string             `json:"title,omitempty" validate:"max=200"`
	Platform string             `json:"platform,omitempty" validate:"max=100"`
	URL      string             `json:"url,omitempty" validate:"max=2048"`
	Content  string             `json:"content,omitempty" validate:"max=5000"`
	Objekts  []domain.ObjektNFT `json:"objekts,omitempty" validate:"max=200"`
}

func (req ItemRequest) item() domain.LinkItem {
	t, _ := domain.ParseLinkType(req.Type)
	return domain.LinkItem{
		ID:       req.ID,
		Type:     t,
		Order:    req.Order,
		Title:    req.Title,
		Platform: req.Platform,
		URL:      req.URL,
		Content:  req.Content,
		Objekts:  req.Objekts,
	}
}

// ProfileRequest payload for create and update. Links, when present,
// replaces every item.
type ProfileRequest struct {
	SiteID    string        `json:"siteID" validate:"max=64"`
	AvatarURL string        `json:"avatarUrl" validate:"max=2048"`
	BioTitle  string        `json:"bioTitle" validate:"max=100"`
	Bio       string        `json:"bio" validate:"max=2000"`
	Template  string        `json:"template" validate:"max=50"`
	Links     []ItemRequest `json:"links" validate:"omitempty,max=500,dive"`
}

func (req ProfileRequest) input() ports.ProfileInput {
	in := ports.ProfileInput{
		SiteID:    req.SiteID,
		AvatarURL: req.AvatarURL,
		BioTitle:  req.BioTitle,
		Bio:       req.Bio,
		Template:  req.Template,
	}
	if req.Links != nil {
		in.Links = make([]domain.LinkItem, len(req.Links))
		for i, l := range req.Links {
			in.Links[i] = l.item()
		}
	}
	return in
}

// ReorderRequest lists item ids in their new order
type ReorderRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,required"`
}

// GetPublicPage renders a profile for visitors
func (h *ProfileHandler) GetPublicPage(w http.ResponseWriter, r *http.Request) {
	page, hit, err := h.service.GetPublicPage(r.Context(), r.PathValue("siteID"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	result := "miss"
	w.Header().Set("X-Cache", "MISS")
	if hit {
		result = "hit"
		w.Header().Set("X-Cache", "HIT")
	}
	pageCacheLookups.WithLabelValues(result).Inc()

	w.Header().Set("Cache-Control", "public, max-age=60")
	writeJSON(w, http.StatusOK, page)
}

func (h *ProfileHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	profile, err := h.service.GetDashboard(r.Context(), OwnerID(r.Context()))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var req ProfileRequest
	if !h.bind(w, r, &req) {
		return
	}

	profile, err := h.service.CreateProfile(r.Context(), OwnerID(r.Context()), req.input())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, profile)
}

func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req ProfileRequest
	if !h.bind(w, r, &req) {
		return
	}

	profile, err := h.service.UpdateProfile(r.Context(), OwnerID(r.Context()), req.input())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req ItemRequest
	if !h.bind(w, r, &req) {
		return
	}

	item, err := h.service.AddItem(r.Context(), OwnerID(r.Context()), req.item())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *ProfileHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req ItemRequest
	if !h.bind(w, r, &req) {
		return
	}

	item, err := h.service.UpdateItem(r.Context(), OwnerID(r.Context()), r.PathValue("id"), req.item())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *ProfileHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	if err := h.service.RemoveItem(r.Context(), OwnerID(r.Context()), r.PathValue("id")); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProfileHandler) ReorderItems(w http.ResponseWriter, r *http.Request) {
	var req ReorderRequest
	if !h.bind(w, r, &req) {
		return
	}

	items, err := h.service.ReorderItems(r.Context(), OwnerID(r.Context()), req.IDs)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// bind decodes and validates the body, writing a 400 on failure.
func (h *ProfileHandler) bind(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := decodeJSON(w, r, v); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	if err := h.validate.Struct(v); err != nil {
		writeError(w, h.logger, err)
		return false
	}
	return true
}
