package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/wadjakorntonsri/fanlink/pkg/ports"
)

type ObjektHandler struct {
	service ports.ObjektService
	logger  *slog.Logger
}

func NewObjektHandler(service ports.ObjektService, logger *slog.Logger) *ObjektHandler {
	return &ObjektHandler{service: service, logger: logger}
}

// Search lists the objekts held by ?nickname=, one page per ?continuation=.
func (h *ObjektHandler) Search(w http.ResponseWriter, r *http.Request) {
	nickname := strings.TrimSpace(r.URL.Query().Get("nickname"))
	if nickname == "" {
		http.Error(w, "nickname is required", http.StatusBadRequest)
		return
	}

	page, err := h.service.Search(r.Context(), nickname, r.URL.Query().Get("continuation"))
	if err != nil {
		if statusFor(err) == http.StatusInternalServerError {
			h.logger.Warn("objekt lookup failed", "nickname", nickname, "error", err)
			http.Error(w, "objekt lookup failed", http.StatusBadGateway)
			return
		}
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}
