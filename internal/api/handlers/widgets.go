package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/wonhee/golddash/backend/internal/widget"
	"github.com/wonhee/golddash/backend/pkg/logger"
)

// WidgetHandler handles dashboard widget endpoints. Every operation is
// scoped to the authenticated owner.
// ⭐ SSOT: 위젯 API 핸들러는 이 구조체에서만
type WidgetHandler struct {
	widgets *widget.Repository
	logger  *logger.Logger
}

// NewWidgetHandler creates a new widget handler
func NewWidgetHandler(widgets *widget.Repository, log *logger.Logger) *WidgetHandler {
	return &WidgetHandler{
		widgets: widgets,
		logger:  log,
	}
}

// List returns all widgets the user owns
// GET /api/widgets
func (h *WidgetHandler) List(w http.ResponseWriter, r *http.Request) {
	u := UserFromContext(r.Context())

	widgets, err := h.widgets.ListByUser(r.Context(), u.ID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list widgets")
		respondError(w, http.StatusInternalServerError, "Failed to list widgets")
		return
	}

	respondJSON(w, http.StatusOK, widgets)
}

// Create adds a widget for the user
// POST /api/widgets
func (h *WidgetHandler) Create(w http.ResponseWriter, r *http.Request) {
	u := UserFromContext(r.Context())

	var input widget.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Layout) == "" {
		respondError(w, http.StatusBadRequest, "name and layout are required")
		return
	}

	created, err := h.widgets.Create(r.Context(), u.ID, input)
	if err != nil {
		h.logger.WithError(err).Error("Failed to create widget")
		respondError(w, http.StatusInternalServerError, "Failed to create widget")
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// Get returns one owned widget
// GET /api/widgets/{id}
func (h *WidgetHandler) Get(w http.ResponseWriter, r *http.Request) {
	u := UserFromContext(r.Context())

	id, ok := widgetID(w, r)
	if !ok {
		return
	}

	found, err := h.widgets.GetByID(r.Context(), u.ID, id)
	if err != nil {
		h.widgetError(w, err, "Failed to get widget")
		return
	}

	respondJSON(w, http.StatusOK, found)
}

// Update applies a partial update to one owned widget
// PUT /api/widgets/{id}
func (h *WidgetHandler) Update(w http.ResponseWriter, r *http.Request) {
	u := UserFromContext(r.Context())

	id, ok := widgetID(w, r)
	if !ok {
		return
	}

	var input widget.UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.widgets.Update(r.Context(), u.ID, id, input)
	if err != nil {
		h.widgetError(w, err, "Failed to update widget")
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// Delete removes one owned widget
// DELETE /api/widgets/{id}
func (h *WidgetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	u := UserFromContext(r.Context())

	id, ok := widgetID(w, r)
	if !ok {
		return
	}

	if err := h.widgets.Delete(r.Context(), u.ID, id); err != nil {
		h.widgetError(w, err, "Failed to delete widget")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteAll removes every widget the user owns
// DELETE /api/widgets/all
func (h *WidgetHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	u := UserFromContext(r.Context())

	deleted, err := h.widgets.DeleteAllByUser(r.Context(), u.ID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to delete widgets")
		respondError(w, http.StatusInternalServerError, "Failed to delete widgets")
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"user_id": u.ID,
		"deleted": deleted,
	}).Info("Deleted all widgets")

	w.WriteHeader(http.StatusNoContent)
}

// UpdateLayout saves layouts for a batch of owned widgets. The body maps
// "widget_<id>" keys to layout documents; unknown and foreign ids are
// skipped rather than failing the batch.
// PUT /api/widgets/layout
func (h *WidgetHandler) UpdateLayout(w http.ResponseWriter, r *http.Request) {
	u := UserFromContext(r.Context())

	var body map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	layouts := make(map[int64]string, len(body))
	for key, layout := range body {
		idPart, found := strings.CutPrefix(key, "widget_")
		if !found {
			continue
		}
		id, err := strconv.ParseInt(idPart, 10, 64)
		if err != nil {
			continue
		}
		layouts[id] = string(layout)
	}

	updated, err := h.widgets.UpdateLayouts(r.Context(), u.ID, layouts)
	if err != nil {
		h.logger.WithError(err).Error("Failed to update layouts")
		respondError(w, http.StatusInternalServerError, "Failed to update layouts")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"updated": updated,
	})
}

func widgetID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid widget id")
		return 0, false
	}
	return id, true
}

func (h *WidgetHandler) widgetError(w http.ResponseWriter, err error, message string) {
	if errors.Is(err, widget.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Widget not found")
		return
	}
	h.logger.WithError(err).Error(message)
	respondError(w, http.StatusInternalServerError, message)
}
