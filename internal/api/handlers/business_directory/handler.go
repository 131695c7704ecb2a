package business_directory

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/BookEasy/internal/api/handlers"
	"github.com/m04kA/BookEasy/internal/service/businesses"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgNotFound          = "бизнес не найден"
	msgInvalidSearch     = "некорректные параметры поиска"
	msgInvalidLimit      = "некорректный limit"
)

type Handler struct {
	service BusinessService
	logger  Logger
}

func NewHandler(service BusinessService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleList GET /api/v1/businesses
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /businesses - Failed to list businesses: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /businesses - Businesses retrieved successfully: count=%d", len(list))
	handlers.RespondJSON(w, http.StatusOK, handlers.NewBusinessListResponse(list))
}

// HandleSearch GET /api/v1/businesses/search?q=&location=&category=&sort=&price=
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	criteria := SearchCriteriaFromQuery(r.URL.Query())

	list, err := h.service.Search(r.Context(), criteria)
	if err != nil {
		if errors.Is(err, businesses.ErrInvalidInput) {
			h.logger.Warn("GET /businesses/search - Invalid criteria: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSearch)
			return
		}
		h.logger.Error("GET /businesses/search - Failed to search businesses: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /businesses/search - Search completed: q=%q, location=%q, category=%q, count=%d",
		criteria.Query, criteria.Location, criteria.Category, len(list))
	handlers.RespondJSON(w, http.StatusOK, handlers.NewBusinessListResponse(list))
}

// HandleFeatured GET /api/v1/businesses/featured?limit=
func (h *Handler) HandleFeatured(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			handlers.RespondBadRequest(w, msgInvalidLimit)
			return
		}
		limit = n
	}

	list, err := h.service.ListFeatured(r.Context(), limit)
	if err != nil {
		h.logger.Error("GET /businesses/featured - Failed to list featured: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.NewBusinessListResponse(list))
}

// HandleByCategory GET /api/v1/businesses/category/{category}
func (h *Handler) HandleByCategory(w http.ResponseWriter, r *http.Request) {
	category := mux.Vars(r)["category"]

	list, err := h.service.ListByCategory(r.Context(), category)
	if err != nil {
		h.logger.Error("GET /businesses/category/{category} - Failed to list category=%s: error=%v", category, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /businesses/category/{category} - category=%s, count=%d", category, len(list))
	handlers.RespondJSON(w, http.StatusOK, handlers.NewBusinessListResponse(list))
}

// HandleGet GET /api/v1/businesses/{businessId}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathInt64(r, "businessId")
	if err != nil {
		h.logger.Warn("GET /businesses/{id} - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	b, err := h.service.GetByID(r.Context(), businessID)
	if err != nil {
		if errors.Is(err, businesses.ErrBusinessNotFound) {
			h.logger.Warn("GET /businesses/{id} - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /businesses/{id} - Failed to get business: business_id=%d, error=%v", businessID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.NewBusinessResponse(b))
}
