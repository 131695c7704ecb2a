package owner_services

import (
	"errors"
	"net/http"

	"github.com/m04kA/BookEasy/internal/api/handlers"
	"github.com/m04kA/BookEasy/internal/api/middleware"
	"github.com/m04kA/BookEasy/internal/service/businesses"
)

const (
	msgMissingBusinessID  = "отсутствует ID бизнеса в токене"
	msgInvalidServiceID   = "некорректный ID услуги"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные услуги"
	msgBusinessNotFound   = "бизнес не найден"
	msgServiceNotFound    = "услуга не найдена"
)

type Handler struct {
	catalog ServiceCatalog
	logger  Logger
}

func NewHandler(catalog ServiceCatalog, logger Logger) *Handler {
	return &Handler{
		catalog: catalog,
		logger:  logger,
	}
}

// HandleCreate POST /api/v1/owner/services
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	businessID, ok := h.businessID(w, r)
	if !ok {
		return
	}

	var req ServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	service, err := h.catalog.AddService(r.Context(), businessID, req.ToInput())
	if err != nil {
		h.respondError(w, "POST /owner/services", businessID, err)
		return
	}

	h.logger.Info("POST /owner/services - Service created: business_id=%d, service_id=%d", businessID, service.ID)
	handlers.RespondJSON(w, http.StatusCreated, handlers.NewServiceResponse(*service))
}

// HandleUpdate PUT /api/v1/owner/services/{serviceId}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	businessID, ok := h.businessID(w, r)
	if !ok {
		return
	}
	serviceID, err := handlers.PathInt64(r, "serviceId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	var req ServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	service, err := h.catalog.UpdateService(r.Context(), businessID, serviceID, req.ToInput())
	if err != nil {
		h.respondError(w, "PUT /owner/services/{id}", businessID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.NewServiceResponse(*service))
}

// HandleDelete DELETE /api/v1/owner/services/{serviceId}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	businessID, ok := h.businessID(w, r)
	if !ok {
		return
	}
	serviceID, err := handlers.PathInt64(r, "serviceId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	if err := h.catalog.DeleteService(r.Context(), businessID, serviceID); err != nil {
		h.respondError(w, "DELETE /owner/services/{id}", businessID, err)
		return
	}

	h.logger.Info("DELETE /owner/services/{id} - Service deleted: business_id=%d, service_id=%d", businessID, serviceID)
	handlers.RespondNoContent(w)
}

// HandleReplace PUT /api/v1/owner/services
// Полная замена списка услуг
func (h *Handler) HandleReplace(w http.ResponseWriter, r *http.Request) {
	businessID, ok := h.businessID(w, r)
	if !ok {
		return
	}

	var req []ServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	services, err := h.catalog.ReplaceServices(r.Context(), businessID, toDomainServices(req))
	if err != nil {
		h.respondError(w, "PUT /owner/services", businessID, err)
		return
	}

	result := make([]handlers.ServiceResponse, 0, len(services))
	for _, s := range services {
		result = append(result, handlers.NewServiceResponse(s))
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) businessID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	businessID, ok := middleware.GetBusinessID(r.Context())
	if !ok {
		h.logger.Warn("%s %s - Missing business ID", r.Method, r.URL.Path)
		handlers.RespondUnauthorized(w, msgMissingBusinessID)
	}
	return businessID, ok
}

func (h *Handler) respondError(w http.ResponseWriter, route string, businessID int64, err error) {
	switch {
	case errors.Is(err, businesses.ErrServiceNotFound):
		handlers.RespondNotFound(w, msgServiceNotFound)
	case errors.Is(err, businesses.ErrBusinessNotFound):
		handlers.RespondNotFound(w, msgBusinessNotFound)
	case errors.Is(err, businesses.ErrInvalidInput):
		h.logger.Warn("%s - Invalid data: business_id=%d, error=%v", route, businessID, err)
		handlers.RespondBadRequest(w, msgInvalidData)
	default:
		h.logger.Error("%s - Failed: business_id=%d, error=%v", route, businessID, err)
		handlers.RespondInternalError(w)
	}
}
