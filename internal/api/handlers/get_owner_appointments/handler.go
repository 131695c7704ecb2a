package get_owner_appointments

import (
	"errors"
	"net/http"

	"github.com/m04kA/BookEasy/internal/api/handlers"
	"github.com/m04kA/BookEasy/internal/api/middleware"
	"github.com/m04kA/BookEasy/internal/service/appointments"
)

const (
	msgMissingBusinessID = "отсутствует ID бизнеса в токене"
	msgInvalidParams     = "некорректные параметры запроса"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/owner/appointments
// Query params: view, date, status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем businessID из контекста (через middleware Auth)
	businessID, ok := middleware.GetBusinessID(r.Context())
	if !ok {
		h.logger.Warn("GET /owner/appointments - Missing business ID")
		handlers.RespondUnauthorized(w, msgMissingBusinessID)
		return
	}

	query := r.URL.Query()
	q, err := ParseQuery(query.Get("view"), query.Get("date"), query.Get("status"))
	if err != nil {
		h.logger.Warn("GET /owner/appointments - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	list, err := h.service.ListForBusiness(r.Context(), businessID, q.View)
	if err != nil {
		if errors.Is(err, appointments.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		h.logger.Error("GET /owner/appointments - Failed to get appointments: business_id=%d, error=%v",
			businessID, err)
		handlers.RespondInternalError(w)
		return
	}

	list = q.Apply(list)

	h.logger.Info("GET /owner/appointments - Appointments retrieved successfully: business_id=%d, count=%d",
		businessID, len(list))
	handlers.RespondJSON(w, http.StatusOK, handlers.NewAppointmentListResponse(list))
}
