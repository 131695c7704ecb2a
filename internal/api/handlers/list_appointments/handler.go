package list_appointments

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/m04kA/BookEasy/internal/api/handlers"
	"github.com/m04kA/BookEasy/internal/domain"
	"github.com/m04kA/BookEasy/internal/service/appointments"
)

const (
	msgMissingCustomerID = "не указан customerId, записи бизнеса доступны владельцу"
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgInvalidView       = "некорректная вкладка, ожидается all, upcoming, past или cancelled"
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

// Handle GET /api/v1/appointments
// Query params: customerId (обязателен), businessId, view (all | upcoming | past | cancelled)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	customerID := strings.TrimSpace(query.Get("customerId"))
	if customerID == "" {
		h.logger.Warn("GET /appointments - Missing customer ID")
		handlers.RespondBadRequest(w, msgMissingCustomerID)
		return
	}

	req := appointments.ListRequest{
		CustomerID: &customerID,
		View:       domain.BookingsView(query.Get("view")),
	}

	if raw := query.Get("businessId"); raw != "" {
		businessID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.logger.Warn("GET /appointments - Invalid business ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBusinessID)
			return
		}
		req.BusinessID = &businessID
	}

	list, err := h.service.List(r.Context(), req)
	if err != nil {
		if errors.Is(err, appointments.ErrInvalidInput) {
			h.logger.Warn("GET /appointments - Invalid view: %s", req.View)
			handlers.RespondBadRequest(w, msgInvalidView)
			return
		}
		h.logger.Error("GET /appointments - Failed to list appointments: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /appointments - Appointments retrieved successfully: count=%d", len(list))
	handlers.RespondJSON(w, http.StatusOK, handlers.NewAppointmentListResponse(list))
}
