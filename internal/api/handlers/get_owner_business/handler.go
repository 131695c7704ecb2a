package get_owner_business

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/BookEasy/internal/api/handlers"
	"github.com/m04kA/BookEasy/internal/api/middleware"
	"github.com/m04kA/BookEasy/internal/service/businesses"
)

const (
	msgMissingBusinessID = "отсутствует ID бизнеса в токене"
	msgNotFound          = "бизнес не найден"
)

type Handler struct {
	service BusinessService
	logger  Logger
	now     func() time.Time
}

func NewHandler(service BusinessService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
		now:     time.Now,
	}
}

// Handle GET /api/v1/owner/business
// Бизнес берется из токена (через middleware Auth)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, ok := middleware.GetBusinessID(r.Context())
	if !ok {
		h.logger.Warn("GET /owner/business - Missing business ID")
		handlers.RespondUnauthorized(w, msgMissingBusinessID)
		return
	}

	b, err := h.service.GetByID(r.Context(), businessID)
	if err != nil {
		if errors.Is(err, businesses.ErrBusinessNotFound) {
			// токен пережил удаление бизнеса
			h.logger.Warn("GET /owner/business - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /owner/business - Failed to get business: business_id=%d, error=%v", businessID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.NewBusinessResponse(b))
}

// HandleDashboard GET /api/v1/owner/dashboard
func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	businessID, ok := middleware.GetBusinessID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingBusinessID)
		return
	}

	dashboard, err := h.service.Dashboard(r.Context(), businessID, h.now())
	if err != nil {
		if errors.Is(err, businesses.ErrBusinessNotFound) {
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /owner/dashboard - Failed to build dashboard: business_id=%d, error=%v", businessID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /owner/dashboard - Dashboard built: business_id=%d, total=%d", businessID, dashboard.TotalBookings)
	handlers.RespondJSON(w, http.StatusOK, FromDashboard(dashboard))
}
