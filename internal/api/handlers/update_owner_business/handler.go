package update_owner_business

import (
	"errors"
	"net/http"

	"github.com/m04kA/BookEasy/internal/api/handlers"
	"github.com/m04kA/BookEasy/internal/api/middleware"
	"github.com/m04kA/BookEasy/internal/service/businesses"
)

const (
	msgMissingBusinessID  = "отсутствует ID бизнеса в токене"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidHours       = "некорректное расписание работы"
	msgNotFound           = "бизнес не найден"
	msgEmailTaken         = "email уже используется другим бизнесом"
	msgInvalidData        = "некорректные данные бизнеса"
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

// Handle PATCH /api/v1/owner/business
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Бизнес берется из токена, а не из URL
	businessID, ok := middleware.GetBusinessID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /owner/business - Missing business ID")
		handlers.RespondUnauthorized(w, msgMissingBusinessID)
		return
	}

	var req UpdateBusinessRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /owner/business - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	patch, err := req.ToPatch()
	if err != nil {
		h.logger.Warn("PATCH /owner/business - Invalid hours: business_id=%d, error=%v", businessID, err)
		handlers.RespondBadRequest(w, msgInvalidHours)
		return
	}

	result, err := h.service.Update(r.Context(), businessID, patch)
	if err != nil {
		switch {
		case errors.Is(err, businesses.ErrBusinessNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, businesses.ErrEmailTaken):
			handlers.RespondConflict(w, msgEmailTaken)

		case errors.Is(err, businesses.ErrInvalidInput):
			h.logger.Warn("PATCH /owner/business - Invalid data: business_id=%d, error=%v", businessID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PATCH /owner/business - Failed to update business: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /owner/business - Business updated successfully: business_id=%d", businessID)
	handlers.RespondJSON(w, http.StatusOK, handlers.NewBusinessResponse(result))
}
