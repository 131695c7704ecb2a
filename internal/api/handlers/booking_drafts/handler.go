package booking_drafts

import (
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/BookEasy/internal/api/handlers"
	"github.com/m04kA/BookEasy/internal/domain"
	bookingFlow "github.com/m04kA/BookEasy/internal/usecase/booking_flow"
	"github.com/m04kA/BookEasy/pkg/types"
)

const (
	msgInvalidBusinessID  = "некорректный ID бизнеса"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgDraftNotFound      = "черновик записи не найден или истек"
	msgBusinessNotFound   = "бизнес не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgInvalidTransition  = "недопустимый переход между шагами записи"
	msgSlotNotAvailable   = "выбранный временной слот уже занят"
	msgIncompleteDraft    = "выберите услугу, дату, время и заполните имя, email и телефон"
	msgSubmitInProgress   = "запись уже создается"
	msgStaleRequest       = "результат устарел, запрошены более новые слоты"
	msgInvalidInput       = "некорректные данные"
)

type Handler struct {
	flow   BookingFlow
	logger Logger
}

func NewHandler(flow BookingFlow, logger Logger) *Handler {
	return &Handler{
		flow:   flow,
		logger: logger,
	}
}

// HandleStart POST /api/v1/businesses/{businessId}/drafts
func (h *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathInt64(r, "businessId")
	if err != nil {
		h.logger.Warn("POST /businesses/{id}/drafts - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	// тело необязательное
	var req StartDraftRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /businesses/{id}/drafts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	d, err := h.flow.Start(r.Context(), businessID, req.ServiceID)
	if err != nil {
		h.respondFlowError(w, "POST /businesses/{id}/drafts", err)
		return
	}

	h.logger.Info("POST /businesses/{id}/drafts - Draft started: draft_id=%s, business_id=%d, step=%s", d.ID, businessID, d.Step)
	handlers.RespondJSON(w, http.StatusCreated, NewDraftResponse(d))
}

// HandleGet GET /api/v1/drafts/{draftId}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	d, err := h.flow.Get(r.Context(), draftID(r))
	if err != nil {
		h.respondFlowError(w, "GET /drafts/{id}", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, NewDraftResponse(d))
}

// HandleSlots GET /api/v1/drafts/{draftId}/slots?date=YYYY-MM-DD
func (h *Handler) HandleSlots(w http.ResponseWriter, r *http.Request) {
	date, err := handlers.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	res, err := h.flow.LoadSlots(r.Context(), draftID(r), date)
	if err != nil {
		h.respondFlowError(w, "GET /drafts/{id}/slots", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, NewSlotsResponse(res))
}

// HandleSelectService PUT /api/v1/drafts/{draftId}/service
func (h *Handler) HandleSelectService(w http.ResponseWriter, r *http.Request) {
	var req SelectServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	d, err := h.flow.SelectService(r.Context(), draftID(r), req.ServiceID)
	if err != nil {
		h.respondFlowError(w, "PUT /drafts/{id}/service", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, NewDraftResponse(d))
}

// HandleSelectDateTime PUT /api/v1/drafts/{draftId}/datetime
func (h *Handler) HandleSelectDateTime(w http.ResponseWriter, r *http.Request) {
	var req SelectDateTimeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	date, err := handlers.ParseDate(req.Date)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	at, err := types.NewTimeStringFromString(req.Time)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	d, err := h.flow.SelectDateTime(r.Context(), draftID(r), date, at)
	if err != nil {
		h.respondFlowError(w, "PUT /drafts/{id}/datetime", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, NewDraftResponse(d))
}

// HandleCustomer PUT /api/v1/drafts/{draftId}/customer
func (h *Handler) HandleCustomer(w http.ResponseWriter, r *http.Request) {
	var req CustomerInfoRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	d, err := h.flow.SetCustomerInfo(r.Context(), draftID(r), domain.CustomerInfo{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Notes: req.Notes,
	})
	if err != nil {
		h.respondFlowError(w, "PUT /drafts/{id}/customer", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, NewDraftResponse(d))
}

// HandleBack POST /api/v1/drafts/{draftId}/back
func (h *Handler) HandleBack(w http.ResponseWriter, r *http.Request) {
	var req GoBackRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	d, err := h.flow.GoBack(r.Context(), draftID(r), domain.BookingStep(req.Step))
	if err != nil {
		h.respondFlowError(w, "POST /drafts/{id}/back", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, NewDraftResponse(d))
}

// HandleSubmit POST /api/v1/drafts/{draftId}/submit
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	id := draftID(r)

	res, err := h.flow.Submit(r.Context(), id)
	if err != nil {
		h.respondFlowError(w, "POST /drafts/{id}/submit", err)
		return
	}

	h.logger.Info("POST /drafts/{id}/submit - Draft confirmed: draft_id=%s, appointment_id=%d", id, res.Appointment.ID)
	handlers.RespondJSON(w, http.StatusCreated, NewSubmitResponse(res))
}

func (h *Handler) respondFlowError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, bookingFlow.ErrDraftNotFound):
		h.logger.Warn("%s - Draft not found", route)
		handlers.RespondNotFound(w, msgDraftNotFound)
	case errors.Is(err, bookingFlow.ErrBusinessNotFound):
		handlers.RespondNotFound(w, msgBusinessNotFound)
	case errors.Is(err, bookingFlow.ErrServiceNotFound):
		handlers.RespondNotFound(w, msgServiceNotFound)
	case errors.Is(err, bookingFlow.ErrInvalidTransition):
		h.logger.Warn("%s - Invalid transition: %v", route, err)
		handlers.RespondConflict(w, msgInvalidTransition)
	case errors.Is(err, bookingFlow.ErrSlotNotAvailable):
		h.logger.Warn("%s - Slot not available", route)
		handlers.RespondConflict(w, msgSlotNotAvailable)
	case errors.Is(err, bookingFlow.ErrSubmitInProgress):
		handlers.RespondConflict(w, msgSubmitInProgress)
	case errors.Is(err, bookingFlow.ErrStaleRequest):
		handlers.RespondConflict(w, msgStaleRequest)
	case errors.Is(err, bookingFlow.ErrIncompleteDraft):
		handlers.RespondBadRequest(w, msgIncompleteDraft)
	case errors.Is(err, bookingFlow.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidInput)
	default:
		h.logger.Error("%s - Booking flow failed: error=%v", route, err)
		handlers.RespondInternalError(w)
	}
}

func draftID(r *http.Request) string {
	return mux.Vars(r)["draftId"]
}
