package owner_auth

import (
	"errors"
	"net/http"

	"github.com/m04kA/BookEasy/internal/api/handlers"
	"github.com/m04kA/BookEasy/internal/service/auth"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidHours        = "некорректное расписание работы"
	msgInvalidData         = "некорректные данные регистрации"
	msgEmailTaken          = "email уже зарегистрирован"
	msgInvalidCredentials  = "неверный email или пароль"
	msgCredentialsRequired = "email и пароль обязательны"
)

type Handler struct {
	service AuthService
	logger  Logger
}

func NewHandler(service AuthService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleRegister POST /api/v1/owners/register
// Публичный endpoint - создает бизнес и возвращает токен владельца
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /owners/register - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /owners/register - Invalid hours: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHours)
		return
	}

	session, err := h.service.Register(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailTaken):
			handlers.RespondConflict(w, msgEmailTaken)
		case errors.Is(err, auth.ErrInvalidInput):
			h.logger.Warn("POST /owners/register - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)
		default:
			h.logger.Error("POST /owners/register - Failed to register owner: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /owners/register - Owner registered: business_id=%d", session.Business.ID)
	handlers.RespondJSON(w, http.StatusCreated, NewSessionResponse(session))
}

// HandleLogin POST /api/v1/owners/login
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.Email == "" || req.Password == "" {
		handlers.RespondBadRequest(w, msgCredentialsRequired)
		return
	}

	session, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			handlers.RespondUnauthorized(w, msgInvalidCredentials)
			return
		}
		h.logger.Error("POST /owners/login - Failed to login: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /owners/login - Owner logged in: business_id=%d", session.Business.ID)
	handlers.RespondJSON(w, http.StatusOK, NewSessionResponse(session))
}
