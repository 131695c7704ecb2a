package middleware

import (
	"net/http"

	gorillaHandlers "github.com/gorilla/handlers"
)

// CORS разрешает запросы браузерного клиента с перечисленных origin ("*" - с любых).
// Оборачивает весь роутер: preflight OPTIONS не должен доходить до маршрутов mux.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins(allowedOrigins),
		gorillaHandlers.AllowedMethods([]string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions,
		}),
		gorillaHandlers.AllowedHeaders([]string{"Authorization", "Content-Type", HeaderRequestID}),
		gorillaHandlers.ExposedHeaders([]string{HeaderRequestID, "Retry-After"}),
		gorillaHandlers.OptionStatusCode(http.StatusNoContent),
	)
}
