package get_owner_business

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BookEasy/internal/api/handlers"
	"github.com/m04kA/BookEasy/internal/api/middleware"
	"github.com/m04kA/BookEasy/internal/domain"
	"github.com/m04kA/BookEasy/internal/infra/storage/memory"
	"github.com/m04kA/BookEasy/internal/service/businesses"
	"github.com/m04kA/BookEasy/pkg/logger"
)

func newHandler() *Handler {
	repo := memory.NewBusinessRepository([]*domain.Business{{
		ID:           1,
		Name:         "Glamour Hair Studio",
		Rating:       4.8,
		ReviewCount:  120,
		PasswordHash: "$2a$10$hash",
		Services:     []domain.Service{{ID: 1, BusinessID: 1, Name: "Haircut", DurationMinutes: 30, Price: 40}},
	}})
	appts := memory.NewAppointmentRepository([]*domain.Appointment{
		{ID: 1, BusinessID: 1, Date: time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC), Time: "10:00", Price: 40, Status: domain.StatusCompleted},
		{ID: 2, BusinessID: 1, Date: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), Time: "11:00", Price: 40, Status: domain.StatusConfirmed},
		{ID: 3, BusinessID: 1, Date: time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC), Time: "11:00", Price: 40, Status: domain.StatusCancelled},
	})
	svc := businesses.NewService(repo, appts, businesses.Settings{Location: time.UTC}, logger.Nop())

	h := NewHandler(svc, logger.Nop())
	h.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	return h
}

func call(fn http.HandlerFunc, businessID int64) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if businessID > 0 {
		req = req.WithContext(middleware.WithBusinessID(req.Context(), businessID))
	}
	rec := httptest.NewRecorder()
	fn(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	h := newHandler()

	rec := call(h.Handle, 1)
	require.Equal(t, http.StatusOK, rec.Code)
	var b handlers.BusinessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
	assert.Equal(t, "Glamour Hair Studio", b.Name)
	assert.NotContains(t, rec.Body.String(), "$2a$10$hash")

	assert.Equal(t, http.StatusUnauthorized, call(h.Handle, 0).Code)
	assert.Equal(t, http.StatusNotFound, call(h.Handle, 42).Code)
}

func TestHandleDashboard(t *testing.T) {
	h := newHandler()

	rec := call(h.HandleDashboard, 1)
	require.Equal(t, http.StatusOK, rec.Code)

	var d DashboardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
	assert.Equal(t, 3, d.TotalBookings)
	assert.Equal(t, 1, d.UpcomingBookings)
	assert.Equal(t, 1, d.PastBookings)
	assert.Equal(t, 1, d.CancelledBookings)
	assert.InDelta(t, 80.0, d.Revenue, 0.001)
	assert.Equal(t, 1, d.ServiceCount)
	require.Len(t, d.Recent, 1)
	assert.Equal(t, int64(2), d.Recent[0].ID)
}
