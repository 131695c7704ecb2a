package booking_drafts

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BookEasy/internal/domain"
	"github.com/m04kA/BookEasy/internal/infra/queue"
	"github.com/m04kA/BookEasy/internal/infra/storage/draft"
	"github.com/m04kA/BookEasy/internal/infra/storage/memory"
	bookingFlow "github.com/m04kA/BookEasy/internal/usecase/booking_flow"
	"github.com/m04kA/BookEasy/internal/usecase/create_appointment"
	"github.com/m04kA/BookEasy/internal/usecase/get_available_slots"
	"github.com/m04kA/BookEasy/pkg/logger"
	"github.com/m04kA/BookEasy/pkg/metrics"
)

func newRouter() *mux.Router {
	log := logger.Nop()
	businesses := memory.NewBusinessRepository([]*domain.Business{{
		ID:   3,
		Name: "Serenity Day Spa",
		Services: []domain.Service{
			{ID: 1, BusinessID: 3, Name: "Swedish Massage", DurationMinutes: 60, Price: 95},
		},
	}})
	appts := memory.NewAppointmentRepository([]*domain.Appointment{
		{ID: 1, BusinessID: 3, ServiceID: 1, Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), Time: "10:00", Status: domain.StatusConfirmed},
	})

	slots := get_available_slots.NewUseCase(appts, get_available_slots.DefaultSettings(), log)
	var m *metrics.Metrics
	creator := create_appointment.NewUseCase(appts, businesses, memory.NewTxManager(), queue.NoopPublisher{}, m,
		create_appointment.Settings{SlotMinutes: 30}, log)
	flow := bookingFlow.NewFlow(draft.NewMemoryStore(time.Hour), businesses, slots, creator, log)

	h := NewHandler(flow, log)
	r := mux.NewRouter()
	r.HandleFunc("/businesses/{businessId}/drafts", h.HandleStart).Methods(http.MethodPost)
	r.HandleFunc("/drafts/{draftId}", h.HandleGet).Methods(http.MethodGet)
	r.HandleFunc("/drafts/{draftId}/slots", h.HandleSlots).Methods(http.MethodGet)
	r.HandleFunc("/drafts/{draftId}/service", h.HandleSelectService).Methods(http.MethodPut)
	r.HandleFunc("/drafts/{draftId}/datetime", h.HandleSelectDateTime).Methods(http.MethodPut)
	r.HandleFunc("/drafts/{draftId}/customer", h.HandleCustomer).Methods(http.MethodPut)
	r.HandleFunc("/drafts/{draftId}/back", h.HandleBack).Methods(http.MethodPost)
	r.HandleFunc("/drafts/{draftId}/submit", h.HandleSubmit).Methods(http.MethodPost)
	return r
}

func do(t *testing.T, r http.Handler, method, url string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, url, &buf))
	return rec
}

func decodeDraft(t *testing.T, rec *httptest.ResponseRecorder) DraftResponse {
	t.Helper()
	var d DraftResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
	return d
}

func TestDrafts_FullFlow(t *testing.T) {
	r := newRouter()

	rec := do(t, r, http.MethodPost, "/businesses/3/drafts", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	d := decodeDraft(t, rec)
	assert.Equal(t, "choosing_service", d.Step)
	base := "/drafts/" + d.ID

	rec = do(t, r, http.MethodPut, base+"/service", SelectServiceRequest{ServiceID: 1})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "choosing_datetime", decodeDraft(t, rec).Step)

	rec = do(t, r, http.MethodGet, base+"/slots?date=2024-06-01", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var slots SlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &slots))
	assert.Equal(t, int64(1), slots.Generation)
	assert.Len(t, slots.Slots, 17)

	rec = do(t, r, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, slots.Generation, decodeDraft(t, rec).Generation)

	rec = do(t, r, http.MethodPut, base+"/datetime", SelectDateTimeRequest{Date: "2024-06-01", Time: "10:00"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, r, http.MethodPut, base+"/datetime", SelectDateTimeRequest{Date: "2024-06-01", Time: "10:30"})
	require.Equal(t, http.StatusOK, rec.Code)
	d = decodeDraft(t, rec)
	assert.Equal(t, "entering_details", d.Step)
	require.NotNil(t, d.Time)
	assert.Equal(t, "10:30", *d.Time)

	rec = do(t, r, http.MethodPost, base+"/submit", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, r, http.MethodPut, base+"/customer", CustomerInfoRequest{
		Name:  "Sarah Johnson",
		Email: "sarah.j@email.com",
		Phone: "(555) 123-4567",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, r, http.MethodPost, base+"/submit", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var submitted SubmitResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &submitted))
	assert.Equal(t, "confirmed", submitted.Draft.Step)
	assert.Equal(t, "confirmed", submitted.Appointment.Status)
	assert.Equal(t, "10:30", submitted.Appointment.Time)
	require.NotNil(t, submitted.Draft.AppointmentID)
	assert.Equal(t, submitted.Appointment.ID, *submitted.Draft.AppointmentID)

	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, base, nil).Code)
}

func TestDrafts_BackAndSkipForward(t *testing.T) {
	r := newRouter()

	rec := do(t, r, http.MethodPost, "/businesses/3/drafts", StartDraftRequest{ServiceID: func() *int64 { v := int64(1); return &v }()})
	require.Equal(t, http.StatusCreated, rec.Code)
	d := decodeDraft(t, rec)
	assert.Equal(t, "choosing_datetime", d.Step)
	base := "/drafts/" + d.ID

	assert.Equal(t, http.StatusConflict, do(t, r, http.MethodPost, base+"/back", GoBackRequest{Step: "entering_details"}).Code)

	rec = do(t, r, http.MethodPost, base+"/back", GoBackRequest{Step: "choosing_service"})
	require.Equal(t, http.StatusOK, rec.Code)
	d = decodeDraft(t, rec)
	assert.Equal(t, "choosing_service", d.Step)
	require.NotNil(t, d.ServiceID)
	assert.Equal(t, int64(1), *d.ServiceID)

	// с шага выбора услуги нельзя сразу выбрать время или отправить
	rec = do(t, r, http.MethodPut, base+"/datetime", SelectDateTimeRequest{Date: "2024-06-01", Time: "10:30"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, http.StatusConflict, do(t, r, http.MethodPost, base+"/submit", nil).Code)
}

func TestDrafts_BadRequests(t *testing.T) {
	r := newRouter()

	tests := []struct {
		name   string
		method string
		url    string
		body   interface{}
		want   int
	}{
		{name: "unknown business", method: http.MethodPost, url: "/businesses/99/drafts", want: http.StatusNotFound},
		{name: "bad business id", method: http.MethodPost, url: "/businesses/x/drafts", want: http.StatusBadRequest},
		{name: "unknown draft", method: http.MethodGet, url: "/drafts/nope", want: http.StatusNotFound},
		{name: "bad date", method: http.MethodGet, url: "/drafts/nope/slots?date=01.06.2024", want: http.StatusBadRequest},
		{name: "bad time", method: http.MethodPut, url: "/drafts/nope/datetime", body: SelectDateTimeRequest{Date: "2024-06-01", Time: "25:00"}, want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, do(t, r, tt.method, tt.url, tt.body).Code)
		})
	}
}
