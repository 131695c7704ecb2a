package business_directory

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BookEasy/internal/api/handlers"
	"github.com/m04kA/BookEasy/internal/domain"
	"github.com/m04kA/BookEasy/internal/infra/storage/memory"
	"github.com/m04kA/BookEasy/internal/service/businesses"
	"github.com/m04kA/BookEasy/pkg/logger"
)

func newRouter() *mux.Router {
	repo := memory.NewBusinessRepository([]*domain.Business{
		{ID: 1, Name: "Glamour Hair Studio", Type: domain.BusinessTypeSalon, Rating: 4.8, Featured: true,
			Location: domain.Location{City: "New York"}, PasswordHash: "secret-hash",
			Services: []domain.Service{{ID: 1, Name: "Haircut", DurationMinutes: 60, Price: 65}}},
		{ID: 2, Name: "Bright Smile Dental", Type: domain.BusinessTypeDental, Rating: 4.9,
			Location: domain.Location{City: "Brooklyn"},
			Services: []domain.Service{{ID: 1, Name: "Cleaning", DurationMinutes: 60, Price: 120}}},
	})
	svc := businesses.NewService(repo, memory.NewAppointmentRepository(nil), businesses.Settings{}, logger.Nop())
	h := NewHandler(svc, logger.Nop())

	r := mux.NewRouter()
	r.HandleFunc("/businesses", h.HandleList)
	r.HandleFunc("/businesses/search", h.HandleSearch)
	r.HandleFunc("/businesses/featured", h.HandleFeatured)
	r.HandleFunc("/businesses/category/{category}", h.HandleByCategory)
	r.HandleFunc("/businesses/{businessId}", h.HandleGet)
	return r
}

func getList(t *testing.T, r http.Handler, url string) []handlers.BusinessResponse {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	require.Equal(t, http.StatusOK, rec.Code, url)

	var list []handlers.BusinessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	return list
}

func TestDirectory(t *testing.T) {
	r := newRouter()

	assert.Len(t, getList(t, r, "/businesses"), 2)

	sorted := getList(t, r, "/businesses/search?sort=rating")
	require.Len(t, sorted, 2)
	assert.Equal(t, int64(2), sorted[0].ID)

	found := getList(t, r, "/businesses/search?q=haircut&location=new")
	require.Len(t, found, 1)
	assert.Equal(t, "Glamour Hair Studio", found[0].Name)

	featured := getList(t, r, "/businesses/featured")
	require.Len(t, featured, 1)
	assert.True(t, featured[0].Featured)

	dental := getList(t, r, "/businesses/category/dental")
	require.Len(t, dental, 1)
	assert.Equal(t, "dental", dental[0].Type)
}

func TestGet(t *testing.T) {
	r := newRouter()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/businesses/1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret-hash")

	var b handlers.BusinessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
	assert.Equal(t, int64(1), b.ID)
	require.Len(t, b.Services, 1)
	assert.Equal(t, 60, b.Services[0].Duration)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/businesses/99", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/businesses/search?sort=random", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
