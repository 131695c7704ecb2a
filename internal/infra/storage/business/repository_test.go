package business

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BookEasy/internal/domain"
	"github.com/m04kA/BookEasy/pkg/dbmetrics"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(dbmetrics.Wrap(db, nil)), mock
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM businesses WHERE id = $1 ORDER BY id ASC")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(businessColumns))

	_, err := repo.GetByID(context.Background(), 5)
	assert.ErrorIs(t, err, ErrBusinessNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_WithServices(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM businesses WHERE id = $1")).
		WillReturnRows(sqlmock.NewRows(businessColumns).AddRow(
			3, "Zen Day Spa", "spa", "1 Main St", "South Congress", "Austin", "78704",
			"Relax", 4.5, 120, true, "{a.jpg,b.jpg}", []byte(`{"monday":{"open":"09:00","close":"17:00","closed":false}}`),
			"555-0100", "zen@example.com", "Ann", "", now, now,
		))
	mock.ExpectQuery(regexp.QuoteMeta("FROM business_services WHERE business_id IN ($1)")).
		WillReturnRows(sqlmock.NewRows(serviceColumns).
			AddRow(3, 1, "Massage", "60 min", 60, 95.0).
			AddRow(3, 2, "Facial", "45 min", 45, 70.0))

	b, err := repo.GetByID(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, "Zen Day Spa", b.Name)
	assert.Equal(t, domain.BusinessTypeSpa, b.Type)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, b.Images)
	assert.Equal(t, domain.DaySchedule{Open: "09:00", Close: "17:00"}, b.Hours[time.Monday])
	require.Len(t, b.Services, 2)
	assert.Equal(t, "Facial", b.Services[1].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Search_BuildsFilters(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`FROM businesses WHERE \(name ILIKE \$1 OR description ILIKE \$2 OR EXISTS .+\) AND \(city ILIKE \$4 OR area ILIKE \$5\) AND type = \$6 ORDER BY id ASC`).
		WithArgs("%cut%", "%cut%", "%cut%", "%austin%", "%austin%", "salon").
		WillReturnRows(sqlmock.NewRows(businessColumns))

	list, err := repo.Search(context.Background(), domain.SearchCriteria{
		Query:    "cut",
		Location: "austin",
		Category: "salon",
	})
	require.NoError(t, err)
	assert.Empty(t, list)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, `%50\% off%`, likePattern("50% off"))
	assert.Equal(t, `%a\_b%`, likePattern("a_b"))
}

func TestHoursCodec(t *testing.T) {
	hours := domain.WorkingHours{
		time.Monday: {Open: "09:00", Close: "18:00"},
		time.Sunday: {Closed: true},
	}

	data, err := encodeHours(hours)
	require.NoError(t, err)

	decoded, err := decodeHours(data)
	require.NoError(t, err)
	assert.Equal(t, hours[time.Monday], decoded[time.Monday])
	assert.True(t, decoded[time.Sunday].Closed)
}
