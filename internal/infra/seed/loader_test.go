package seed

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BookEasy/internal/domain"
	"github.com/m04kA/BookEasy/pkg/types"
)

func TestLoad_AcceptsBothHourShapesAndStringIDs(t *testing.T) {
	input := `{
		"businesses": [{
			"Id": 3,
			"name": "Serenity Day Spa",
			"type": "spa",
			"location": {"city": "Brooklyn", "area": "Heights"},
			"services": [{"Id": 1, "name": "Massage", "duration": 60, "price": 95}],
			"hours": {
				"monday": {"open": "09:00", "close": "18:00", "closed": false},
				"tue": {"start": "10:00", "end": "16:00"},
				"sunday": {"closed": true}
			}
		}],
		"appointments": [{
			"Id": 1,
			"businessId": "3",
			"serviceId": 1,
			"customerId": "customer_1",
			"date": "2024-06-01",
			"time": "10:00",
			"status": "confirmed"
		}]
	}`

	snapshot, err := Load(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, snapshot.Businesses, 1)
	require.Len(t, snapshot.Appointments, 1)

	b := snapshot.Businesses[0]
	assert.Equal(t, domain.BusinessTypeSpa, b.Type)
	assert.Equal(t, int64(3), b.Services[0].BusinessID)
	assert.Equal(t, types.TimeString("09:00"), b.Hours[time.Monday].Open)
	assert.Equal(t, types.TimeString("16:00"), b.Hours[time.Tuesday].Close)
	assert.True(t, b.Hours[time.Sunday].Closed)

	a := snapshot.Appointments[0]
	assert.Equal(t, int64(3), a.BusinessID)
	assert.Equal(t, types.TimeString("10:00"), a.Time)
	assert.Equal(t, "2024-06-01", a.Date.Format("2006-01-02"))
}

func TestLoad_RejectsBadRecords(t *testing.T) {
	_, err := Load(strings.NewReader(`{"appointments": [{"Id": 1, "businessId": 1, "serviceId": 1, "date": "01/06/2024", "time": "10:00"}]}`))
	assert.ErrorIs(t, err, ErrInvalidRecord)

	_, err = Load(strings.NewReader(`{"businesses": [`))
	assert.ErrorIs(t, err, ErrDecodeSnapshot)
}

func TestLoadFile_BundledSnapshot(t *testing.T) {
	snapshot, err := LoadFile("../../../data/snapshot.json")
	require.NoError(t, err)
	assert.NotEmpty(t, snapshot.Businesses)

	var found bool
	for _, a := range snapshot.Appointments {
		if a.BusinessID == 3 && a.Time == "10:00" && a.Date.Format("2006-01-02") == "2024-06-01" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestLoadFile_EmptyPath(t *testing.T) {
	snapshot, err := LoadFile("")
	require.NoError(t, err)
	assert.Empty(t, snapshot.Businesses)
}
