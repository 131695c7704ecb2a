package seed

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/m04kA/BookEasy/internal/domain"
	"github.com/m04kA/BookEasy/pkg/timeutil"
	"github.com/m04kA/BookEasy/pkg/types"
)

// Snapshot начальные данные каталога и записей
type Snapshot struct {
	Businesses   []*domain.Business
	Appointments []*domain.Appointment
}

// LoadFile читает снимок из JSON-файла. Пустой путь даёт пустой снимок.
func LoadFile(path string) (*Snapshot, error) {
	if path == "" {
		return &Snapshot{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: LoadFile - read %s: %v", ErrReadSnapshot, path, err)
	}

	return Load(bytes.NewReader(data))
}

// Load разбирает снимок из r
func Load(r io.Reader) (*Snapshot, error) {
	decoder := json.NewDecoder(r)
	decoder.UseNumber()

	var raw snapshotJSON
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: Load - decode: %v", ErrDecodeSnapshot, err)
	}

	snapshot := &Snapshot{
		Businesses:   make([]*domain.Business, 0, len(raw.Businesses)),
		Appointments: make([]*domain.Appointment, 0, len(raw.Appointments)),
	}

	for i, b := range raw.Businesses {
		business, err := b.toDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: business #%d: %v", ErrInvalidRecord, i, err)
		}
		snapshot.Businesses = append(snapshot.Businesses, business)
	}

	for i, a := range raw.Appointments {
		appt, err := a.toDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: appointment #%d: %v", ErrInvalidRecord, i, err)
		}
		snapshot.Appointments = append(snapshot.Appointments, appt)
	}

	return snapshot, nil
}

func (b businessJSON) toDomain() (*domain.Business, error) {
	if b.ID <= 0 {
		return nil, fmt.Errorf("Id must be positive, got %d", b.ID)
	}

	businessType := domain.BusinessType(b.Type)
	if !businessType.IsValid() {
		businessType = domain.BusinessTypeOther
	}

	services := make([]domain.Service, 0, len(b.Services))
	for _, s := range b.Services {
		services = append(services, domain.Service{
			ID:              s.ID,
			BusinessID:      b.ID,
			Name:            s.Name,
			Description:     s.Description,
			DurationMinutes: s.Duration,
			Price:           s.Price,
		})
	}

	hours := make(domain.WorkingHours, len(b.Hours))
	for key, day := range b.Hours {
		weekday, ok := domain.ParseWeekday(key)
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", key)
		}
		schedule, err := day.toDomain()
		if err != nil {
			return nil, fmt.Errorf("hours %s: %v", key, err)
		}
		hours[weekday] = schedule
	}

	var createdAt time.Time
	if b.CreatedAt != nil {
		createdAt = *b.CreatedAt
	}

	return &domain.Business{
		ID:   b.ID,
		Name: b.Name,
		Type: businessType,
		Location: domain.Location{
			Address: b.Location.Address,
			Area:    b.Location.Area,
			City:    b.Location.City,
			ZipCode: b.Location.ZipCode,
		},
		Description: b.Description,
		Services:    services,
		Hours:       hours,
		Rating:      b.Rating,
		ReviewCount: b.ReviewCount,
		Featured:    b.Featured,
		Images:      append([]string{}, b.Images...),
		Phone:       b.Phone,
		Email:       b.Email,
		OwnerName:   b.OwnerName,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}, nil
}

func (d dayJSON) toDomain() (domain.DaySchedule, error) {
	if d.Closed {
		return domain.DaySchedule{Closed: true}, nil
	}

	openAt, closeAt := d.Open, d.Close
	if openAt == "" {
		openAt = d.Start
	}
	if closeAt == "" {
		closeAt = d.End
	}

	openTime, err := types.NewTimeStringFromString(openAt)
	if err != nil {
		return domain.DaySchedule{}, err
	}
	closeTime, err := types.NewTimeStringFromString(closeAt)
	if err != nil {
		return domain.DaySchedule{}, err
	}

	return domain.DaySchedule{Open: openTime, Close: closeTime}, nil
}

func (a appointmentJSON) toDomain() (*domain.Appointment, error) {
	if a.ID <= 0 {
		return nil, fmt.Errorf("Id must be positive, got %d", a.ID)
	}

	businessID, err := parseID(a.BusinessID)
	if err != nil {
		return nil, fmt.Errorf("businessId: %v", err)
	}
	serviceID, err := parseID(a.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("serviceId: %v", err)
	}

	date, err := timeutil.ParseDate(a.Date)
	if err != nil {
		return nil, err
	}
	slot, err := types.NewTimeStringFromString(a.Time)
	if err != nil {
		return nil, err
	}

	status := domain.AppointmentStatus(a.Status)
	if status == "" {
		status = domain.StatusConfirmed
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("unknown status %q", a.Status)
	}

	var createdAt time.Time
	if a.CreatedAt != nil {
		createdAt = *a.CreatedAt
	}

	return &domain.Appointment{
		ID:              a.ID,
		BusinessID:      businessID,
		CustomerID:      a.CustomerID,
		CustomerName:    a.CustomerName,
		CustomerEmail:   a.CustomerEmail,
		CustomerPhone:   a.CustomerPhone,
		ServiceID:       serviceID,
		ServiceName:     a.ServiceName,
		Date:            date,
		Time:            slot,
		DurationMinutes: a.Duration,
		Price:           a.Price,
		Notes:           a.Notes,
		Status:          status,
		CancelledAt:     a.CancelledAt,
		CreatedAt:       createdAt,
		UpdatedAt:       createdAt,
	}, nil
}

// parseID принимает id числом или строкой ("3")
func parseID(n json.Number) (int64, error) {
	if n == "" {
		return 0, fmt.Errorf("missing id")
	}
	return strconv.ParseInt(string(n), 10, 64)
}
