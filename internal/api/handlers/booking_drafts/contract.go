package booking_drafts

import (
	"context"
	"time"

	"github.com/m04kA/BookEasy/internal/domain"
	bookingFlow "github.com/m04kA/BookEasy/internal/usecase/booking_flow"
	"github.com/m04kA/BookEasy/pkg/types"
)

type BookingFlow interface {
	Start(ctx context.Context, businessID int64, serviceID *int64) (*domain.BookingDraft, error)
	Get(ctx context.Context, draftID string) (*domain.BookingDraft, error)
	SelectService(ctx context.Context, draftID string, serviceID int64) (*domain.BookingDraft, error)
	LoadSlots(ctx context.Context, draftID string, date time.Time) (*bookingFlow.SlotsResult, error)
	SelectDateTime(ctx context.Context, draftID string, date time.Time, at types.TimeString) (*domain.BookingDraft, error)
	SetCustomerInfo(ctx context.Context, draftID string, info domain.CustomerInfo) (*domain.BookingDraft, error)
	GoBack(ctx context.Context, draftID string, step domain.BookingStep) (*domain.BookingDraft, error)
	Submit(ctx context.Context, draftID string) (*bookingFlow.SubmitResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
