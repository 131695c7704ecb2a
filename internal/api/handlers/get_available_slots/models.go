package get_available_slots

import (
	"github.com/m04kA/BookEasy/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/BookEasy/internal/usecase/get_available_slots"
)

// ToUseCaseRequest создает запрос use case из параметров пути и query
func ToUseCaseRequest(businessID int64, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := handlers.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		BusinessID: businessID,
		Date:       date,
	}, nil
}

// FromUseCaseResponse список {time, available, duration} по возрастанию времени
func FromUseCaseResponse(resp *getAvailableSlots.Response) []handlers.SlotResponse {
	return handlers.NewSlotListResponse(resp.Slots)
}
