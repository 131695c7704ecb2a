package businesses

import (
	"fmt"
	"strings"

	"github.com/m04kA/BookEasy/internal/domain"
)

func validateCreate(req CreateRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(req.Name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name must be at most %d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	if req.Type != "" && !req.Type.IsValid() {
		return fmt.Errorf("%w: unknown business type %q", ErrInvalidInput, req.Type)
	}
	for _, in := range req.Services {
		if err := validateService(in); err != nil {
			return err
		}
	}
	return nil
}

func validatePatch(patch domain.BusinessPatch) error {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
	}
	if patch.Type != nil && !patch.Type.IsValid() {
		return fmt.Errorf("%w: unknown business type %q", ErrInvalidInput, *patch.Type)
	}
	if patch.Rating != nil && (*patch.Rating < domain.MinRating || *patch.Rating > domain.MaxRating) {
		return fmt.Errorf("%w: rating must be between %.0f and %.0f", ErrInvalidInput, domain.MinRating, domain.MaxRating)
	}
	if patch.ReviewCount != nil && *patch.ReviewCount < 0 {
		return fmt.Errorf("%w: reviewCount must not be negative", ErrInvalidInput)
	}
	return nil
}

func validateService(in ServiceInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: service name is required", ErrInvalidInput)
	}
	if in.DurationMinutes <= 0 {
		return fmt.Errorf("%w: service duration must be positive", ErrInvalidInput)
	}
	if in.Price < 0 {
		return fmt.Errorf("%w: service price must not be negative", ErrInvalidInput)
	}
	return nil
}
