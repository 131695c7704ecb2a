package update_owner_business

import (
	"github.com/m04kA/BookEasy/internal/api/handlers"
	"github.com/m04kA/BookEasy/internal/domain"
)

// UpdateBusinessRequest HTTP request model. Отсутствующие поля не меняются.
type UpdateBusinessRequest struct {
	Name        *string                    `json:"name,omitempty"`
	Type        *string                    `json:"type,omitempty"`
	Location    *handlers.LocationDTO      `json:"location,omitempty"`
	Description *string                    `json:"description,omitempty"`
	Hours       map[string]handlers.DayDTO `json:"hours,omitempty"`
	Images      []string                   `json:"images,omitempty"`
	Phone       *string                    `json:"phone,omitempty"`
	Email       *string                    `json:"email,omitempty"`
	OwnerName   *string                    `json:"ownerName,omitempty"`
}

// ToPatch конвертирует HTTP request в доменный патч
func (r *UpdateBusinessRequest) ToPatch() (domain.BusinessPatch, error) {
	hours, err := handlers.ParseHours(r.Hours)
	if err != nil {
		return domain.BusinessPatch{}, err
	}

	patch := domain.BusinessPatch{
		Name:        r.Name,
		Description: r.Description,
		Hours:       hours,
		Images:      r.Images,
		Phone:       r.Phone,
		Email:       r.Email,
		OwnerName:   r.OwnerName,
	}
	if r.Type != nil {
		t := domain.BusinessType(*r.Type)
		patch.Type = &t
	}
	if r.Location != nil {
		patch.Location = &domain.Location{
			Address: r.Location.Address,
			Area:    r.Location.Area,
			City:    r.Location.City,
			ZipCode: r.Location.ZipCode,
		}
	}
	return patch, nil
}
