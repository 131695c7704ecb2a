package create_appointment

import "github.com/google/uuid"

// UUIDGenerator генерирует случайные UUID v4
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}
