package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/BookEasy/internal/domain"
	"github.com/m04kA/BookEasy/internal/service/businesses"
)

const minPasswordLength = 6

// Settings параметры подписи токенов и хеширования паролей
type Settings struct {
	Secret     string
	TokenTTL   time.Duration
	Issuer     string
	BcryptCost int
}

// RegisterRequest регистрация владельца вместе с бизнесом
type RegisterRequest struct {
	Business  businesses.CreateRequest
	OwnerName string
	Email     string
	Password  string
}

// Session выданный токен владельца
type Session struct {
	Token     string
	ExpiresAt time.Time
	Business  *domain.Business
}

// Claims содержимое токена. Subject = ID бизнеса.
type Claims struct {
	BusinessID int64  `json:"businessId"`
	Email      string `json:"email"`
	jwt.RegisteredClaims
}
