package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/BookEasy/internal/domain"
	businessRepo "github.com/m04kA/BookEasy/internal/infra/storage/business"
	"github.com/m04kA/BookEasy/internal/service/businesses"
)

// Service регистрация и вход владельцев бизнеса
type Service struct {
	businessRepo BusinessRepository
	creator      BusinessCreator
	settings     Settings
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает сервис авторизации
func NewService(businessRepo BusinessRepository, creator BusinessCreator, settings Settings, logger Logger) *Service {
	if settings.TokenTTL <= 0 {
		settings.TokenTTL = 2 * time.Hour
	}
	if settings.BcryptCost == 0 {
		settings.BcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		businessRepo: businessRepo,
		creator:      creator,
		settings:     settings,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Register создает бизнес с захешированным паролем и сразу выдает токен
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*Session, error) {
	// 1. Валидация входных данных
	email := strings.TrimSpace(req.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	if len(req.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}

	// 2. Хешируем пароль
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.settings.BcryptCost)
	if err != nil {
		s.logger.Error("Register: failed to hash password: %v", err)
		return nil, fmt.Errorf("%w: Register - hash password: %v", ErrInternal, err)
	}

	// 3. Создаем бизнес
	createReq := req.Business
	createReq.Email = email
	createReq.OwnerName = strings.TrimSpace(req.OwnerName)
	createReq.PasswordHash = string(hash)

	b, err := s.creator.Create(ctx, createReq)
	if err != nil {
		switch {
		case errors.Is(err, businesses.ErrEmailTaken):
			s.logger.Warn("Register: email %s already registered", email)
			return nil, ErrEmailTaken
		case errors.Is(err, businesses.ErrInvalidInput):
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil, fmt.Errorf("%w: Register - create business: %v", ErrInternal, err)
	}

	s.logger.Info("Register: owner registered for business id=%d", b.ID)
	return s.issue(b)
}

// Login проверяет пароль и выдает подписанный токен
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	b, err := s.businessRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			s.logger.Warn("Login: unknown email %s", email)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: repository error: %v", err)
		return nil, fmt.Errorf("%w: Login - repository error: %v", ErrInternal, err)
	}

	// бизнесы из снапшота без пароля войти не могут
	if b.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(b.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("Login: wrong password for business id=%d", b.ID)
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("Login: business id=%d logged in", b.ID)
	return s.issue(b)
}

// ParseToken проверяет подпись и срок действия токена
func (s *Service) ParseToken(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.settings.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.timeProvider.Now),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 || id != claims.BusinessID {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *Service) issue(b *domain.Business) (*Session, error) {
	now := s.timeProvider.Now()
	expiresAt := now.Add(s.settings.TokenTTL)

	claims := Claims{
		BusinessID: b.ID,
		Email:      b.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(b.ID, 10),
			Issuer:    s.settings.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.settings.Secret))
	if err != nil {
		s.logger.Error("issue: failed to sign token for business id=%d: %v", b.ID, err)
		return nil, fmt.Errorf("%w: sign token: %v", ErrInternal, err)
	}

	b.PasswordHash = ""
	return &Session{Token: signed, ExpiresAt: expiresAt, Business: b}, nil
}
