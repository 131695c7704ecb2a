package draft

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/BookEasy/internal/domain"
)

const (
	keyPrefix        = "bookeasy:draft:"
	generationSuffix = ":gen"
)

// RedisStore хранит черновики записи в Redis как JSON с TTL
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore создает хранилище черновиков. ttl <= 0 заменяется на 30 минут.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &RedisStore{rdb: rdb, ttl: ttl}
}

// Save перезаписывает черновик и продлевает TTL
func (s *RedisStore) Save(ctx context.Context, d *domain.BookingDraft) error {
	payload, err := encodeDraft(d)
	if err != nil {
		return fmt.Errorf("%w: Save - marshal: %v", ErrEncode, err)
	}

	if err := s.rdb.Set(ctx, keyPrefix+d.ID, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Save - set: %v", ErrStore, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*domain.BookingDraft, error) {
	payload, err := s.rdb.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrDraftNotFound
		}
		return nil, fmt.Errorf("%w: Get - get: %v", ErrStore, err)
	}

	d, err := decodeDraft(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: Get - unmarshal: %v", ErrDecode, err)
	}
	return d, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.rdb.Del(ctx, keyPrefix+id, keyPrefix+id+generationSuffix).Err(); err != nil {
		return fmt.Errorf("%w: Delete - del: %v", ErrStore, err)
	}
	return nil
}

// NextGeneration атомарно увеличивает счетчик загрузок слотов черновика
func (s *RedisStore) NextGeneration(ctx context.Context, id string) (int64, error) {
	key := keyPrefix + id + generationSuffix

	pipe := s.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("%w: NextGeneration - incr: %v", ErrStore, err)
	}
	return incr.Val(), nil
}

// Generation текущее значение счетчика (0, если загрузок не было)
func (s *RedisStore) Generation(ctx context.Context, id string) (int64, error) {
	n, err := s.rdb.Get(ctx, keyPrefix+id+generationSuffix).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: Generation - get: %v", ErrStore, err)
	}
	return n, nil
}
