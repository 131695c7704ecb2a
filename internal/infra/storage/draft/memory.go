package draft

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/BookEasy/internal/domain"
)

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// MemoryStore хранилище черновиков в памяти процесса.
// Черновики сериализуются так же, как в Redis, чтобы вызывающий не мог изменить сохранённое состояние.
// Просроченные черновики удаляются при записи не реже раза в ttl.
type MemoryStore struct {
	mu          sync.Mutex
	ttl         time.Duration
	now         func() time.Time
	nextSweep   time.Time
	drafts      map[string]memoryEntry
	generations map[string]int64
}

// NewMemoryStore создает хранилище черновиков. ttl <= 0 заменяется на 30 минут.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &MemoryStore{
		ttl:         ttl,
		now:         time.Now,
		drafts:      make(map[string]memoryEntry),
		generations: make(map[string]int64),
	}
}

func (s *MemoryStore) Save(ctx context.Context, d *domain.BookingDraft) error {
	payload, err := encodeDraft(d)
	if err != nil {
		return fmt.Errorf("%w: Save - marshal: %v", ErrEncode, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweepLocked(now)
	s.drafts[d.ID] = memoryEntry{payload: payload, expiresAt: now.Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*domain.BookingDraft, error) {
	s.mu.Lock()
	entry, ok := s.drafts[id]
	if ok && !s.now().Before(entry.expiresAt) {
		delete(s.drafts, id)
		delete(s.generations, id)
		ok = false
	}
	s.mu.Unlock()

	if !ok {
		return nil, ErrDraftNotFound
	}

	d, err := decodeDraft(entry.payload)
	if err != nil {
		return nil, fmt.Errorf("%w: Get - unmarshal: %v", ErrDecode, err)
	}
	return d, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.drafts, id)
	delete(s.generations, id)
	return nil
}

func (s *MemoryStore) NextGeneration(ctx context.Context, id string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked(s.now())
	s.generations[id]++
	return s.generations[id], nil
}

func (s *MemoryStore) Generation(ctx context.Context, id string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.generations[id], nil
}

// sweepLocked удаляет просроченные черновики и счетчики без черновика. Вызывается под s.mu.
func (s *MemoryStore) sweepLocked(now time.Time) {
	if now.Before(s.nextSweep) {
		return
	}
	s.nextSweep = now.Add(s.ttl)

	for id, entry := range s.drafts {
		if !now.Before(entry.expiresAt) {
			delete(s.drafts, id)
		}
	}
	for id := range s.generations {
		if _, ok := s.drafts[id]; !ok {
			delete(s.generations, id)
		}
	}
}
