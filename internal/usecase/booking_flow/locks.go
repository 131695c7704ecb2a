package booking_flow

import (
	"hash/fnv"
	"sync"
)

const lockStripes = 64

// draftLocks сериализует изменения одного черновика внутри процесса
type draftLocks struct {
	stripes [lockStripes]sync.Mutex
}

func (l *draftLocks) lock(id string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	m := &l.stripes[h.Sum32()%lockStripes]
	m.Lock()
	return m.Unlock
}
