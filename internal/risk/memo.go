package risk

import (
	"sync"
	"time"

	"onboard/internal/onboarding/models"
	id "onboard/pkg/domain"
)

// Memo caches results for the lifetime of one request. It keys on customer ID and
// version so a customer saved mid-request is re-scored.
type Memo struct {
	now     time.Time
	mu      sync.Mutex
	results map[memoKey]Result
}

type memoKey struct {
	customer id.CustomerID
	version  int64
}

// NewMemo pins the reference time for every assessment made through it.
func NewMemo(now time.Time) *Memo {
	return &Memo{now: now, results: make(map[memoKey]Result)}
}

func (m *Memo) Assess(c *models.Customer) Result {
	key := memoKey{customer: c.ID, version: c.Version}

	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.results[key]; ok {
		return r
	}
	r := Assess(c, m.now)
	m.results[key] = r
	return r
}
