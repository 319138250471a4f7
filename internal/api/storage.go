package api

import (
	"io"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"crudgen/internal/dsl"
	"crudgen/internal/lint"
)

// ArtifactOut — отрендеренный артефакт в ответе превью.
type ArtifactOut struct {
	Name    string `json:"name"`
	File    string `json:"file"`
	Content string `json:"content"`
}

// Rejection — запись, которую парсер не принял.
type Rejection struct {
	Kind    string `json:"kind"` // field | relationship
	Entry   string `json:"entry"`
	Reason  string `json:"reason"`
	Example string `json:"example,omitempty"`
}

type Preview struct {
	ID        string        `json:"id"`
	CreatedAt time.Time     `json:"created_at"`
	Model     *dsl.Entity   `json:"model"`
	Rejected  []Rejection   `json:"rejected"`
	Issues    []lint.Issue  `json:"issues"`
	Artifacts []ArtifactOut `json:"artifacts"`
}

// Storage держит последние превью в памяти; при переполнении
// вытесняются самые старые (ULID сортируется по времени).
type Storage struct {
	mu       sync.RWMutex
	previews map[string]*Preview
	limit    int
	entropy  io.Reader
}

const DefaultPreviewLimit = 100

func NewStorage(limit int) *Storage {
	if limit <= 0 {
		limit = DefaultPreviewLimit
	}
	src := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Storage{
		previews: make(map[string]*Preview),
		limit:    limit,
		entropy:  ulid.Monotonic(src, 0),
	}
}

// newID вызывается под s.mu: Monotonic не потокобезопасен.
func (s *Storage) newID(now time.Time) string {
	return ulid.MustNew(ulid.Timestamp(now), s.entropy).String()
}

// Put присваивает превью ID и сохраняет его.
func (s *Storage) Put(p *Preview) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	p.ID = s.newID(now)
	p.CreatedAt = now
	s.previews[p.ID] = p

	if over := len(s.previews) - s.limit; over > 0 {
		ids := make([]string, 0, len(s.previews))
		for id := range s.previews {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids[:over] {
			delete(s.previews, id)
		}
	}
	return p.ID
}

func (s *Storage) Get(id string) (*Preview, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.previews[id]
	return p, ok
}

func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.previews)
}
