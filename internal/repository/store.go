package repository

import (
	"sync"

	"github.com/feed-system/social-demo/internal/models"
)

// Store owns the in-memory collections for one running instance. Each
// collection has its own lock; a mutation holds it for the whole
// read-modify-write so callers never observe a partial update.
type Store struct {
	users    *table[models.User]
	posts    *table[models.Post]
	comments *table[models.Comment]
	messages *table[models.Message]
}

func NewStore(f *Fixtures) *Store {
	if f == nil {
		f = &Fixtures{}
	}
	return &Store{
		users:    newTable(f.Users, func(u *models.User) string { return u.ID }, models.User.Clone),
		posts:    newTable(f.Posts, func(p *models.Post) string { return p.ID }, models.Post.Clone),
		comments: newTable(f.Comments, func(c *models.Comment) string { return c.ID }, identity[models.Comment]),
		messages: newTable(f.Messages, func(m *models.Message) string { return m.ID }, identity[models.Message]),
	}
}

func identity[T any](v T) T { return v }

type table[T any] struct {
	mu    sync.RWMutex
	rows  []T
	key   func(*T) string
	clone func(T) T
}

func newTable[T any](rows []T, key func(*T) string, clone func(T) T) *table[T] {
	t := &table[T]{key: key, clone: clone, rows: make([]T, 0, len(rows))}
	for _, r := range rows {
		t.rows = append(t.rows, clone(r))
	}
	return t
}

func (t *table[T]) indexOf(id string) int {
	for i := range t.rows {
		if t.key(&t.rows[i]) == id {
			return i
		}
	}
	return -1
}

func (t *table[T]) all() []T {
	return t.filter(func(*T) bool { return true })
}

func (t *table[T]) filter(match func(*T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]T, 0, len(t.rows))
	for i := range t.rows {
		if match(&t.rows[i]) {
			out = append(out, t.clone(t.rows[i]))
		}
	}
	return out
}

func (t *table[T]) get(id string) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var zero T
	i := t.indexOf(id)
	if i == -1 {
		return zero, false
	}
	return t.clone(t.rows[i]), true
}

func (t *table[T]) first() (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var zero T
	if len(t.rows) == 0 {
		return zero, false
	}
	return t.clone(t.rows[0]), true
}

func (t *table[T]) prepend(row T) T {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.rows = append([]T{t.clone(row)}, t.rows...)
	return t.clone(row)
}

func (t *table[T]) append(row T) T {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.rows = append(t.rows, t.clone(row))
	return t.clone(row)
}

// update applies fn to a working copy and stores it only once fn returns.
func (t *table[T]) update(id string, fn func(*T)) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var zero T
	i := t.indexOf(id)
	if i == -1 {
		return zero, false
	}
	row := t.clone(t.rows[i])
	fn(&row)
	t.rows[i] = row
	return t.clone(row), true
}

func (t *table[T]) updateWhere(match func(*T) bool, fn func(*T)) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := 0
	for i := range t.rows {
		if match(&t.rows[i]) {
			fn(&t.rows[i])
			n++
		}
	}
	return n
}

func (t *table[T]) remove(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.indexOf(id)
	if i == -1 {
		return false
	}
	t.rows = append(t.rows[:i], t.rows[i+1:]...)
	return true
}
