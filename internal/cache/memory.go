package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// MemoryStore LRU кеш в памяти процесса с TTL и ограничением размера
type MemoryStore struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	items   map[string]*list.Element
	lru     *list.List
	now     func() time.Time
}

type memoryItem struct {
	key       string
	data      []byte
	expiresAt time.Time
}

// NewMemoryStore создает LRU кеш на maxSize записей со сроком жизни ttl
func NewMemoryStore(maxSize int, ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		maxSize: maxSize,
		ttl:     ttl,
		items:   make(map[string]*list.Element),
		lru:     list.New(),
		now:     time.Now,
	}
}

// Name имя хранилища для метрик
func (c *MemoryStore) Name() string { return "memory" }

// Get возвращает значение, если запись есть и не просрочена
func (c *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, exists := c.items[key]
	if !exists {
		return nil, false, nil
	}

	item := elem.Value.(*memoryItem)
	if c.now().After(item.expiresAt) {
		c.removeElement(elem)
		return nil, false, nil
	}

	c.lru.MoveToFront(elem)
	return item.data, true, nil
}

// Set сохраняет значение, вытесняя самую старую запись при переполнении
func (c *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	item := &memoryItem{
		key:       key,
		data:      value,
		expiresAt: c.now().Add(c.ttl),
	}

	if elem, exists := c.items[key]; exists {
		elem.Value = item
		c.lru.MoveToFront(elem)
		return nil
	}

	c.items[key] = c.lru.PushFront(item)

	if c.lru.Len() > c.maxSize {
		if oldest := c.lru.Back(); oldest != nil {
			c.removeElement(oldest)
		}
	}
	return nil
}

// CleanExpired удаляет просроченные записи и возвращает их число
func (c *MemoryStore) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	var expired []*list.Element
	for elem := c.lru.Front(); elem != nil; elem = elem.Next() {
		if now.After(elem.Value.(*memoryItem).expiresAt) {
			expired = append(expired, elem)
		}
	}
	for _, elem := range expired {
		c.removeElement(elem)
	}
	return len(expired)
}

// Size текущее число записей
func (c *MemoryStore) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *MemoryStore) removeElement(elem *list.Element) {
	item := elem.Value.(*memoryItem)
	delete(c.items, item.key)
	c.lru.Remove(elem)
}
