package cache

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const localCacheSize = 4096

type localEntry struct {
	val       []byte
	tags      []string
	expiresAt time.Time
}

// LocalCache 进程内 ViewCache 实现，单机部署或未配置 Redis 时使用。
type LocalCache struct {
	mu       sync.Mutex
	entries  *lru.Cache[string, *localEntry]
	tagIndex map[string]map[string]struct{}
	ttl      time.Duration
}

func NewLocalCache() (*LocalCache, error) {
	s := &LocalCache{
		tagIndex: make(map[string]map[string]struct{}),
		ttl:      DefaultTTL,
	}
	entries, err := lru.NewWithEvict[string, *localEntry](localCacheSize, s.onEvict)
	if err != nil {
		return nil, err
	}
	s.entries = entries
	return s, nil
}

// onEvict 在持锁状态下由 Add/Remove 触发
func (s *LocalCache) onEvict(key string, entry *localEntry) {
	for _, tag := range entry.tags {
		if keys, ok := s.tagIndex[tag]; ok {
			delete(keys, key)
			if len(keys) == 0 {
				delete(s.tagIndex, tag)
			}
		}
	}
}

func (s *LocalCache) Get(_ context.Context, key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries.Get(key)
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		s.entries.Remove(key)
		return nil, false
	}
	return entry.val, true
}

func (s *LocalCache) Set(_ context.Context, key string, val []byte, tags []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.entries.Peek(key); ok {
		s.onEvict(key, old)
	}

	s.entries.Add(key, &localEntry{
		val:       val,
		tags:      tags,
		expiresAt: time.Now().Add(s.ttl),
	})
	for _, tag := range tags {
		if _, ok := s.tagIndex[tag]; !ok {
			s.tagIndex[tag] = make(map[string]struct{})
		}
		s.tagIndex[tag][key] = struct{}{}
	}
	return nil
}

func (s *LocalCache) Invalidate(_ context.Context, tags ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, tag := range tags {
		for key := range s.tagIndex[tag] {
			s.entries.Remove(key)
		}
	}
	return nil
}
