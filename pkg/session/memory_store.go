package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore 进程内会话存储，过期会话在读取时拒绝、由定时清理删除
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemoryStore 创建内存会话存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
	}
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	if time.Now().After(sess.ExpiresAt) {
		// 过期即失效，物理删除交给清理任务
		return nil, ErrNotFound
	}

	// 返回副本，避免调用方修改存储中的会话
	copied := *sess
	return &copied, nil
}

func (s *MemoryStore) Save(ctx context.Context, sess *Session, ttl time.Duration) error {
	copied := *sess
	s.mu.Lock()
	s.sessions[sess.ID] = &copied
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}

// DeleteExpired 删除所有已过期会话
func (s *MemoryStore) DeleteExpired(ctx context.Context) error {
	now := time.Now()
	s.mu.Lock()
	for id, sess := range s.sessions {
		if now.After(sess.ExpiresAt) {
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()
	return nil
}

// Len 当前会话数（测试和监控使用）
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
