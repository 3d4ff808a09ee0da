package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// 服务端会话：Cookie只携带不透明的会话ID，身份数据保存在Store中

// ErrNotFound 会话不存在或已过期
var ErrNotFound = errors.New("session not found")

// 用户角色常量
const (
	RoleAdmin    = "Admin"
	RoleCustomer = "Customer"
)

// Session 登录态，只保存对User/Account的引用（ID），不复制可变字段
type Session struct {
	ID              string    `json:"id"`
	UserID          uint      `json:"user_id"`
	Username        string    `json:"username"`
	DistributorID   uint      `json:"distributor_id"`
	DistributorName string    `json:"distributor_name"`
	Role            string    `json:"role"`
	AccountID       *uint     `json:"account_id"`
	ExpiresAt       time.Time `json:"expires_at"`
}

// IsAdmin 是否管理员会话
func (s *Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// Store 会话存储后端
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, sess *Session, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context) error
}

// Manager 负责Cookie的下发/解析和会话的读写
type Manager struct {
	store      Store
	cookieName string
	ttl        time.Duration
	secure     bool
}

// NewManager 创建会话管理器
func NewManager(store Store, cookieName string, ttl time.Duration, secure bool) *Manager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{
		store:      store,
		cookieName: cookieName,
		ttl:        ttl,
		secure:     secure,
	}
}

// Start 建立新会话并下发Cookie
func (m *Manager) Start(c *gin.Context, sess *Session) error {
	sess.ID = uuid.New().String()
	sess.ExpiresAt = time.Now().Add(m.ttl)

	if err := m.store.Save(c.Request.Context(), sess, m.ttl); err != nil {
		return err
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, sess.ID, int(m.ttl.Seconds()), "/", "", m.secure, true)
	return nil
}

// Current 从Cookie解析当前会话，访问时滑动续期
func (m *Manager) Current(c *gin.Context) (*Session, error) {
	id, err := c.Cookie(m.cookieName)
	if err != nil || id == "" {
		return nil, ErrNotFound
	}

	sess, err := m.store.Get(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}

	// 滑动续期
	sess.ExpiresAt = time.Now().Add(m.ttl)
	if err := m.store.Save(c.Request.Context(), sess, m.ttl); err != nil {
		return nil, err
	}

	return sess, nil
}

// Destroy 销毁会话并清除Cookie
func (m *Manager) Destroy(c *gin.Context) error {
	id, err := c.Cookie(m.cookieName)
	if err == nil && id != "" {
		if err := m.store.Delete(c.Request.Context(), id); err != nil {
			return err
		}
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, "", -1, "/", "", m.secure, true)
	return nil
}

// CookieName 会话Cookie名称
func (m *Manager) CookieName() string {
	return m.cookieName
}

// Store 底层存储（清理任务使用）
func (m *Manager) Store() Store {
	return m.store
}
