package middleware

import (
	"github.com/davidmodfyi/feather-api/pkg/response"
	"github.com/davidmodfyi/feather-api/pkg/session"

	"github.com/gin-gonic/gin"
)

// 上下文键
const (
	ContextSession = "session"
	ContextUserID  = "user_id"
)

// AuthMiddleware 会话认证中间件
type AuthMiddleware struct {
	sessions *session.Manager
}

func NewAuthMiddleware(sessions *session.Manager) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// RequireLogin 解析会话Cookie，失败返回401
func (m *AuthMiddleware) RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := m.sessions.Current(c)
		if err != nil {
			response.Unauthorized(c, "Not authenticated")
			c.Abort()
			return
		}

		// 将会话信息保存到上下文
		c.Set(ContextSession, sess)
		c.Set(ContextUserID, sess.UserID)

		c.Next()
	}
}

// RequireAdmin 要求管理员角色，必须在RequireLogin之后使用
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := CurrentSession(c)
		if !ok {
			response.Unauthorized(c, "Not authenticated")
			c.Abort()
			return
		}

		if !sess.IsAdmin() {
			response.Forbidden(c, "Admin role required")
			c.Abort()
			return
		}

		c.Next()
	}
}

// CurrentSession 从gin上下文取出当前会话
func CurrentSession(c *gin.Context) (*session.Session, bool) {
	value, exists := c.Get(ContextSession)
	if !exists {
		return nil, false
	}
	sess, ok := value.(*session.Session)
	return sess, ok
}
