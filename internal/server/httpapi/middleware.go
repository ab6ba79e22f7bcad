package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/oscardash/internal/common"
	"github.com/dmitrijs2005/oscardash/internal/logging"
	"github.com/dmitrijs2005/oscardash/internal/server/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	userKey         = "user"
)

// requestID propagates X-Request-ID, minting a UUID when the client sent none.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// requestLogger writes one line per request once the handler chain is done.
func requestLogger(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
			"request_id", c.GetString(requestIDKey),
		}
		if u, ok := currentUser(c); ok {
			args = append(args, "username", u.UserName)
		}

		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			logger.Error(c.Request.Context(), "request", args...)
		case status >= http.StatusBadRequest:
			logger.Warn(c.Request.Context(), "request", args...)
		default:
			logger.Info(c.Request.Context(), "request", args...)
		}
	}
}

// requireAuth resolves the session cookie to a user. It answers 401 before
// any handler runs when there is no live session, and re-issues the cookie
// with the extended expiry otherwise.
func (s *HTTPServer) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(common.SessionCookieName)

		user, refreshed, err := s.users.CurrentUser(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, common.ErrorUnauthorized) {
				if token != "" {
					s.clearSessionCookie(c)
				}
				abortWithMessage(c, http.StatusUnauthorized, msgNotAuthenticated)
				return
			}
			s.internalError(c, msgAuthCheckFailed, err)
			c.Abort()
			return
		}

		s.setSessionCookie(c, refreshed)
		c.Set(userKey, user)
		c.Next()
	}
}

func currentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*models.User)
	return u, ok && u != nil
}

func (s *HTTPServer) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(common.SessionCookieName, token, int(s.users.SessionTTL().Seconds()), "/", "", s.opts.SecureCookies, true)
}

func (s *HTTPServer) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(common.SessionCookieName, "", -1, "/", "", s.opts.SecureCookies, true)
}
