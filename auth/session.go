package auth

import (
	"blog/models"
	"strconv"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	userIdKey  = "id"
	contextKey = "user"
)

type Session struct {
	sessions.Session
}

func LoadSession(c *gin.Context) *Session {
	return &Session{
		Session: sessions.Default(c),
	}
}

func (s *Session) LoginUser(user *models.User) error {
	s.Clear()
	s.Set(userIdKey, user.ID)
	return s.Save()
}

func (s *Session) LogoutUser() error {
	s.Delete(userIdKey)
	s.Clear()
	s.Options(sessions.Options{Path: "/", MaxAge: -1})
	return s.Save()
}

// UserID doesn't hit the database, 0 means anonymous
func (s *Session) UserID() uint64 {
	id, ok := s.Get(userIdKey).(uint64)
	if !ok {
		return 0
	}
	return id
}

func (s *Session) User() models.User {
	id := s.UserID()
	if id == 0 {
		return models.User{}
	}
	user, err := models.UserByID(id)
	if err != nil {
		return models.User{}
	}
	return user
}

// CurrentUser loads the session user once per request, ID is 0 for anonymous visitors
func CurrentUser(c *gin.Context) *models.User {
	if u, ok := c.Get(contextKey); ok {
		return u.(*models.User)
	}
	user := LoadSession(c).User()
	c.Set(contextKey, &user)
	return &user
}

// ViewerKey identifies the viewer for the page cache
func ViewerKey(c *gin.Context) string {
	return "u" + strconv.FormatUint(LoadSession(c).UserID(), 10)
}
