package session

import (
	"encoding/gob"

	"github.com/mhartmann/librarian/storage/model"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const loginUser = "LOGIN_USER"

// Identity is the authenticated subject stored in the session: only the
// fields needed to render pages and gate routes. The cookie store signs
// but does not encrypt its payload, so credentials must never enter it.
type Identity struct {
	Id   int        `json:"id"`
	Name string     `json:"name"`
	Role model.Role `json:"role"`
}

// Flash is a one-shot user-visible notice carried across a redirect.
type Flash struct {
	Level   string
	Message string
}

func init() {
	gob.Register(Identity{})
	gob.Register(Flash{})
}

func SetLoginUser(c *gin.Context, user *model.User) error {
	s := sessions.Default(c)
	s.Set(loginUser, Identity{Id: user.Id, Name: user.Name, Role: user.Role})
	return s.Save()
}

func GetLoginUser(c *gin.Context) *Identity {
	s := sessions.Default(c)
	if obj := s.Get(loginUser); obj != nil {
		if identity, ok := obj.(Identity); ok {
			return &identity
		}
	}
	return nil
}

func IsLogin(c *gin.Context) bool {
	return GetLoginUser(c) != nil
}

func ClearSession(c *gin.Context) error {
	s := sessions.Default(c)
	s.Delete(loginUser)
	return s.Save()
}

// AddFlash queues a notice for the next rendered page.
func AddFlash(c *gin.Context, level string, message string) error {
	s := sessions.Default(c)
	s.AddFlash(Flash{Level: level, Message: message})
	return s.Save()
}

// TakeFlashes returns the queued notices and clears them.
func TakeFlashes(c *gin.Context) []Flash {
	s := sessions.Default(c)
	raw := s.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = s.Save()
	flashes := make([]Flash, 0, len(raw))
	for _, obj := range raw {
		if f, ok := obj.(Flash); ok {
			flashes = append(flashes, f)
		}
	}
	return flashes
}
