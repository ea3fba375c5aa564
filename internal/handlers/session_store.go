package handlers

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/fadyamr909/EcommApp/internal/cart"
	"github.com/fadyamr909/EcommApp/internal/db"
)

// sessionStore adapts the gin session to the cart's key-value Store.
// Mutations save the session immediately so every cart change is
// written back to the cookie before the response goes out.
type sessionStore struct {
	sess sessions.Session
}

func (s sessionStore) Get(key string) (string, bool) {
	value, ok := s.sess.Get(key).(string)
	return value, ok
}

func (s sessionStore) Set(key, value string) {
	s.sess.Set(key, value)
	_ = s.sess.Save()
}

func (s sessionStore) Remove(key string) {
	s.sess.Delete(key)
	_ = s.sess.Save()
}

func cartService(c *gin.Context) *cart.Service {
	return cart.NewService(sessionStore{sess: sessions.Default(c)}, db.DB)
}
