package auth

import (
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/fadyamr909/EcommApp/internal/db"
	"github.com/fadyamr909/EcommApp/internal/models"
)

const (
	sessionUserKey = "user_id"
	principalKey   = "principal"
)

// Principal is the identified caller, regardless of whether identity
// arrived via the cookie session or a bearer token. Cart and order code
// only ever sees this.
type Principal struct {
	UserID   uint
	Username string
}

// HashPassword computes the standard digest stored for users.
func HashPassword(password string) string {
	hash := sha256.Sum256([]byte(password))
	return base64.StdEncoding.EncodeToString(hash[:])
}

func VerifyPassword(password, hash string) bool {
	return HashPassword(password) == hash
}

// SignIn records the user in the cookie session.
func SignIn(c *gin.Context, user *models.User) error {
	sess := sessions.Default(c)
	sess.Set(sessionUserKey, user.ID)
	return sess.Save()
}

// SignOut clears the cookie session.
func SignOut(c *gin.Context) error {
	sess := sessions.Default(c)
	sess.Clear()
	return sess.Save()
}

// Required ensures the caller is identified, by cookie session or by
// bearer token, and injects a Principal into the context.
func Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		if p, ok := fromSession(c); ok {
			c.Set(principalKey, p)
			c.Next()
			return
		}

		if p, ok := fromBearer(c); ok {
			c.Set(principalKey, p)
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
}

// CurrentPrincipal returns the principal set by Required.
func CurrentPrincipal(c *gin.Context) (Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}

func fromSession(c *gin.Context) (Principal, bool) {
	sess := sessions.Default(c)
	userID, ok := sess.Get(sessionUserKey).(uint)
	if !ok || userID == 0 {
		return Principal{}, false
	}

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		return Principal{}, false
	}

	return Principal{UserID: user.ID, Username: user.Username}, true
}

func fromBearer(c *gin.Context) (Principal, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return Principal{}, false
	}

	raw, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return Principal{}, false
	}

	p, err := VerifyToken(raw)
	if err != nil {
		return Principal{}, false
	}
	return p, true
}
