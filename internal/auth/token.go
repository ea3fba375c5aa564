package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	config "github.com/fadyamr909/EcommApp/configs"
	"github.com/fadyamr909/EcommApp/internal/models"
)

var ErrInvalidToken = errors.New("invalid token")

var (
	jwtSecret   []byte
	jwtIssuer   string
	jwtAudience string
	jwtTTL      time.Duration
)

// Init configures the HS256 bearer tokens issued to API clients.
// Browsers use the cookie session instead; both schemes end in the
// same Principal.
func Init(cfg config.JWTConfig) {
	jwtSecret = []byte(cfg.Secret)
	jwtIssuer = cfg.Issuer
	jwtAudience = cfg.Audience
	jwtTTL = time.Duration(cfg.TTLMinutes) * time.Minute
}

type claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func GenerateToken(user *models.User) (string, error) {
	now := time.Now()

	c := claims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			Issuer:    jwtIssuer,
			Audience:  jwt.ClaimStrings{jwtAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(jwtTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return token.SignedString(jwtSecret)
}

func VerifyToken(raw string) (Principal, error) {
	var c claims

	token, err := jwt.ParseWithClaims(raw, &c,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return jwtSecret, nil
		},
		jwt.WithIssuer(jwtIssuer),
		jwt.WithAudience(jwtAudience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return Principal{}, ErrInvalidToken
	}

	userID, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return Principal{}, ErrInvalidToken
	}

	return Principal{UserID: uint(userID), Username: c.Username}, nil
}
