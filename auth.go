package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/luciayin9944/Expense-Tracker-APP/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	errInvalidToken = errors.New("invalid token")
)

// SignupUser creates a user with a hashed password. Returns ErrUserExists
// when the username is already taken.
func SignupUser(username, password string) (models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return models.User{}, errors.New("username required")
	}
	cred, err := models.NewCredential(password)
	if err != nil {
		return models.User{}, err
	}
	// pre-check existing (optimistic)
	var existing models.User
	if err := db.Where("username = ?", username).First(&existing).Error; err == nil {
		return models.User{}, ErrUserExists
	}
	user := models.User{Username: username, PasswordHash: cred}
	if err := db.Create(&user).Error; err != nil {
		if isUniqueConstraintError(err) { // race condition after initial check
			return models.User{}, ErrUserExists
		}
		return models.User{}, err
	}
	return user, nil
}

// AuthenticateUser verifies a username/password pair. Unknown users and bad
// passwords fail identically so callers cannot tell which factor was wrong.
func AuthenticateUser(username, password string) (models.User, error) {
	username = strings.TrimSpace(username)
	var user models.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	if !user.PasswordHash.Verify(password) {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// issueToken signs a time-bounded HS256 token with the user id as subject.
func issueToken(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// verifyToken validates signature and expiry and returns the subject user id.
func verifyToken(tokenString string) (uint, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrInvalidKeyType
		}
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return 0, errInvalidToken
	}
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, errInvalidToken
	}
	return uint(id), nil
}

// jwtAuthMiddleware guards a route group. Routes outside the group (signup,
// login) declare themselves public by not being in it.
func jwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c)
			return
		}
		userID, err := verifyToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			abortUnauthorized(c)
			return
		}
		c.Set("userID", userID)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "401 Unauthorized"})
}

// currentUserID returns the id stashed by jwtAuthMiddleware.
func currentUserID(c *gin.Context) uint {
	return c.GetUint("userID")
}
