package models

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User model
type User struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Username     string     `gorm:"size:255;not null;unique" json:"username"`
	PasswordHash Credential `gorm:"not null" json:"-"`
	Expenses     []Expense  `json:"-"`
}

// Credential is a bcrypt-hashed password. It is constructed from plaintext
// and afterwards can only be compared against plaintext; the digest itself
// is reachable solely through the driver.Valuer the database layer needs,
// never through a read accessor or JSON.
type Credential struct {
	hash []byte
}

// NewCredential hashes the given plaintext password.
func NewCredential(plaintext string) (Credential, error) {
	if plaintext == "" {
		return Credential{}, errors.New("password required")
	}
	h, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return Credential{}, err
	}
	return Credential{hash: h}, nil
}

// Verify reports whether plaintext matches the stored hash.
func (c Credential) Verify(plaintext string) bool {
	return bcrypt.CompareHashAndPassword(c.hash, []byte(plaintext)) == nil
}

// Value implements driver.Valuer so the database layer can persist the digest.
func (c Credential) Value() (driver.Value, error) {
	if len(c.hash) == 0 {
		return nil, errors.New("credential is empty")
	}
	return append([]byte(nil), c.hash...), nil
}

// Scan implements sql.Scanner.
func (c *Credential) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		c.hash = append([]byte(nil), v...)
	case string:
		c.hash = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Credential", src)
	}
	return nil
}

// GormDataType maps Credential to a byte column (bytea on postgres).
func (Credential) GormDataType() string {
	return "bytes"
}
