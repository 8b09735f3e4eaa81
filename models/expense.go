package models

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Category classifies an expense. The set is closed: anything outside it is
// rejected before the row is written.
type Category string

const (
	CategoryFood          Category = "Food"
	CategoryUtilities     Category = "Utilities"
	CategoryClothing      Category = "Clothing"
	CategoryHome          Category = "Home"
	CategoryTravel        Category = "Travel"
	CategoryEntertainment Category = "Entertainment"
	CategoryHealth        Category = "Health"
	CategoryOther         Category = "Other"
)

var allCategories = map[Category]struct{}{
	CategoryFood:          {},
	CategoryUtilities:     {},
	CategoryClothing:      {},
	CategoryHome:          {},
	CategoryTravel:        {},
	CategoryEntertainment: {},
	CategoryHealth:        {},
	CategoryOther:         {},
}

// ErrInvalidCategory is returned when an expense carries a category outside
// the fixed set.
var ErrInvalidCategory = errors.New("invalid category")

// Valid reports whether c is one of the fixed categories.
func (c Category) Valid() bool {
	_, ok := allCategories[c]
	return ok
}

// Expense represents a dated purchase belonging to a user.
type Expense struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	PurchaseItem string    `gorm:"size:255;not null" json:"purchase_item"`
	Amount       float64   `gorm:"not null" json:"amount"`
	Date         time.Time `gorm:"not null" json:"date"`
	Category     Category  `gorm:"size:32;not null;default:'Other'" json:"category"`
	UserID       uint      `gorm:"index;not null" json:"user_id"`
	User         *User     `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeSave defaults an empty category to Other and rejects anything
// outside the fixed set.
func (e *Expense) BeforeSave(tx *gorm.DB) error {
	if e.Category == "" {
		e.Category = CategoryOther
	}
	if !e.Category.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, e.Category)
	}
	return nil
}
