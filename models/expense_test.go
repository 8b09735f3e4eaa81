package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryValid(t *testing.T) {
	for _, c := range []Category{
		CategoryFood, CategoryUtilities, CategoryClothing, CategoryHome,
		CategoryTravel, CategoryEntertainment, CategoryHealth, CategoryOther,
	} {
		assert.True(t, c.Valid(), "%q should be valid", c)
	}
	for _, c := range []Category{"", "food", "Groceries", "FOOD", "Misc"} {
		assert.False(t, c.Valid(), "%q should be invalid", c)
	}
}

func TestBeforeSaveDefaultsCategory(t *testing.T) {
	e := Expense{PurchaseItem: "groceries", Amount: 10}
	require.NoError(t, e.BeforeSave(nil))
	assert.Equal(t, CategoryOther, e.Category)
}

func TestBeforeSaveRejectsUnknownCategory(t *testing.T) {
	e := Expense{PurchaseItem: "groceries", Amount: 10, Category: "Groceries"}
	err := e.BeforeSave(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidCategory))
}
