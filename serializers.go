package main

import (
	"time"

	"github.com/luciayin9944/Expense-Tracker-APP/models"
)

const dateLayout = "2006-01-02"

// The user<->expense relationship is cyclic, so each direction gets its own
// output shape: a serialized user carries expenses without their owner, and
// a serialized expense carries its owner without the owner's expenses.

type expenseJSON struct {
	ID           uint            `json:"id"`
	PurchaseItem string          `json:"purchase_item"`
	Category     models.Category `json:"category"`
	Amount       float64         `json:"amount"`
	Date         string          `json:"date"`
	User         *ownerJSON      `json:"user,omitempty"`
}

type ownerJSON struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

type userJSON struct {
	ID       uint          `json:"id"`
	Username string        `json:"username"`
	Expenses []expenseJSON `json:"expenses"`
}

func serializeExpense(e models.Expense, owner *models.User) expenseJSON {
	out := expenseJSON{
		ID:           e.ID,
		PurchaseItem: e.PurchaseItem,
		Category:     e.Category,
		Amount:       e.Amount,
		Date:         e.Date.Format(dateLayout),
	}
	if owner != nil {
		out.User = &ownerJSON{ID: owner.ID, Username: owner.Username}
	}
	return out
}

func serializeExpenses(expenses []models.Expense) []expenseJSON {
	out := make([]expenseJSON, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, serializeExpense(e, nil))
	}
	return out
}

func serializeUser(u models.User) userJSON {
	return userJSON{
		ID:       u.ID,
		Username: u.Username,
		Expenses: serializeExpenses(u.Expenses),
	}
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}
