package main

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/luciayin9944/Expense-Tracker-APP/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	defaultPage    = 1
	defaultPerPage = 5
)

func setupRoutes(r *gin.Engine) {
	r.POST("/signup", signupHandler)
	r.POST("/login", loginHandler)
	authGroup := r.Group("")
	authGroup.Use(jwtAuthMiddleware())
	authGroup.DELETE("/logout", logoutHandler)
	authGroup.GET("/me", meHandler)
	authGroup.GET("/expenses", listExpensesHandler)
	authGroup.POST("/expenses", createExpenseHandler)
	authGroup.DELETE("/expenses/:id", deleteExpenseHandler)
	authGroup.PATCH("/expenses/:id", updateExpenseHandler)
	authGroup.GET("/expenses/filter", filterExpensesHandler)
	authGroup.GET("/expenses/summary_by_category", summaryByCategoryHandler)
}

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func signupHandler(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := SignupUser(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrUserExists) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": []string{"422 Unprocessable Entity"}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	token, err := issueToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": serializeUser(user)})
}

func loginHandler(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := AuthenticateUser(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"errors": []string{"401 Unauthorized"}})
		return
	}
	token, err := issueToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": serializeUser(user)})
}

// logoutHandler is a stateless no-op: bearer tokens are not revocable
// server-side, clients discard theirs.
func logoutHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "logout successful"})
}

func meHandler(c *gin.Context) {
	var user models.User
	err := db.Preload("Expenses", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("date DESC")
	}).First(&user, currentUserID(c)).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, serializeUser(user))
}

func listExpensesHandler(c *gin.Context) {
	uid := currentUserID(c)
	page := queryInt(c, "page", defaultPage)
	perPage := queryInt(c, "per_page", defaultPerPage)

	var total int64
	if err := db.Model(&models.Expense{}).Where("user_id = ?", uid).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	var expenses []models.Expense
	err := db.Where("user_id = ?", uid).
		Order("date DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&expenses).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	totalPages := (total + int64(perPage) - 1) / int64(perPage)
	c.JSON(http.StatusOK, gin.H{
		"expenses":    serializeExpenses(expenses),
		"page":        page,
		"per_page":    perPage,
		"total_pages": totalPages,
		"total_items": total,
	})
}

func createExpenseHandler(c *gin.Context) {
	uid := currentUserID(c)
	var req struct {
		PurchaseItem string  `json:"purchase_item" binding:"required"`
		Amount       float64 `json:"amount" binding:"required"`
		Date         string  `json:"date" binding:"required"`
		Category     string  `json:"category"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"Invalid date format. Use YYYY-MM-DD."}})
		return
	}
	// ownership is never client-supplied
	expense := models.Expense{
		PurchaseItem: req.PurchaseItem,
		Amount:       req.Amount,
		Date:         date,
		Category:     models.Category(req.Category),
		UserID:       uid,
	}
	if err := db.Create(&expense).Error; err != nil {
		if errors.Is(err, models.ErrInvalidCategory) || isUniqueConstraintError(err) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": []string{"422 Unprocessable Entity"}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	var owner models.User
	if err := db.First(&owner, uid).Error; err != nil {
		c.JSON(http.StatusCreated, serializeExpense(expense, nil))
		return
	}
	c.JSON(http.StatusCreated, serializeExpense(expense, &owner))
}

// findOwnedExpense looks up an expense and applies the uniform ownership
// policy: 404 when the row does not exist, 403 when it belongs to someone
// else. Used by both DELETE and PATCH.
func findOwnedExpense(c *gin.Context, uid uint) (models.Expense, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		return models.Expense{}, false
	}
	var expense models.Expense
	if err := db.First(&expense, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return models.Expense{}, false
	}
	if expense.UserID != uid {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return models.Expense{}, false
	}
	return expense, true
}

func deleteExpenseHandler(c *gin.Context) {
	expense, ok := findOwnedExpense(c, currentUserID(c))
	if !ok {
		return
	}
	if err := db.Delete(&expense).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully"})
}

func updateExpenseHandler(c *gin.Context) {
	uid := currentUserID(c)
	expense, ok := findOwnedExpense(c, uid)
	if !ok {
		return
	}
	var req struct {
		PurchaseItem *string  `json:"purchase_item"`
		Amount       *float64 `json:"amount"`
		Date         *string  `json:"date"`
		Category     *string  `json:"category"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.PurchaseItem != nil {
		expense.PurchaseItem = *req.PurchaseItem
	}
	if req.Amount != nil {
		expense.Amount = *req.Amount
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"Invalid date format. Use YYYY-MM-DD."}})
			return
		}
		expense.Date = date
	}
	if req.Category != nil {
		expense.Category = models.Category(*req.Category)
	}
	// Save runs in its own transaction; on failure nothing persists and the
	// client always gets an explicit error response.
	if err := db.Save(&expense).Error; err != nil {
		if errors.Is(err, models.ErrInvalidCategory) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": []string{"422 Unprocessable Entity"}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	var owner models.User
	if err := db.First(&owner, uid).Error; err != nil {
		c.JSON(http.StatusOK, serializeExpense(expense, nil))
		return
	}
	c.JSON(http.StatusOK, serializeExpense(expense, &owner))
}

func filterExpensesHandler(c *gin.Context) {
	scope, ok := filteredScope(c)
	if !ok {
		return
	}
	var expenses []models.Expense
	if err := scope.Order("date DESC").Find(&expenses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"expenses": serializeExpenses(expenses)})
}

func summaryByCategoryHandler(c *gin.Context) {
	scope, ok := filteredScope(c)
	if !ok {
		return
	}
	type categoryTotal struct {
		Category models.Category `json:"category"`
		Total    float64         `json:"total"`
	}
	rows, err := scope.
		Select("category, SUM(amount) AS total").
		Group("category").
		Order("category").
		Rows()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	defer rows.Close()
	results := make([]categoryTotal, 0)
	for rows.Next() {
		var r categoryTotal
		if err := rows.Scan(&r.Category, &r.Total); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
			return
		}
		results = append(results, r)
	}
	c.JSON(http.StatusOK, results)
}

// filteredScope builds the caller-scoped, optionally date-windowed query for
// the filter and summary endpoints. With year and month the window is that
// calendar month (December rolls into January of year+1); with year alone it
// is the whole year; with neither there is no date restriction. On a
// malformed year or month it writes a 400 and returns ok=false.
func filteredScope(c *gin.Context) (*gorm.DB, bool) {
	scope := db.Model(&models.Expense{}).Where("user_id = ?", currentUserID(c))

	yearStr := c.Query("year")
	monthStr := c.Query("month")
	year, month := 0, 0
	var err error
	if yearStr != "" {
		if year, err = strconv.Atoi(yearStr); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year or month"})
			return nil, false
		}
	}
	if monthStr != "" {
		if month, err = strconv.Atoi(monthStr); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year or month"})
			return nil, false
		}
	}

	switch {
	case year != 0 && month != 0:
		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		scope = scope.Where("date >= ? AND date < ?", start, start.AddDate(0, 1, 0))
	case year != 0:
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		scope = scope.Where("date >= ? AND date < ?", start, start.AddDate(1, 0, 0))
	}
	return scope, true
}

func queryInt(c *gin.Context, key string, fallback int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil || v < 1 {
		return fallback
	}
	return v
}
