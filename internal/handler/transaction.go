package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/peg96/FinanceBinder/internal/apperr"
	"github.com/peg96/FinanceBinder/internal/models"
	"github.com/peg96/FinanceBinder/internal/session"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TransactionHandler manages transactions and the binder data endpoint.
type TransactionHandler struct {
	DB       *gorm.DB
	Sessions *session.Store
}

func NewTransactionHandler(db *gorm.DB, store *session.Store) *TransactionHandler {
	return &TransactionHandler{DB: db, Sessions: store}
}

type transactionForm struct {
	CategoryID  uint
	Description string
	Amount      float64
	Date        time.Time
}

// parseTransactionForm validates the shared add/edit form fields:
// category_id, amount and date are required, amount must be decimal, date
// must be YYYY-MM-DD. Description is optional and defaults to empty.
func parseTransactionForm(c *gin.Context) (transactionForm, error) {
	var form transactionForm

	categoryID := c.PostForm("category_id")
	amountStr := c.PostForm("amount")
	dateStr := c.PostForm("date")

	if categoryID == "" || amountStr == "" || dateStr == "" {
		return form, apperr.NewValidation("Categoria, importo e data sono obbligatori")
	}

	catID, err := strconv.Atoi(categoryID)
	if err != nil || catID <= 0 {
		return form, apperr.NewValidation("Dati non validi per la transazione")
	}
	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil {
		return form, apperr.NewValidation("Dati non validi per la transazione")
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return form, apperr.NewValidation("Dati non validi per la transazione")
	}

	form.CategoryID = uint(catID)
	form.Description = c.PostForm("description")
	form.Amount = amount
	form.Date = date
	return form, nil
}

// Add records a transaction against the binder in the path. The category
// must exist, but membership in the same binder is not checked, matching
// the original behavior.
func (h *TransactionHandler) Add(c *gin.Context) {
	binderID, ok := paramID(c)
	if !ok {
		flashRedirect(c, h.Sessions, "danger", "Raccoglitore non trovato", "/dashboard")
		return
	}

	form, err := parseTransactionForm(c)
	if err != nil {
		respondError(c, h.Sessions, err, "/dashboard")
		return
	}

	if err := h.addTransaction(binderID, form); err != nil {
		respondError(c, h.Sessions, err, "/dashboard")
		return
	}
	flashRedirect(c, h.Sessions, "success", "Transazione aggiunta con successo", "/dashboard")
}

func (h *TransactionHandler) addTransaction(binderID uint, form transactionForm) error {
	return h.DB.Transaction(func(tx *gorm.DB) error {
		var binder models.Binder
		if err := tx.First(&binder, binderID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperr.NewNotFound("Raccoglitore non trovato")
			}
			return err
		}

		var category models.Category
		if err := tx.First(&category, form.CategoryID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperr.NewNotFound("Categoria non trovata")
			}
			return err
		}

		return tx.Create(&models.Transaction{
			Date:        form.Date,
			Description: form.Description,
			Amount:      form.Amount,
			BinderID:    binderID,
			CategoryID:  category.ID,
		}).Error
	})
}

// Edit overwrites category, description, amount and date of an existing
// transaction; id, binder_id and created_at are immutable.
func (h *TransactionHandler) Edit(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		flashRedirect(c, h.Sessions, "danger", "Transazione non trovata", "/dashboard")
		return
	}

	form, err := parseTransactionForm(c)
	if err != nil {
		respondError(c, h.Sessions, err, "/dashboard")
		return
	}

	if err := h.editTransaction(id, form); err != nil {
		respondError(c, h.Sessions, err, "/dashboard")
		return
	}
	flashRedirect(c, h.Sessions, "success", "Transazione aggiornata con successo", "/dashboard")
}

func (h *TransactionHandler) editTransaction(id uint, form transactionForm) error {
	return h.DB.Transaction(func(tx *gorm.DB) error {
		var transaction models.Transaction
		if err := tx.First(&transaction, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperr.NewNotFound("Transazione non trovata")
			}
			return err
		}

		var category models.Category
		if err := tx.First(&category, form.CategoryID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperr.NewNotFound("Categoria non trovata")
			}
			return err
		}

		return tx.Model(&transaction).Updates(map[string]interface{}{
			"category_id": category.ID,
			"description": form.Description,
			"amount":      form.Amount,
			"date":        form.Date,
		}).Error
	})
}

// Delete removes a single transaction.
func (h *TransactionHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		flashRedirect(c, h.Sessions, "danger", "Transazione non trovata", "/dashboard")
		return
	}

	if err := h.deleteTransaction(id); err != nil {
		respondError(c, h.Sessions, err, "/dashboard")
		return
	}
	flashRedirect(c, h.Sessions, "success", "Transazione eliminata con successo", "/dashboard")
}

func (h *TransactionHandler) deleteTransaction(id uint) error {
	return h.DB.Transaction(func(tx *gorm.DB) error {
		var transaction models.Transaction
		if err := tx.First(&transaction, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperr.NewNotFound("Transazione non trovata")
			}
			return err
		}
		return tx.Delete(&transaction).Error
	})
}

type binderCategory struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type binderTransaction struct {
	ID           uint    `json:"id"`
	Date         string  `json:"date"`
	CategoryID   uint    `json:"category_id"`
	CategoryName string  `json:"category_name"`
	Description  string  `json:"description"`
	Amount       float64 `json:"amount"`
}

type binderData struct {
	ID           uint                      `json:"id"`
	Name         string                    `json:"name"`
	Categories   map[string]binderCategory `json:"categories"`
	Transactions []binderTransaction       `json:"transactions"`
}

// BinderData returns the binder's categories and transactions as JSON.
// Unlike the form endpoints, a missing binder is a plain 404.
func (h *TransactionHandler) BinderData(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Raccoglitore non trovato"})
		return
	}

	data, err := h.binderData(id)
	if err != nil {
		if apperr.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Errore interno del server"})
		return
	}
	c.JSON(http.StatusOK, data)
}

func (h *TransactionHandler) binderData(id uint) (*binderData, error) {
	var binder models.Binder
	if err := h.DB.First(&binder, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.NewNotFound("Raccoglitore non trovato")
		}
		return nil, err
	}

	var categories []models.Category
	if err := h.DB.Where("binder_id = ?", id).Find(&categories).Error; err != nil {
		return nil, err
	}

	var transactions []models.Transaction
	if err := h.DB.Where("binder_id = ?", id).Order("id ASC").Find(&transactions).Error; err != nil {
		return nil, err
	}

	data := binderData{
		ID:           binder.ID,
		Name:         binder.Name,
		Categories:   make(map[string]binderCategory, len(categories)),
		Transactions: make([]binderTransaction, 0, len(transactions)),
	}

	names := make(map[uint]string, len(categories))
	for _, cat := range categories {
		data.Categories[strconv.FormatUint(uint64(cat.ID), 10)] = binderCategory{
			Name:  cat.Name,
			Color: cat.Color,
		}
		names[cat.ID] = cat.Name
	}

	for _, t := range transactions {
		// cross-binder categories are legal, resolve the name on demand
		name, ok := names[t.CategoryID]
		if !ok {
			var cat models.Category
			if err := h.DB.First(&cat, t.CategoryID).Error; err == nil {
				name = cat.Name
				names[cat.ID] = name
			}
		}
		data.Transactions = append(data.Transactions, binderTransaction{
			ID:           t.ID,
			Date:         t.Date.Format("2006-01-02"),
			CategoryID:   t.CategoryID,
			CategoryName: name,
			Description:  t.Description,
			Amount:       t.Amount,
		})
	}
	return &data, nil
}
