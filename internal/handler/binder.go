package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/peg96/FinanceBinder/internal/apperr"
	"github.com/peg96/FinanceBinder/internal/database"
	"github.com/peg96/FinanceBinder/internal/models"
	"github.com/peg96/FinanceBinder/internal/session"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// BinderHandler serves the dashboard and the binder lifecycle.
type BinderHandler struct {
	DB       *gorm.DB
	Sessions *session.Store
}

func NewBinderHandler(db *gorm.DB, store *session.Store) *BinderHandler {
	return &BinderHandler{DB: db, Sessions: store}
}

// Dashboard renders all binders with their categories.
func (h *BinderHandler) Dashboard(c *gin.Context) {
	var binders []models.Binder
	if err := h.DB.Preload("Categories").Order("created_at ASC").Find(&binders).Error; err != nil {
		c.String(http.StatusInternalServerError, "Errore interno del server")
		return
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"title":   "FinanceBinder - Dashboard",
		"binders": binders,
		"flashes": h.Sessions.PopFlashes(session.Current(c)),
	})
}

// Create inserts a new binder from the form field binder_name.
func (h *BinderHandler) Create(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("binder_name"))

	if err := h.createBinder(name); err != nil {
		respondError(c, h.Sessions, err, "/dashboard")
		return
	}
	flashRedirect(c, h.Sessions, "success",
		fmt.Sprintf("Raccoglitore \"%s\" creato con successo", name), "/dashboard")
}

func (h *BinderHandler) createBinder(name string) error {
	if name == "" {
		return apperr.NewValidation("Il nome del raccoglitore è obbligatorio")
	}

	return h.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Binder{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperr.NewConflict("Esiste già un raccoglitore con questo nome")
		}

		if err := tx.Create(&models.Binder{Name: name}).Error; err != nil {
			if database.IsUniqueViolation(err) {
				return apperr.NewConflict("Esiste già un raccoglitore con questo nome")
			}
			return err
		}
		return nil
	})
}

// Delete removes a binder and, with it, every owned category and
// transaction.
func (h *BinderHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		flashRedirect(c, h.Sessions, "danger", "Raccoglitore non trovato", "/dashboard")
		return
	}

	name, err := h.deleteBinder(id)
	if err != nil {
		respondError(c, h.Sessions, err, "/dashboard")
		return
	}
	flashRedirect(c, h.Sessions, "success",
		fmt.Sprintf("Raccoglitore \"%s\" eliminato con successo", name), "/dashboard")
}

func (h *BinderHandler) deleteBinder(id uint) (string, error) {
	var name string
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		var binder models.Binder
		if err := tx.First(&binder, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperr.NewNotFound("Raccoglitore non trovato")
			}
			return err
		}
		name = binder.Name

		if err := tx.Where("binder_id = ?", id).Delete(&models.Transaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("binder_id = ?", id).Delete(&models.Category{}).Error; err != nil {
			return err
		}
		return tx.Delete(&binder).Error
	})
	return name, err
}
