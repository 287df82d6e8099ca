package handler

import (
	"fmt"
	"strings"

	"github.com/peg96/FinanceBinder/internal/apperr"
	"github.com/peg96/FinanceBinder/internal/database"
	"github.com/peg96/FinanceBinder/internal/models"
	"github.com/peg96/FinanceBinder/internal/session"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CategoryHandler manages categories inside a binder.
type CategoryHandler struct {
	DB       *gorm.DB
	Sessions *session.Store
}

func NewCategoryHandler(db *gorm.DB, store *session.Store) *CategoryHandler {
	return &CategoryHandler{DB: db, Sessions: store}
}

// Create inserts a category under the binder in the path. The color falls
// back to the pastel pink default when the form omits it.
func (h *CategoryHandler) Create(c *gin.Context) {
	binderID, ok := paramID(c)
	if !ok {
		flashRedirect(c, h.Sessions, "danger", "Raccoglitore non trovato", "/dashboard")
		return
	}

	name := strings.TrimSpace(c.PostForm("category_name"))
	color := c.PostForm("category_color")
	if color == "" {
		color = models.DefaultCategoryColor
	}

	if err := h.createCategory(binderID, name, color); err != nil {
		respondError(c, h.Sessions, err, "/dashboard")
		return
	}
	flashRedirect(c, h.Sessions, "success",
		fmt.Sprintf("Categoria \"%s\" creata con successo", name), "/dashboard")
}

func (h *CategoryHandler) createCategory(binderID uint, name, color string) error {
	return h.DB.Transaction(func(tx *gorm.DB) error {
		var binder models.Binder
		if err := tx.First(&binder, binderID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperr.NewNotFound("Raccoglitore non trovato")
			}
			return err
		}

		if name == "" {
			return apperr.NewValidation("Il nome della categoria è obbligatorio")
		}

		var count int64
		if err := tx.Model(&models.Category{}).
			Where("binder_id = ? AND name = ?", binderID, name).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperr.NewConflict("Esiste già una categoria con questo nome in questo raccoglitore")
		}

		category := models.Category{Name: name, Color: color, BinderID: binderID}
		if err := tx.Create(&category).Error; err != nil {
			if database.IsUniqueViolation(err) {
				return apperr.NewConflict("Esiste già una categoria con questo nome in questo raccoglitore")
			}
			return err
		}
		return nil
	})
}

// Delete removes a category together with every transaction filed under it.
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		flashRedirect(c, h.Sessions, "danger", "Categoria non trovata", "/dashboard")
		return
	}

	name, err := h.deleteCategory(id)
	if err != nil {
		respondError(c, h.Sessions, err, "/dashboard")
		return
	}
	flashRedirect(c, h.Sessions, "success",
		fmt.Sprintf("Categoria \"%s\" eliminata con successo", name), "/dashboard")
}

func (h *CategoryHandler) deleteCategory(id uint) (string, error) {
	var name string
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperr.NewNotFound("Categoria non trovata")
			}
			return err
		}
		name = category.Name

		if err := tx.Where("category_id = ?", id).Delete(&models.Transaction{}).Error; err != nil {
			return err
		}
		return tx.Delete(&category).Error
	})
	return name, err
}
