package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/peg96/FinanceBinder/internal/models"
	"github.com/peg96/FinanceBinder/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler streams a binder's transactions as a spreadsheet.
type ExportHandler struct {
	DB       *gorm.DB
	Sessions *session.Store
}

func NewExportHandler(db *gorm.DB, store *session.Store) *ExportHandler {
	return &ExportHandler{DB: db, Sessions: store}
}

// BinderXLSX writes one row per transaction of the binder, ordered by date.
func (h *ExportHandler) BinderXLSX(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Raccoglitore non trovato"})
		return
	}

	var binder models.Binder
	if err := h.DB.First(&binder, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Raccoglitore non trovato"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Errore interno del server"})
		}
		return
	}

	var categories []models.Category
	if err := h.DB.Where("binder_id = ?", id).Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Errore interno del server"})
		return
	}
	names := make(map[uint]string, len(categories))
	for _, cat := range categories {
		names[cat.ID] = cat.Name
	}

	var transactions []models.Transaction
	if err := h.DB.Where("binder_id = ?", id).
		Order("date ASC, id ASC").
		Find(&transactions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Errore interno del server"})
		return
	}

	f := excelize.NewFile()
	sheetName := "Transazioni"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Errore interno del server"})
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Data", "Categoria", "Descrizione", "Importo"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for idx, t := range transactions {
		row := idx + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), t.Date.Format("2006-01-02"))
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), names[t.CategoryID])
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), t.Description)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), t.Amount)
	}

	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "B", 15)
	f.SetColWidth(sheetName, "C", "C", 30)
	f.SetColWidth(sheetName, "D", "D", 12)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s_%s.xlsx\"",
		binder.Name, time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Esportazione fallita"})
	}
}
