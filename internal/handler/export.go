package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"gigledger/internal/models"
	"gigledger/internal/period"
	"gigledger/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler streams the caller's full ledger as CSV or XLSX, mostly for
// tax prep. Rows keep stored signs so the file sums to the profit figure.
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

var exportHeaders = []string{
	"Date", "Time", "Type", "App", "Order ID", "Amount", "Miles", "Minutes",
	"Category", "Business Expense", "Note",
}

func exportRow(e *models.Entry) []string {
	local := e.Timestamp.In(period.Reference())
	business := ""
	if e.Type == models.EntryExpense {
		business = strconv.FormatBool(e.IsBusinessExpense)
	}
	return []string{
		local.Format("2006-01-02"),
		local.Format("15:04"),
		string(e.Type),
		string(e.App),
		e.OrderID,
		e.Amount.StringFixed(2),
		strconv.FormatFloat(e.DistanceMiles, 'f', 2, 64),
		strconv.Itoa(e.DurationMinutes),
		string(e.Category),
		business,
		e.Note,
	}
}

func (h *ExportHandler) entriesFor(userID string) ([]models.Entry, error) {
	var entries []models.Entry
	err := h.DB.Where("user_id = ?", userID).
		Order("timestamp DESC, id DESC").
		Find(&entries).Error
	return entries, err
}

// ExportCSV writes the ledger as CSV.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not signed in")
		return
	}

	entries, err := h.entriesFor(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query entries failed")
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"gigledger_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeaders)
	for i := range entries {
		writer.Write(exportRow(&entries[i]))
	}
}

// ExportXLSX writes the ledger as an Excel workbook.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not signed in")
		return
	}

	entries, err := h.entriesFor(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query entries failed")
		return
	}

	f := excelize.NewFile()
	sheetName := "Entries"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "create sheet failed")
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, hd := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, hd)
	}

	for idx := range entries {
		row := idx + 2
		for col, val := range exportRow(&entries[idx]) {
			cell := fmt.Sprintf("%c%d", 'A'+col, row)
			f.SetCellValue(sheetName, cell, val)
		}
	}

	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "C", "D", 14)
	f.SetColWidth(sheetName, "E", "E", 18)
	f.SetColWidth(sheetName, "K", "K", 30)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"gigledger_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "export failed")
	}
}
