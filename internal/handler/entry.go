package handler

import (
	"net/http"
	"strconv"
	"time"

	"gigledger/internal/ingest"
	"gigledger/internal/models"
	"gigledger/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// EntryHandler serves the ledger entry CRUD surface.
type EntryHandler struct {
	DB       *gorm.DB
	PageSize int
}

func NewEntryHandler(db *gorm.DB, pageSize int) *EntryHandler {
	if pageSize <= 0 {
		pageSize = 100
	}
	return &EntryHandler{DB: db, PageSize: pageSize}
}

type createEntryReq struct {
	Type            models.EntryType       `json:"type" binding:"required"`
	App             models.AppType         `json:"app" binding:"required"`
	OrderID         string                 `json:"order_id"`
	Amount          decimal.Decimal        `json:"amount"`
	DistanceMiles   float64                `json:"distance_miles"`
	DurationMinutes int                    `json:"duration_minutes"`
	Category        models.ExpenseCategory `json:"category"`
	Note            string                 `json:"note" binding:"max=1024"`
	ReceiptURL      string                 `json:"receipt_url" binding:"max=512"`
	Timestamp       *time.Time             `json:"timestamp"`
	Date            string                 `json:"date"`
	Time            string                 `json:"time"`
}

type updateEntryReq struct {
	Type            *models.EntryType       `json:"type"`
	App             *models.AppType         `json:"app"`
	OrderID         *string                 `json:"order_id"`
	Amount          *decimal.Decimal        `json:"amount"`
	DistanceMiles   *float64                `json:"distance_miles"`
	DurationMinutes *int                    `json:"duration_minutes"`
	Category        *models.ExpenseCategory `json:"category"`
	Note            *string                 `json:"note"`
	ReceiptURL      *string                 `json:"receipt_url"`
	Timestamp       *time.Time              `json:"timestamp"`
	Date            string                  `json:"date"`
	Time            string                  `json:"time"`
}

type entryResp struct {
	ID              uint                   `json:"id"`
	Timestamp       time.Time              `json:"timestamp"`
	Type            models.EntryType       `json:"type"`
	App             models.AppType         `json:"app"`
	OrderID         string                 `json:"order_id,omitempty"`
	Amount          decimal.Decimal        `json:"amount"`
	DistanceMiles   float64                `json:"distance_miles"`
	DurationMinutes int                    `json:"duration_minutes"`
	Category        models.ExpenseCategory `json:"category,omitempty"`
	Note            string                 `json:"note,omitempty"`
	ReceiptURL      string                 `json:"receipt_url,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

func toEntryResp(e *models.Entry) entryResp {
	return entryResp{
		ID:              e.ID,
		Timestamp:       e.Timestamp,
		Type:            e.Type,
		App:             e.App,
		OrderID:         e.OrderID,
		Amount:          e.Amount,
		DistanceMiles:   e.DistanceMiles,
		DurationMinutes: e.DurationMinutes,
		Category:        e.Category,
		Note:            e.Note,
		ReceiptURL:      e.ReceiptURL,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func (h *EntryHandler) CreateEntry(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not signed in")
		return
	}

	var req createEntryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}
	if err := util.ValidateAmount(req.Amount); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid amount")
		return
	}

	entry, err := ingest.Normalize(user.ID, ingest.Submission{
		Type:            req.Type,
		App:             req.App,
		OrderID:         req.OrderID,
		Amount:          req.Amount,
		DistanceMiles:   req.DistanceMiles,
		DurationMinutes: req.DurationMinutes,
		Category:        req.Category,
		Note:            req.Note,
		ReceiptURL:      req.ReceiptURL,
		Timestamp:       req.Timestamp,
		Date:            req.Date,
		Time:            req.Time,
	}, time.Now())
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	if err := h.DB.Create(&entry).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "save entry failed")
		return
	}

	util.Success(c, util.Response{"entry": toEntryResp(&entry)})
}

// ListEntries returns the newest entries in a window, scoped to the owner.
// The window comes from timeframe/day_offset, or an explicit from/to pair.
// Pagination is cursor-based: pass the smallest id of the previous page.
func (h *EntryHandler) ListEntries(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not signed in")
		return
	}

	w, err := resolveWindow(c, time.Now())
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid timeframe or range")
		return
	}

	limit := h.PageSize
	if limitStr := c.Query("limit"); limitStr != "" {
		if v, err := strconv.Atoi(limitStr); err == nil && v > 0 && v <= 500 {
			limit = v
		}
	}

	query := h.DB.
		Where("user_id = ? AND timestamp >= ? AND timestamp <= ?", user.ID, w.start, w.end)
	if cursorStr := c.Query("cursor"); cursorStr != "" {
		cursor, err := strconv.Atoi(cursorStr)
		if err != nil || cursor <= 0 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid cursor")
			return
		}
		query = query.Where("id < ?", cursor)
	}

	var entries []models.Entry
	if err := query.
		Order("timestamp DESC, id DESC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query entries failed")
		return
	}

	items := make([]entryResp, 0, len(entries))
	for i := range entries {
		items = append(items, toEntryResp(&entries[i]))
	}

	util.Success(c, util.Response{"entries": items})
}

func (h *EntryHandler) UpdateEntry(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not signed in")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	var req updateEntryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}
	if req.Amount != nil {
		if err := util.ValidateAmount(*req.Amount); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid amount")
			return
		}
	}

	var entry models.Entry
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&entry).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "entry not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query entry failed")
		}
		return
	}

	updated, err := ingest.ApplyPatch(entry, ingest.Patch{
		Type:            req.Type,
		App:             req.App,
		OrderID:         req.OrderID,
		Amount:          req.Amount,
		DistanceMiles:   req.DistanceMiles,
		DurationMinutes: req.DurationMinutes,
		Category:        req.Category,
		Note:            req.Note,
		ReceiptURL:      req.ReceiptURL,
		Timestamp:       req.Timestamp,
		Date:            req.Date,
		Time:            req.Time,
	}, time.Now())
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	// replace the row with the new validated value; last writer wins on
	// concurrent edits of the same entry
	if err := h.DB.Save(&updated).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "save entry failed")
		return
	}

	util.Success(c, util.Response{"entry": toEntryResp(&updated)})
}

func (h *EntryHandler) DeleteEntry(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not signed in")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	res := h.DB.Where("id = ? AND user_id = ?", id, user.ID).Delete(&models.Entry{})
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "delete entry failed")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "entry not found")
		return
	}

	util.Success(c, util.Response{"message": "entry deleted"})
}

// DeleteAllEntries wipes the owner's ledger. Goals go with it: a goal
// against a deleted ledger is meaningless, and leaving either half behind
// is worse than deleting both, so both deletes run in one transaction.
func (h *EntryHandler) DeleteAllEntries(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not signed in")
		return
	}

	var entryCount, goalCount int64
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ?", user.ID).Delete(&models.Entry{})
		if res.Error != nil {
			return res.Error
		}
		entryCount = res.RowsAffected

		res = tx.Where("user_id = ?", user.ID).Delete(&models.Goal{})
		if res.Error != nil {
			return res.Error
		}
		goalCount = res.RowsAffected
		return nil
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "delete data failed")
		return
	}

	util.Success(c, util.Response{
		"deleted_entries": entryCount,
		"deleted_goals":   goalCount,
	})
}
