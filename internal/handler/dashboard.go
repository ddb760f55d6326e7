package handler

import (
	"net/http"
	"time"

	"gigledger/internal/models"
	"gigledger/internal/rollup"
	"gigledger/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DashboardHandler serves the combined overview: recent entries plus the
// rollup for the same window in one call.
type DashboardHandler struct {
	DB       *gorm.DB
	PageSize int
}

func NewDashboardHandler(db *gorm.DB, pageSize int) *DashboardHandler {
	if pageSize <= 0 {
		pageSize = 100
	}
	return &DashboardHandler{DB: db, PageSize: pageSize}
}

func (h *DashboardHandler) Overview(c *gin.Context) {
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

	var entries []models.Entry
	if err := h.DB.
		Where("user_id = ? AND timestamp >= ? AND timestamp <= ?", user.ID, w.start, w.end).
		Order("timestamp DESC, id DESC").
		Limit(h.PageSize).
		Find(&entries).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query entries failed")
		return
	}

	res, err := rollup.Aggregate(h.DB, user.ID, w.start, w.end, w.timeframe)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "compute rollup failed")
		return
	}

	items := make([]entryResp, 0, len(entries))
	for i := range entries {
		items = append(items, toEntryResp(&entries[i]))
	}

	util.Success(c, util.Response{
		"entries":   items,
		"rollup":    res,
		"timeframe": w.timeframe,
	})
}
