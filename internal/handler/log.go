package handler

import (
	"net/http"
	"strconv"

	"gigledger/internal/models"
	"gigledger/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// LogHandler exposes the caller's own audit trail.
type LogHandler struct {
	DB       *gorm.DB
	PageSize int
}

func NewLogHandler(db *gorm.DB, pageSize int) *LogHandler {
	return &LogHandler{DB: db, PageSize: pageSize}
}

func (h *LogHandler) ListLogs(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not signed in")
		return
	}

	limit := h.PageSize
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid limit")
			return
		}
		if n > 500 {
			n = 500
		}
		limit = n
	}

	q := h.DB.Where("user_id = ?", user.ID).Order("id DESC").Limit(limit)
	if s := c.Query("cursor"); s != "" {
		cursor, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid cursor")
			return
		}
		q = q.Where("id < ?", cursor)
	}

	var logs []models.AuditLog
	if err := q.Find(&logs).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query logs failed")
		return
	}

	var nextCursor *uint
	if len(logs) == limit && limit > 0 {
		id := logs[len(logs)-1].ID
		nextCursor = &id
	}

	util.Success(c, util.Response{"logs": logs, "next_cursor": nextCursor})
}
