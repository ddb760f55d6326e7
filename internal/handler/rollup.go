package handler

import (
	"net/http"
	"time"

	"gigledger/internal/rollup"
	"gigledger/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RollupHandler serves the aggregated window summary.
type RollupHandler struct {
	DB *gorm.DB
}

func NewRollupHandler(db *gorm.DB) *RollupHandler {
	return &RollupHandler{DB: db}
}

func (h *RollupHandler) GetRollup(c *gin.Context) {
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

	res, err := rollup.Aggregate(h.DB, user.ID, w.start, w.end, w.timeframe)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "compute rollup failed")
		return
	}

	util.Success(c, util.Response{"rollup": res})
}
