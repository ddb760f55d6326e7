package handler

import (
	"net/http"

	"gigledger/internal/models"
	"gigledger/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SettingsHandler struct {
	DB                 *gorm.DB
	CostPerMileDefault decimal.Decimal
}

func NewSettingsHandler(db *gorm.DB, costPerMileDefault decimal.Decimal) *SettingsHandler {
	return &SettingsHandler{DB: db, CostPerMileDefault: costPerMileDefault}
}

// settingsFor loads the user's settings row, creating one with defaults on
// first access.
func (h *SettingsHandler) settingsFor(userID string) (*models.Settings, error) {
	var s models.Settings
	err := h.DB.Where("user_id = ?", userID).First(&s).Error
	if err == gorm.ErrRecordNotFound {
		s = models.Settings{UserID: userID, CostPerMile: h.CostPerMileDefault}
		err = h.DB.Create(&s).Error
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (h *SettingsHandler) GetSettings(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not signed in")
		return
	}

	s, err := h.settingsFor(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "load settings failed")
		return
	}

	util.Success(c, util.Response{"cost_per_mile": s.CostPerMile})
}

type updateSettingsReq struct {
	CostPerMile *decimal.Decimal `json:"cost_per_mile"`
}

func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not signed in")
		return
	}

	var req updateSettingsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}
	if req.CostPerMile == nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "cost_per_mile required")
		return
	}
	if req.CostPerMile.IsNegative() {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "cost_per_mile must be non-negative")
		return
	}

	s, err := h.settingsFor(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "load settings failed")
		return
	}

	s.CostPerMile = req.CostPerMile.Round(2)
	if err := h.DB.Save(s).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "save settings failed")
		return
	}

	util.Success(c, util.Response{"cost_per_mile": s.CostPerMile})
}
