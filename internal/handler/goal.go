package handler

import (
	"errors"
	"net/http"
	"time"

	"gigledger/internal/models"
	"gigledger/internal/period"
	"gigledger/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const defaultGoalName = "Savings Goal"

// GoalHandler serves savings goal CRUD. Setting a monthly goal keeps the
// daily goal derived from it in sync.
type GoalHandler struct {
	DB *gorm.DB
}

func NewGoalHandler(db *gorm.DB) *GoalHandler {
	return &GoalHandler{DB: db}
}

type goalReq struct {
	Timeframe    models.Timeframe `json:"timeframe"`
	TargetProfit decimal.Decimal  `json:"target_profit"`
	Name         string           `json:"name" binding:"max=128"`
}

type goalResp struct {
	ID           uint             `json:"id"`
	Timeframe    models.Timeframe `json:"timeframe"`
	TargetProfit decimal.Decimal  `json:"target_profit"`
	Name         string           `json:"name"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

func toGoalResp(g *models.Goal) goalResp {
	return goalResp{
		ID:           g.ID,
		Timeframe:    g.Timeframe,
		TargetProfit: g.TargetProfit,
		Name:         g.Name,
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}
}

// upsertGoal writes the (user, timeframe) goal inside tx.
func upsertGoal(tx *gorm.DB, userID string, tf models.Timeframe, target decimal.Decimal, name string) (models.Goal, error) {
	var goal models.Goal
	err := tx.Where("user_id = ? AND timeframe = ?", userID, tf).First(&goal).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		goal = models.Goal{
			UserID:       userID,
			Timeframe:    tf,
			TargetProfit: target,
			Name:         name,
		}
		if goal.Name == "" {
			goal.Name = defaultGoalName
		}
		return goal, tx.Create(&goal).Error
	case err != nil:
		return models.Goal{}, err
	}

	goal.TargetProfit = target
	if name != "" {
		goal.Name = name
	}
	return goal, tx.Save(&goal).Error
}

// SetGoal upserts a goal. A THIS_MONTH goal also (re)derives the TODAY goal
// as monthly target / days in the current reference-timezone month, rounded
// half-up to cents — both writes in one transaction so a failure leaves
// neither behind.
func (h *GoalHandler) SetGoal(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not signed in")
		return
	}

	var req goalReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}
	h.setGoal(c, user.ID, req)
}

// UpdateGoal is SetGoal addressed by path timeframe; it also creates the
// goal when absent.
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not signed in")
		return
	}

	var req goalReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}
	req.Timeframe = models.Timeframe(c.Param("timeframe"))
	h.setGoal(c, user.ID, req)
}

func (h *GoalHandler) setGoal(c *gin.Context, userID string, req goalReq) {
	if !req.Timeframe.Valid() {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid timeframe")
		return
	}
	if req.TargetProfit.IsNegative() {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "target must be non-negative")
		return
	}

	var goal models.Goal
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		goal, err = upsertGoal(tx, userID, req.Timeframe, req.TargetProfit, req.Name)
		if err != nil {
			return err
		}

		if req.Timeframe == models.TimeframeThisMonth {
			days := period.DaysInMonth(time.Now())
			daily := req.TargetProfit.Div(decimal.NewFromInt(int64(days))).Round(2)
			_, err = upsertGoal(tx, userID, models.TimeframeToday, daily, "")
		}
		return err
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "save goal failed")
		return
	}

	util.Success(c, util.Response{"goal": toGoalResp(&goal)})
}

// GetGoal returns the goal for a timeframe, or null when none is set —
// an unset goal is a normal state, not a 404.
func (h *GoalHandler) GetGoal(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not signed in")
		return
	}

	tf := models.Timeframe(c.Param("timeframe"))
	if !tf.Valid() {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid timeframe")
		return
	}

	var goal models.Goal
	err := h.DB.Where("user_id = ? AND timeframe = ?", user.ID, tf).First(&goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		util.Success(c, util.Response{"goal": nil})
		return
	}
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query goal failed")
		return
	}

	util.Success(c, util.Response{"goal": toGoalResp(&goal)})
}

// DeleteGoal removes the goal for a timeframe; deleting an absent goal is
// a no-op success.
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not signed in")
		return
	}

	tf := models.Timeframe(c.Param("timeframe"))
	if !tf.Valid() {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid timeframe")
		return
	}

	if err := h.DB.Where("user_id = ? AND timeframe = ?", user.ID, tf).
		Delete(&models.Goal{}).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "delete goal failed")
		return
	}

	util.Success(c, util.Response{"message": "goal deleted"})
}
