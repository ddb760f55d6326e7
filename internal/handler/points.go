package handler

import (
	"errors"
	"net/http"
	"time"

	"gigledger/internal/models"
	"gigledger/internal/period"
	"gigledger/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	signupPoints = 100
	dailyPoints  = 10
)

// Reward is a milestone in the points catalogue.
type Reward struct {
	Points      int    `json:"points"`
	Name        string `json:"name"`
	Emoji       string `json:"emoji"`
	Description string `json:"description"`
}

var rewards = []Reward{
	{Points: 100, Name: "Bronze Badge", Emoji: "🥉", Description: "100 points milestone"},
	{Points: 250, Name: "Silver Badge", Emoji: "🥈", Description: "250 points milestone"},
	{Points: 500, Name: "Gold Badge", Emoji: "🥇", Description: "500 points milestone"},
	{Points: 1000, Name: "Platinum Badge", Emoji: "💎", Description: "1000 points milestone"},
}

// PointsHandler serves the gamification surface: lifetime points, daily
// streaks and the rewards catalogue.
type PointsHandler struct {
	DB *gorm.DB
}

func NewPointsHandler(db *gorm.DB) *PointsHandler {
	return &PointsHandler{DB: db}
}

// profileFor loads or creates the user's points profile. Registration
// creates one, but accounts predating the points feature may lack it.
func (h *PointsHandler) profileFor(userID string) (models.DriverProfile, error) {
	var profile models.DriverProfile
	err := h.DB.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.DriverProfile{
			UserID:      userID,
			TotalPoints: signupPoints,
			SignupDate:  time.Now().UTC(),
		}
		return profile, h.DB.Create(&profile).Error
	}
	return profile, err
}

func (h *PointsHandler) GetUserPoints(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not signed in")
		return
	}

	profile, err := h.profileFor(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "load points failed")
		return
	}

	unlocked := make([]Reward, 0)
	var nextPoints *int
	for _, r := range rewards {
		if r.Points <= profile.TotalPoints {
			unlocked = append(unlocked, r)
		} else if nextPoints == nil {
			p := r.Points
			nextPoints = &p
		}
	}

	util.Success(c, util.Response{
		"total_points":       profile.TotalPoints,
		"daily_streak":       profile.DailyStreak,
		"signup_date":        profile.SignupDate,
		"unlocked_rewards":   unlocked,
		"all_rewards":        rewards,
		"next_reward_points": nextPoints,
	})
}

// DailyCheckIn awards the daily bonus once per reference-timezone day.
// Consecutive days grow the streak; each streak day adds 10% to the bonus.
func (h *PointsHandler) DailyCheckIn(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not signed in")
		return
	}

	profile, err := h.profileFor(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "load points failed")
		return
	}

	localNow := time.Now().In(period.Reference())
	today := localNow.Format("2006-01-02")
	yesterday := localNow.AddDate(0, 0, -1).Format("2006-01-02")

	var existing models.DailyCheckIn
	err = h.DB.Where("user_id = ? AND usage_date = ?", user.ID, today).First(&existing).Error
	if err == nil {
		util.Success(c, util.Response{
			"message":       "already checked in today",
			"points_earned": 0,
			"total_points":  profile.TotalPoints,
			"daily_streak":  profile.DailyStreak,
		})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "check in failed")
		return
	}

	if profile.LastUsedDate == yesterday {
		profile.DailyStreak++
	} else {
		profile.DailyStreak = 1
	}
	earned := dailyPoints + dailyPoints*(profile.DailyStreak-1)/10
	profile.TotalPoints += earned
	profile.LastUsedDate = today

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&profile).Error; err != nil {
			return err
		}
		return tx.Create(&models.DailyCheckIn{
			UserID:       user.ID,
			UsageDate:    today,
			PointsEarned: earned,
		}).Error
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "check in failed")
		return
	}

	newRewards := make([]Reward, 0)
	for _, r := range rewards {
		if r.Points > profile.TotalPoints-earned && r.Points <= profile.TotalPoints {
			newRewards = append(newRewards, r)
		}
	}

	util.Success(c, util.Response{
		"points_earned": earned,
		"total_points":  profile.TotalPoints,
		"daily_streak":  profile.DailyStreak,
		"new_rewards":   newRewards,
	})
}

func (h *PointsHandler) GetRewards(c *gin.Context) {
	util.Success(c, util.Response{"rewards": rewards})
}
