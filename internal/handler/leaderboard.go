package handler

import (
	"net/http"
	"sort"

	"gigledger/internal/models"
	"gigledger/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LeaderboardHandler serves the friends leaderboard. Scores are computed
// from the ledger on the fly: a point per earned dollar plus ten per entry.
type LeaderboardHandler struct {
	DB *gorm.DB
}

func NewLeaderboardHandler(db *gorm.DB) *LeaderboardHandler {
	return &LeaderboardHandler{DB: db}
}

type leaderboardItem struct {
	ID              string `json:"id"`
	Username        string `json:"username"`
	Points          int    `json:"points"`
	TotalEarnings   string `json:"total_earnings"`
	IsFriend        bool   `json:"is_friend"`
	ProfileImageURL string `json:"profile_image_url,omitempty"`
}

// scoreUser computes leaderboard points and ORDER earnings for one user.
func (h *LeaderboardHandler) scoreUser(userID string) (int, decimal.Decimal, error) {
	var entries []models.Entry
	if err := h.DB.Where("user_id = ?", userID).Find(&entries).Error; err != nil {
		return 0, decimal.Zero, err
	}

	positive := decimal.Zero
	earnings := decimal.Zero
	for i := range entries {
		if entries[i].Amount.IsPositive() {
			positive = positive.Add(entries[i].Amount)
		}
		if entries[i].Type == models.EntryOrder {
			earnings = earnings.Add(entries[i].Amount)
		}
	}
	points := int(positive.IntPart()) + len(entries)*10
	return points, earnings, nil
}

func displayName(u *models.User) string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.Email
}

func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not signed in")
		return
	}

	var others []models.User
	if err := h.DB.Where("id <> ?", user.ID).Find(&others).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query users failed")
		return
	}

	var friendRecords []models.Friend
	if err := h.DB.Where("user_id = ? AND status = ?", user.ID, "accepted").
		Find(&friendRecords).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query friends failed")
		return
	}
	friendIDs := make(map[string]bool, len(friendRecords))
	for _, f := range friendRecords {
		friendIDs[f.FriendID] = true
	}

	items := make([]leaderboardItem, 0, len(others))
	for i := range others {
		points, earnings, err := h.scoreUser(others[i].ID)
		if err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "score users failed")
			return
		}
		items = append(items, leaderboardItem{
			ID:              others[i].ID,
			Username:        displayName(&others[i]),
			Points:          points,
			TotalEarnings:   earnings.StringFixed(2),
			IsFriend:        friendIDs[others[i].ID],
			ProfileImageURL: others[i].ProfileImageURL,
		})
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Points > items[j].Points })

	friends := make([]leaderboardItem, 0)
	for _, item := range items {
		if item.IsFriend {
			friends = append(friends, item)
		}
	}

	if len(items) > 50 {
		items = items[:50]
	}

	util.Success(c, util.Response{
		"leaderboard": items,
		"friends":     friends,
	})
}

type addFriendReq struct {
	EmailOrName string `json:"friend_email_or_username" binding:"required"`
}

func (h *LeaderboardHandler) AddFriend(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not signed in")
		return
	}

	var req addFriendReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	var friend models.User
	if err := h.DB.Where("email = ? OR first_name = ?", req.EmailOrName, req.EmailOrName).
		First(&friend).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "user not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query user failed")
		}
		return
	}
	if friend.ID == user.ID {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "cannot add yourself")
		return
	}

	var count int64
	if err := h.DB.Model(&models.Friend{}).
		Where("user_id = ? AND friend_id = ?", user.ID, friend.ID).
		Count(&count).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query friends failed")
		return
	}
	if count > 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "already friends")
		return
	}

	// friendship is symmetric; record both directions as accepted
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.Friend{UserID: user.ID, FriendID: friend.ID, Status: "accepted"}).Error; err != nil {
			return err
		}
		return tx.Create(&models.Friend{UserID: friend.ID, FriendID: user.ID, Status: "accepted"}).Error
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "add friend failed")
		return
	}

	util.Success(c, util.Response{"message": "friend added", "friend_id": friend.ID})
}

func (h *LeaderboardHandler) RemoveFriend(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not signed in")
		return
	}

	friendID := c.Param("id")
	if friendID == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND friend_id = ?", user.ID, friendID).
			Delete(&models.Friend{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ? AND friend_id = ?", friendID, user.ID).
			Delete(&models.Friend{}).Error
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "remove friend failed")
		return
	}

	util.Success(c, util.Response{"message": "friend removed"})
}
