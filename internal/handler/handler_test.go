package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"gigledger/internal/config"
	"gigledger/internal/database"
	"gigledger/internal/models"
	"gigledger/internal/period"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Init(config.DatabaseConfig{
		Path: filepath.Join(t.TempDir(), "handler_test.db"),
	})
	if err != nil {
		t.Fatalf("init test database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, id string) *models.User {
	t.Helper()
	u := models.User{ID: id, Email: id + "@example.com", PasswordHash: "x"}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return &u
}

// testContext builds a gin context carrying an authenticated user and an
// optional JSON body, the way the middleware chain would hand it over.
func testContext(t *testing.T, user *models.User, method string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, "/", reader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Set("currentUser", user)
	return c, w
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func seedEntry(t *testing.T, db *gorm.DB, userID string, typ models.EntryType, amount string, ts time.Time) {
	t.Helper()
	e := models.Entry{
		UserID:    userID,
		Timestamp: ts,
		Type:      typ,
		App:       models.AppDoorDash,
		Amount:    dec(amount),
	}
	if err := db.Create(&e).Error; err != nil {
		t.Fatalf("seed entry: %v", err)
	}
}

func TestSetGoalThisMonthDerivesDailyGoal(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "u1")
	h := NewGoalHandler(db)

	c, w := testContext(t, user, http.MethodPost, goalReq{
		Timeframe:    models.TimeframeThisMonth,
		TargetProfit: dec("6000"),
	})
	h.SetGoal(c)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	days := period.DaysInMonth(time.Now())
	want := dec("6000").Div(decimal.NewFromInt(int64(days))).Round(2)

	var daily models.Goal
	if err := db.Where("user_id = ? AND timeframe = ?", user.ID, models.TimeframeToday).
		First(&daily).Error; err != nil {
		t.Fatalf("daily goal not created: %v", err)
	}
	if !daily.TargetProfit.Equal(want) {
		t.Errorf("daily target = %s, want %s (%d-day month)", daily.TargetProfit, want, days)
	}
}

func TestSetGoalThisMonthRederivesOnUpdate(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "u1")
	h := NewGoalHandler(db)

	for _, target := range []string{"6000", "3000"} {
		c, w := testContext(t, user, http.MethodPost, goalReq{
			Timeframe:    models.TimeframeThisMonth,
			TargetProfit: dec(target),
		})
		h.SetGoal(c)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}
	}

	days := period.DaysInMonth(time.Now())
	want := dec("3000").Div(decimal.NewFromInt(int64(days))).Round(2)

	var daily models.Goal
	if err := db.Where("user_id = ? AND timeframe = ?", user.ID, models.TimeframeToday).
		First(&daily).Error; err != nil {
		t.Fatalf("daily goal missing: %v", err)
	}
	if !daily.TargetProfit.Equal(want) {
		t.Errorf("daily target = %s, want %s after update", daily.TargetProfit, want)
	}

	// upsert, not insert: still exactly one goal per timeframe
	var count int64
	if err := db.Model(&models.Goal{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
		t.Fatalf("count goals: %v", err)
	}
	if count != 2 {
		t.Errorf("goal rows = %d, want 2 (THIS_MONTH + derived TODAY)", count)
	}
}

func TestSetGoalRejectsNegativeTarget(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "u1")
	h := NewGoalHandler(db)

	c, w := testContext(t, user, http.MethodPost, goalReq{
		Timeframe:    models.TimeframeToday,
		TargetProfit: dec("-5"),
	})
	h.SetGoal(c)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestGetGoalUnsetReturnsNull(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "u1")
	h := NewGoalHandler(db)

	c, w := testContext(t, user, http.MethodGet, nil)
	c.Params = gin.Params{{Key: "timeframe", Value: string(models.TimeframeThisWeek)}}
	h.GetGoal(c)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for unset goal", w.Code)
	}

	var resp struct {
		Data struct {
			Goal *goalResp `json:"goal"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data.Goal != nil {
		t.Errorf("goal = %+v, want null", resp.Data.Goal)
	}
}

func TestDeleteAllEntriesRemovesGoalsToo(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "u1")
	other := createTestUser(t, db, "u2")

	now := time.Now().UTC()
	seedEntry(t, db, user.ID, models.EntryOrder, "12.50", now)
	seedEntry(t, db, user.ID, models.EntryExpense, "-4.00", now)
	seedEntry(t, db, other.ID, models.EntryOrder, "9.00", now)

	gh := NewGoalHandler(db)
	c, w := testContext(t, user, http.MethodPost, goalReq{
		Timeframe:    models.TimeframeThisMonth,
		TargetProfit: dec("6000"),
	})
	gh.SetGoal(c)
	if w.Code != http.StatusOK {
		t.Fatalf("set goal: status = %d", w.Code)
	}

	eh := NewEntryHandler(db, 100)
	c, w = testContext(t, user, http.MethodDelete, nil)
	eh.DeleteAllEntries(c)
	if w.Code != http.StatusOK {
		t.Fatalf("delete all: status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data struct {
			DeletedEntries int64 `json:"deleted_entries"`
			DeletedGoals   int64 `json:"deleted_goals"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data.DeletedEntries != 2 {
		t.Errorf("deleted_entries = %d, want 2", resp.Data.DeletedEntries)
	}
	if resp.Data.DeletedGoals != 2 {
		t.Errorf("deleted_goals = %d, want 2 (THIS_MONTH + derived TODAY)", resp.Data.DeletedGoals)
	}

	var entryCount, goalCount int64
	db.Model(&models.Entry{}).Where("user_id = ?", user.ID).Count(&entryCount)
	db.Model(&models.Goal{}).Where("user_id = ?", user.ID).Count(&goalCount)
	if entryCount != 0 || goalCount != 0 {
		t.Errorf("leftovers: entries = %d, goals = %d", entryCount, goalCount)
	}

	// the other user's ledger is untouched
	var otherCount int64
	db.Model(&models.Entry{}).Where("user_id = ?", other.ID).Count(&otherCount)
	if otherCount != 1 {
		t.Errorf("other user's entries = %d, want 1", otherCount)
	}
}

func TestCreateEntrySignsExpense(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "u1")
	h := NewEntryHandler(db, 100)

	c, w := testContext(t, user, http.MethodPost, createEntryReq{
		Type:     models.EntryExpense,
		App:      models.AppOther,
		Amount:   dec("12.50"),
		Category: models.CategoryGas,
	})
	h.CreateEntry(c)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var e models.Entry
	if err := db.Where("user_id = ?", user.ID).First(&e).Error; err != nil {
		t.Fatalf("entry not stored: %v", err)
	}
	if !e.Amount.Equal(dec("-12.50")) {
		t.Errorf("stored amount = %s, want -12.50", e.Amount)
	}
}

func TestDailyCheckInOncePerDay(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "u1")
	h := NewPointsHandler(db)

	c, w := testContext(t, user, http.MethodPost, nil)
	h.DailyCheckIn(c)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var first struct {
		Data struct {
			PointsEarned int `json:"points_earned"`
			TotalPoints  int `json:"total_points"`
			DailyStreak  int `json:"daily_streak"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &first); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if first.Data.PointsEarned != dailyPoints {
		t.Errorf("first check-in earned = %d, want %d", first.Data.PointsEarned, dailyPoints)
	}
	if first.Data.DailyStreak != 1 {
		t.Errorf("streak = %d, want 1", first.Data.DailyStreak)
	}

	c, w = testContext(t, user, http.MethodPost, nil)
	h.DailyCheckIn(c)
	if w.Code != http.StatusOK {
		t.Fatalf("second check-in status = %d", w.Code)
	}

	var second struct {
		Data struct {
			PointsEarned int `json:"points_earned"`
			TotalPoints  int `json:"total_points"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &second); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if second.Data.PointsEarned != 0 {
		t.Errorf("second check-in earned = %d, want 0", second.Data.PointsEarned)
	}
	if second.Data.TotalPoints != first.Data.TotalPoints {
		t.Errorf("total changed on repeat check-in: %d -> %d",
			first.Data.TotalPoints, second.Data.TotalPoints)
	}
}
