package handler

import (
	"net/http"
	"strings"
	"time"

	"gigledger/internal/models"
	"gigledger/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CredentialHandler manages stored platform API tokens. Tokens are encrypted
// with the configured key before they touch the database and are only ever
// returned masked.
type CredentialHandler struct {
	DB     *gorm.DB
	AESKey string
}

func NewCredentialHandler(db *gorm.DB, aesKey string) *CredentialHandler {
	return &CredentialHandler{DB: db, AESKey: aesKey}
}

type saveCredentialReq struct {
	Platform     string `json:"platform" binding:"required"`
	AccessToken  string `json:"access_token" binding:"required"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// maskToken keeps the last four characters for recognisability.
func maskToken(plain string) string {
	if len(plain) <= 4 {
		return strings.Repeat("*", len(plain))
	}
	return strings.Repeat("*", 8) + plain[len(plain)-4:]
}

func (h *CredentialHandler) SaveCredential(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not signed in")
		return
	}

	var req saveCredentialReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	platform := models.Platform(strings.ToUpper(req.Platform))
	if !platform.Valid() {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "unsupported platform")
		return
	}

	accessEnc, err := util.EncryptToken(h.AESKey, req.AccessToken)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "encrypt token failed")
		return
	}
	refreshEnc, err := util.EncryptToken(h.AESKey, req.RefreshToken)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "encrypt token failed")
		return
	}

	var expiresAt *time.Time
	if req.ExpiresIn > 0 {
		t := time.Now().Add(time.Duration(req.ExpiresIn) * time.Second)
		expiresAt = &t
	}

	var cred models.PlatformCredential
	err = h.DB.Where("user_id = ? AND platform = ?", user.ID, platform).First(&cred).Error
	switch err {
	case nil:
		cred.AccessTokenEnc = accessEnc
		cred.RefreshTokenEnc = refreshEnc
		cred.TokenExpiresAt = expiresAt
		cred.IsActive = true
		err = h.DB.Save(&cred).Error
	case gorm.ErrRecordNotFound:
		cred = models.PlatformCredential{
			UserID:          user.ID,
			Platform:        platform,
			AccessTokenEnc:  accessEnc,
			RefreshTokenEnc: refreshEnc,
			TokenExpiresAt:  expiresAt,
			IsActive:        true,
		}
		err = h.DB.Create(&cred).Error
	}
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "save credential failed")
		return
	}

	util.Success(c, util.Response{"platform": platform, "message": "credential saved"})
}

func (h *CredentialHandler) ListCredentials(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not signed in")
		return
	}

	var creds []models.PlatformCredential
	if err := h.DB.Where("user_id = ?", user.ID).Order("platform").Find(&creds).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query credentials failed")
		return
	}

	items := make([]util.Response, 0, len(creds))
	for i := range creds {
		plain, err := util.DecryptToken(h.AESKey, creds[i].AccessTokenEnc)
		if err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "decrypt token failed")
			return
		}
		items = append(items, util.Response{
			"platform":     creds[i].Platform,
			"access_token": maskToken(plain),
			"is_active":    creds[i].IsActive,
			"expires_at":   creds[i].TokenExpiresAt,
			"updated_at":   creds[i].UpdatedAt,
		})
	}

	util.Success(c, util.Response{"credentials": items})
}

func (h *CredentialHandler) DeleteCredential(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not signed in")
		return
	}

	platform := models.Platform(strings.ToUpper(c.Param("platform")))
	if !platform.Valid() {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "unsupported platform")
		return
	}

	res := h.DB.Where("user_id = ? AND platform = ?", user.ID, platform).
		Delete(&models.PlatformCredential{})
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "delete credential failed")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "credential not found")
		return
	}

	util.Success(c, util.Response{"message": "credential removed"})
}
