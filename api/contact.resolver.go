package api

import (
	"factorlab/internal/db/models/postgres/public/model"
	"factorlab/internal/logger"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type contactRequest struct {
	UserID     *string `json:"userID"`
	ReplyEmail *string `json:"replyEmail" binding:"omitempty,max=320"`
	Content    string  `json:"content" binding:"required,min=5,max=2000"`
}

func (h ApiHandler) contact(c *gin.Context) {
	ctx := c.Request.Context()

	var requestBody contactRequest
	if err := bindJSON(c, &requestBody); err != nil {
		returnErrorJson(err, c)
		return
	}

	in := model.ContactMessage{
		Content:   strings.TrimSpace(requestBody.Content),
		CreatedAt: time.Now().UTC(),
	}
	if requestBody.ReplyEmail != nil && strings.TrimSpace(*requestBody.ReplyEmail) != "" {
		in.ReplyEmail = strPtr(strings.TrimSpace(*requestBody.ReplyEmail))
	}
	if requestBody.UserID != nil {
		if userID, err := uuid.Parse(*requestBody.UserID); err == nil {
			in.UserID = &userID
		}
	}

	var user *model.UserAccount
	if userAccountID, err := requireUserAccountID(c); err == nil {
		in.UserAccountID = &userAccountID
		user, err = h.UserAccountRepository.Get(ctx, h.Db, userAccountID)
		if err != nil {
			logger.FromContext(ctx).Warnf("failed to load user account %s: %v", userAccountID.String(), err)
		}
	}

	saved, err := h.ContactRepository.Add(ctx, h.Db, in)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	if h.EmailService != nil {
		h.EmailService.NotifyContactMessage(ctx, *saved, user)
	}

	c.JSON(200, map[string]string{
		"message": "ok",
	})
}
