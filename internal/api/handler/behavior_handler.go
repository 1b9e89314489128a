package handler

import (
	"Pressroom/internal/api/dto"
	"Pressroom/internal/pkg/consts"
	"Pressroom/internal/pkg/response"
	"Pressroom/internal/pkg/util"
	"Pressroom/internal/service"

	"github.com/gin-gonic/gin"
)

type BehaviorHandler struct {
	behaviorSvc service.BehaviorService
}

func NewBehaviorHandler(behaviorSvc service.BehaviorService) *BehaviorHandler {
	return &BehaviorHandler{
		behaviorSvc: behaviorSvc,
	}
}

// TrackAction 上报点赞/分享/评论
func (s *BehaviorHandler) TrackAction(c *gin.Context) {
	userID := c.GetUint64(consts.ContextUserID)

	var req dto.ActionDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	if err := s.behaviorSvc.TrackAction(c.Request.Context(), userID, req.Action, req.ArticleID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
