package handler

import (
	"Zheye/internal/api/dto"
	"Zheye/internal/pkg/consts"
	"Zheye/internal/pkg/response"
	"Zheye/internal/pkg/util"
	"Zheye/internal/service"
	"strings"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userSvc service.UserService
}

func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

func (s *UserHandler) Register(c *gin.Context) {
	var registerDTO dto.RegisterDTO
	err := c.ShouldBind(&registerDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&registerDTO); err != nil {
		response.Error(c, err)
		return
	}
	user, err := s.userSvc.Register(c.Request.Context(), &registerDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}

func (s *UserHandler) Login(c *gin.Context) {
	var loginDTO dto.CredentialDTO
	err := c.ShouldBind(&loginDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	token, err := s.userSvc.Login(c.Request.Context(), &loginDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, token)
}

func (s *UserHandler) Logout(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	err := s.userSvc.Logout(c.Request.Context(), token)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// GetEditProfile 编辑资料页的当前值
func (s *UserHandler) GetEditProfile(c *gin.Context) {
	profile, err := s.userSvc.GetEditProfile(c.Request.Context(), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, profile)
}

func (s *UserHandler) EditProfile(c *gin.Context) {
	var profile dto.EditProfileDTO
	err := c.ShouldBind(&profile)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&profile); err != nil {
		response.Error(c, err)
		return
	}
	if err = s.userSvc.UpdateProfile(c.Request.Context(), currentUserID(c), &profile); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, service.MsgProfileUpdate, nil)
}

// ChangeAvatar 上传头像，任何失败都返回 AVATAR_MODI_FAIL
func (s *UserHandler) ChangeAvatar(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil || file == nil {
		response.Error(c, service.ErrAvatarUpdateFail)
		return
	}
	if file.Size > consts.MaxAvatarFileSize {
		response.Error(c, service.ErrAvatarUpdateFail)
		return
	}

	reader, err := file.Open()
	if err != nil {
		response.Error(c, service.ErrAvatarUpdateFail)
		return
	}
	defer func() {
		_ = reader.Close()
	}()

	avatar, err := s.userSvc.ChangeAvatar(c.Request.Context(), currentUserID(c), reader)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, avatar)
}
