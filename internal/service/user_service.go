package service

import (
	"Zheye/internal/api/dto"
	"Zheye/internal/model"
	"Zheye/internal/pkg/consts"
	"Zheye/internal/pkg/minio"
	"Zheye/internal/pkg/redis"
	"Zheye/internal/pkg/security"
	"Zheye/internal/pkg/util"
	"Zheye/internal/repository"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	log "log/slog"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type UserService interface {
	Register(ctx context.Context, dto *dto.RegisterDTO) (*dto.UserDTO, error)
	Login(ctx context.Context, dto *dto.CredentialDTO) (*dto.TokenDTO, error)
	Logout(ctx context.Context, token string) error
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetEditProfile(ctx context.Context, id uint64) (*dto.EditProfileDTO, error)
	UpdateProfile(ctx context.Context, id uint64, dto *dto.EditProfileDTO) error
	ChangeAvatar(ctx context.Context, id uint64, reader io.Reader) (*dto.AvatarDTO, error)
	GetUserSimpleInfoByIds(ctx context.Context, ids []uint64) ([]*dto.UserDTO, error)
	GetUserSimpleMap(ctx context.Context, ids []uint64) (map[uint64]*dto.UserDTO, error)
}

type UserServiceImpl struct {
	userRepo repository.UserRepo
	storage  minio.ObjectStorage
}

func NewUserService(userRepo repository.UserRepo, storage minio.ObjectStorage) UserService {
	return &UserServiceImpl{
		userRepo: userRepo,
		storage:  storage,
	}
}

func (s *UserServiceImpl) Register(ctx context.Context, regDTO *dto.RegisterDTO) (*dto.UserDTO, error) {
	exist, err := s.userRepo.GetUserByUsername(ctx, regDTO.Username)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrUserUsernameExist
	}
	exist, err = s.userRepo.GetUserByEmail(ctx, regDTO.Email)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrUserEmailExist
	}

	passwordHash, err := security.HashPassword(regDTO.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     regDTO.Username,
		Email:        regDTO.Email,
		PasswordHash: passwordHash,
		Name:         regDTO.Username,
		Sex:          consts.DefaultSex,
	}
	if err = s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return s.toUserDTO(user)
}

func (s *UserServiceImpl) Login(ctx context.Context, credential *dto.CredentialDTO) (*dto.TokenDTO, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, credential.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if err = security.CheckPasswordHash(credential.Password, user.PasswordHash); err != nil {
		return nil, ErrPasswordIncorrect
	}

	token, err := security.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, err
	}
	userDTO, err := s.toUserDTO(user)
	if err != nil {
		return nil, err
	}
	return &dto.TokenDTO{Token: token, User: userDTO}, nil
}

// Logout 将 Token 签名加入黑名单直到其自然过期
func (s *UserServiceImpl) Logout(ctx context.Context, token string) error {
	claims, err := security.ValidateToken(token)
	if err != nil {
		return err
	}
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return err
	}
	return redis.SetWithExpiration(ctx, consts.TokenBlacklistKey+signature, true, security.RemainingTTL(claims))
}

func (s *UserServiceImpl) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserServiceImpl) GetEditProfile(ctx context.Context, id uint64) (*dto.EditProfileDTO, error) {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	profile := &dto.EditProfileDTO{}
	if err = copier.Copy(profile, user); err != nil {
		return nil, err
	}
	if profile.Sex == "" {
		profile.Sex = consts.DefaultSex
	}
	return profile, nil
}

func (s *UserServiceImpl) UpdateProfile(ctx context.Context, id uint64, profile *dto.EditProfileDTO) error {
	sex := profile.Sex
	if sex == "" {
		sex = consts.DefaultSex
	}
	err := s.userRepo.UpdateProfile(ctx, id, map[string]interface{}{
		"name":         profile.Name,
		"location":     profile.Location,
		"sex":          sex,
		"short_intr":   profile.ShortIntr,
		"school":       profile.School,
		"industry":     profile.Industry,
		"discipline":   profile.Discipline,
		"introduction": profile.Introduction,
	})
	if err != nil {
		return err
	}
	s.evictSimpleInfo(ctx, id)
	return nil
}

// ChangeAvatar 裁剪为正方形缩略图后上传，成功后再删除旧头像
func (s *UserServiceImpl) ChangeAvatar(ctx context.Context, id uint64, reader io.Reader) (*dto.AvatarDTO, error) {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	thumb, err := util.SquareThumbnail(io.LimitReader(reader, consts.MaxAvatarFileSize), consts.AvatarSize)
	if err != nil {
		log.WarnContext(ctx, "decode avatar failed", "user_id", id, "err", err)
		return nil, ErrAvatarUpdateFail
	}

	objectName := fmt.Sprintf("avatar/%d/%s.jpg", id, uuid.NewString())
	key, err := s.storage.Upload(ctx, objectName, bytes.NewReader(thumb), int64(len(thumb)), "image/jpeg")
	if err != nil {
		log.ErrorContext(ctx, "upload avatar failed", "user_id", id, "err", err)
		return nil, ErrAvatarUpdateFail
	}

	if err = s.userRepo.UpdateAvatar(ctx, id, key); err != nil {
		log.ErrorContext(ctx, "update avatar failed", "user_id", id, "err", err)
		_ = s.storage.Delete(ctx, key)
		return nil, ErrAvatarUpdateFail
	}

	if user.Avatar != "" {
		if err = s.storage.Delete(ctx, user.Avatar); err != nil {
			log.WarnContext(ctx, "delete old avatar failed", "object", user.Avatar, "err", err)
		}
	}
	s.evictSimpleInfo(ctx, id)

	return &dto.AvatarDTO{AvatarURL: s.storage.PublicURL(key)}, nil
}

// GetUserSimpleInfoByIds 先读缓存，未命中的批量回源并回填，保持入参顺序
func (s *UserServiceImpl) GetUserSimpleInfoByIds(ctx context.Context, ids []uint64) ([]*dto.UserDTO, error) {
	mp, err := s.GetUserSimpleMap(ctx, ids)
	if err != nil {
		return nil, err
	}
	userDTOList := make([]*dto.UserDTO, 0, len(ids))
	for _, id := range ids {
		if mp[id] == nil {
			continue
		}
		userDTOList = append(userDTOList, mp[id])
	}
	return userDTOList, nil
}

func (s *UserServiceImpl) GetUserSimpleMap(ctx context.Context, ids []uint64) (map[uint64]*dto.UserDTO, error) {
	mp := make(map[uint64]*dto.UserDTO, len(ids))
	newIds := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if _, ok := mp[id]; ok {
			continue
		}
		value, err := redis.GetValue(ctx, consts.UserSimpleInfoKey+strconv.FormatUint(id, 10))
		if err != nil {
			return nil, err
		}
		if value == "" {
			newIds = append(newIds, id)
			continue
		}
		var userDTO *dto.UserDTO
		if err = json.Unmarshal([]byte(value), &userDTO); err != nil || userDTO == nil {
			newIds = append(newIds, id)
			continue
		}
		mp[id] = userDTO
	}

	if len(newIds) > 0 {
		users, err := s.userRepo.GetUserByIds(ctx, newIds)
		if err != nil {
			return nil, err
		}
		for _, user := range users {
			userDTO, err := s.toUserDTO(user)
			if err != nil {
				return nil, err
			}
			mp[user.ID] = userDTO
			jsonStr, err := json.Marshal(userDTO)
			if err != nil {
				return nil, err
			}
			err = redis.SetWithExpiration(ctx, consts.UserSimpleInfoKey+strconv.FormatUint(user.ID, 10), string(jsonStr), time.Hour*1)
			if err != nil {
				return nil, err
			}
		}
	}
	return mp, nil
}

func (s *UserServiceImpl) toUserDTO(user *model.User) (*dto.UserDTO, error) {
	userDTO := &dto.UserDTO{}
	if err := copier.Copy(userDTO, user); err != nil {
		return nil, err
	}
	userDTO.AvatarURL = s.storage.PublicURL(user.Avatar)
	return userDTO, nil
}

func (s *UserServiceImpl) evictSimpleInfo(ctx context.Context, id uint64) {
	err := redis.DeleteKey(ctx, consts.UserSimpleInfoKey+strconv.FormatUint(id, 10))
	if err != nil && !errors.Is(err, context.Canceled) {
		log.WarnContext(ctx, "evict user cache failed", "user_id", id, "err", err)
	}
}
