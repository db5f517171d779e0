package service

import (
	"Zheye/internal/api/dto"
	"Zheye/internal/model"
	"Zheye/internal/pkg/consts"
	"Zheye/internal/pkg/minio"
	"Zheye/internal/pkg/util"
	"Zheye/internal/repository"
	"context"

	"github.com/jinzhu/copier"
	"golang.org/x/sync/errgroup"
)

// PeopleService 个人主页相关的页面数据
type PeopleService interface {
	People(ctx context.Context, username string, viewerID uint64) (*dto.PeopleDTO, error)
	Followers(ctx context.Context, username string, viewerID uint64, pager util.Pager) (*dto.FollowPageDTO, error)
	Following(ctx context.Context, username string, viewerID uint64, pager util.Pager) (*dto.FollowPageDTO, error)
	Asks(ctx context.Context, username string, viewerID uint64, pager util.Pager) (*dto.UserContentPageDTO, error)
	Answers(ctx context.Context, username string, viewerID uint64, pager util.Pager) (*dto.UserContentPageDTO, error)
}

type PeopleServiceImpl struct {
	userSvc       UserService
	userFollowSvc UserFollowService
	dynamicSvc    DynamicService
	questionRepo  repository.QuestionRepo
	answerRepo    repository.AnswerRepo
	storage       minio.ObjectStorage
	assembler     *contentAssembler
}

func NewPeopleService(
	userSvc UserService,
	userFollowSvc UserFollowService,
	dynamicSvc DynamicService,
	questionRepo repository.QuestionRepo,
	answerRepo repository.AnswerRepo,
	storage minio.ObjectStorage,
) PeopleService {
	return &PeopleServiceImpl{
		userSvc:       userSvc,
		userFollowSvc: userFollowSvc,
		dynamicSvc:    dynamicSvc,
		questionRepo:  questionRepo,
		answerRepo:    answerRepo,
		storage:       storage,
		assembler:     newContentAssembler(userSvc, questionRepo),
	}
}

func (s *PeopleServiceImpl) People(ctx context.Context, username string, viewerID uint64) (*dto.PeopleDTO, error) {
	user, err := s.userSvc.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	var profile *dto.ProfileDTO
	var dynamics []*dto.DynamicDTO
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profile, err = s.profile(gCtx, user, viewerID)
		return err
	})
	g.Go(func() error {
		var err error
		dynamics, err = s.dynamicSvc.SearchDynamic(gCtx, user.ID)
		return err
	})
	if err = g.Wait(); err != nil {
		return nil, err
	}

	return &dto.PeopleDTO{User: profile, Dynamics: dynamics}, nil
}

func (s *PeopleServiceImpl) Followers(ctx context.Context, username string, viewerID uint64, pager util.Pager) (*dto.FollowPageDTO, error) {
	return s.followPage(ctx, username, viewerID, pager, true)
}

func (s *PeopleServiceImpl) Following(ctx context.Context, username string, viewerID uint64, pager util.Pager) (*dto.FollowPageDTO, error) {
	return s.followPage(ctx, username, viewerID, pager, false)
}

func (s *PeopleServiceImpl) Asks(ctx context.Context, username string, viewerID uint64, pager util.Pager) (*dto.UserContentPageDTO, error) {
	user, err := s.userSvc.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	profile, err := s.profile(ctx, user, viewerID)
	if err != nil {
		return nil, err
	}

	total, err := s.questionRepo.CountByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	questions, err := s.questionRepo.ListByUser(ctx, user.ID, pager.Limit(), pager.Offset())
	if err != nil {
		return nil, err
	}
	items, err := s.assembler.questions(ctx, questions)
	if err != nil {
		return nil, err
	}

	return &dto.UserContentPageDTO{
		User:       profile,
		Pagination: dto.NewPage(pager.Page, pager.PerPage, total, items),
	}, nil
}

func (s *PeopleServiceImpl) Answers(ctx context.Context, username string, viewerID uint64, pager util.Pager) (*dto.UserContentPageDTO, error) {
	user, err := s.userSvc.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	profile, err := s.profile(ctx, user, viewerID)
	if err != nil {
		return nil, err
	}

	total, err := s.answerRepo.CountByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	answers, err := s.answerRepo.ListByUser(ctx, user.ID, pager.Limit(), pager.Offset())
	if err != nil {
		return nil, err
	}
	items, err := s.assembler.answers(ctx, answers, true)
	if err != nil {
		return nil, err
	}

	return &dto.UserContentPageDTO{
		User:       profile,
		Pagination: dto.NewPage(pager.Page, pager.PerPage, total, items),
	}, nil
}

func (s *PeopleServiceImpl) followPage(ctx context.Context, username string, viewerID uint64, pager util.Pager, isFollower bool) (*dto.FollowPageDTO, error) {
	user, err := s.userSvc.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	profile, err := s.profile(ctx, user, viewerID)
	if err != nil {
		return nil, err
	}

	var follows []*model.UserFollow
	var total int64
	if isFollower {
		total = profile.FollowerCount
		follows, err = s.userFollowSvc.GetUserFollowers(ctx, user.ID, pager.Limit(), pager.Offset())
	} else {
		total = profile.FollowingCount
		follows, err = s.userFollowSvc.GetUserFollowing(ctx, user.ID, pager.Limit(), pager.Offset())
	}
	if err != nil {
		return nil, err
	}

	ids := make([]uint64, 0, len(follows))
	for _, f := range follows {
		if isFollower {
			ids = append(ids, f.FollowerID)
		} else {
			ids = append(ids, f.FollowingID)
		}
	}
	users, err := s.userSvc.GetUserSimpleInfoByIds(ctx, ids)
	if err != nil {
		return nil, err
	}

	who := consts.WhoOther
	if user.ID == viewerID {
		who = consts.WhoMe
	}
	return &dto.FollowPageDTO{
		User:       profile,
		Who:        who,
		Pagination: dto.NewPage(pager.Page, pager.PerPage, total, users),
	}, nil
}

func (s *PeopleServiceImpl) profile(ctx context.Context, user *model.User, viewerID uint64) (*dto.ProfileDTO, error) {
	profile := &dto.ProfileDTO{}
	if err := copier.Copy(profile, user); err != nil {
		return nil, err
	}
	profile.AvatarURL = s.storage.PublicURL(user.Avatar)
	if profile.Sex == "" {
		profile.Sex = consts.DefaultSex
	}
	profile.IsMe = viewerID != 0 && viewerID == user.ID

	var err error
	if profile.FollowerCount, err = s.userFollowSvc.GetUserFollowerCount(ctx, user.ID); err != nil {
		return nil, err
	}
	if profile.FollowingCount, err = s.userFollowSvc.GetUserFollowingCount(ctx, user.ID); err != nil {
		return nil, err
	}
	if viewerID != 0 && !profile.IsMe {
		if profile.IsFollowing, err = s.userFollowSvc.GetSomeoneIsFollowing(ctx, viewerID, user.ID); err != nil {
			return nil, err
		}
	}
	return profile, nil
}
