package service

import (
	"github.com/sirupsen/logrus"

	"yatube/internal/config"
	"yatube/internal/paginator"
	"yatube/internal/repository"
	"yatube/internal/storage"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Group   GroupService
	Post    PostService
	Comment CommentService
	Follow  FollowService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage, log *logrus.Logger) *Service {
	pages := paginator.New(cfg.PostsPerPage)
	follow := NewFollowService(rep.Follow, rep.User, rep.Post, pages)

	return &Service{
		Auth:    NewAuthService(rep.User, cfg),
		User:    NewUserService(rep.User, rep.Post, rep.Follow, follow, pages),
		Group:   NewGroupService(rep.Group, rep.Post, pages),
		Post:    NewPostService(rep.Post, rep.Group, storage, pages, log),
		Comment: NewCommentService(rep.Comment, rep.Post),
		Follow:  follow,
	}
}
