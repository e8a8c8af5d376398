package services

import (
	"context"

	"stockconsole/internal/models"
	"stockconsole/internal/normalize"
	"stockconsole/internal/upstream"
)

type UserService interface {
	List(ctx context.Context, sess models.Session) ([]models.User, error)
}

type userService struct {
	snapshots SnapshotService
}

func NewUserService(snapshots SnapshotService) UserService {
	return &userService{snapshots: snapshots}
}

func (s *userService) List(ctx context.Context, sess models.Session) ([]models.User, error) {
	return fetchList(ctx, s.snapshots, sess, upstream.Users, normalize.Users)
}
