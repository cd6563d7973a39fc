package service

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"gomart-social/apps/relationship-service/model"
	"gomart-social/pkg/logger"
)

// AreFriends 判断两个用户是否互为好友
func (s *Service) AreFriends(ctx context.Context, userID, otherID int64) (bool, error) {
	if userID <= 0 || otherID <= 0 {
		return false, model.NewValidationError("invalid user id")
	}
	if userID == otherID {
		return false, nil
	}

	edge, err := s.relationDAO.GetEdgeByPair(ctx, userID, otherID)
	if err != nil {
		return false, err
	}
	return edge != nil && edge.Status == model.EdgeStatusAccepted, nil
}

// MutualFriends 计算共同好友集合，结果不含两端用户本身
// 两侧好友集并发拉取后做哈希交集，复杂度与两集合大小之和成正比
func (s *Service) MutualFriends(ctx context.Context, userID, otherID int64) ([]int64, error) {
	if userID <= 0 || otherID <= 0 {
		return nil, model.NewValidationError("invalid user id")
	}

	var userFriends, otherFriends []int64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		userFriends, err = s.relationDAO.GetFriendIDs(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		otherFriends, err = s.relationDAO.GetFriendIDs(gctx, otherID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return intersect(userFriends, otherFriends, userID, otherID), nil
}

// MutualFriendNames 解析共同好友显示名，解析失败降级为空列表
func (s *Service) MutualFriendNames(ctx context.Context, mutualIDs []int64) []string {
	if len(mutualIDs) == 0 {
		return []string{}
	}

	users, err := s.profileDAO.GetUsersByIDs(ctx, mutualIDs)
	if err != nil {
		s.logger.Warn(ctx, "Failed to resolve mutual friend names",
			logger.F("error", err.Error()))
		return []string{}
	}

	names := make([]string, 0, len(users))
	for _, user := range users {
		if name := user.FullName(); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// intersect 哈希交集，排除两端用户，结果升序保证确定性
func intersect(a, b []int64, excludeA, excludeB int64) []int64 {
	set := make(map[int64]struct{}, len(a))
	for _, id := range a {
		set[id] = struct{}{}
	}

	result := make([]int64, 0)
	seen := make(map[int64]struct{})
	for _, id := range b {
		if id == excludeA || id == excludeB {
			continue
		}
		if _, ok := set[id]; !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}

	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}
