package service

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"gomart-social/apps/relationship-service/model"
	"gomart-social/pkg/logger"
)

// 推荐是固定优先级的三段流水线：共同好友、共同兴趣、共同活动。
// 三段共用一个显式排除集并按序更新，保证整个结果内候选人唯一，
// 不依赖事后去重。单个信号源不可用时只丢弃该段，不影响其余结果。

const suggestionFanout = 8 // 候选子查询并发度上限

// GetFriendSuggestions 计算个性化好友推荐
func (s *Service) GetFriendSuggestions(ctx context.Context, seedID int64, limit int) ([]*model.Suggestion, error) {
	if seedID <= 0 {
		return nil, model.NewValidationError("invalid user id")
	}
	if limit <= 0 {
		limit = s.suggestionLimit
	}

	// 基础读取相互独立，并发执行；排除集读取失败是致命的，
	// 信号源读取失败则降级为空信号
	var (
		friendIDs   []int64
		relatedIDs  []int64
		categoryIDs []int64
		seedTags    []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		relatedIDs, err = s.relationDAO.GetRelatedUserIDs(gctx, seedID)
		return err
	})
	g.Go(func() error {
		var err error
		if friendIDs, err = s.relationDAO.GetFriendIDs(gctx, seedID); err != nil {
			s.logger.Warn(gctx, "Friend set unavailable, skipping mutual friend pass",
				logger.F("error", err.Error()))
			friendIDs = nil
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if categoryIDs, err = s.interestDAO.GetUserCategoryIDs(gctx, seedID); err != nil {
			s.logger.Warn(gctx, "Interests unavailable, skipping interest pass",
				logger.F("error", err.Error()))
			categoryIDs = nil
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if seedTags, err = s.profileDAO.GetActivities(gctx, seedID); err != nil {
			s.logger.Warn(gctx, "Activities unavailable, skipping activity pass",
				logger.F("error", err.Error()))
			seedTags = nil
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	excluded := make(map[int64]struct{}, len(relatedIDs)+1)
	excluded[seedID] = struct{}{}
	for _, id := range relatedIDs {
		excluded[id] = struct{}{}
	}

	suggestions := s.mutualFriendPass(ctx, seedID, friendIDs, excluded)
	suggestions = append(suggestions, s.interestPass(ctx, categoryIDs, seedTags, excluded)...)
	suggestions = append(suggestions, s.activityPass(ctx, seedTags, excluded)...)

	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions, nil
}

// mutualFriendPass 好友的好友，按共同好友数排序
func (s *Service) mutualFriendPass(ctx context.Context, seedID int64, friendIDs []int64, excluded map[int64]struct{}) []*model.Suggestion {
	if len(friendIDs) == 0 {
		return nil
	}

	// 并发拉取每个好友的好友集，单个失败只丢失该好友贡献的候选
	friendSets := make([][]int64, len(friendIDs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(suggestionFanout)
	for i, friendID := range friendIDs {
		i, friendID := i, friendID
		g.Go(func() error {
			set, err := s.relationDAO.GetFriendIDs(gctx, friendID)
			if err != nil {
				s.logger.Warn(gctx, "Failed to load friend set, dropping contribution",
					logger.F("friendID", friendID),
					logger.F("error", err.Error()))
				return nil
			}
			friendSets[i] = set
			return nil
		})
	}
	g.Wait()

	// 候选人在多少个好友集中出现，就有多少个共同好友
	mutualsByCandidate := make(map[int64][]int64)
	order := make([]int64, 0)
	for i, friendID := range friendIDs {
		for _, candidateID := range friendSets[i] {
			if _, skip := excluded[candidateID]; skip {
				continue
			}
			if _, seen := mutualsByCandidate[candidateID]; !seen {
				order = append(order, candidateID)
			}
			mutualsByCandidate[candidateID] = append(mutualsByCandidate[candidateID], friendID)
		}
	}
	if len(order) == 0 {
		return nil
	}

	sort.SliceStable(order, func(i, j int) bool {
		ci, cj := len(mutualsByCandidate[order[i]]), len(mutualsByCandidate[order[j]])
		if ci != cj {
			return ci > cj
		}
		return order[i] < order[j]
	})

	// 一次性批量解析全部共同好友的显示名，失败时省略姓名
	nameByID := s.resolveDisplayNames(ctx, mutualsByCandidate)

	suggestions := make([]*model.Suggestion, 0, len(order))
	for _, candidateID := range order {
		mutuals := mutualsByCandidate[candidateID]
		names := make([]string, 0, len(mutuals))
		for _, id := range mutuals {
			if name, ok := nameByID[id]; ok && name != "" {
				names = append(names, name)
			}
		}
		suggestions = append(suggestions, &model.Suggestion{
			CandidateUserID:    candidateID,
			Reason:             model.SuggestionReasonMutualFriends,
			MutualFriendsCount: len(mutuals),
			MutualFriendNames:  names,
		})
		excluded[candidateID] = struct{}{}
	}
	return suggestions
}

// interestPass 共同品类兴趣，按用户聚合品类名；候选同时有活动重叠时一并带出
func (s *Service) interestPass(ctx context.Context, categoryIDs []int64, seedTags []string, excluded map[int64]struct{}) []*model.Suggestion {
	if len(categoryIDs) == 0 {
		return nil
	}

	rows, err := s.interestDAO.ListByCategoryIDs(ctx, categoryIDs, setToSlice(excluded))
	if err != nil {
		s.logger.Warn(ctx, "Interest rows unavailable, skipping interest pass",
			logger.F("error", err.Error()))
		return nil
	}

	// 按候选人聚合品类名
	categoriesByCandidate := make(map[int64][]string)
	order := make([]int64, 0)
	for _, row := range rows {
		if _, skip := excluded[row.UserID]; skip {
			continue
		}
		if _, seen := categoriesByCandidate[row.UserID]; !seen {
			order = append(order, row.UserID)
		}
		if !containsString(categoriesByCandidate[row.UserID], row.CategoryName) {
			categoriesByCandidate[row.UserID] = append(categoriesByCandidate[row.UserID], row.CategoryName)
		}
	}
	if len(order) == 0 {
		return nil
	}

	sort.SliceStable(order, func(i, j int) bool {
		ci, cj := len(categoriesByCandidate[order[i]]), len(categoriesByCandidate[order[j]])
		if ci != cj {
			return ci > cj
		}
		return order[i] < order[j]
	})

	commonTags := s.commonActivitiesFor(ctx, order, seedTags)

	suggestions := make([]*model.Suggestion, 0, len(order))
	for _, candidateID := range order {
		suggestions = append(suggestions, &model.Suggestion{
			CandidateUserID:  candidateID,
			Reason:           model.SuggestionReasonSimilarInterests,
			CommonCategories: categoriesByCandidate[candidateID],
			CommonActivities: commonTags[candidateID],
		})
		excluded[candidateID] = struct{}{}
	}
	return suggestions
}

// activityPass 共同活动标签，扫描有上限的最近活跃画像
func (s *Service) activityPass(ctx context.Context, seedTags []string, excluded map[int64]struct{}) []*model.Suggestion {
	if len(seedTags) == 0 {
		return nil
	}

	profileIDs, err := s.profileDAO.ListRecentProfileUserIDs(ctx, s.activityScanLimit)
	if err != nil {
		s.logger.Warn(ctx, "Profile scan unavailable, skipping activity pass",
			logger.F("error", err.Error()))
		return nil
	}

	candidates := make([]int64, 0, len(profileIDs))
	for _, id := range profileIDs {
		if _, skip := excluded[id]; !skip {
			candidates = append(candidates, id)
		}
	}

	commonTags := s.commonActivitiesFor(ctx, candidates, seedTags)

	suggestions := make([]*model.Suggestion, 0)
	for _, candidateID := range candidates {
		tags := commonTags[candidateID]
		if len(tags) == 0 {
			continue
		}
		suggestions = append(suggestions, &model.Suggestion{
			CandidateUserID:  candidateID,
			Reason:           model.SuggestionReasonSimilarActivity,
			CommonActivities: tags,
		})
		excluded[candidateID] = struct{}{}
	}
	return suggestions
}

// commonActivitiesFor 并发拉取候选人活动标签并与种子求交集
// 单个候选读取失败只影响该候选，返回map不含无重叠的候选
func (s *Service) commonActivitiesFor(ctx context.Context, candidateIDs []int64, seedTags []string) map[int64][]string {
	result := make(map[int64][]string)
	if len(candidateIDs) == 0 || len(seedTags) == 0 {
		return result
	}

	candidateTags := make([][]string, len(candidateIDs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(suggestionFanout)
	for i, candidateID := range candidateIDs {
		i, candidateID := i, candidateID
		g.Go(func() error {
			tags, err := s.profileDAO.GetActivities(gctx, candidateID)
			if err != nil {
				s.logger.Warn(gctx, "Failed to load candidate activities, dropping candidate",
					logger.F("candidateID", candidateID),
					logger.F("error", err.Error()))
				return nil
			}
			candidateTags[i] = tags
			return nil
		})
	}
	g.Wait()

	for i, candidateID := range candidateIDs {
		if common := intersectTags(seedTags, candidateTags[i]); len(common) > 0 {
			result[candidateID] = common
		}
	}
	return result
}

// resolveDisplayNames 批量解析用户显示名，失败时返回空map
func (s *Service) resolveDisplayNames(ctx context.Context, mutualsByCandidate map[int64][]int64) map[int64]string {
	idSet := make(map[int64]struct{})
	for _, mutuals := range mutualsByCandidate {
		for _, id := range mutuals {
			idSet[id] = struct{}{}
		}
	}

	users, err := s.profileDAO.GetUsersByIDs(ctx, setToSlice(idSet))
	if err != nil {
		s.logger.Warn(ctx, "Failed to resolve display names, omitting them",
			logger.F("error", err.Error()))
		return map[int64]string{}
	}

	nameByID := make(map[int64]string, len(users))
	for _, user := range users {
		nameByID[user.ID] = user.FullName()
	}
	return nameByID
}

// intersectTags 标签交集，保持种子标签顺序
func intersectTags(seedTags, candidateTags []string) []string {
	if len(seedTags) == 0 || len(candidateTags) == 0 {
		return nil
	}

	set := make(map[string]struct{}, len(candidateTags))
	for _, tag := range candidateTags {
		set[tag] = struct{}{}
	}

	common := make([]string, 0)
	seen := make(map[string]struct{})
	for _, tag := range seedTags {
		if _, ok := set[tag]; !ok {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		common = append(common, tag)
	}
	return common
}

// setToSlice 集合转切片
func setToSlice(set map[int64]struct{}) []int64 {
	result := make([]int64, 0, len(set))
	for id := range set {
		result = append(result, id)
	}
	return result
}

// containsString 判断切片是否包含字符串
func containsString(list []string, target string) bool {
	for _, item := range list {
		if item == target {
			return true
		}
	}
	return false
}
