package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"gomart-social/apps/relationship-service/model"
	"gomart-social/pkg/logger"
)

// 进程内Fake实现，行为对齐真实DAO：
// pair_key唯一约束、边方向语义、各列表的过滤条件都与存储层一致。

// fakeRelationshipDAO 内存关系边存储
type fakeRelationshipDAO struct {
	mu     sync.Mutex
	edges  map[int64]*model.RelationshipEdge
	byPair map[string]int64
	nextID int64
	base   time.Time
	seq    int64

	friendIDsErr map[int64]error // 按用户注入GetFriendIDs失败
	relatedErr   error           // 注入GetRelatedUserIDs失败
}

func newFakeRelationshipDAO() *fakeRelationshipDAO {
	return &fakeRelationshipDAO{
		edges:        make(map[int64]*model.RelationshipEdge),
		byPair:       make(map[string]int64),
		nextID:       0,
		base:         time.Now().UTC(),
		friendIDsErr: make(map[int64]error),
	}
}

// now 严格递增的写入时钟，保证排序断言确定性
func (f *fakeRelationshipDAO) now() time.Time {
	f.seq++
	return f.base.Add(time.Duration(f.seq) * time.Millisecond)
}

func (f *fakeRelationshipDAO) CreateEdge(ctx context.Context, edge *model.RelationshipEdge) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !model.ValidateEdgeStatus(edge.Status) {
		return model.NewValidationError("invalid edge status")
	}

	pairKey := model.BuildPairKey(edge.UserID, edge.FriendID)
	if _, exists := f.byPair[pairKey]; exists {
		// 唯一索引冲突的映射行为与真实DAO一致
		return model.NewConflictError("relationship already exists")
	}

	f.nextID++
	edge.ID = f.nextID
	edge.PairKey = pairKey
	now := f.now()
	edge.CreatedAt = now
	edge.UpdatedAt = now

	stored := *edge
	f.edges[edge.ID] = &stored
	f.byPair[pairKey] = edge.ID
	return nil
}

func (f *fakeRelationshipDAO) UpsertBlockEdge(ctx context.Context, blockerID, blockedID int64) (*model.RelationshipEdge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	pairKey := model.BuildPairKey(blockerID, blockedID)
	if id, exists := f.byPair[pairKey]; exists {
		edge := f.edges[id]
		edge.UserID = blockerID
		edge.FriendID = blockedID
		edge.Status = model.EdgeStatusBlocked
		edge.UpdatedAt = f.now()
		copied := *edge
		return &copied, nil
	}

	f.nextID++
	now := f.now()
	edge := &model.RelationshipEdge{
		ID:        f.nextID,
		UserID:    blockerID,
		FriendID:  blockedID,
		PairKey:   pairKey,
		Status:    model.EdgeStatusBlocked,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.edges[edge.ID] = edge
	f.byPair[pairKey] = edge.ID
	copied := *edge
	return &copied, nil
}

func (f *fakeRelationshipDAO) GetEdgeByID(ctx context.Context, id int64) (*model.RelationshipEdge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	edge, ok := f.edges[id]
	if !ok {
		return nil, nil
	}
	copied := *edge
	return &copied, nil
}

func (f *fakeRelationshipDAO) GetEdgeByPair(ctx context.Context, userID, otherID int64) (*model.RelationshipEdge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id, ok := f.byPair[model.BuildPairKey(userID, otherID)]
	if !ok {
		return nil, nil
	}
	copied := *f.edges[id]
	return &copied, nil
}

// TransitionEdgeStatus 条件状态转换，行为对齐真实DAO的条件写
func (f *fakeRelationshipDAO) TransitionEdgeStatus(ctx context.Context, id int64, fromStatus, toStatus string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !model.ValidateEdgeStatus(toStatus) {
		return model.NewValidationError("invalid edge status")
	}
	edge, ok := f.edges[id]
	if !ok || edge.Status != fromStatus {
		return model.NewInvalidStateError("relationship state changed")
	}
	edge.Status = toStatus
	edge.UpdatedAt = f.now()
	return nil
}

// DeleteEdge 条件删除，仅当边仍处于给定状态时生效
func (f *fakeRelationshipDAO) DeleteEdge(ctx context.Context, id int64, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	edge, ok := f.edges[id]
	if !ok || edge.Status != status {
		return model.NewInvalidStateError("relationship state changed")
	}
	delete(f.byPair, edge.PairKey)
	delete(f.edges, id)
	return nil
}

func (f *fakeRelationshipDAO) ListIncomingRequests(ctx context.Context, userID int64) ([]*model.RelationshipEdge, error) {
	edges := f.filter(func(e *model.RelationshipEdge) bool {
		return e.Status == model.EdgeStatusPending && e.FriendID == userID
	})
	sortByCreatedAtDesc(edges)
	return edges, nil
}

func (f *fakeRelationshipDAO) ListOutgoingRequests(ctx context.Context, userID int64) ([]*model.RelationshipEdge, error) {
	edges := f.filter(func(e *model.RelationshipEdge) bool {
		return e.Status == model.EdgeStatusPending && e.UserID == userID
	})
	sortByCreatedAtDesc(edges)
	return edges, nil
}

func (f *fakeRelationshipDAO) ListAcceptedEdges(ctx context.Context, userID int64) ([]*model.RelationshipEdge, error) {
	edges := f.filter(func(e *model.RelationshipEdge) bool {
		return e.Status == model.EdgeStatusAccepted && (e.UserID == userID || e.FriendID == userID)
	})
	sortByUpdatedAtDesc(edges)
	return edges, nil
}

func (f *fakeRelationshipDAO) ListBlockedEdges(ctx context.Context, userID int64) ([]*model.RelationshipEdge, error) {
	edges := f.filter(func(e *model.RelationshipEdge) bool {
		return e.Status == model.EdgeStatusBlocked && e.UserID == userID
	})
	sortByCreatedAtDesc(edges)
	return edges, nil
}

// sortByCreatedAtDesc 按创建时间倒序，与真实DAO的Order子句一致
func sortByCreatedAtDesc(edges []*model.RelationshipEdge) {
	sort.SliceStable(edges, func(i, j int) bool {
		return edges[i].CreatedAt.After(edges[j].CreatedAt)
	})
}

// sortByUpdatedAtDesc 按更新时间倒序，与真实DAO的Order子句一致
func sortByUpdatedAtDesc(edges []*model.RelationshipEdge) {
	sort.SliceStable(edges, func(i, j int) bool {
		return edges[i].UpdatedAt.After(edges[j].UpdatedAt)
	})
}

func (f *fakeRelationshipDAO) GetFriendIDs(ctx context.Context, userID int64) ([]int64, error) {
	f.mu.Lock()
	if err := f.friendIDsErr[userID]; err != nil {
		f.mu.Unlock()
		return nil, err
	}
	f.mu.Unlock()

	edges, _ := f.ListAcceptedEdges(ctx, userID)
	ids := make([]int64, 0, len(edges))
	for _, edge := range edges {
		ids = append(ids, edge.OtherParty(userID))
	}
	return ids, nil
}

func (f *fakeRelationshipDAO) GetRelatedUserIDs(ctx context.Context, userID int64) ([]int64, error) {
	f.mu.Lock()
	if f.relatedErr != nil {
		f.mu.Unlock()
		return nil, f.relatedErr
	}
	f.mu.Unlock()

	edges := f.filter(func(e *model.RelationshipEdge) bool {
		return e.UserID == userID || e.FriendID == userID
	})
	ids := make([]int64, 0, len(edges))
	for _, edge := range edges {
		ids = append(ids, edge.OtherParty(userID))
	}
	return ids, nil
}

func (f *fakeRelationshipDAO) filter(match func(*model.RelationshipEdge) bool) []*model.RelationshipEdge {
	f.mu.Lock()
	defer f.mu.Unlock()

	result := make([]*model.RelationshipEdge, 0)
	for _, edge := range f.edges {
		if match(edge) {
			copied := *edge
			result = append(result, &copied)
		}
	}
	return result
}

// edgeCount 当前边总数
func (f *fakeRelationshipDAO) edgeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.edges)
}

// fakeInterestDAO 内存品类兴趣存储
type fakeInterestDAO struct {
	categoryIDs map[int64][]int64
	rows        []*model.CategoryInterestRow
	listErr     error
}

func newFakeInterestDAO() *fakeInterestDAO {
	return &fakeInterestDAO{categoryIDs: make(map[int64][]int64)}
}

func (f *fakeInterestDAO) GetUserCategoryIDs(ctx context.Context, userID int64) ([]int64, error) {
	return f.categoryIDs[userID], nil
}

func (f *fakeInterestDAO) ListByCategoryIDs(ctx context.Context, categoryIDs, excludeUserIDs []int64) ([]*model.CategoryInterestRow, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}

	wanted := make(map[int64]struct{}, len(categoryIDs))
	for _, id := range categoryIDs {
		wanted[id] = struct{}{}
	}
	excluded := make(map[int64]struct{}, len(excludeUserIDs))
	for _, id := range excludeUserIDs {
		excluded[id] = struct{}{}
	}

	result := make([]*model.CategoryInterestRow, 0)
	for _, row := range f.rows {
		if _, ok := wanted[row.CategoryID]; !ok {
			continue
		}
		if _, skip := excluded[row.UserID]; skip {
			continue
		}
		result = append(result, row)
	}
	return result, nil
}

// fakeProfileDAO 内存用户目录与个人信息存储
type fakeProfileDAO struct {
	users         map[int64]*model.User
	activities    map[int64][]string
	recentIDs     []int64
	activitiesErr map[int64]error
	usersErr      error
}

func newFakeProfileDAO() *fakeProfileDAO {
	return &fakeProfileDAO{
		users:         make(map[int64]*model.User),
		activities:    make(map[int64][]string),
		activitiesErr: make(map[int64]error),
	}
}

func (f *fakeProfileDAO) GetUserByID(ctx context.Context, userID int64) (*model.User, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, nil
	}
	return user, nil
}

func (f *fakeProfileDAO) GetUsersByIDs(ctx context.Context, userIDs []int64) ([]*model.User, error) {
	if f.usersErr != nil {
		return nil, f.usersErr
	}
	result := make([]*model.User, 0, len(userIDs))
	for _, id := range userIDs {
		if user, ok := f.users[id]; ok {
			result = append(result, user)
		}
	}
	return result, nil
}

func (f *fakeProfileDAO) GetActivities(ctx context.Context, userID int64) ([]string, error) {
	if err := f.activitiesErr[userID]; err != nil {
		return nil, err
	}
	tags, ok := f.activities[userID]
	if !ok {
		return []string{}, nil
	}
	return tags, nil
}

func (f *fakeProfileDAO) ListRecentProfileUserIDs(ctx context.Context, limit int) ([]int64, error) {
	if limit < len(f.recentIDs) {
		return f.recentIDs[:limit], nil
	}
	return f.recentIDs, nil
}

// producedEvent 记录一次事件发布
type producedEvent struct {
	topic string
	key   string
	value []byte
}

// fakeProducer 捕获事件发布
type fakeProducer struct {
	mu     sync.Mutex
	events []producedEvent
	err    error
}

func (f *fakeProducer) SendMessage(topic string, key, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, producedEvent{topic: topic, key: string(key), value: value})
	return nil
}

// eventsOnTopic 按主题取已发布事件
func (f *fakeProducer) eventsOnTopic(topic string) []producedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]producedEvent, 0)
	for _, event := range f.events {
		if event.topic == topic {
			result = append(result, event)
		}
	}
	return result
}

// newTestService 组装测试用服务实例
func newTestService() (*Service, *fakeRelationshipDAO, *fakeInterestDAO, *fakeProfileDAO, *fakeProducer) {
	relationDAO := newFakeRelationshipDAO()
	interestDAO := newFakeInterestDAO()
	profileDAO := newFakeProfileDAO()
	producer := &fakeProducer{}
	svc := NewService(relationDAO, interestDAO, profileDAO, producer, logger.GetLogger())
	return svc, relationDAO, interestDAO, profileDAO, producer
}

// addUser 注册一个测试用户
func (f *fakeProfileDAO) addUser(id int64, firstName, lastName string) {
	f.users[id] = &model.User{ID: id, FirstName: firstName, LastName: lastName, IsPublic: true}
}

// makeFriends 直接建立一条accepted边
func makeFriends(dao *fakeRelationshipDAO, a, b int64) {
	edge := &model.RelationshipEdge{UserID: a, FriendID: b, Status: model.EdgeStatusAccepted}
	_ = dao.CreateEdge(context.Background(), edge)
}
