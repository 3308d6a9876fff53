package services

import (
	"errors"
	"log"
	"sync"
	"time"

	"talknfix/internal/db"
	"talknfix/internal/models"

	"gorm.io/gorm"
)

// Action 声望动作标识
type Action string

const (
	ActionPostCreated       Action = "POST_CREATED"
	ActionPostUpdated       Action = "POST_UPDATED"
	ActionPostDeleted       Action = "POST_DELETED"
	ActionCommentCreated    Action = "COMMENT_CREATED"
	ActionCommentDeleted    Action = "COMMENT_DELETED"
	ActionReceiveLike       Action = "RECEIVE_LIKE"
	ActionReceiveUpvote     Action = "RECEIVE_UPVOTE"
	ActionReceiveHelpful    Action = "RECEIVE_HELPFUL"
	ActionReceiveInsightful Action = "RECEIVE_INSIGHTFUL"
	ActionLoseLike          Action = "LOSE_LIKE"
	ActionLoseUpvote        Action = "LOSE_UPVOTE"
	ActionLoseHelpful       Action = "LOSE_HELPFUL"
	ActionLoseInsightful    Action = "LOSE_INSIGHTFUL"
	ActionAnswerAccepted    Action = "ANSWER_ACCEPTED"
	ActionAnswerUnaccepted  Action = "ANSWER_UNACCEPTED"
	ActionFriendAccepted    Action = "FRIEND_REQUEST_ACCEPTED"
	ActionDailyLogin        Action = "DAILY_LOGIN"
)

// 动作对应的声望分值。未登记或为 0 的动作一律视为无操作。
var reputationPoints = map[Action]int{
	ActionPostCreated:       5,
	ActionPostUpdated:       0,
	ActionPostDeleted:       -5,
	ActionCommentCreated:    2,
	ActionCommentDeleted:    -2,
	ActionReceiveLike:       1,
	ActionReceiveUpvote:     5,
	ActionReceiveHelpful:    10,
	ActionReceiveInsightful: 10,
	ActionLoseLike:          -1,
	ActionLoseUpvote:        -5,
	ActionLoseHelpful:       -10,
	ActionLoseInsightful:    -10,
	ActionAnswerAccepted:    15,
	ActionAnswerUnaccepted:  -15,
	ActionFriendAccepted:    3,
	ActionDailyLogin:        1,
}

// PointsFor 查询动作的声望分值，未知动作返回 0
func PointsFor(action Action) int {
	return reputationPoints[action]
}

// StatField 用户计数器字段（数据库列名）
type StatField string

const (
	StatTotalPosts      StatField = "stat_total_posts"
	StatTotalComments   StatField = "stat_total_comments"
	StatHelpfulReceived StatField = "stat_helpful_reactions_received"
	StatTotalReceived   StatField = "stat_total_reactions_received"
	StatAcceptedAnswers StatField = "stat_accepted_answers"
)

var validStatFields = map[StatField]bool{
	StatTotalPosts:      true,
	StatTotalComments:   true,
	StatHelpfulReceived: true,
	StatTotalReceived:   true,
	StatAcceptedAnswers: true,
}

// ErrUserNotFound 仅由 Summary 这类读接口向外暴露
var ErrUserNotFound = errors.New("user not found")

// applyDelta 对声望应用变动并推导等级。声望下限为 0，
// 等级恒等于 reputation/100 + 1。
func applyDelta(reputation, delta int) (newReputation, newLevel int) {
	newReputation = reputation + delta
	if newReputation < 0 {
		newReputation = 0
	}
	return newReputation, LevelFor(newReputation)
}

// LevelFor 由声望推导等级（每 100 分升一级，从 1 级起）
func LevelFor(reputation int) int {
	return reputation/100 + 1
}

// repEvent 主操作提交后投递的声望事件。
// Action 非空表示声望变动，Stat 非空表示计数器变动，两者可同时为空置之不理。
type repEvent struct {
	UserID uint
	Action Action
	Stat   StatField
	Delta  int
}

// ReputationService 声望引擎。处理器在自身事务提交后投递事件，
// 由后台 worker 消费：引擎内的任何失败只记日志，永远不会回滚
// 或影响触发它的主操作。
type ReputationService struct {
	queue chan repEvent
	wg    sync.WaitGroup
}

var (
	reputationService *ReputationService
	reputationOnce    sync.Once
)

// GetReputationService 获取单例声望服务并启动后台 worker
func GetReputationService() *ReputationService {
	reputationOnce.Do(func() {
		reputationService = &ReputationService{
			queue: make(chan repEvent, 1000), // 缓冲队列，防止阻塞请求
		}
		go reputationService.worker()
	})
	return reputationService
}

// ScheduleAction 投递声望动作事件（非阻塞，队列满时丢弃并记日志）
func (s *ReputationService) ScheduleAction(userID uint, action Action) {
	s.enqueue(repEvent{UserID: userID, Action: action})
}

// ScheduleStat 投递计数器变动事件
func (s *ReputationService) ScheduleStat(userID uint, stat StatField, delta int) {
	s.enqueue(repEvent{UserID: userID, Stat: stat, Delta: delta})
}

func (s *ReputationService) enqueue(ev repEvent) {
	s.wg.Add(1)
	select {
	case s.queue <- ev:
	default:
		s.wg.Done()
		log.Printf("声望事件队列已满，丢弃事件 user=%d action=%s stat=%s", ev.UserID, ev.Action, ev.Stat)
	}
}

// worker 后台消费声望事件
func (s *ReputationService) worker() {
	for ev := range s.queue {
		if ev.Action != "" {
			s.ApplyAction(ev.UserID, ev.Action)
		}
		if ev.Stat != "" {
			s.IncrementStat(ev.UserID, ev.Stat, ev.Delta)
		}
		s.wg.Done()
	}
}

// Drain 等待队列中已投递的事件全部处理完（测试和优雅停机用）
func (s *ReputationService) Drain() {
	s.wg.Wait()
}

// ApplyAction 按动作调整用户声望并重新推导等级。
// 分值为 0 的动作直接返回；用户不存在或持久化失败只记日志返回 nil，
// 不向调用方传播错误（主操作此时已经提交）。
func (s *ReputationService) ApplyAction(userID uint, action Action) *models.User {
	delta := PointsFor(action)
	if delta == 0 {
		return nil
	}

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		log.Printf("声望更新失败：用户 %d 不存在", userID)
		return nil
	}

	user.Reputation, user.Level = applyDelta(user.Reputation, delta)

	// 声望、等级与明细记录在同一事务中落库
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		entry := models.ReputationLog{
			UserID: userID,
			Action: string(action),
			Delta:  delta,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("id = ?", userID).
			Updates(map[string]interface{}{
				"reputation": user.Reputation,
				"level":      user.Level,
			}).Error
	})
	if err != nil {
		log.Printf("声望更新失败 user=%d action=%s: %v", userID, action, err)
		return nil
	}

	s.EvaluateBadges(&user)
	return &user
}

// IncrementStat 原子递增用户计数器（delta 可为负），然后重新判定勋章。
// 用户不存在时静默返回 nil。
func (s *ReputationService) IncrementStat(userID uint, stat StatField, delta int) *models.User {
	if !validStatFields[stat] {
		log.Printf("未知的计数器字段: %s", stat)
		return nil
	}

	result := db.DB.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn(string(stat), gorm.Expr(string(stat)+" + ?", delta))
	if result.Error != nil {
		log.Printf("计数器更新失败 user=%d stat=%s: %v", userID, stat, result.Error)
		return nil
	}
	if result.RowsAffected == 0 {
		log.Printf("计数器更新失败：用户 %d 不存在", userID)
		return nil
	}

	// 重新加载以获取最新快照供勋章判定
	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		return nil
	}

	s.EvaluateBadges(&user)
	return &user
}

// EvaluateBadges 对用户当前快照逐条判定勋章，批量补发缺失的勋章。
// 同一勋章靠唯一索引保证至多颁发一次，已颁发的勋章永不回收。
// 返回本次新颁发的勋章定义。
func (s *ReputationService) EvaluateBadges(user *models.User) []Badge {
	var existing []models.BadgeAward
	if err := db.DB.Where("user_id = ?", user.ID).Find(&existing).Error; err != nil {
		log.Printf("勋章查询失败 user=%d: %v", user.ID, err)
		return nil
	}

	owned := make(map[string]bool, len(existing))
	for _, award := range existing {
		owned[award.BadgeID] = true
	}

	earned := newBadgesFor(user, owned)
	if len(earned) == 0 {
		return nil
	}

	// 整批一次写入
	now := time.Now()
	awards := make([]models.BadgeAward, 0, len(earned))
	for _, badge := range earned {
		awards = append(awards, models.BadgeAward{
			UserID:      user.ID,
			BadgeID:     badge.ID,
			Name:        badge.Name,
			Description: badge.Description,
			Icon:        badge.Icon,
			EarnedAt:    now,
		})
	}
	if err := db.DB.Create(&awards).Error; err != nil {
		log.Printf("勋章颁发失败 user=%d: %v", user.ID, err)
		return nil
	}

	for _, badge := range earned {
		log.Printf("Badge awarded to %s: %s", user.Username, badge.Name)
	}
	return earned
}

// NextLevelInfo 升级进度
type NextLevelInfo struct {
	Level              int `json:"level"`
	ReputationNeeded   int `json:"reputationNeeded"`
	ProgressPercentage int `json:"progressPercentage"`
}

// ReputationSummary 声望概览投影
type ReputationSummary struct {
	Reputation int                 `json:"reputation"`
	Level      int                 `json:"level"`
	Badges     []models.BadgeAward `json:"badges"`
	Stats      models.UserStats    `json:"stats"`
	NextLevel  NextLevelInfo       `json:"nextLevel"`
}

// nextLevelFor 计算升级进度。进度按当前等级区间内已获得的分数计，封顶 100。
func nextLevelFor(reputation, level int) NextLevelInfo {
	progress := reputation - (level-1)*100
	if progress > 100 {
		progress = 100
	}
	return NextLevelInfo{
		Level:              level + 1,
		ReputationNeeded:   level*100 - reputation,
		ProgressPercentage: progress,
	}
}

// Summary 用户声望概览。用户不存在时返回 ErrUserNotFound。
func (s *ReputationService) Summary(userID uint) (*ReputationSummary, error) {
	var user models.User
	if err := db.DB.Preload("Badges").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	badges := user.Badges
	if badges == nil {
		badges = []models.BadgeAward{}
	}

	return &ReputationSummary{
		Reputation: user.Reputation,
		Level:      user.Level,
		Badges:     badges,
		Stats:      user.Stats,
		NextLevel:  nextLevelFor(user.Reputation, user.Level),
	}, nil
}

// HasLoggedInToday 判断今日是否已发放登录奖励（按声望明细去重）
func HasLoggedInToday(userID uint) bool {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var count int64
	db.DB.Model(&models.ReputationLog{}).
		Where("user_id = ? AND action = ? AND created_at >= ?", userID, string(ActionDailyLogin), startOfDay).
		Count(&count)
	return count > 0
}
