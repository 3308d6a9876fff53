package services

import (
	"talknfix/internal/models"
)

// Badge 勋章定义。定义静态维护在代码中，不入库，只持久化颁发记录。
// Condition 是对用户快照（声望、等级、计数器）的纯判定函数。
type Badge struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Condition   func(u *models.User) bool
}

// 勋章表。有序，逐条独立判定：同一维度的高阶勋章不会挡住低阶勋章，
// 达到高阶阈值的用户也会持有所有低阶勋章。
var badgeTable = []Badge{
	{
		ID:          "first-post",
		Name:        "First Steps",
		Description: "Created your first post",
		Icon:        "🎯",
		Condition:   func(u *models.User) bool { return u.Stats.TotalPosts >= 1 },
	},
	{
		ID:          "prolific-poster",
		Name:        "Prolific Poster",
		Description: "Created 10 posts",
		Icon:        "📝",
		Condition:   func(u *models.User) bool { return u.Stats.TotalPosts >= 10 },
	},
	{
		ID:          "content-creator",
		Name:        "Content Creator",
		Description: "Created 50 posts",
		Icon:        "✍️",
		Condition:   func(u *models.User) bool { return u.Stats.TotalPosts >= 50 },
	},
	{
		ID:          "first-comment",
		Name:        "Breaking the Ice",
		Description: "Posted your first comment",
		Icon:        "💭",
		Condition:   func(u *models.User) bool { return u.Stats.TotalComments >= 1 },
	},
	{
		ID:          "active-commenter",
		Name:        "Conversationalist",
		Description: "Posted 50 comments",
		Icon:        "💬",
		Condition:   func(u *models.User) bool { return u.Stats.TotalComments >= 50 },
	},
	{
		ID:          "discussion-master",
		Name:        "Discussion Master",
		Description: "Posted 200 comments",
		Icon:        "🗣️",
		Condition:   func(u *models.User) bool { return u.Stats.TotalComments >= 200 },
	},
	{
		ID:          "helpful-10",
		Name:        "Helper",
		Description: "Received 10 helpful reactions",
		Icon:        "🌟",
		Condition:   func(u *models.User) bool { return u.Stats.HelpfulReactionsReceived >= 10 },
	},
	{
		ID:          "helpful-50",
		Name:        "Super Helper",
		Description: "Received 50 helpful reactions",
		Icon:        "⭐",
		Condition:   func(u *models.User) bool { return u.Stats.HelpfulReactionsReceived >= 50 },
	},
	{
		ID:          "helpful-100",
		Name:        "Hero",
		Description: "Received 100 helpful reactions",
		Icon:        "🦸",
		Condition:   func(u *models.User) bool { return u.Stats.HelpfulReactionsReceived >= 100 },
	},
	{
		ID:          "popular-creator",
		Name:        "Popular Creator",
		Description: "Received 100 total reactions",
		Icon:        "🔥",
		Condition:   func(u *models.User) bool { return u.Stats.TotalReactionsReceived >= 100 },
	},
	{
		ID:          "viral",
		Name:        "Viral",
		Description: "Received 500 total reactions",
		Icon:        "🚀",
		Condition:   func(u *models.User) bool { return u.Stats.TotalReactionsReceived >= 500 },
	},
	{
		ID:          "problem-solver",
		Name:        "Problem Solver",
		Description: "Had 10 accepted answers",
		Icon:        "✅",
		Condition:   func(u *models.User) bool { return u.Stats.AcceptedAnswers >= 10 },
	},
	{
		ID:          "expert",
		Name:        "Expert",
		Description: "Had 50 accepted answers",
		Icon:        "🎓",
		Condition:   func(u *models.User) bool { return u.Stats.AcceptedAnswers >= 50 },
	},
	{
		ID:          "reputation-100",
		Name:        "Rising Star",
		Description: "Reached 100 reputation points",
		Icon:        "🌠",
		Condition:   func(u *models.User) bool { return u.Reputation >= 100 },
	},
	{
		ID:          "reputation-500",
		Name:        "Influencer",
		Description: "Reached 500 reputation points",
		Icon:        "💎",
		Condition:   func(u *models.User) bool { return u.Reputation >= 500 },
	},
	{
		ID:          "reputation-1000",
		Name:        "Legend",
		Description: "Reached 1000 reputation points",
		Icon:        "👑",
		Condition:   func(u *models.User) bool { return u.Reputation >= 1000 },
	},
}

// AllBadges 返回勋章表的拷贝，调用方不可修改定义本身
func AllBadges() []Badge {
	out := make([]Badge, len(badgeTable))
	copy(out, badgeTable)
	return out
}

// newBadgesFor 返回用户当前满足条件且尚未持有的勋章，保持表序。
// 纯函数，不触库；owned 为用户已持有的勋章 ID 集合。
func newBadgesFor(u *models.User, owned map[string]bool) []Badge {
	var earned []Badge
	for _, badge := range badgeTable {
		if owned[badge.ID] {
			continue
		}
		if badge.Condition(u) {
			earned = append(earned, badge)
		}
	}
	return earned
}
