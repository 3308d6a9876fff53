package services

import (
	"testing"
)

func TestPointsFor(t *testing.T) {
	cases := []struct {
		action Action
		want   int
	}{
		{ActionPostCreated, 5},
		{ActionPostUpdated, 0},
		{ActionPostDeleted, -5},
		{ActionCommentCreated, 2},
		{ActionCommentDeleted, -2},
		{ActionReceiveLike, 1},
		{ActionReceiveUpvote, 5},
		{ActionReceiveHelpful, 10},
		{ActionReceiveInsightful, 10},
		{ActionLoseLike, -1},
		{ActionLoseUpvote, -5},
		{ActionLoseHelpful, -10},
		{ActionLoseInsightful, -10},
		{ActionAnswerAccepted, 15},
		{ActionAnswerUnaccepted, -15},
		{ActionFriendAccepted, 3},
		{ActionDailyLogin, 1},
	}
	for _, c := range cases {
		if got := PointsFor(c.action); got != c.want {
			t.Errorf("PointsFor(%s) = %d, want %d", c.action, got, c.want)
		}
	}

	// 未知动作视为无操作
	if got := PointsFor(Action("NO_SUCH_ACTION")); got != 0 {
		t.Errorf("PointsFor(unknown) = %d, want 0", got)
	}
}

func TestApplyDeltaClampsAtZero(t *testing.T) {
	// 声望 3 的用户删帖（-5）应落在 0，而不是 -2
	rep, level := applyDelta(3, PointsFor(ActionPostDeleted))
	if rep != 0 {
		t.Errorf("reputation = %d, want 0", rep)
	}
	if level != 1 {
		t.Errorf("level = %d, want 1", level)
	}
}

func TestApplyDelta(t *testing.T) {
	cases := []struct {
		rep, delta, wantRep, wantLevel int
	}{
		{0, 5, 5, 1},
		{95, 5, 100, 2},
		{100, -5, 95, 1},
		{0, -5, 0, 1},
		{250, 10, 260, 3},
		{999, 1, 1000, 11},
	}
	for _, c := range cases {
		rep, level := applyDelta(c.rep, c.delta)
		if rep != c.wantRep || level != c.wantLevel {
			t.Errorf("applyDelta(%d, %d) = (%d, %d), want (%d, %d)",
				c.rep, c.delta, rep, level, c.wantRep, c.wantLevel)
		}
	}
}

func TestLevelFor(t *testing.T) {
	cases := []struct {
		rep, want int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{199, 2},
		{200, 3},
		{1000, 11},
	}
	for _, c := range cases {
		if got := LevelFor(c.rep); got != c.want {
			t.Errorf("LevelFor(%d) = %d, want %d", c.rep, got, c.want)
		}
	}
}

func TestCreateThenDeleteIsNeutral(t *testing.T) {
	// 发帖 +5 再删帖 -5 应回到原点
	rep, _ := applyDelta(42, PointsFor(ActionPostCreated))
	rep, _ = applyDelta(rep, PointsFor(ActionPostDeleted))
	if rep != 42 {
		t.Errorf("reputation after create+delete = %d, want 42", rep)
	}
}

func TestTwentyPostsReachLevelTwo(t *testing.T) {
	rep, level := 0, 1
	for i := 0; i < 20; i++ {
		rep, level = applyDelta(rep, PointsFor(ActionPostCreated))
	}
	if rep != 100 {
		t.Errorf("reputation = %d, want 100", rep)
	}
	if level != 2 {
		t.Errorf("level = %d, want 2", level)
	}
}

func TestNextLevelFor(t *testing.T) {
	// 声望 42，1 级：距 2 级还差 58，进度 42%
	info := nextLevelFor(42, 1)
	if info.Level != 2 {
		t.Errorf("next level = %d, want 2", info.Level)
	}
	if info.ReputationNeeded != 58 {
		t.Errorf("reputationNeeded = %d, want 58", info.ReputationNeeded)
	}
	if info.ProgressPercentage != 42 {
		t.Errorf("progressPercentage = %d, want 42", info.ProgressPercentage)
	}

	// 声望 250，3 级：区间内进度 50%
	info = nextLevelFor(250, 3)
	if info.Level != 4 {
		t.Errorf("next level = %d, want 4", info.Level)
	}
	if info.ReputationNeeded != 50 {
		t.Errorf("reputationNeeded = %d, want 50", info.ReputationNeeded)
	}
	if info.ProgressPercentage != 50 {
		t.Errorf("progressPercentage = %d, want 50", info.ProgressPercentage)
	}

	// 进度封顶 100
	info = nextLevelFor(350, 3)
	if info.ProgressPercentage != 100 {
		t.Errorf("progressPercentage = %d, want 100", info.ProgressPercentage)
	}
}

func TestValidStatFields(t *testing.T) {
	for _, f := range []StatField{
		StatTotalPosts, StatTotalComments, StatHelpfulReceived,
		StatTotalReceived, StatAcceptedAnswers,
	} {
		if !validStatFields[f] {
			t.Errorf("stat field %s should be valid", f)
		}
	}
	if validStatFields[StatField("stat_bogus")] {
		t.Error("unknown stat field should not be valid")
	}
}
