package services

import (
	"testing"

	"talknfix/internal/models"
)

func badgeIDs(badges []Badge) map[string]bool {
	ids := make(map[string]bool, len(badges))
	for _, b := range badges {
		ids[b.ID] = true
	}
	return ids
}

func TestNewBadgesForFreshUser(t *testing.T) {
	u := &models.User{}
	earned := newBadgesFor(u, nil)
	if len(earned) != 0 {
		t.Errorf("fresh user earned %d badges, want 0", len(earned))
	}
}

func TestNewBadgesForFirstPost(t *testing.T) {
	u := &models.User{Stats: models.UserStats{TotalPosts: 1}}
	earned := newBadgesFor(u, nil)
	if len(earned) != 1 || earned[0].ID != "first-post" {
		t.Fatalf("earned = %v, want only first-post", earned)
	}
}

func TestNewBadgesForTierNonExclusive(t *testing.T) {
	// 50 篇帖子应同时满足三档发帖勋章
	u := &models.User{Stats: models.UserStats{TotalPosts: 50}}
	ids := badgeIDs(newBadgesFor(u, nil))
	for _, want := range []string{"first-post", "prolific-poster", "content-creator"} {
		if !ids[want] {
			t.Errorf("missing badge %s", want)
		}
	}
}

func TestNewBadgesForSkipsOwned(t *testing.T) {
	u := &models.User{Stats: models.UserStats{TotalPosts: 10}}
	owned := map[string]bool{"first-post": true}
	ids := badgeIDs(newBadgesFor(u, owned))
	if ids["first-post"] {
		t.Error("already owned badge should not be re-earned")
	}
	if !ids["prolific-poster"] {
		t.Error("missing prolific-poster")
	}
}

func TestNewBadgesForIdempotent(t *testing.T) {
	// 同一快照判定两轮：第二轮把第一轮结果记为已持有，不应再发任何勋章
	u := &models.User{
		Reputation: 520,
		Stats:      models.UserStats{TotalPosts: 12, TotalComments: 60},
	}
	first := newBadgesFor(u, nil)
	owned := badgeIDs(first)
	second := newBadgesFor(u, owned)
	if len(second) != 0 {
		t.Errorf("second evaluation earned %d badges, want 0", len(second))
	}
}

func TestReputationBadgeThresholds(t *testing.T) {
	cases := []struct {
		rep  int
		want []string
	}{
		{99, nil},
		{100, []string{"reputation-100"}},
		{500, []string{"reputation-100", "reputation-500"}},
		{1000, []string{"reputation-100", "reputation-500", "reputation-1000"}},
	}
	for _, c := range cases {
		ids := badgeIDs(newBadgesFor(&models.User{Reputation: c.rep}, nil))
		if len(ids) != len(c.want) {
			t.Errorf("rep %d earned %d badges, want %d", c.rep, len(ids), len(c.want))
		}
		for _, w := range c.want {
			if !ids[w] {
				t.Errorf("rep %d missing badge %s", c.rep, w)
			}
		}
	}
}

func TestHelpfulBadgeThresholds(t *testing.T) {
	u := &models.User{Stats: models.UserStats{HelpfulReactionsReceived: 100}}
	ids := badgeIDs(newBadgesFor(u, nil))
	for _, want := range []string{"helpful-10", "helpful-50", "helpful-100"} {
		if !ids[want] {
			t.Errorf("missing badge %s", want)
		}
	}
}

func TestNewBadgesForKeepsTableOrder(t *testing.T) {
	u := &models.User{
		Reputation: 1000,
		Stats: models.UserStats{
			TotalPosts:               50,
			TotalComments:            200,
			HelpfulReactionsReceived: 100,
			TotalReactionsReceived:   500,
			AcceptedAnswers:          50,
		},
	}
	earned := newBadgesFor(u, nil)
	if len(earned) != len(badgeTable) {
		t.Fatalf("earned %d badges, want all %d", len(earned), len(badgeTable))
	}
	for i, b := range earned {
		if b.ID != badgeTable[i].ID {
			t.Errorf("badge %d = %s, want %s", i, b.ID, badgeTable[i].ID)
		}
	}
}

func TestAllBadgesReturnsCopy(t *testing.T) {
	badges := AllBadges()
	if len(badges) != len(badgeTable) {
		t.Fatalf("AllBadges returned %d, want %d", len(badges), len(badgeTable))
	}
	badges[0].ID = "tampered"
	if badgeTable[0].ID == "tampered" {
		t.Error("mutating AllBadges result must not affect the badge table")
	}
}
