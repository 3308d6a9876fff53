package handlers

import (
	"net/http/httptest"
	"testing"

	"talknfix/internal/models"
	"talknfix/internal/services"

	"github.com/gin-gonic/gin"
)

func testContext(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return c
}

func TestPageParams(t *testing.T) {
	cases := []struct {
		query                   string
		wantPage, wantLimit, wantOffset int
	}{
		{"", 1, 10, 0},
		{"page=3", 3, 10, 20},
		{"page=2&limit=25", 2, 25, 25},
		{"limit=500", 1, 50, 0},    // 封顶 50
		{"page=-1&limit=0", 1, 10, 0}, // 非法参数回落默认值
		{"page=abc", 1, 10, 0},
	}
	for _, c := range cases {
		page, limit, offset := pageParams(testContext(c.query))
		if page != c.wantPage || limit != c.wantLimit || offset != c.wantOffset {
			t.Errorf("pageParams(%q) = (%d, %d, %d), want (%d, %d, %d)",
				c.query, page, limit, offset, c.wantPage, c.wantLimit, c.wantOffset)
		}
	}
}

func TestReactionActionMaps(t *testing.T) {
	// 每种反应类型都要有对称的得分/失分动作
	for _, rt := range []string{
		models.ReactionLike, models.ReactionUpvote,
		models.ReactionHelpful, models.ReactionInsightful,
	} {
		receive, ok := receiveActions[rt]
		if !ok {
			t.Fatalf("no receive action for %s", rt)
		}
		lose, ok := loseActions[rt]
		if !ok {
			t.Fatalf("no lose action for %s", rt)
		}
		if services.PointsFor(receive)+services.PointsFor(lose) != 0 {
			t.Errorf("%s: receive %d and lose %d are not symmetric",
				rt, services.PointsFor(receive), services.PointsFor(lose))
		}
	}
}

func TestCountsAsHelpful(t *testing.T) {
	if !countsAsHelpful(models.ReactionHelpful) {
		t.Error("helpful should count")
	}
	if !countsAsHelpful(models.ReactionInsightful) {
		t.Error("insightful should count")
	}
	if countsAsHelpful(models.ReactionLike) {
		t.Error("like should not count")
	}
	if countsAsHelpful(models.ReactionUpvote) {
		t.Error("upvote should not count")
	}
}
