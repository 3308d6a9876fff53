package utils

import (
	"strings"
	"testing"
	"time"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if !CheckPasswordHash("s3cret-pass", hash) {
		t.Error("correct password should verify")
	}
	if CheckPasswordHash("wrong-pass", hash) {
		t.Error("wrong password should not verify")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(42)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	userID, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if userID != 42 {
		t.Errorf("userID = %d, want 42", userID)
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	if _, err := ParseToken("not.a.token"); err == nil {
		t.Error("garbage token should fail to parse")
	}
}

func TestSanitizeHTMLStripsScript(t *testing.T) {
	out := SanitizeHTML(`<p>hello</p><script>alert("x")</script>`)
	if strings.Contains(out, "<script") {
		t.Errorf("script tag survived sanitization: %s", out)
	}
	if !strings.Contains(out, "hello") {
		t.Errorf("safe content was stripped: %s", out)
	}
}

func TestRenderMarkdown(t *testing.T) {
	out := RenderMarkdown("**bold** text")
	if !strings.Contains(out, "<strong>bold</strong>") {
		t.Errorf("markdown not rendered: %s", out)
	}

	// 渲染结果同样要过消毒
	out = RenderMarkdown("hi <script>alert(1)</script>")
	if strings.Contains(out, "<script") {
		t.Errorf("script tag survived markdown pipeline: %s", out)
	}
}

func TestCacheSetGetExpire(t *testing.T) {
	c := GetCache()
	c.Set("test:key", "value", 50*time.Millisecond)
	if got := c.Get("test:key"); got != "value" {
		t.Errorf("Get = %v, want value", got)
	}

	time.Sleep(60 * time.Millisecond)
	if got := c.Get("test:key"); got != nil {
		t.Errorf("expired key returned %v, want nil", got)
	}
}

func TestCacheDelete(t *testing.T) {
	c := GetCache()
	c.Set("test:del", 1, time.Minute)
	c.Delete("test:del")
	if got := c.Get("test:del"); got != nil {
		t.Errorf("deleted key returned %v, want nil", got)
	}
}

func TestRandStringBytesMaskImpr(t *testing.T) {
	s := RandStringBytesMaskImpr(8)
	if len(s) != 8 {
		t.Errorf("len = %d, want 8", len(s))
	}
	for _, r := range s {
		if !strings.ContainsRune(letterBytes, r) {
			t.Errorf("unexpected rune %q", r)
		}
	}

	// 两次生成撞车的概率可以忽略
	if RandStringBytesMaskImpr(16) == RandStringBytesMaskImpr(16) {
		t.Error("two random strings should differ")
	}
}

func TestStringToInt(t *testing.T) {
	if got := StringToInt("123"); got != 123 {
		t.Errorf("StringToInt(123) = %d", got)
	}
	if got := StringToInt("abc"); got != 0 {
		t.Errorf("StringToInt(abc) = %d, want 0", got)
	}
}

func TestStringToUint(t *testing.T) {
	if got := StringToUint("7"); got != 7 {
		t.Errorf("StringToUint(7) = %d", got)
	}
	if got := StringToUint("-1"); got != 0 {
		t.Errorf("StringToUint(-1) = %d, want 0", got)
	}
}
