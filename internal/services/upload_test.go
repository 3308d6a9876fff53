package services

import "testing"

func TestAllowedUpload(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"photo.jpg", true},
		{"photo.JPEG", true},
		{"diagram.png", true},
		{"anim.gif", true},
		{"shot.webp", true},
		{"report.pdf", true},
		{"notes.doc", true},
		{"notes.docx", true},
		{"readme.txt", true},
		{"script.sh", false},
		{"payload.exe", false},
		{"page.html", false},
		{"noextension", false},
	}
	for _, c := range cases {
		if got := AllowedUpload(c.name); got != c.want {
			t.Errorf("AllowedUpload(%q) = %v, want %v", c.name, got, c.want)
		}
	}
}
