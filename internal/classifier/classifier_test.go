package classifier_test

import (
	"strings"
	"testing"

	"github.com/appdotbuilder/tele-vid-downloader/internal/classifier"
	"github.com/appdotbuilder/tele-vid-downloader/internal/model"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		url      string
		expected model.Platform
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", model.PlatformYouTube},
		{"https://youtu.be/dQw4w9WgXcQ", model.PlatformYouTube},
		{"https://m.youtube.com/watch?v=dQw4w9WgXcQ", model.PlatformYouTube},
		{"https://YOUTU.BE/abc12345678", model.PlatformYouTube},
		{"https://www.instagram.com/p/Cxyz123/", model.PlatformInstagram},
		{"https://instagram.com/reel/Cxyz123/", model.PlatformInstagram},
		{"https://twitter.com/user/status/123456", model.PlatformTwitter},
		{"https://x.com/user/status/123456", model.PlatformTwitter},
		{"https://mobile.twitter.com/user/status/1", model.PlatformTwitter},
		{"https://doodstream.com/d/abc123", model.PlatformDoodstream},
		{"https://example.com/video", model.PlatformOther},
		{"not a url", model.PlatformOther},
		{"", model.PlatformOther},
		// The platform name appearing in the path or query must not match
		{"https://example.com/youtube.com/watch?v=dQw4w9WgXcQ", model.PlatformOther},
		{"https://example.com/?next=https://twitter.com/a/status/1", model.PlatformOther},
	}

	for _, tc := range cases {
		if got := classifier.Classify(tc.url); got != tc.expected {
			t.Errorf("Classify(%q) = %s, expected %s", tc.url, got, tc.expected)
		}
	}
}

func TestClassifyDeterministic(t *testing.T) {
	url := "https://YOUTU.BE/abc12345678"
	first := classifier.Classify(url)
	for i := 0; i < 10; i++ {
		if got := classifier.Classify(url); got != first {
			t.Fatalf("Classify is not deterministic: got %s then %s", first, got)
		}
	}
	if first != model.PlatformYouTube {
		t.Errorf("Classify(%q) = %s, expected youtube", url, first)
	}
}

func TestValidateYouTube(t *testing.T) {
	if _, err := classifier.Validate("https://www.youtube.com/watch?v=dQw4w9WgXcQ"); err != nil {
		t.Errorf("Expected valid YouTube watch URL, got %v", err)
	}
	if _, err := classifier.Validate("https://youtu.be/dQw4w9WgXcQ"); err != nil {
		t.Errorf("Expected valid short link, got %v", err)
	}
	if _, err := classifier.Validate("https://www.youtube.com/embed/dQw4w9WgXcQ"); err != nil {
		t.Errorf("Expected valid embed URL, got %v", err)
	}

	platform, err := classifier.Validate("https://youtube.com/")
	if err == nil {
		t.Fatal("Expected error for YouTube URL without a video id")
	}
	if platform != model.PlatformYouTube {
		t.Errorf("Expected platform youtube, got %s", platform)
	}
	if !strings.Contains(err.Error(), "YouTube") {
		t.Errorf("Expected reason to mention YouTube, got %q", err.Error())
	}
}

func TestValidateInstagram(t *testing.T) {
	valid := []string{
		"https://www.instagram.com/p/Cxyz_12-3/",
		"https://www.instagram.com/reel/Cxyz123/",
		"https://www.instagram.com/tv/Cxyz123/",
	}
	for _, url := range valid {
		if _, err := classifier.Validate(url); err != nil {
			t.Errorf("Expected %q to be valid, got %v", url, err)
		}
	}

	if _, err := classifier.Validate("https://www.instagram.com/someuser/"); err == nil {
		t.Error("Expected profile URL to be rejected")
	}
}

func TestValidateTwitter(t *testing.T) {
	if _, err := classifier.Validate("https://x.com/user/status/1234567890"); err != nil {
		t.Errorf("Expected valid status URL, got %v", err)
	}
	if _, err := classifier.Validate("https://twitter.com/someuser"); err == nil {
		t.Error("Expected profile URL to be rejected")
	}
}

func TestValidateDoodstream(t *testing.T) {
	if _, err := classifier.Validate("https://doodstream.com/d/abc123"); err != nil {
		t.Errorf("Expected valid direct link, got %v", err)
	}
	if _, err := classifier.Validate("https://doodstream.com/e/abc123"); err != nil {
		t.Errorf("Expected valid embed link, got %v", err)
	}
	if _, err := classifier.Validate("https://doodstream.com/about"); err == nil {
		t.Error("Expected non-video URL to be rejected")
	}
}

func TestValidateScheme(t *testing.T) {
	if _, err := classifier.Validate("ftp://youtube.com/watch?v=dQw4w9WgXcQ"); err == nil {
		t.Error("Expected non-HTTP scheme to be rejected")
	}
	if _, err := classifier.Validate("::::"); err == nil {
		t.Error("Expected malformed URL to be rejected")
	}
}

func TestValidateOtherAlwaysValid(t *testing.T) {
	platform, err := classifier.Validate("https://example.com/some/video")
	if err != nil {
		t.Errorf("Expected other-platform URL to be structurally valid, got %v", err)
	}
	if platform != model.PlatformOther {
		t.Errorf("Expected platform other, got %s", platform)
	}
}
