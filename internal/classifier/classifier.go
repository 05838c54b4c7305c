package classifier

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/appdotbuilder/tele-vid-downloader/internal/model"
	"github.com/appdotbuilder/tele-vid-downloader/pkg/apperrors"
)

// hostRule matches a platform by the structural position of its host, not by a
// substring search, so a platform name appearing elsewhere in the URL cannot
// cause a false positive.
type hostRule struct {
	platform model.Platform
	hosts    []string
}

// The rule set is ordered; the first matching host wins.
var hostRules = []hostRule{
	{model.PlatformYouTube, []string{"youtube.com", "youtu.be"}},
	{model.PlatformInstagram, []string{"instagram.com"}},
	{model.PlatformTwitter, []string{"twitter.com", "x.com"}},
	{model.PlatformDoodstream, []string{"doodstream.com"}},
}

var (
	youtubeIDPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)[?&]v=([a-zA-Z0-9_-]{11})`),     // youtube.com/watch?v=...
		regexp.MustCompile(`(?i)youtu\.be/([a-zA-Z0-9_-]{11})`), // short links
		regexp.MustCompile(`(?i)/embed/([a-zA-Z0-9_-]{11})`),    // embeds
	}
	instagramPattern  = regexp.MustCompile(`^/(p|reel|tv)/[a-zA-Z0-9_-]+`)
	twitterPattern    = regexp.MustCompile(`/status/\d+`)
	doodstreamPattern = regexp.MustCompile(`^/(d|e)/[a-zA-Z0-9]+`)
)

// Classify maps a URL to its source platform. Unparseable URLs and unknown hosts
// yield PlatformOther; Classify never fails.
func Classify(rawURL string) model.Platform {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return model.PlatformOther
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return model.PlatformOther
	}

	host := strings.ToLower(parsed.Hostname())
	for _, rule := range hostRules {
		for _, h := range rule.hosts {
			if host == h || strings.HasSuffix(host, "."+h) {
				return rule.platform
			}
		}
	}

	return model.PlatformOther
}

// Validate performs platform-specific structural checks on a URL. It returns the
// detected platform together with a ValidationError naming the platform and the
// defect when the URL is structurally unusable. PlatformOther URLs are always
// structurally valid.
func Validate(rawURL string) (model.Platform, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || parsed.Host == "" {
		return model.PlatformOther, &apperrors.ValidationError{
			Message: fmt.Sprintf("invalid URL format: %q", rawURL),
		}
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return model.PlatformOther, &apperrors.ValidationError{
			Message: "only HTTP and HTTPS protocols are supported",
		}
	}

	platform := Classify(rawURL)

	switch platform {
	case model.PlatformYouTube:
		for _, pattern := range youtubeIDPatterns {
			if pattern.MatchString(rawURL) {
				return platform, nil
			}
		}
		return platform, &apperrors.ValidationError{
			Message: "invalid YouTube video URL - no valid video ID found",
		}
	case model.PlatformInstagram:
		if !instagramPattern.MatchString(parsed.Path) {
			return platform, &apperrors.ValidationError{
				Message: "invalid Instagram URL - must be a post, reel, or IGTV link",
			}
		}
	case model.PlatformTwitter:
		if !twitterPattern.MatchString(parsed.Path) {
			return platform, &apperrors.ValidationError{
				Message: "invalid Twitter URL - must be a tweet status link",
			}
		}
	case model.PlatformDoodstream:
		if !doodstreamPattern.MatchString(parsed.Path) {
			return platform, &apperrors.ValidationError{
				Message: "invalid Doodstream URL - must be a valid video or embed link",
			}
		}
	}

	return platform, nil
}
