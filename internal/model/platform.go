package model

// Platform is the source platform of a submitted video URL
type Platform string

const (
	PlatformYouTube    Platform = "youtube"
	PlatformInstagram  Platform = "instagram"
	PlatformTwitter    Platform = "twitter"
	PlatformDoodstream Platform = "doodstream"
	PlatformOther      Platform = "other"
)

// String returns the platform name
func (p Platform) String() string {
	return string(p)
}

// IsValid checks whether the platform is a known enum value
func (p Platform) IsValid() bool {
	switch p {
	case PlatformYouTube, PlatformInstagram, PlatformTwitter, PlatformDoodstream, PlatformOther:
		return true
	default:
		return false
	}
}

// AllPlatforms returns every supported platform
func AllPlatforms() []Platform {
	return []Platform{
		PlatformYouTube,
		PlatformInstagram,
		PlatformTwitter,
		PlatformDoodstream,
		PlatformOther,
	}
}
