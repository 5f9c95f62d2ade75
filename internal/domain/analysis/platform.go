package analysis

import "strings"

// Platform enum
type Platform string

const (
	PlatformTikTok    Platform = "TikTok"
	PlatformInstagram Platform = "Instagram"
	PlatformYouTube   Platform = "YouTube"
	PlatformTwitter   Platform = "Twitter"
	PlatformUnknown   Platform = "Unknown"
)

// Platforms is the closed set the analyzer may pick from, in prompt order.
var Platforms = []Platform{PlatformTikTok, PlatformInstagram, PlatformYouTube, PlatformTwitter}

// ParsePlatform maps a model-supplied name onto the closed set.
// Anything it does not recognize becomes PlatformUnknown.
func ParsePlatform(s string) Platform {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tiktok":
		return PlatformTikTok
	case "instagram":
		return PlatformInstagram
	case "youtube":
		return PlatformYouTube
	case "twitter", "x":
		return PlatformTwitter
	default:
		return PlatformUnknown
	}
}
