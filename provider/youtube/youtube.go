// Package youtube recognises www.youtube.com watch URLs and resolves their metadata through the YouTube Data API,
// which needs an API key and, here, always goes through an HTTP proxy.
package youtube

import (
	"fmt"
	"regexp"

	"github.com/alanbriolat/video-filer"
)

const Name = "youtube"

var urlPattern = regexp.MustCompile(`^https://www\.youtube\.com/watch\?v=([a-zA-Z0-9_-]{11})`)

// Match extracts the video id from a youtube watch URL.
func Match(s string) (*video_filer.VideoReference, error) {
	m := urlPattern.FindStringSubmatch(s)
	if m == nil {
		return nil, fmt.Errorf("not a youtube watch URL")
	}
	return &video_filer.VideoReference{Platform: video_filer.PlatformYouTube, NativeID: m[1]}, nil
}

func New() video_filer.Provider {
	return video_filer.Provider{
		Name:     Name,
		Platform: video_filer.PlatformYouTube,
		Match:    Match,
		Priority: video_filer.PriorityDefault,
	}
}

func init() {
	video_filer.DefaultProviderRegistry.MustAdd(New())
}
