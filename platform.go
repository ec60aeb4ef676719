package video_filer

// Platform identifies which video site a VideoReference belongs to.
type Platform int

const (
	PlatformUnknown Platform = iota
	PlatformBilibili
	PlatformYouTube
)

func (p Platform) String() string {
	switch p {
	case PlatformBilibili:
		return "bilibili"
	case PlatformYouTube:
		return "youtube"
	default:
		return "unknown"
	}
}

// Domain is the site domain used when naming archive directories.
func (p Platform) Domain() string {
	switch p {
	case PlatformBilibili:
		return "bilibili.com"
	case PlatformYouTube:
		return "youtube.com"
	default:
		return ""
	}
}

// A VideoReference is the result of a Provider successfully matching a URL.
type VideoReference struct {
	Platform Platform
	// NativeID is the identifier exactly as captured from the URL, e.g. "BV1xx411c7mD" or "dQw4w9WgXcQ".
	NativeID string
}

func (r VideoReference) String() string {
	return r.Platform.String() + ":" + r.NativeID
}
