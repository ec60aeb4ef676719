package video_filer

import (
	"strings"
	"time"

	"github.com/alanbriolat/video-filer/generic"
)

// TimeLayout is how publish times are shown on the console.
const TimeLayout = "2006-01-02 15:04:05"

// Characters that may not appear in a file or directory name we create.
var forbiddenNameChars = generic.NewSet('/', '\\', ':', '?', '<', '>', '*', '"')

// VideoMetadata is the platform-agnostic result of resolving a VideoReference.
type VideoMetadata struct {
	Platform Platform
	// ID is the canonical video ID returned by the API (bilibili IDs have their "BV" prefix stripped).
	ID string
	// Title is the raw title; use SanitizeName before putting it in a path.
	Title       string
	PublishTime time.Time
	// UploaderID is the numeric user ID (bilibili) or the channel handle without its "@" (youtube).
	UploaderID   string
	UploaderName string
}

// Validate returns a *MissingFieldError naming the first unpopulated field, or nil.
func (m *VideoMetadata) Validate() error {
	switch {
	case m == nil:
		return &MissingFieldError{Field: "metadata"}
	case m.Platform == PlatformUnknown:
		return &MissingFieldError{Field: "platform"}
	case m.ID == "":
		return &MissingFieldError{Field: "id"}
	case m.Title == "":
		return &MissingFieldError{Field: "title"}
	case m.PublishTime.IsZero():
		return &MissingFieldError{Field: "publishTime"}
	case m.UploaderID == "":
		return &MissingFieldError{Field: "uploaderId"}
	case m.UploaderName == "":
		return &MissingFieldError{Field: "uploaderName"}
	}
	return nil
}

// SanitizeName strips every character that is not allowed in a file name. It is idempotent.
func SanitizeName(s string) string {
	return strings.Map(func(r rune) rune {
		if forbiddenNameChars.Contains(r) {
			return -1
		}
		return r
	}, s)
}

// FormatTime renders t in local time with second precision, e.g. "2023-11-14 22:13:20".
func FormatTime(t time.Time) string {
	return t.Local().Format(TimeLayout)
}
