package youtube

import (
	"github.com/alanbriolat/video-filer"
)

// Config holds the settings the Data API client cannot work without.
type Config struct {
	APIKey    string
	ProxyHost string
	ProxyPort int
}

// Validate returns a *video_filer.ConfigurationError listing every missing setting, or nil.
func (c Config) Validate() error {
	var missing []string
	if c.APIKey == "" {
		missing = append(missing, "API key")
	}
	if c.ProxyHost == "" {
		missing = append(missing, "proxy host")
	}
	if c.ProxyPort <= 0 {
		missing = append(missing, "proxy port")
	}
	if len(missing) > 0 {
		return &video_filer.ConfigurationError{Platform: video_filer.PlatformYouTube, Missing: missing}
	}
	return nil
}
