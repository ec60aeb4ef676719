// Package providers registers every built-in provider with video_filer.DefaultProviderRegistry when imported.
package providers

import (
	_ "github.com/alanbriolat/video-filer/provider/bilibili"
	_ "github.com/alanbriolat/video-filer/provider/youtube"
)
