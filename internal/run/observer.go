package run

import (
	"go.uber.org/zap"

	"github.com/alanbriolat/video-filer"
	"github.com/alanbriolat/video-filer/internal/archive"
)

// Observer is told about each step of a Runner as it completes.
type Observer interface {
	Classified(m *video_filer.Match)
	Resolved(meta *video_filer.VideoMetadata)
	Archived(res *archive.Result)
	Unrecognized(url string, err error)
	Failed(out *Outcome)
}

type NopObserver struct{}

func (NopObserver) Classified(*video_filer.Match) {}
func (NopObserver) Resolved(*video_filer.VideoMetadata) {}
func (NopObserver) Archived(*archive.Result) {}
func (NopObserver) Unrecognized(string, error) {}
func (NopObserver) Failed(*Outcome) {}

// LogObserver reports progress through a zap logger.
type LogObserver struct {
	Log *zap.SugaredLogger
}

func (o LogObserver) Classified(m *video_filer.Match) {
	o.Log.Debugf("matched %s with provider %s", m.Reference, m.ProviderName)
}

func (o LogObserver) Resolved(meta *video_filer.VideoMetadata) {
	o.Log.Infof("ID:          %s", meta.ID)
	o.Log.Infof("Title:       %s", meta.Title)
	o.Log.Infof("PublishTime: %s", video_filer.FormatTime(meta.PublishTime))
}

func (o LogObserver) Archived(res *archive.Result) {
	o.Log.Infof("File moved to %s", res.DestinationPath)
}

func (o LogObserver) Unrecognized(url string, err error) {
	o.Log.Infof("Nothing to do, URL not recognized: %s", url)
	o.Log.Debug(err.Error())
}

func (o LogObserver) Failed(out *Outcome) {
	switch {
	case video_filer.IsConfigurationError(out.Err):
		o.Log.Errorf("Configuration error: %v", out.Err)
	case video_filer.IsResolutionError(out.Err):
		o.Log.Errorf("Could not fetch video metadata: %v", out.Err)
	case video_filer.IsArchiveError(out.Err):
		o.Log.Errorf("Could not archive file: %v", out.Err)
	default:
		o.Log.Errorf("Failed: %v", out.Err)
	}
}
