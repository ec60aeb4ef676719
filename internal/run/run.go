// Package run drives one archive: classify the URL, resolve its metadata, move the file, record the result.
package run

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alanbriolat/video-filer"
	"github.com/alanbriolat/video-filer/internal/archive"
	"github.com/alanbriolat/video-filer/internal/history"
)

type State string

const (
	StateStart        State = "start"
	StateClassified   State = "classified"
	StateResolved     State = "resolved"
	StateArchived     State = "archived"
	StateDone         State = "done"
	StateUnrecognized State = "unrecognized"
	StateFailed       State = "failed"
)

// Outcome is the final state of a run. Err is set when State is StateFailed or StateUnrecognized.
type Outcome struct {
	State     State
	Reference *video_filer.VideoReference
	Metadata  *video_filer.VideoMetadata
	Archive   *archive.Result
	Err       error
}

// Archiver is the part of *archive.Archiver a Runner needs.
type Archiver interface {
	Archive(ctx context.Context, sourceFile string, meta *video_filer.VideoMetadata) (*archive.Result, error)
}

type Runner struct {
	Registry  *video_filer.ProviderRegistry
	Resolvers map[video_filer.Platform]video_filer.Resolver
	Archiver  Archiver
	History   history.Store
	Observer  Observer
	// Now is used for history timestamps.
	Now func() time.Time
}

// Run processes a single file/URL pair. Steps run strictly in order and the first failure stops the run; the
// returned error is the same as Outcome.Err, except that an unrecognized URL is not an error.
func (r *Runner) Run(ctx context.Context, sourceFile string, url string) (*Outcome, error) {
	log := video_filer.Logger(ctx).Sugar().Named("run")
	obs := r.observer()
	out := &Outcome{State: StateStart}
	fail := func(err error) (*Outcome, error) {
		out.State = StateFailed
		out.Err = err
		obs.Failed(out)
		return out, err
	}

	match, err := r.Registry.Match(url)
	if err != nil {
		if errors.Is(err, video_filer.ErrNotRecognized) {
			out.State = StateUnrecognized
			out.Err = err
			obs.Unrecognized(url, err)
			return out, nil
		}
		return fail(err)
	}
	out.State = StateClassified
	out.Reference = &match.Reference
	obs.Classified(match)

	resolver, ok := r.Resolvers[match.Reference.Platform]
	if !ok || resolver == nil {
		return fail(fmt.Errorf("%w: %v", video_filer.ErrNoResolver, match.Reference.Platform))
	}
	meta, err := resolver.Resolve(ctx, match.Reference)
	if err != nil {
		return fail(err)
	}
	if err := meta.Validate(); err != nil {
		return fail(&video_filer.ResolutionError{Platform: match.Reference.Platform, VideoID: match.Reference.NativeID, Err: err})
	}
	out.State = StateResolved
	out.Metadata = meta
	obs.Resolved(meta)

	res, err := r.Archiver.Archive(ctx, sourceFile, meta)
	if err != nil {
		return fail(err)
	}
	out.State = StateArchived
	out.Archive = res
	obs.Archived(res)

	if r.History != nil {
		entry := &history.Entry{
			Platform:        meta.Platform.String(),
			VideoID:         meta.ID,
			Title:           meta.Title,
			UploaderID:      meta.UploaderID,
			UploaderName:    meta.UploaderName,
			SourcePath:      res.SourcePath,
			DestinationPath: res.DestinationPath,
			PublishedAt:     meta.PublishTime,
			ArchivedAt:      r.now(),
		}
		if err := r.History.Record(entry); err != nil {
			log.Warnf("failed to record history: %v", err)
		}
	}

	out.State = StateDone
	return out, nil
}

func (r *Runner) observer() Observer {
	if r.Observer == nil {
		return NopObserver{}
	}
	return r.Observer
}

func (r *Runner) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}
