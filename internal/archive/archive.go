// Package archive moves a resolved video file into its archive directory and stamps it with the publish time.
//
// The sequence mkdir, chtimes, rename is not transactional. A failure after mkdir leaves an empty directory, and a
// failure after chtimes leaves the source in place with its new timestamps. The source file itself is never lost.
package archive

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/r3labs/diff/v3"
	"go.uber.org/zap"

	"github.com/alanbriolat/video-filer"
)

const dirPerm = 0775

// Plan is where and how a single file will be archived.
type Plan struct {
	SourcePath      string
	DestinationDir  string
	DestinationPath string
	Timestamp       time.Time
}

// NewPlan computes the Plan for sourceFile without touching the filesystem.
func NewPlan(naming video_filer.NamingConfig, sourceFile string, meta *video_filer.VideoMetadata) (Plan, error) {
	if err := meta.Validate(); err != nil {
		return Plan{}, err
	}
	dir, path, err := naming.Destination(sourceFile, meta)
	if err != nil {
		return Plan{}, err
	}
	return Plan{
		SourcePath:      sourceFile,
		DestinationDir:  dir,
		DestinationPath: path,
		Timestamp:       meta.PublishTime.Truncate(time.Second),
	}, nil
}

// FileState is the part of a file's state an archive run changes.
type FileState struct {
	Path    string    `diff:"path"`
	ModTime time.Time `diff:"mod_time"`
}

// Result describes a completed archive. TimestampErr is set if the publish time could not be applied; the file was
// still moved.
type Result struct {
	Plan
	Before       FileState
	After        FileState
	TimestampErr error
}

type Archiver struct {
	Naming video_filer.NamingConfig
}

func New(naming video_filer.NamingConfig) *Archiver {
	return &Archiver{Naming: naming}
}

// Archive moves sourceFile into the location described by meta. Every fatal failure is an *video_filer.ArchiveError;
// an existing file at the destination is never overwritten.
func (a *Archiver) Archive(ctx context.Context, sourceFile string, meta *video_filer.VideoMetadata) (*Result, error) {
	log := video_filer.Logger(ctx).Sugar().Named("archive")

	plan, err := NewPlan(a.Naming, sourceFile, meta)
	if err != nil {
		return nil, &video_filer.ArchiveError{Op: "plan", Path: sourceFile, Err: err}
	}
	info, err := os.Stat(plan.SourcePath)
	if err != nil {
		return nil, &video_filer.ArchiveError{Op: "move", Path: plan.SourcePath, Err: err}
	}
	if !info.Mode().IsRegular() {
		return nil, &video_filer.ArchiveError{Op: "move", Path: plan.SourcePath, Err: errors.New("not a regular file")}
	}
	res := &Result{
		Plan:   plan,
		Before: FileState{Path: plan.SourcePath, ModTime: info.ModTime()},
	}

	if err := os.MkdirAll(plan.DestinationDir, dirPerm); err != nil {
		return nil, &video_filer.ArchiveError{Op: "mkdir", Path: plan.DestinationDir, Err: err}
	}
	// Checked before chtimes so a collision leaves the source completely untouched.
	if err := ensureAbsent(plan.DestinationPath); err != nil {
		return nil, &video_filer.ArchiveError{Op: "move", Path: plan.DestinationPath, Err: err}
	}

	if err := chtimesFunc(plan.SourcePath, plan.Timestamp, plan.Timestamp); err != nil {
		res.TimestampErr = err
		log.Warnf("failed to set file time of %s: %v", plan.SourcePath, err)
	} else {
		log.Infof("file time set to %s", video_filer.FormatTime(plan.Timestamp))
	}

	if err := Rename(plan.SourcePath, plan.DestinationPath); err != nil {
		return nil, &video_filer.ArchiveError{Op: "move", Path: plan.DestinationPath, Err: err}
	}
	res.After = FileState{Path: plan.DestinationPath, ModTime: res.Before.ModTime}
	if info, err := os.Stat(plan.DestinationPath); err == nil {
		res.After.ModTime = info.ModTime()
	}
	logChanges(log, res.Before, res.After)
	return res, nil
}

func logChanges(log *zap.SugaredLogger, before, after FileState) {
	changes, err := diff.Diff(before, after)
	if err != nil {
		log.Errorf("failed to diff old and new file state: %v", err)
		return
	}
	for _, change := range changes {
		log.Debugf("%v: %#v -> %#v", change.Path, change.From, change.To)
	}
}
