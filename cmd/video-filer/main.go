package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/k0kubun/pp/v3"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/alanbriolat/video-filer"
	"github.com/alanbriolat/video-filer/async"
	"github.com/alanbriolat/video-filer/internal/archive"
	"github.com/alanbriolat/video-filer/internal/history"
	"github.com/alanbriolat/video-filer/internal/run"
	"github.com/alanbriolat/video-filer/provider/bilibili"
	"github.com/alanbriolat/video-filer/provider/youtube"
	_ "github.com/alanbriolat/video-filer/providers"
)

const (
	exitOK = iota
	exitFailure
	exitConfiguration
	exitUnrecognized
)

var errUsage = errors.New("both --file and --url are required")

func main() {
	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.Level.SetLevel(zapcore.InfoLevel)
	logger, err := config.Build()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	zap.RedirectStdLog(logger)
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	ctx = video_filer.WithLogger(ctx, logger)

	app := newApp(config.Level)
	result := async.Run(func() error { return app.RunContext(ctx, os.Args) })

	select {
	case err = <-result:
	case <-ctx.Done():
		logger.Error(ctx.Err().Error())
		stop()
		err = <-result
	}
	stop()
	_ = logger.Sync()
	os.Exit(exitCode(err))
}

func newApp(level zap.AtomicLevel) *cli.App {
	return &cli.App{
		Name:      "video-filer",
		Usage:     "move a downloaded video into an archive directory named after its uploader",
		UsageText: "video-filer --file FILE --url URL [options]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "downloaded video `FILE` to archive",
			},
			&cli.StringFlag{
				Name:    "url",
				Aliases: []string{"u"},
				Usage:   "`URL` the video was downloaded from",
			},
			&cli.StringFlag{
				Name:    "youtube-api-key",
				Usage:   "YouTube Data API `KEY`",
				EnvVars: []string{"YOUTUBE_API_KEY"},
			},
			&cli.StringFlag{
				Name:    "proxy-host",
				Usage:   "`HOST` of the HTTP proxy used for YouTube requests",
				EnvVars: []string{"VIDEO_FILER_PROXY_HOST"},
			},
			&cli.IntFlag{
				Name:    "proxy-port",
				Usage:   "`PORT` of the HTTP proxy used for YouTube requests",
				EnvVars: []string{"VIDEO_FILER_PROXY_PORT"},
			},
			&cli.StringFlag{
				Name:    "history",
				Usage:   "record archived videos in `PATH` (.sqlite3 for SQLite, anything else for bbolt)",
				EnvVars: []string{"VIDEO_FILER_HISTORY"},
			},
			&cli.StringFlag{
				Name:  "dir-template",
				Usage: "archive directory `TEMPLATE`, relative to the file's directory",
				Value: video_filer.DefaultDirTemplate,
			},
			&cli.StringFlag{
				Name:  "name-template",
				Usage: "archived file name `TEMPLATE`",
				Value: video_filer.DefaultFileTemplate,
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "give up after `DURATION` (0 waits forever)",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "exit non-zero when the URL is not recognized",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("verbose") {
				level.SetLevel(zapcore.DebugLevel)
			}
			return nil
		},
		Action: archiveAction,
		Commands: []*cli.Command{
			{
				Name:   "history",
				Usage:  "list previously archived videos",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "dump",
						Usage: "print every stored field of each entry",
					},
				},
				Action: historyAction,
			},
		},
		HideHelpCommand: true,
		// Exit codes are decided by main once the logger has been flushed.
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

func archiveAction(c *cli.Context) error {
	logger := video_filer.Logger(c.Context)
	file, url := c.String("file"), c.String("url")
	if file == "" || url == "" {
		_ = cli.ShowAppHelp(c)
		return errUsage
	}

	naming, err := video_filer.ParseNamingConfig(c.String("dir-template"), c.String("name-template"))
	if err != nil {
		return err
	}
	store, err := history.Open(c.String("history"), logger)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer store.Close()

	ctx := c.Context
	if timeout := c.Duration("timeout"); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	runner := &run.Runner{
		Registry: &video_filer.DefaultProviderRegistry,
		Resolvers: map[video_filer.Platform]video_filer.Resolver{
			video_filer.PlatformBilibili: bilibili.NewClient(nil),
			video_filer.PlatformYouTube: youtube.NewClient(youtube.Config{
				APIKey:    c.String("youtube-api-key"),
				ProxyHost: c.String("proxy-host"),
				ProxyPort: c.Int("proxy-port"),
			}),
		},
		Archiver: archive.New(naming),
		History:  store,
		Observer: run.LogObserver{Log: logger.Sugar()},
	}
	out, err := runner.Run(ctx, file, url)
	if err != nil {
		return err
	}
	if out.State == run.StateUnrecognized && c.Bool("strict") {
		return out.Err
	}
	return nil
}

func historyAction(c *cli.Context) error {
	path := c.String("history")
	if path == "" {
		return errors.New("--history is required")
	}
	store, err := history.Open(path, video_filer.Logger(c.Context))
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer store.Close()
	entries, err := store.List()
	if err != nil {
		return err
	}
	if c.Bool("dump") {
		printer := pp.New()
		printer.SetColoringEnabled(false)
		_, err = printer.Fprintln(c.App.Writer, entries)
		return err
	}
	w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ARCHIVED\tPLATFORM\tID\tUPLOADER\tTITLE\tPATH")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s(%s)\t%s\t%s\n",
			video_filer.FormatTime(e.ArchivedAt), e.Platform, e.VideoID, e.UploaderName, e.UploaderID, e.Title, e.DestinationPath)
	}
	return w.Flush()
}

// exitCode maps a run's error to the process exit status. An unrecognized URL only reaches here with --strict.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, video_filer.ErrNotRecognized):
		return exitUnrecognized
	case video_filer.IsConfigurationError(err):
		return exitConfiguration
	default:
		zap.S().Error(err.Error())
		return exitFailure
	}
}
