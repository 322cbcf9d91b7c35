package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/five82/glyphart/internal/config"
	"github.com/five82/glyphart/internal/glyphsvc"
	"github.com/five82/glyphart/internal/prefs"
	"github.com/five82/glyphart/internal/state"
	"github.com/five82/glyphart/internal/ui"
	"github.com/five82/glyphart/internal/upload"
)

// Options configure the glyphart application.
type Options struct {
	ConfigPath  string
	PrefsPath   string // empty uses default ~/.config/glyphart/prefs.toml
	Endpoint    string // overrides the configured endpoint
	DownloadDir string // overrides the configured download directory
	InputPath   string // non-empty converts this file without starting the TUI
}

// Run boots glyphart until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.Endpoint != "" {
		cfg.Endpoint = opts.Endpoint
	}
	if opts.DownloadDir != "" {
		dir, err := config.ExpandPath(opts.DownloadDir)
		if err != nil {
			return fmt.Errorf("resolve download dir: %w", err)
		}
		cfg.DownloadDir = dir
	}

	headless := opts.InputPath != ""
	closeLog, err := setupLogging(cfg.LogFile, headless)
	if err != nil {
		return err
	}
	defer closeLog()

	client, err := glyphsvc.NewClient(cfg.Endpoint)
	if err != nil {
		return fmt.Errorf("init service client: %w", err)
	}
	log.Info().Str("endpoint", client.Endpoint()).Bool("headless", headless).Msg("glyphart starting")

	if headless {
		path, err := convertFile(ctx, client, cfg, opts.InputPath)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, path)
		return nil
	}

	userPrefs := prefs.Load(opts.PrefsPath)
	store := &state.Store{}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	notices := make(chan string, 1)
	controller := upload.NewController(client, upload.Options{
		Notifier:     channelNotifier(ctx, notices),
		DownloadName: cfg.DownloadName,
	})

	// Populate the header before the first frame.
	_ = refresh(ctx, store, client)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return RunPoller(gctx, store, client, cfg.HealthInterval)
	})
	g.Go(func() error {
		defer cancel()
		return ui.Run(ui.Options{
			Context:    gctx,
			Controller: controller,
			Notices:    notices,
			Store:      store,
			Config:     &cfg,
			Endpoint:   client.Endpoint(),
			ThemeName:  userPrefs.Theme,
			StartDir:   userPrefs.LastDir,
			PrefsPath:  opts.PrefsPath,
		})
	})
	return g.Wait()
}

// channelNotifier forwards failure notices to the UI. Delivery is abandoned
// once ctx is done so a late settle never blocks after the UI exits.
func channelNotifier(ctx context.Context, notices chan<- string) upload.Notifier {
	return upload.NotifierFunc(func(message string) {
		select {
		case notices <- message:
		case <-ctx.Done():
		}
	})
}

// convertFile runs one selection, submission and download cycle. The failure
// notice becomes the returned error.
func convertFile(ctx context.Context, uploader upload.Uploader, cfg config.Config, path string) (string, error) {
	input, err := upload.LoadInput(path)
	if err != nil {
		return "", err
	}
	if !input.IsImage() {
		log.Warn().Str("input", input.Name).Str("mime", input.MIMEType).Msg("input does not look like an image")
	}

	var notice string
	controller := upload.NewController(uploader, upload.Options{
		Notifier:     upload.NotifierFunc(func(message string) { notice = message }),
		DownloadName: cfg.DownloadName,
	})
	controller.Select(input)
	if !controller.Submit(ctx) {
		return "", errors.New("submission rejected")
	}
	if notice != "" {
		return "", errors.New(notice)
	}

	written, err := controller.Download(cfg.DownloadDir)
	if err != nil {
		return "", err
	}
	if written == "" {
		return "", errors.New(upload.MsgGeneric)
	}
	return written, nil
}
