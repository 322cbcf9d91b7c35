package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/glyphart/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	prefsPath := flag.String("prefs", "", "override prefs path (optional)")
	endpoint := flag.String("endpoint", "", "conversion service upload URL (optional)")
	file := flag.String("file", "", "convert this image and exit without the TUI")
	outDir := flag.String("out", "", "directory for downloaded results (optional)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath:  *configPath,
		PrefsPath:   *prefsPath,
		Endpoint:    *endpoint,
		DownloadDir: *outDir,
		InputPath:   *file,
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "glyphart: %v\n", err)
		return 1
	}
	return 0
}
