// Command sketchdemo renders a YAML scene with the sketch library through
// the software backend and writes PNG frames.
//
// Usage:
//
//	sketchdemo [-scene scene.yaml] [-output demo.png] [-frames n]
//
// With more than one frame, -output may contain a %d verb for the frame
// number; otherwise the number is added before the extension.
package main

import (
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/gogpu/sketch"
	"github.com/gogpu/sketch/backend/software"
)

//go:embed demo.yaml
var demoScene []byte

type config struct {
	width, height int
	output        string
	scene         string
	frames        int
	quality       string
	logFile       string
	verbose       bool
}

func parseFlags(args []string) (*config, error) {
	var cfg config
	fs := flag.NewFlagSet("sketchdemo", flag.ContinueOnError)
	fs.IntVar(&cfg.width, "width", 0, "image width (default: scene width)")
	fs.IntVar(&cfg.height, "height", 0, "image height (default: scene height)")
	fs.StringVar(&cfg.output, "output", "demo.png", "output PNG path")
	fs.StringVar(&cfg.scene, "scene", "", "YAML scene file (default: built-in demo)")
	fs.IntVar(&cfg.frames, "frames", 1, "number of frames to render")
	fs.StringVar(&cfg.quality, "quality", "", "curve quality: very-high, high, medium, low, very-low")
	fs.StringVar(&cfg.logFile, "log-file", "", "write JSON logs to this rotating file")
	fs.BoolVar(&cfg.verbose, "v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cfg.frames < 1 {
		return nil, fmt.Errorf("invalid frame count %d", cfg.frames)
	}
	if cfg.width < 0 || cfg.height < 0 {
		return nil, fmt.Errorf("invalid size %dx%d", cfg.width, cfg.height)
	}
	return &cfg, nil
}

// newLogger returns a text logger on stderr, or a JSON logger on a
// rotating file when path is set.
func newLogger(path string, verbose bool) (*slog.Logger, io.Closer) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if path == "" {
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), io.NopCloser(nil)
	}
	w := &lumberjack.Logger{Filename: path, MaxSize: 10, MaxBackups: 3, MaxAge: 28, Compress: true}
	return slog.New(slog.NewJSONHandler(w, opts)), w
}

// framePath returns the output path of frame i of n.
func framePath(pattern string, i, n int) string {
	if n == 1 {
		return pattern
	}
	if strings.Contains(pattern, "%") {
		return fmt.Sprintf(pattern, i)
	}
	ext := filepath.Ext(pattern)
	return fmt.Sprintf("%s-%03d%s", strings.TrimSuffix(pattern, ext), i, ext)
}

func run(args []string) error {
	cfg, err := parseFlags(args)
	if err != nil {
		return err
	}
	logger, closer := newLogger(cfg.logFile, cfg.verbose)
	defer closer.Close()
	sketch.SetLogger(logger)

	var scene *Scene
	if cfg.scene == "" {
		scene, err = ParseScene(demoScene)
	} else {
		scene, err = LoadScene(cfg.scene)
	}
	if err != nil {
		return err
	}
	if cfg.width > 0 {
		scene.Width = cfg.width
	}
	if cfg.height > 0 {
		scene.Height = cfg.height
	}
	quality := scene.Quality
	if cfg.quality != "" {
		quality = cfg.quality
	}
	level := sketch.Medium
	if quality != "" {
		if level, err = sketch.ParseLevel(quality); err != nil {
			return err
		}
	}

	dev := software.New(scene.Width, scene.Height)
	c, err := sketch.NewContext(dev, sketch.WithQuality(level))
	if err != nil {
		return err
	}
	defer c.Close()
	font, err := loadFont(c, scene)
	if err != nil {
		return err
	}

	var bar *progressbar.ProgressBar
	if cfg.frames > 1 {
		bar = progressbar.Default(int64(cfg.frames), "rendering")
		defer bar.Close()
	}
	for i := range cfg.frames {
		c.ResetStats()
		if err := drawFrame(c, scene, font, i); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		path := framePath(cfg.output, i, cfg.frames)
		if err := writePNG(path, dev); err != nil {
			return err
		}
		st := c.Stats()
		logger.Debug("frame rendered", "frame", i, "path", path,
			"draws", st.DrawCalls, "flushes", st.Flushes, "vertices", st.Vertices, "triangles", dev.Triangles())
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	logger.Info("done", "frames", cfg.frames, "width", scene.Width, "height", scene.Height, "output", cfg.output)
	return nil
}

func writePNG(path string, dev *software.Device) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return png.Encode(f, dev.Image())
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "sketchdemo: %v\n", err)
		os.Exit(1)
	}
}
