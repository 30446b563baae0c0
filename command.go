package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"rawconv/logger"
	"rawconv/render"
	"rawconv/resolve"

	flag "github.com/spf13/pflag"
)

type Config struct {
	Source       string
	Target       string
	Recursive    bool
	Denoise      bool
	DryRun       bool
	Format       render.Format
	Quality      int
	QualityAlpha int
	Speed        int
	LogLevel     slog.Level
	LogJSON      bool
	NoColor      bool
	ShowVersion  bool
	Version      string
}

var (
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

var (
	ErrUsage    = errors.New("invalid usage")
	ErrNoSource = errors.New("no input path specified")
)

const usageLine = "Usage: rawconv [options] <file or directory path>"

// ParseConfig builds the run configuration from command line arguments
// (without the program name), overlaid on environment defaults.
func ParseConfig(args []string, env envConfig, usage io.Writer) (*Config, error) {
	cfg := &Config{
		Version:  Version,
		LogLevel: slog.LevelInfo,
	}

	fs := flag.NewFlagSet("rawconv", flag.ContinueOnError)
	fs.SetOutput(usage)
	fs.SetNormalizeFunc(func(_ *flag.FlagSet, name string) flag.NormalizedName {
		return flag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})
	fs.Usage = func() {
		fmt.Fprintln(usage, usageLine)
		fmt.Fprintln(usage, "Options:")
		fs.PrintDefaults()
	}

	defaultFormat := string(render.FormatJPEG)
	if env.Format != "" {
		defaultFormat = env.Format
	}

	var (
		format    string
		noDenoise bool
		verbose   bool
	)

	fs.StringVarP(&cfg.Target, "target", "t", "", "Output file or folder (default: next to each input)")
	fs.BoolVarP(&cfg.Recursive, "recursive", "r", false, "Scan the source folder recursively and mirror its structure")
	fs.BoolVar(&noDenoise, "no-denoise", false, "Disable the denoising step")
	fs.BoolVarP(&cfg.DryRun, "dry-run", "n", false, "Print the resolved input/output pairs without converting")
	fs.StringVar(&format, "format", defaultFormat, "Output format: jpg or avif")
	fs.IntVar(&cfg.Quality, "quality", render.DefaultQuality, "Image quality (1-100, higher is better)")
	fs.IntVar(&cfg.QualityAlpha, "quality-alpha", render.DefaultQualityAlpha, "AVIF alpha channel quality (0-100)")
	fs.IntVar(&cfg.Speed, "speed", render.DefaultSpeed, "AVIF encoding speed (0-10, lower is better quality but slower)")
	fs.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	fs.BoolVar(&cfg.NoColor, "no-color", env.NoColor, "Disable coloured output")
	fs.BoolVar(&cfg.LogJSON, "log-json", env.LogJSON, "Write log records as JSON")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}

	if env.LogLevel != "" {
		level, err := logger.ParseLevel(env.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("%w: RAWCONV_LOG_LEVEL: %v", ErrUsage, err)
		}
		cfg.LogLevel = level
	}
	if verbose {
		cfg.LogLevel = slog.LevelDebug
	}

	if cfg.ShowVersion {
		return cfg, nil
	}

	f, err := render.ParseFormat(format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	cfg.Format = f
	cfg.Denoise = !noDenoise

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	switch fs.NArg() {
	case 0:
		fs.Usage()
		return nil, fmt.Errorf("%w: %w", ErrUsage, ErrNoSource)
	case 1:
	default:
		return nil, fmt.Errorf("%w: expected one source path, got %d", ErrUsage, fs.NArg())
	}

	cfg.Source = filepath.Clean(fs.Arg(0))

	if _, err := os.Stat(cfg.Source); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", resolve.ErrSourceNotFound, cfg.Source)
		}
		return nil, fmt.Errorf("error: %v", err)
	}

	return cfg, nil
}

func (cfg *Config) validate() error {
	if cfg.Quality < 1 || cfg.Quality > 100 {
		return fmt.Errorf("%w: quality must be in range 1-100", ErrUsage)
	}
	if cfg.QualityAlpha < 0 || cfg.QualityAlpha > 100 {
		return fmt.Errorf("%w: alpha quality must be in range 0-100", ErrUsage)
	}
	if cfg.Speed < 0 || cfg.Speed > 10 {
		return fmt.Errorf("%w: encoding speed must be in range 0-10", ErrUsage)
	}
	return nil
}

func (cfg *Config) ResolveOptions() resolve.Options {
	return resolve.Options{
		Recursive: cfg.Recursive,
		InputExt:  resolve.DefaultInputExt,
		OutputExt: cfg.Format.Ext(),
	}
}

func (cfg *Config) RenderOptions() render.Options {
	return render.Options{
		Quality:      cfg.Quality,
		QualityAlpha: cfg.QualityAlpha,
		Speed:        cfg.Speed,
		DenoiseSigma: render.DefaultDenoiseSigma,
	}
}

func (cfg *Config) LoggerOptions() *logger.Options {
	opts := logger.DefaultOptions()
	opts.Level = cfg.LogLevel
	opts.EnableJSON = cfg.LogJSON
	opts.EnableColors = !cfg.NoColor
	return opts
}
