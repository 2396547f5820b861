package configure

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/hashicorp/go-multierror"
	jsoniter "github.com/json-iterator/go"
	"github.com/pixelling/pixelling/src/image"
	"github.com/pixelling/pixelling/src/job"
	"github.com/pixelling/pixelling/src/output"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const EnvPrefix = "PIXELLING"

func checkErr(err error) {
	if err != nil {
		logrus.WithError(err).Fatal("config")
	}
}

// New parses the process arguments. -h exits 0, anything else that fails is
// fatal.
func New() *Config {
	cfg, err := Parse(afero.NewOsFs(), os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		os.Exit(0)
	}
	checkErr(err)

	initLogging(cfg.LogLevel, cfg.NoLogs)

	return cfg
}

// flag name -> config key
var flagKeys = map[string]string{
	"config":      "config",
	"log_level":   "log_level",
	"noheader":    "noheader",
	"nologs":      "nologs",
	"json":        "json",
	"mode":        "mode",
	"block-size":  "block_size",
	"grid-width":  "grid_width",
	"grid-height": "grid_height",
	"color-count": "color_count",
	"dither":      "dither",
	"output":      "output",
	"overwrite":   "overwrite",
	"workers":     "workers",
	"loop":        "loop",
	"duration":    "duration",
}

// keys whose presence, not value, decides validation
var presenceKeys = []string{"block_size", "grid_width", "grid_height", "color_count"}

// Parse builds a Config from defaults, an optional yaml file, PIXELLING_*
// environment variables and args, later sources winning.
func Parse(afs afero.Fs, args []string) (*Config, error) {
	config := viper.New()
	config.SetFs(afs)
	config.SetConfigType("yaml")

	b, err := json.Marshal(Config{
		LogLevel: "info",
		Config:   "pixelling.yaml",
		Workers:  1,
		Loop:     0,
		Duration: 100,
	})
	if err != nil {
		return nil, err
	}

	tmp := viper.New()
	tmp.SetConfigType("json")
	if err := tmp.ReadConfig(bytes.NewBuffer(b)); err != nil {
		return nil, err
	}
	for k, v := range tmp.AllSettings() {
		config.SetDefault(k, v)
	}

	flags := pflag.NewFlagSet("pixelling", pflag.ContinueOnError)
	flags.String("config", "pixelling.yaml", "Config file location")
	flags.String("log_level", "info", "Log level (trace, debug, info, warn, error)")
	flags.Bool("noheader", false, "Disable the startup header")
	flags.Bool("nologs", false, "Disable logging")
	flags.Bool("json", false, "Print the result summary as json")
	flags.String("mode", "", "Transformation mode: 'pixel' keeps the image size, 'grid' resizes to a fixed grid")
	flags.Int("block-size", 0, "Required for pixel mode. Size of each pixel block")
	flags.Int("grid-width", 0, "Required for grid mode. Target output width in pixels")
	flags.Int("grid-height", 0, "Required for grid mode. Target output height in pixels")
	flags.Int("color-count", 0, "Optional number of palette colors")
	flags.Bool("dither", false, "Use Floyd-Steinberg dithering when reducing colors")
	flags.StringP("output", "o", "", "Output image path, defaults to <input>_pixelling<ext>")
	flags.Bool("overwrite", false, "Overwrite the output file if it already exists")
	flags.Int("workers", 1, "Frames transformed concurrently for animated input")
	flags.Int("loop", 0, "Loop count used when an animation carries none (0 = forever)")
	flags.Int("duration", 100, "Frame duration in ms used when an animation carries none")
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: pixelling <input> --mode pixel|grid [flags]")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	for name, key := range flagKeys {
		if err := config.BindPFlag(key, flags.Lookup(name)); err != nil {
			return nil, err
		}
	}

	config.SetEnvPrefix(EnvPrefix)
	config.AllowEmptyEnv(true)
	config.AutomaticEnv()

	config.SetConfigFile(config.GetString("config"))
	if err := config.MergeInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config file: %w", err)
	}

	cfg := Config{}
	if err := config.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if flags.NArg() > 0 {
		cfg.Input = flags.Arg(0)
	}
	cfg.extraArgs = flags.NArg() - 1

	cfg.set = map[string]bool{}
	for _, key := range presenceKeys {
		cfg.set[key] = config.IsSet(key)
	}

	return &cfg, nil
}

type Config struct {
	LogLevel string `json:"log_level,omitempty" mapstructure:"log_level,omitempty"`
	Config   string `json:"config,omitempty" mapstructure:"config,omitempty"`
	NoHeader bool   `json:"noheader,omitempty" mapstructure:"noheader,omitempty"`
	NoLogs   bool   `json:"nologs,omitempty" mapstructure:"nologs,omitempty"`
	JSON     bool   `json:"json,omitempty" mapstructure:"json,omitempty"`

	Input      string `json:"input,omitempty" mapstructure:"input,omitempty"`
	Mode       string `json:"mode,omitempty" mapstructure:"mode,omitempty"`
	BlockSize  int    `json:"block_size,omitempty" mapstructure:"block_size,omitempty"`
	GridWidth  int    `json:"grid_width,omitempty" mapstructure:"grid_width,omitempty"`
	GridHeight int    `json:"grid_height,omitempty" mapstructure:"grid_height,omitempty"`
	ColorCount int    `json:"color_count,omitempty" mapstructure:"color_count,omitempty"`
	Dither     bool   `json:"dither,omitempty" mapstructure:"dither,omitempty"`
	Output     string `json:"output,omitempty" mapstructure:"output,omitempty"`
	Overwrite  bool   `json:"overwrite,omitempty" mapstructure:"overwrite,omitempty"`

	Workers  int `json:"workers,omitempty" mapstructure:"workers,omitempty"`
	Loop     int `json:"loop,omitempty" mapstructure:"loop,omitempty"`
	Duration int `json:"duration,omitempty" mapstructure:"duration,omitempty"`

	set       map[string]bool
	extraArgs int
}

// IsSet reports whether key was given on the command line, in the
// environment or in the config file.
func (c *Config) IsSet(key string) bool {
	return c.set[key]
}

func (c *Config) AnimationDefaults() image.AnimationDefaults {
	return image.AnimationDefaults{
		LoopCount: c.Loop,
		Duration:  c.Duration,
	}
}

// Job validates the mode arguments and builds the job they describe. Every
// problem found is reported, not just the first.
func (c *Config) Job() (job.Job, error) {
	var err error

	if c.Input == "" {
		err = multierror.Append(err, job.ValidationError("an input image path is required"))
	}
	if c.extraArgs > 0 {
		err = multierror.Append(err, job.ValidationError("expected one input image path, got %d", c.extraArgs+1))
	}

	var req job.Request

	switch job.Mode(c.Mode) {
	case job.PixelMode:
		if !c.IsSet("block_size") {
			err = multierror.Append(err, job.ValidationError("block size must be provided for pixel mode"))
		}
		if c.IsSet("grid_width") || c.IsSet("grid_height") {
			err = multierror.Append(err, job.ValidationError("grid width and height should not be provided for pixel mode"))
		}
		req = job.NewPixelRequest(c.BlockSize)
	case job.GridMode:
		if !c.IsSet("grid_width") || !c.IsSet("grid_height") {
			err = multierror.Append(err, job.ValidationError("grid width and height must be provided for grid mode"))
		}
		if c.IsSet("block_size") {
			err = multierror.Append(err, job.ValidationError("block size should not be provided for grid mode"))
		}
		req = job.NewGridRequest(c.GridWidth, c.GridHeight)
	case "":
		err = multierror.Append(err, job.ValidationError("--mode is required"))
	default:
		err = multierror.Append(err, job.UnsupportedModeError(job.Mode(c.Mode)))
	}

	if c.IsSet("color_count") {
		req = req.WithColorCount(c.ColorCount)
	}
	req = req.WithDither(c.Dither)

	if err != nil {
		return job.Job{}, err
	}

	dest := job.Destination{
		Path:      c.Output,
		Overwrite: c.Overwrite,
	}
	if dest.Path == "" {
		if dest.Path, err = output.DefaultPath(c.Input); err != nil {
			return job.Job{}, err
		}
	}

	return job.New(c.Input, req, dest), nil
}
