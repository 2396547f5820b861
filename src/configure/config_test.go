package configure

import (
	"errors"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/pixelling/pixelling/src/image"
	"github.com/pixelling/pixelling/src/job"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) *Config {
	cfg, err := Parse(afero.NewMemMapFs(), args)
	require.NoError(t, err)
	return cfg
}

func TestPixelJob(t *testing.T) {
	j, err := parse(t, "/in/cat.png", "--mode", "pixel", "--block-size", "8").Job()
	require.NoError(t, err)

	assert.NotEmpty(t, j.ID)
	assert.Equal(t, "/in/cat.png", j.Input)
	assert.Equal(t, job.PixelMode, j.Request.Mode)
	require.NotNil(t, j.Request.Pixel)
	assert.Equal(t, 8, j.Request.Pixel.BlockSize)
	assert.Nil(t, j.Request.Grid)
	assert.Nil(t, j.Request.ColorCount)
	assert.False(t, j.Request.Dither)
	assert.Equal(t, job.Destination{Path: "/in/cat_pixelling.png"}, j.Destination)
}

func TestGridJob(t *testing.T) {
	cfg := parse(t, "in.gif", "--mode", "grid", "--grid-width", "32", "--grid-height", "16",
		"--color-count", "8", "--dither", "-o", "out.gif", "--overwrite")

	j, err := cfg.Job()
	require.NoError(t, err)

	assert.Equal(t, job.GridMode, j.Request.Mode)
	require.NotNil(t, j.Request.Grid)
	assert.Equal(t, job.Grid{Width: 32, Height: 16}, *j.Request.Grid)
	require.NotNil(t, j.Request.ColorCount)
	assert.Equal(t, 8, *j.Request.ColorCount)
	assert.True(t, j.Request.Dither)
	assert.Equal(t, job.Destination{Path: "out.gif", Overwrite: true}, j.Destination)
}

func TestExplicitZeroIsPresent(t *testing.T) {
	j, err := parse(t, "in.png", "--mode", "pixel", "--block-size", "0", "--color-count", "0").Job()
	require.NoError(t, err)
	assert.Equal(t, 0, j.Request.Pixel.BlockSize)
	require.NotNil(t, j.Request.ColorCount)
	assert.Equal(t, 0, *j.Request.ColorCount)
}

func TestModeArgumentConflicts(t *testing.T) {
	cases := map[string][]string{
		"pixel without block size": {"in.png", "--mode", "pixel"},
		"pixel with grid width":    {"in.png", "--mode", "pixel", "--block-size", "4", "--grid-width", "3"},
		"pixel with grid height":   {"in.png", "--mode", "pixel", "--block-size", "4", "--grid-height", "3"},
		"grid without height":      {"in.png", "--mode", "grid", "--grid-width", "3"},
		"grid without dims":        {"in.png", "--mode", "grid"},
		"grid with block size":     {"in.png", "--mode", "grid", "--grid-width", "3", "--grid-height", "3", "--block-size", "2"},
		"no mode":                  {"in.png", "--block-size", "2"},
		"no input":                 {"--mode", "pixel", "--block-size", "2"},
		"two inputs":               {"a.png", "b.png", "--mode", "pixel", "--block-size", "2"},
	}

	for name, args := range cases {
		_, err := parse(t, args...).Job()
		assert.True(t, errors.Is(err, job.ErrValidation), name)
	}
}

func TestUnsupportedMode(t *testing.T) {
	_, err := parse(t, "in.png", "--mode", "mosaic").Job()
	assert.True(t, errors.Is(err, job.ErrUnsupportedMode))
	assert.False(t, errors.Is(err, job.ErrValidation))
}

func TestEveryProblemReported(t *testing.T) {
	_, err := parse(t, "--block-size", "2").Job()

	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	assert.Len(t, merr.Errors, 2)
}

func TestDefaultPathNeedsStem(t *testing.T) {
	_, err := parse(t, "/in/", "--mode", "pixel", "--block-size", "2").Job()
	assert.True(t, errors.Is(err, job.ErrContent))
}

func TestConfigFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "pixelling.yaml", []byte("mode: grid\ngrid_width: 4\ngrid_height: 2\nduration: 60\nworkers: 3\nloop: 2\n"), 0644))

	cfg, err := Parse(fs, []string{"in.png", "--grid-height", "3"})
	require.NoError(t, err)

	j, err := cfg.Job()
	require.NoError(t, err)
	assert.Equal(t, job.Grid{Width: 4, Height: 3}, *j.Request.Grid)
	assert.Equal(t, image.AnimationDefaults{LoopCount: 2, Duration: 60}, cfg.AnimationDefaults())
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestBrokenConfigFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "broken.yaml", []byte("mode: [grid\n"), 0644))

	_, err := Parse(fs, []string{"in.png", "--config", "broken.yaml"})
	assert.Error(t, err)
}

func TestEnvironment(t *testing.T) {
	t.Setenv("PIXELLING_COLOR_COUNT", "12")
	t.Setenv("PIXELLING_MODE", "pixel")

	j, err := parse(t, "in.png", "--block-size", "3").Job()
	require.NoError(t, err)
	assert.Equal(t, job.PixelMode, j.Request.Mode)
	require.NotNil(t, j.Request.ColorCount)
	assert.Equal(t, 12, *j.Request.ColorCount)
}

func TestDefaults(t *testing.T) {
	cfg := parse(t, "in.png")

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "pixelling.yaml", cfg.Config)
	assert.Equal(t, 1, cfg.Workers)
	assert.False(t, cfg.JSON)
	assert.Equal(t, image.AnimationDefaults{LoopCount: 0, Duration: 100}, cfg.AnimationDefaults())

	cfg = parse(t, "in.png", "--loop", "3", "--duration", "40", "--workers", "4")
	assert.Equal(t, image.AnimationDefaults{LoopCount: 3, Duration: 40}, cfg.AnimationDefaults())
	assert.Equal(t, 4, cfg.Workers)
}

func TestHelp(t *testing.T) {
	_, err := Parse(afero.NewMemMapFs(), []string{"--help"})
	assert.ErrorIs(t, err, pflag.ErrHelp)
}
