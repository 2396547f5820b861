package output

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/pixelling/pixelling/src/job"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, fs afero.Fs, paths ...string) {
	for _, p := range paths {
		require.NoError(t, afero.WriteFile(fs, p, []byte{}, 0644))
	}
}

func TestResolveUnusedPath(t *testing.T) {
	fs := afero.NewMemMapFs()

	path, err := Resolve(fs, job.Destination{Path: "/out/result.png"})
	require.NoError(t, err)
	assert.Equal(t, "/out/result.png", path)
}

func TestResolveNumbersCollisions(t *testing.T) {
	fs := afero.NewMemMapFs()
	touch(t, fs, "/out/result.png")

	path, err := Resolve(fs, job.Destination{Path: "/out/result.png"})
	require.NoError(t, err)
	assert.Equal(t, "/out/result_1.png", path)

	touch(t, fs, "/out/result_1.png")
	path, err = Resolve(fs, job.Destination{Path: "/out/result.png"})
	require.NoError(t, err)
	assert.Equal(t, "/out/result_2.png", path)
}

func TestResolveKeepsInnerDots(t *testing.T) {
	fs := afero.NewMemMapFs()
	touch(t, fs, "/out/a.b.gif", "/out/a.b_1.gif", "/out/a.b_2.gif")

	path, err := Resolve(fs, job.Destination{Path: "/out/a.b.gif"})
	require.NoError(t, err)
	assert.Equal(t, "/out/a.b_3.gif", path)
}

func TestResolveOverwrite(t *testing.T) {
	fs := afero.NewMemMapFs()
	touch(t, fs, "/out/result.png")

	path, err := Resolve(fs, job.Destination{Path: "/out/result.png", Overwrite: true})
	require.NoError(t, err)
	assert.Equal(t, "/out/result.png", path)
}

func TestResolveWithoutExtension(t *testing.T) {
	fs := afero.NewMemMapFs()
	touch(t, fs, "/out/result")

	path, err := Resolve(fs, job.Destination{Path: "/out/result"})
	require.NoError(t, err)
	assert.Equal(t, "/out/result_1", path)
}

func TestDefaultPath(t *testing.T) {
	cases := map[string]string{
		"photo.jpg":            "photo_pixelling.jpg",
		"/tmp/in/anim.gif":     "/tmp/in/anim_pixelling.gif",
		"/tmp/in/noext":        "/tmp/in/noext_pixelling.png",
		"/tmp/in/archive.v2.png": "/tmp/in/archive.v2_pixelling.png",
		"/tmp/in/.hidden":      "/tmp/in/.hidden_pixelling.png",
	}

	for in, want := range cases {
		got, err := DefaultPath(in)
		require.NoError(t, err, in)
		assert.Equal(t, filepath.FromSlash(want), got, in)
	}
}

func TestDefaultPathNeedsFileName(t *testing.T) {
	for _, in := range []string{"", "/tmp/in/"} {
		_, err := DefaultPath(in)
		assert.True(t, errors.Is(err, job.ErrContent), in)
	}
}
