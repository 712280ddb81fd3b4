package harsight

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptions_defaults(t *testing.T) {
	var o *Options
	o, err := o.parse()
	require.NoError(t, err)

	require.Equal(t, runtime.NumCPU(), o.Workers)
	require.Equal(t, 64, o.MaxDepth)
	require.NotNil(t, o.OnError)
}

func TestOptions_overrides(t *testing.T) {
	var onErr error

	o, err := (&Options{
		Workers:  2,
		MaxDepth: 16,
		OnError:  func(e error) { onErr = e },
	}).parse()
	require.NoError(t, err)

	require.Equal(t, 2, o.Workers)
	require.Equal(t, 16, o.MaxDepth)
	require.Nil(t, onErr)
}

func TestOptions_env(t *testing.T) {
	t.Setenv("HARSIGHT_WORKERS", "7")
	t.Setenv("HARSIGHT_MAX_DEPTH", "12")

	o, err := (&Options{}).parse()
	require.NoError(t, err)

	require.Equal(t, 7, o.Workers)
	require.Equal(t, 12, o.MaxDepth)
}

func TestOptions_invalid(t *testing.T) {
	t.Run("negative workers", func(t *testing.T) {
		_, err := (&Options{Workers: -1}).parse()
		require.ErrorContains(t, err, "Workers")
	})

	t.Run("negative max depth", func(t *testing.T) {
		_, err := (&Options{MaxDepth: -5}).parse()
		require.ErrorContains(t, err, "MaxDepth")
	})

	t.Run("unparseable env value", func(t *testing.T) {
		t.Setenv("HARSIGHT_WORKERS", "lots")
		_, err := (&Options{}).parse()
		require.ErrorContains(t, err, "HARSIGHT_WORKERS")
	})
}
