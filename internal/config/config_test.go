package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amakane-hakari/cappedset/internal/cappedset"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CAPPEDSET_CAPACITY", "")
	c, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, ":8080", c.HTTPAddr)
	assert.Equal(t, DefaultCapacity, c.Capacity)
	assert.Equal(t, cappedset.TrackerHeap, c.TrackerKind())
	assert.Equal(t, 5*time.Second, c.ShutdownTimeout)
}

func TestLoad_EnvAndFlags(t *testing.T) {
	t.Setenv("CAPPEDSET_CAPACITY", "16")
	t.Setenv("CAPPEDSET_TRACKER", "scan")

	c, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, 16, c.Capacity)
	assert.Equal(t, cappedset.TrackerScan, c.TrackerKind())

	// フラグが環境変数より優先
	c, err = Load([]string{"-capacity", "3", "-tracker", "heap"})
	require.NoError(t, err)
	assert.Equal(t, 3, c.Capacity)
	assert.Equal(t, cappedset.TrackerHeap, c.TrackerKind())
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string][]string{
		"zero capacity":   {"-capacity", "0"},
		"unknown tracker": {"-tracker", "tree"},
		"unknown format":  {"-log-format", "xml"},
		"empty addr":      {"-http-addr", ""},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(args)
			require.Error(t, err)
		})
	}
}
