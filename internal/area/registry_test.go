package area

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loaderFor(sets map[string]Set) Loader {
	return &mockLoader{
		loadFunc: func(ctx context.Context, path string) (Set, error) {
			set, ok := sets[path]
			if !ok {
				return nil, errors.New("no such file")
			}
			return set, nil
		},
	}
}

func TestNewRegistry_Config(t *testing.T) {
	loader := loaderFor(map[string]Set{"a.gz": setOf("1")})

	tests := []struct {
		name     string
		cfg      RegistryConfig
		errMatch string
	}{
		{name: "No files", cfg: RegistryConfig{MinMatch: 1}, errMatch: "no area files"},
		{name: "Min match too high", cfg: RegistryConfig{Files: []string{"a.gz"}, MinMatch: 2}, errMatch: "out of range"},
		{name: "Min match zero", cfg: RegistryConfig{Files: []string{"a.gz"}}, errMatch: "out of range"},
		{name: "Load failure", cfg: RegistryConfig{Files: []string{"a.gz", "b.gz"}, MinMatch: 1}, errMatch: "b.gz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry, err := NewRegistry(context.Background(), tt.cfg, loader, zerolog.Nop())

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMatch)
			assert.Nil(t, registry)
		})
	}
}

func TestRegistry_Known(t *testing.T) {
	loader := loaderFor(map[string]Set{
		"a.gz": setOf("560001", "560002", "400001"),
		"b.gz": setOf("560001", "400001"),
		"c.gz": setOf("560001", "110001"),
	})
	files := []string{"a.gz", "b.gz", "c.gz"}

	tests := []struct {
		name     string
		minMatch int
		code     string
		expected bool
	}{
		{name: "In all files", minMatch: 2, code: "560001", expected: true},
		{name: "In two files", minMatch: 2, code: "400001", expected: true},
		{name: "In one file, two required", minMatch: 2, code: "110001", expected: false},
		{name: "In one file, one required", minMatch: 1, code: "110001", expected: true},
		{name: "In two files, three required", minMatch: 3, code: "400001", expected: false},
		{name: "Unknown", minMatch: 1, code: "999999", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry, err := NewRegistry(context.Background(), RegistryConfig{Files: files, MinMatch: tt.minMatch}, loader, zerolog.Nop())
			require.NoError(t, err)
			defer registry.Close()

			assert.Equal(t, tt.expected, registry.Known(tt.code))
		})
	}
}

func TestRegistry_Unknown(t *testing.T) {
	loader := loaderFor(map[string]Set{"a.gz": setOf("560001", "560002")})
	registry, err := NewRegistry(context.Background(), RegistryConfig{Files: []string{"a.gz"}, MinMatch: 1}, loader, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, []string{"999999", "X"}, registry.Unknown([]string{"999999", "560001", "X", "560002"}))
	assert.Empty(t, registry.Unknown([]string{"560001"}))
	assert.Empty(t, registry.Unknown(nil))
}

func TestAllowAll(t *testing.T) {
	registry := AllowAll()

	assert.True(t, registry.Known("anything"))
	assert.Empty(t, registry.Unknown([]string{"a", "b"}))
	assert.NoError(t, registry.Close())
}

// TestIntegration_WithSampleAreaFiles runs against the files written by
// go run scripts/generate_sample_areas.go
func TestIntegration_WithSampleAreaFiles(t *testing.T) {
	files := []string{"../../data/areas/areas1.gz", "../../data/areas/areas2.gz"}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			t.Skip("sample area files not found, run: go run scripts/generate_sample_areas.go")
		}
	}

	registry, err := NewRegistry(context.Background(), RegistryConfig{Files: files, MinMatch: 1}, NewFileLoader(zerolog.Nop()), zerolog.Nop())
	require.NoError(t, err)
	defer registry.Close()

	assert.True(t, registry.Known("560001"))
	assert.False(t, registry.Known("000000"))
}
