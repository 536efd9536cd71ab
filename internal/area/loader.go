package area

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

const (
	initialSetCapacity = 1 << 16
	cancelCheckEvery   = 100_000
)

// fileLoader implements Loader for reading gzipped area files from disk.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based area loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "area-loader").Logger(),
	}
}

// Load reads a gzipped area file and returns a Set.
// The file is expected to contain one area code per line.
func (l *fileLoader) Load(ctx context.Context, path string) (Set, error) {
	l.logger.Info().Str("file", path).Msg("loading area file")

	file, err := os.Open(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to open area file")
		return nil, fmt.Errorf("failed to open area file %s: %w", path, err)
	}
	defer file.Close()

	set, err := readSet(ctx, file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to read area file")
		return nil, fmt.Errorf("failed to read area file %s: %w", path, err)
	}

	l.logger.Info().
		Str("file", path).
		Int("areas_loaded", set.Size()).
		Msg("area file loaded successfully")

	return set, nil
}

// readSet decompresses r and collects one area code per non-blank line.
func readSet(ctx context.Context, r io.Reader) (*MapSet, error) {
	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	set := NewMapSet(initialSetCapacity)

	scanner := bufio.NewScanner(gzipReader)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lines := 0
	for scanner.Scan() {
		if lines%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		lines++
		set.Add(scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return set, nil
}
