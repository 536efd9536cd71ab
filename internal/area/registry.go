package area

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// RegistryConfig holds configuration for the area registry.
type RegistryConfig struct {
	// Files is the list of area files to load.
	Files []string

	// MinMatch is the minimum number of files an area code must appear in.
	MinMatch int
}

// registry implements Registry over sets that are read-only after loading.
type registry struct {
	sets     []Set
	minMatch int
	logger   zerolog.Logger
}

// NewRegistry loads every area file concurrently and returns the registry.
// Any failed file fails the whole load.
func NewRegistry(ctx context.Context, cfg RegistryConfig, loader Loader, logger zerolog.Logger) (Registry, error) {
	logger = logger.With().Str("component", "area-registry").Logger()

	if len(cfg.Files) == 0 {
		return nil, fmt.Errorf("no area files configured")
	}
	if cfg.MinMatch < 1 || cfg.MinMatch > len(cfg.Files) {
		return nil, fmt.Errorf("min match %d out of range 1..%d", cfg.MinMatch, len(cfg.Files))
	}

	logger.Info().
		Int("file_count", len(cfg.Files)).
		Int("min_match", cfg.MinMatch).
		Msg("loading area registry")

	sets := make([]Set, len(cfg.Files))
	g, gctx := errgroup.WithContext(ctx)
	for i, path := range cfg.Files {
		g.Go(func() error {
			set, err := loader.Load(gctx, path)
			if err != nil {
				return fmt.Errorf("failed to load area file %s: %w", path, err)
			}
			sets[i] = set
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("area registry load failed")
		return nil, err
	}

	total := 0
	for _, set := range sets {
		total += set.Size()
	}

	logger.Info().
		Int("total_areas", total).
		Msg("area registry loaded successfully")

	return &registry{sets: sets, minMatch: cfg.MinMatch, logger: logger}, nil
}

// Known reports whether code appears in at least minMatch sets.
func (r *registry) Known(code string) bool {
	matches := 0
	for i, set := range r.sets {
		if set.Contains(code) {
			matches++
			if matches >= r.minMatch {
				return true
			}
		}
		// Not enough sets left to reach minMatch.
		if matches+len(r.sets)-i-1 < r.minMatch {
			return false
		}
	}
	return false
}

// Unknown returns the codes that are not serviceable, in input order.
func (r *registry) Unknown(codes []string) []string {
	var unknown []string
	for _, code := range codes {
		if !r.Known(code) {
			unknown = append(unknown, code)
		}
	}
	if len(unknown) > 0 {
		r.logger.Debug().Strs("areas", unknown).Msg("unknown delivery areas")
	}
	return unknown
}

// Close releases the loaded sets.
func (r *registry) Close() error {
	r.sets = nil
	r.logger.Info().Msg("area registry closed")
	return nil
}

// allowAll is the registry used when area validation is disabled.
type allowAll struct{}

// AllowAll returns a registry that treats every area code as serviceable.
func AllowAll() Registry {
	return allowAll{}
}

func (allowAll) Known(string) bool { return true }

func (allowAll) Unknown([]string) []string { return nil }

func (allowAll) Close() error { return nil }
