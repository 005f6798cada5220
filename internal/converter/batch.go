// =============================================================================
// EDI to CSV Converter - Batch Runner
// =============================================================================
//
// Runs the per-file pipeline across a discovered file set with bounded
// concurrency. One file's failure never affects the others unless
// continue-on-error is disabled, in which case the shared context is
// cancelled and in-flight work stops at the next stage boundary.
//
// =============================================================================

package converter

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/brokerops/EDI-to-CSV-conversion/internal/config"
)

// MatchProvider returns the first provider configuration whose file matching
// patterns match the file's base name. Providers are checked in code order so
// routing is deterministic. Nil when nothing matches.
func MatchProvider(path string, providers map[string]*config.ProviderConfig) *config.ProviderConfig {
	fileName := filepath.Base(path)

	codes := make([]string, 0, len(providers))
	for code := range providers {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		for _, pattern := range providers[code].FileMatchingPatterns {
			matched, err := filepath.Match(pattern, fileName)
			if err != nil {
				continue
			}
			if matched {
				return providers[code]
			}
		}
	}
	return nil
}

// RunBatch processes every file concurrently, bounded by MaxConcurrency, and
// returns one Result per file (in completion order).
func RunBatch(ctx context.Context, files []string, providers map[string]*config.ProviderConfig, mainCfg *config.MainConfig, logger *slog.Logger, dryRun bool) []Result {
	g, ctx := errgroup.WithContext(ctx)
	if mainCfg.MaxConcurrency > 0 {
		g.SetLimit(mainCfg.MaxConcurrency)
	}

	results := make(chan Result, len(files))
	for _, file := range files {
		g.Go(func() error {
			provider := MatchProvider(file, providers)
			if provider == nil {
				err := fmt.Errorf("no matching provider configuration for %s", filepath.Base(file))
				results <- Result{FilePath: file, Error: err}
				if !mainCfg.ContinueOnError {
					return err
				}
				return nil
			}

			conv := New(file, provider, mainCfg, logger)
			conv.DryRun = dryRun
			res := conv.Run(ctx)
			results <- res

			if res.Error != nil && !mainCfg.ContinueOnError {
				return res.Error
			}
			return nil
		})
	}

	// The first error cancels ctx when continue-on-error is off; results for
	// files already submitted are still collected below.
	_ = g.Wait()
	close(results)

	out := make([]Result, 0, len(files))
	for r := range results {
		out = append(out, r)
	}
	return out
}
