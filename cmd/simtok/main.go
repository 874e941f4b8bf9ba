// Command simtok compares every pair of Go submissions under a directory
// tree and reports their token-level similarity, the way a plagiarism-aware
// grading pipeline would invoke the kernel as one offline batch job.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/codetile/simtok/config"
	"github.com/codetile/simtok/frontend/golang"
	"github.com/codetile/simtok/submission"
)

func main() {
	os.Exit(run())
}

func run() int {
	root := flag.String("dir", "", "directory whose immediate subdirectories are the submissions to compare")
	configPath := flag.String("config", "", "path to a YAML file overriding the default minimumTokenMatch")
	workers := flag.Int("workers", 4, "number of pairwise comparisons to run concurrently")
	ext := flag.String("ext", ".go", "comma-separated list of file extensions to tokenize")
	minSimilarity := flag.Float64("min-similarity", 0, "only print pairs at or above this similarity fraction")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if *root == "" {
		fmt.Fprintln(os.Stderr, "simtok: -dir is required")
		return 2
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, warnings, err := config.Load(*configPath)
		if err != nil {
			slog.Error("failed to load config", "path", *configPath, "err", err)
			return 1
		}
		for _, w := range warnings {
			slog.Warn("config adjusted", "detail", w)
		}
		cfg = loaded
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loader := submission.New(golang.Tokenize, splitExtensions(*ext)...)
	subs, err := loader.Load(ctx, *root)
	if err != nil {
		slog.Error("failed to load submissions", "dir", *root, "err", err)
		return 1
	}
	if len(subs) < 2 {
		fmt.Fprintf(os.Stderr, "simtok: need at least two submissions under %s, found %d\n", *root, len(subs))
		return 1
	}
	slog.Info("loaded submissions", "count", len(subs), "minimumTokenMatch", cfg.MinimumTokenMatch)

	results, err := submission.CompareAll(ctx, subs, cfg, *workers)
	if err != nil {
		slog.Error("comparison failed", "err", err)
		return 1
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Comparison.Similarity() > results[j].Comparison.Similarity()
	})

	for _, r := range results {
		sim := r.Comparison.Similarity()
		if sim < *minSimilarity {
			continue
		}
		fmt.Printf("%-30s %-30s %6.2f%%  (%d tokens)\n", r.First, r.Second, sim*100, r.Comparison.MatchedTokenCount())
	}
	return 0
}

func splitExtensions(csv string) []string {
	var out []string
	start := 0
	for i := 0; i <= len(csv); i++ {
		if i == len(csv) || csv[i] == ',' {
			if i > start {
				out = append(out, csv[start:i])
			}
			start = i + 1
		}
	}
	return out
}
