package submission

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/codetile/simtok/config"
	"github.com/codetile/simtok/match"
	"github.com/codetile/simtok/token"
)

// PairResult is one submission pair's comparison outcome.
type PairResult struct {
	First, Second string
	Comparison    *token.Comparison
}

// CompareAll runs Matcher.Compare over every distinct pair of subs
// concurrently, bounded to workers simultaneous comparisons. Each pair is
// independent and writes only its own slot of the result slice, so no
// synchronization beyond errgroup's Wait is needed; identical-fingerprint
// pairs short-circuit to a full
// match without running the GST main loop.
func CompareAll(ctx context.Context, subs []*Submission, cfg config.Options, workers int) ([]PairResult, error) {
	if workers <= 0 {
		workers = 1
	}

	digests := make([]uint64, len(subs))
	for i, s := range subs {
		d, err := Fingerprint(s.List)
		if err != nil {
			return nil, err
		}
		digests[i] = d
	}

	type job struct{ i, j int }
	var jobs []job
	for i := 0; i < len(subs); i++ {
		for j := i + 1; j < len(subs); j++ {
			jobs = append(jobs, job{i, j})
		}
	}

	slog.Info("comparing submissions", "submissions", len(subs), "pairs", len(jobs), "workers", workers)

	results := make([]PairResult, len(jobs))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	m := match.New(cfg)
	for idx, j := range jobs {
		idx, j := idx, j
		g.Go(func() error {
			if gCtx.Err() != nil {
				return gCtx.Err()
			}
			a, b := subs[j.i], subs[j.j]
			var cmp *token.Comparison
			if digests[j.i] == digests[j.j] {
				cmp = fullMatch(a.List, b.List)
			} else {
				// a.List/b.List may also be the target of other
				// concurrently running jobs (e.g. job (0,1) and job (0,2)
				// both touch subs[0].List), and Matcher.run mutates each
				// token's hash/marked/basecode in place, so sharing the
				// originals across goroutines would race. Clone both sides
				// so every job works its own per-token state.
				cmp = m.Compare(a.List.Clone(), b.List.Clone())
			}
			results[idx] = PairResult{First: a.ID, Second: b.ID, Comparison: cmp}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// fullMatch reports one tile per SEPARATOR/FILE_END-delimited run shared by
// a and b, used when two submissions fingerprint identically and the GST
// main loop would only confirm what the digest already established. A
// single Match spanning the whole list would cover those pivot tokens,
// which no reported Match may do, so runs are split at every boundary
// instead of reporting one Match over the whole list.
func fullMatch(a, b *token.List) *token.Comparison {
	cmp := &token.Comparison{FirstSize: a.Len(), SecondSize: b.Len()}
	length := a.Len()
	if b.Len() < length {
		length = b.Len()
	}
	start := 0
	for i := 0; i < length; i++ {
		switch a.At(i).Type {
		case token.FileEnd, token.Separator:
			if i > start {
				cmp.AddMatch(token.Match{StartInFirst: start, StartInSecond: start, Length: i - start})
			}
			start = i + 1
		}
	}
	if start < length {
		cmp.AddMatch(token.Match{StartInFirst: start, StartInSecond: start, Length: length - start})
	}
	return cmp
}
