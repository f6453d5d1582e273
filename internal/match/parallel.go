package match

import (
	"runtime"
	"sync"

	"github.com/PAVAN2627/PharmaGen-AI-sub000/internal/vcf"
)

// WorkItem holds a parsed record ready for matching.
type WorkItem struct {
	Seq    int
	Record *vcf.Record
}

// WorkResult holds the match outcome for a single record.
type WorkResult struct {
	Seq    int
	Result Result
}

// ParallelMatch matches work items using a pool of workers. Per-record
// matching has no data dependency between records, so the table is shared
// read-only across workers. Results arrive on the returned channel in
// completion order; use OrderedCollect to consume them in sequence order.
// If workers is 0, runtime.NumCPU() is used.
func (m *Matcher) ParallelMatch(items <-chan WorkItem, workers int) <-chan WorkResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make(chan WorkResult, 2*workers)

	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for item := range items {
				results <- WorkResult{
					Seq:    item.Seq,
					Result: m.Match(item.Record),
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// ParallelMatchAll matches records on a worker pool and returns the
// matched and unmatched sets in input order, so downstream diffing and
// round-trip logic stays deterministic.
func (m *Matcher) ParallelMatchAll(records []*vcf.Record, workers int) (matched []*Matched, unmatched []*vcf.Record) {
	items := make(chan WorkItem, 2*runtime.NumCPU())

	go func() {
		defer close(items)
		for i, rec := range records {
			items <- WorkItem{Seq: i, Record: rec}
		}
	}()

	results := m.ParallelMatch(items, workers)

	_ = OrderedCollect(results, func(r WorkResult) error {
		if r.Result.Ok() {
			matched = append(matched, r.Result.Promote())
		} else {
			unmatched = append(unmatched, r.Result.Record)
		}
		return nil
	})

	return matched, unmatched
}

// OrderedCollect calls fn for each result in sequence-number order.
// It buffers out-of-order results in a pending map and emits them as soon
// as the next expected sequence number is available. Blocks until the
// results channel is closed.
func OrderedCollect(results <-chan WorkResult, fn func(WorkResult) error) error {
	pending := make(map[int]WorkResult)
	nextSeq := 0

	for r := range results {
		pending[r.Seq] = r

		for {
			rr, ok := pending[nextSeq]
			if !ok {
				break
			}
			delete(pending, nextSeq)
			nextSeq++
			if err := fn(rr); err != nil {
				// Drain remaining results to unblock workers.
				for range results {
				}
				return err
			}
		}
	}

	return nil
}
