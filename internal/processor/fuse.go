package processor

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/nguyentantai21042004/lecture-fuse/internal/fuser"
)

// FuseAll runs one pass over all excerpts ordered by lecture and start time
func (p *implProcessor) FuseAll(ctx context.Context) (int, error) {
	return p.fuse(ctx, nil)
}

// FuseLectures runs an independent pass per lecture. Lecture boundaries never
// occur inside one pass, so the source policy's boundary end time does not
// apply here.
func (p *implProcessor) FuseLectures(ctx context.Context, ids []int64) (int, error) {
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		total int
		errs  []error
	)

	for _, id := range ids {
		if err := p.sem.Acquire(ctx, 1); err != nil {
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
			break
		}

		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			defer p.sem.Release(1)

			n, err := p.fuse(ctx, []int64{id})

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, fmt.Errorf("lecture %d: %w", id, err))
				return
			}
			total += n
		}(id)
	}

	wg.Wait()
	return total, errors.Join(errs...)
}

// fuse streams excerpts through a fresh Fuser and stores the result only if
// the whole pass succeeded.
func (p *implProcessor) fuse(ctx context.Context, ids []int64) (int, error) {
	opts := p.cfg.FuserOptions()
	f := fuser.New(opts)

	var (
		sentences []fuser.Sentence
		excerpts  int
	)
	err := p.store.StreamExcerpts(ctx, ids, func(e fuser.Excerpt) error {
		excerpts++
		out, err := f.Push(e)
		if err != nil {
			return err
		}
		sentences = append(sentences, out...)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("read excerpts: %w", err)
	}
	sentences = append(sentences, f.Close()...)

	if err := p.store.ReplaceFused(ctx, ids, sentences); err != nil {
		return 0, fmt.Errorf("store fused sentences: %w", err)
	}

	p.logger.Debug(ctx, "Fused %d excerpts into %d sentences (policy %s, lectures %v)",
		excerpts, len(sentences), opts.Policy, ids)
	return len(sentences), nil
}
