package webclip

import (
	"context"
	"fmt"
	"sync"

	"github.com/porticus-lab/webclip/pdf"
)

// PreparePages prepares every input with [PreparePage], using up to
// [WithWorkers] goroutines. The result is in input order regardless of
// which worker finished first. The first failure stops the remaining
// work and no pages are returned.
func PreparePages(ctx context.Context, inputs [][]byte, opts ...Option) ([]pdf.PageImage, error) {
	cfg := newConfig(opts)
	return cfg.preparePages(ctx, inputs)
}

// Compose builds a PDF with one page per input image, in input order.
func Compose(ctx context.Context, inputs [][]byte, opts ...Option) (*Result, error) {
	cfg := newConfig(opts)
	return cfg.compose(ctx, inputs)
}

func (cfg *config) compose(ctx context.Context, inputs [][]byte) (*Result, error) {
	pages, err := cfg.preparePages(ctx, inputs)
	if err != nil {
		return nil, err
	}
	return build(pages)
}

// build wraps pdf.Build for callers that already hold page images.
func build(pages []pdf.PageImage) (*Result, error) {
	data, err := pdf.Build(pages)
	if err != nil {
		return nil, fmt.Errorf("webclip: building PDF: %w", err)
	}
	return &Result{data: data, pages: len(pages)}, nil
}

func (cfg *config) preparePages(ctx context.Context, inputs [][]byte) ([]pdf.PageImage, error) {
	if len(inputs) == 0 {
		return nil, ErrNoPages
	}

	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pages := make([]pdf.PageImage, len(inputs))
	errs := make([]error, len(inputs))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < min(cfg.workers, len(inputs)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					continue
				}
				page, err := cfg.preparePage(inputs[i], i)
				if err != nil {
					errs[i] = err
					cancel()
					continue
				}
				pages[i] = page
			}
		}()
	}

feed:
	for i := range inputs {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	if err := parent.Err(); err != nil {
		return nil, fmt.Errorf("webclip: preparing pages: %w", err)
	}
	return pages, nil
}
