package integrate

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// cancelPollStride is how many trapezoid indices a fan-out goroutine
// processes between ctx.Err() checks; this is the cooperative cancellation
// point spec.md §4.4/§5 requires the application to document.
const cancelPollStride = 4096

func f(x float64) float64 {
	return 4.0 / (1.0 + x*x)
}

// IntegrateTrapz computes the trapezoidal-rule approximation of ∫f over
// [a, b) using n subintervals, fanned out across threads goroutines via
// errgroup. Each goroutine owns a disjoint, contiguous, roughly equal
// range of indices, mirroring the base/rem split in
// original_source/examples/integral_app.c's integrate_trapz. If ctx is
// canceled before every goroutine finishes, IntegrateTrapz returns
// ctx.Err() and a zero value.
func IntegrateTrapz(ctx context.Context, a, b float64, n int64, threads int) (float64, error) {
	if n <= 0 || b <= a {
		return 0, nil
	}
	if threads < 1 {
		threads = 1
	}
	if int64(threads) > n {
		threads = int(n)
	}

	h := (b - a) / float64(n)
	base := n / int64(threads)
	rem := n % int64(threads)

	partials := make([]float64, threads)
	g, gctx := errgroup.WithContext(ctx)

	cursor := int64(0)
	for t := 0; t < threads; t++ {
		span := base
		if int64(t) < rem {
			span++
		}
		begin := cursor
		end := cursor + span
		cursor = end
		idx := t

		g.Go(func() error {
			sum := 0.0
			for i := begin; i < end; i++ {
				if (i-begin)%cancelPollStride == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				x1 := a + float64(i)*h
				x2 := x1 + h
				sum += 0.5 * (f(x1) + f(x2)) * h
			}
			partials[idx] = sum
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}

	total := 0.0
	for _, p := range partials {
		total += p
	}
	return total, nil
}
