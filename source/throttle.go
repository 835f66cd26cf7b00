package source

import (
	"context"
	"io"

	"golang.org/x/time/rate"
)

// ThrottledSource limits the read throughput of another Source.
type ThrottledSource struct {
	inner   Source
	limiter *rate.Limiter
}

// Throttle wraps src so that reads across all opened tables together do not
// exceed bytesPerSec. A non-positive limit returns src unchanged.
func Throttle(src Source, bytesPerSec int) Source {
	if bytesPerSec <= 0 {
		return src
	}
	return &ThrottledSource{
		inner:   src,
		limiter: rate.NewLimiter(rate.Limit(bytesPerSec), bytesPerSec),
	}
}

// Open opens the table on the wrapped source.
func (s *ThrottledSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	rc, err := s.inner.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	return &throttledReader{ctx: ctx, rc: rc, limiter: s.limiter}, nil
}

type throttledReader struct {
	ctx     context.Context
	rc      io.ReadCloser
	limiter *rate.Limiter
}

func (r *throttledReader) Read(p []byte) (int, error) {
	if burst := r.limiter.Burst(); len(p) > burst {
		p = p[:burst]
	}
	n, err := r.rc.Read(p)
	if n > 0 {
		if werr := r.limiter.WaitN(r.ctx, n); werr != nil {
			return n, werr
		}
	}
	return n, err
}

func (r *throttledReader) Close() error {
	return r.rc.Close()
}
