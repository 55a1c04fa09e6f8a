package source

import (
	"context"
	"errors"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/eykd/ddata-go/internal/decay"
	"github.com/eykd/ddata-go/internal/metrics"
	"github.com/eykd/ddata-go/internal/nuclide"
)

// Request asks for one nuclide's payload of one radiation type.
type Request struct {
	ID  nuclide.ID
	Rad decay.RadType
}

// Response is the outcome of a Request. Exactly one of CSV or Err is meaningful.
type Response struct {
	Request
	CSV string
	Err error
}

// FetchOptions tunes FetchAll. The zero value is usable.
type FetchOptions struct {
	// Workers bounds concurrent source calls; <= 0 means GOMAXPROCS.
	Workers int
	Logger  *zap.Logger
	Metrics *metrics.Registry
}

// FetchAll retrieves every request from src with bounded concurrency and
// returns the responses in request order. A failing request is reported on
// its own response and does not stop the others. Requests that share a
// payload (the same isotope and radiation type) are collapsed while in flight.
func FetchAll(ctx context.Context, src Source, reqs []Request, opts FetchOptions) []Response {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	var (
		g      errgroup.Group
		flight singleflight.Group
	)
	g.SetLimit(workers)

	out := make([]Response, len(reqs))
	for i, req := range reqs {
		g.Go(func() error {
			key := req.Rad.Code() + "/" + req.ID.APIName()
			v, err, shared := flight.Do(key, func() (any, error) {
				start := time.Now()
				csv, err := src.Fetch(ctx, req.ID, req.Rad)
				recordFetch(opts.Metrics, src.Name(), err, time.Since(start))
				return csv, err
			})
			log.Debug("fetched payload",
				zap.String("nuclide", req.ID.Name()),
				zap.Stringer("rad", req.Rad),
				zap.String("source", src.Name()),
				zap.Bool("shared", shared),
				zap.Error(err))

			out[i] = Response{Request: req, CSV: v.(string), Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func recordFetch(m *metrics.Registry, backend string, err error, d time.Duration) {
	if m == nil {
		return
	}
	outcome := metrics.OutcomeOK
	switch {
	case errors.Is(err, ErrNotFound):
		outcome = metrics.OutcomeNotFound
	case err != nil:
		outcome = metrics.OutcomeError
	}
	m.RecordFetch(backend, outcome, d)
}
