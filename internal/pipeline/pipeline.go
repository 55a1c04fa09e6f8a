// Package pipeline turns raw nuclide tokens into a selected, sorted dataset.
//
// A run resolves tokens to canonical ids, fetches every payload concurrently,
// then decodes and selects records on the calling goroutine. Per-nuclide
// problems never stop a run; they are returned as Diagnostics.
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/eykd/ddata-go/internal/decay"
	"github.com/eykd/ddata-go/internal/metrics"
	"github.com/eykd/ddata-go/internal/nuclide"
	"github.com/eykd/ddata-go/internal/source"
)

// ErrEmptyResultSet is returned by Run when nothing survives selection.
var ErrEmptyResultSet = decay.ErrEmptyResultSet

// Request describes one run.
type Request struct {
	Tokens  []string
	Rad     decay.RadType
	Sort    decay.SortKey
	Workers int
}

// Result is the outcome of Run.
type Result struct {
	// Dataset holds the selected, sorted records in output order.
	Dataset decay.Dataset
	// Resolved lists every id requested from the source, in request order.
	Resolved    []nuclide.ID
	Diagnostics []Diagnostic
}

// Pipeline runs requests against one Source.
type Pipeline struct {
	src     source.Source
	log     *zap.Logger
	metrics *metrics.Registry
}

// New returns a Pipeline. A nil logger or registry is replaced by a no-op
// logger or a private registry.
func New(src source.Source, log *zap.Logger, m *metrics.Registry) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	if m == nil {
		m = metrics.NewRegistry()
	}
	return &Pipeline{src: src, log: log, metrics: m}
}

// Run resolves, fetches, decodes and selects. It returns ErrEmptyResultSet
// when no nuclide has records for req.Rad, or the context error when the
// run was cancelled. The Result is populated in both cases.
func (p *Pipeline) Run(ctx context.Context, req Request) (Result, error) {
	var res Result

	ids, diags := p.Resolve(ctx, req.Tokens, req.Rad)
	res.Resolved = ids
	res.Diagnostics = diags

	reqs := make([]source.Request, len(ids))
	for i, id := range ids {
		reqs[i] = source.Request{ID: id, Rad: req.Rad}
	}
	resps := source.FetchAll(ctx, p.src, reqs, source.FetchOptions{
		Workers: req.Workers,
		Logger:  p.log,
		Metrics: p.metrics,
	})
	if err := ctx.Err(); err != nil {
		return res, err
	}

	ds := make(decay.Dataset, 0, len(resps))
	for _, r := range resps {
		if r.Err != nil {
			p.metrics.RecordNuclide(metrics.StatusFailed)
			res.Diagnostics = p.report(res.Diagnostics, warning(CodeDataSourceFailure, r.ID.Name(),
				fmt.Sprintf("could not retrieve %s %s data: %v", r.ID.Name(), req.Rad, r.Err)))
			continue
		}
		recs, stats := decay.DecodeStats(r.CSV, r.ID, req.Rad)
		p.metrics.RecordRows(stats.Kept, stats.Dropped)
		p.log.Debug("decoded payload",
			zap.String("nuclide", r.ID.Name()),
			zap.Int("rows", stats.Rows),
			zap.Int("kept", stats.Kept),
			zap.Int("dropped", stats.Dropped))
		ds = append(ds, decay.Entry{ID: r.ID, Records: recs})
	}

	selected, empty := decay.Select(ds, req.Rad, req.Sort)
	for _, id := range empty {
		p.metrics.RecordNuclide(metrics.StatusNoData)
		res.Diagnostics = p.report(res.Diagnostics, warning(CodeNoData, id.Name(),
			fmt.Sprintf("no %s decay data for %s", req.Rad, id.Name())))
	}
	for range selected {
		p.metrics.RecordNuclide(metrics.StatusEmitted)
	}
	res.Dataset = selected

	if len(selected) == 0 {
		res.Diagnostics = p.report(res.Diagnostics, Diagnostic{
			Severity: SeverityError,
			Code:     CodeEmptyResultSet,
			Message:  ErrEmptyResultSet.Error(),
		})
		return res, ErrEmptyResultSet
	}
	return res, nil
}

// Resolve parses tokens into ids. Explicit ids come first in token order,
// without duplicates. Element-only tokens are expanded afterwards into the
// ground states the source holds for that element, in source order, skipping
// ids already present. Availability is requested at most once.
func (p *Pipeline) Resolve(ctx context.Context, tokens []string, rad decay.RadType) ([]nuclide.ID, []Diagnostic) {
	var (
		diags    []Diagnostic
		elements []string
	)
	set := nuclide.NewSet()
	seenElement := map[string]bool{}

	for _, tok := range tokens {
		parsed, err := nuclide.Parse(tok)
		if err != nil {
			p.metrics.RecordNuclide(metrics.StatusInvalid)
			diags = p.report(diags, warning(CodeInvalidNuclide, tok, err.Error()))
			continue
		}
		if parsed.IsExpansion() {
			if !seenElement[parsed.Element] {
				seenElement[parsed.Element] = true
				elements = append(elements, parsed.Element)
			}
			continue
		}
		if set.Add(parsed.ID) {
			p.metrics.RecordNuclide(metrics.StatusResolved)
		}
	}

	if len(elements) == 0 {
		return set.IDs(), diags
	}

	avail, err := p.src.Available(ctx, rad)
	if err != nil {
		for _, el := range elements {
			diags = p.report(diags, warning(CodeDataSourceFailure, el,
				fmt.Sprintf("could not list %s isotopes: %v", el, err)))
		}
		return set.IDs(), diags
	}

	for _, el := range elements {
		found := 0
		for _, id := range avail {
			if id.Symbol != el {
				continue
			}
			found++
			if set.Add(id.Ground()) {
				p.metrics.RecordNuclide(metrics.StatusResolved)
			}
		}
		if found == 0 {
			diags = p.report(diags, warning(CodeEmptyExpansion, el,
				fmt.Sprintf("no %s isotopes with %s data in %s", el, rad, p.src.Name())))
			continue
		}
		p.log.Debug("expanded element", zap.String("element", el), zap.Int("isotopes", found))
	}
	return set.IDs(), diags
}

// report logs d and appends it to diags. Diagnostics are summarised by the
// caller, so they are only logged at debug level here.
func (p *Pipeline) report(diags []Diagnostic, d Diagnostic) []Diagnostic {
	p.log.Debug(d.Message,
		zap.String("severity", string(d.Severity)),
		zap.String("code", d.Code),
		zap.String("subject", d.Subject))
	return append(diags, d)
}
