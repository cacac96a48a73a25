// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline assembles a condition overview: it runs the overview
// generator and both reference finders for one condition and joins their
// outputs into a single record for the presentation layer.
package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/sympatico/pkg/types"
)

// Default result counts for the two reference lookups.
const (
	DefaultMaxGuidelines = 1
	DefaultMaxCitations  = 3
)

// OverviewGenerator produces the overview text. It reports failure in-band.
type OverviewGenerator interface {
	Generate(ctx context.Context, condition string, model types.Model) string
}

// GuidelineFinder looks up guideline links.
type GuidelineFinder interface {
	Find(ctx context.Context, condition string, maxResults int) types.Lookup[string]
}

// CitationFinder looks up literature citations.
type CitationFinder interface {
	Find(ctx context.Context, condition string, maxResults int) types.Lookup[types.Citation]
}

// RunObserver is told about every run that reached the producers.
type RunObserver interface {
	ObserveRun(r types.OverviewResult, elapsed time.Duration)
}

// Pipeline joins the three producers.
type Pipeline struct {
	Overview   OverviewGenerator
	Guidelines GuidelineFinder
	Citations  CitationFinder

	MaxGuidelines int
	MaxCitations  int

	// Observer is optional.
	Observer RunObserver

	Log *zap.Logger
}

// New returns a Pipeline using the default result counts.
func New(gen OverviewGenerator, guidelines GuidelineFinder, citations CitationFinder, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{
		Overview:      gen,
		Guidelines:    guidelines,
		Citations:     citations,
		MaxGuidelines: DefaultMaxGuidelines,
		MaxCitations:  DefaultMaxCitations,
		Log:           log.Named("pipeline"),
	}
}

// Run produces the overview record for condition. Blank input returns an
// empty record without calling any producer. Otherwise the three producers
// run concurrently; a failure in one never affects the others, and their
// outputs are placed in the record unmodified.
func (p *Pipeline) Run(ctx context.Context, condition string, model types.Model) types.OverviewResult {
	condition = strings.TrimSpace(condition)
	if condition == "" {
		return types.EmptyOverviewResult(model)
	}

	log := p.Log.With(
		zap.String("request_id", uuid.NewString()),
		zap.String("condition", condition),
		zap.String("model", string(model)),
	)
	start := time.Now()
	log.Info("condition overview started")

	result := types.OverviewResult{Condition: condition, Model: model}

	// Producers never return errors; the group only joins them.
	var g errgroup.Group
	g.Go(func() error {
		result.Overview = p.Overview.Generate(ctx, condition, model)
		return nil
	})
	g.Go(func() error {
		result.Guidelines = p.Guidelines.Find(ctx, condition, maxOr(p.MaxGuidelines, DefaultMaxGuidelines))
		return nil
	})
	g.Go(func() error {
		result.Citations = p.Citations.Find(ctx, condition, maxOr(p.MaxCitations, DefaultMaxCitations))
		return nil
	})
	_ = g.Wait()

	if result.Guidelines.Unavailable {
		log.Warn("guideline links unavailable")
	}
	if result.Citations.Unavailable {
		log.Warn("citations unavailable")
	}
	elapsed := time.Since(start)
	if p.Observer != nil {
		p.Observer.ObserveRun(result, elapsed)
	}
	log.Info("condition overview finished",
		zap.Duration("elapsed", elapsed),
		zap.Int("guidelines", len(result.Guidelines.Items)),
		zap.Int("citations", len(result.Citations.Items)),
	)
	return result
}

func maxOr(n, fallback int) int {
	if n <= 0 {
		return fallback
	}
	return n
}
