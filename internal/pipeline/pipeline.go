// Package pipeline runs the list → investigate → campaign flow against a
// Generator, using a Store to keep investigated companies out of later lists.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dekleptocracy/campaign-agent/internal/events"
	"github.com/dekleptocracy/campaign-agent/internal/llm"
	"github.com/dekleptocracy/campaign-agent/internal/logging"
	"github.com/dekleptocracy/campaign-agent/internal/model"
	"github.com/dekleptocracy/campaign-agent/internal/store"
)

// DefaultCandidateCount is how many companies a listing asks for.
const DefaultCandidateCount = 10

// DefaultPublishTimeout bounds each event publish.
const DefaultPublishTimeout = 3 * time.Second

// Options tune prompt construction and event delivery.
type Options struct {
	CandidateCount int
	Organization   string
	DonationURL    string
	PublishTimeout time.Duration
}

// Pipeline holds the collaborators of the three operations. It carries no
// per-request state.
type Pipeline struct {
	store     store.Store
	gen       llm.Generator
	publisher events.Publisher
	logger    *zap.Logger
	opts      Options
}

// New wires a pipeline. publisher and logger may be nil.
func New(s store.Store, gen llm.Generator, publisher events.Publisher, logger *zap.Logger, opts Options) *Pipeline {
	if opts.CandidateCount <= 0 {
		opts.CandidateCount = DefaultCandidateCount
	}
	if opts.PublishTimeout <= 0 {
		opts.PublishTimeout = DefaultPublishTimeout
	}
	if opts.Organization == "" {
		opts.Organization = "Dekleptocracy"
	}
	if publisher == nil {
		publisher = events.Discard
	}
	return &Pipeline{
		store:     s,
		gen:       gen,
		publisher: publisher,
		logger:    logging.OrNop(logger),
		opts:      opts,
	}
}

// ListCandidates asks for companies not yet in memory and returns the raw
// delimited lines. An empty slice means nothing usable came back.
func (p *Pipeline) ListCandidates(ctx context.Context) ([]string, error) {
	excluded, err := p.store.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("read memory: %w", err)
	}

	raw, err := p.generate(ctx, "list", CandidatePrompt(p.opts.CandidateCount, excluded))
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}

	candidates := ParseCandidates(raw)
	p.logger.Info("candidates listed",
		zap.Int("excluded", len(excluded)),
		zap.Int("candidates", len(candidates)))

	e := events.New(events.TypeCandidatesListed)
	e.Count = len(candidates)
	p.publish(ctx, e)

	return candidates, nil
}

// Investigate records company as processed, then asks for findings. The
// record is written before the model is called, so a failed call still
// excludes the company from later listings. The event is published either
// way; a failed call sets its Error.
func (p *Pipeline) Investigate(ctx context.Context, company string) (string, error) {
	company = strings.TrimSpace(company)
	if err := p.store.Append(ctx, company); err != nil {
		return "", fmt.Errorf("record company: %w", err)
	}

	e := events.New(events.TypeCompanyInvestigated)
	e.Company = company

	details, err := p.generate(ctx, "investigate", InvestigationPrompt(company))
	if err != nil {
		e.Error = err.Error()
		p.publish(ctx, e)
		return "", fmt.Errorf("investigate %q: %w", company, err)
	}

	e.Count = len(details)
	p.publish(ctx, e)

	return details, nil
}

// GenerateCampaign builds the campaign assets from earlier findings. Nothing
// is persisted and no field is validated.
func (p *Pipeline) GenerateCampaign(ctx context.Context, req model.CampaignRequest) (string, error) {
	prompt := CampaignPrompt(req, CampaignOptions{
		Organization: p.opts.Organization,
		DonationURL:  p.opts.DonationURL,
	})

	content, err := p.generate(ctx, "campaign", prompt)
	if err != nil {
		return "", fmt.Errorf("generate campaign for %q: %w", req.Company, err)
	}

	e := events.New(events.TypeCampaignGenerated)
	e.Company = req.Company
	e.Market = req.Market
	e.Count = len(content)
	p.publish(ctx, e)

	return content, nil
}

// ResetMemory forgets every investigated company.
func (p *Pipeline) ResetMemory(ctx context.Context) error {
	if err := p.store.Reset(ctx); err != nil {
		return fmt.Errorf("reset memory: %w", err)
	}
	p.logger.Info("memory reset")
	p.publish(ctx, events.New(events.TypeMemoryReset))
	return nil
}

// Memory returns the stored companies in append order.
func (p *Pipeline) Memory(ctx context.Context) ([]string, error) {
	names, err := p.store.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("read memory: %w", err)
	}
	return names, nil
}

func (p *Pipeline) generate(ctx context.Context, step, prompt string) (string, error) {
	start := time.Now()
	out, err := p.gen.Generate(ctx, prompt)
	if err != nil {
		p.logger.Warn("generation failed",
			zap.String("step", step),
			zap.Duration("took", time.Since(start)),
			zap.Error(err))
		return "", llm.Wrap("generator", err)
	}
	p.logger.Debug("generation done",
		zap.String("step", step),
		zap.Int("prompt_chars", len(prompt)),
		zap.Int("response_chars", len(out)),
		zap.Duration("took", time.Since(start)))
	return out, nil
}

// publish logs and drops publisher failures. Each publish gets its own
// deadline so an unreachable broker cannot stall the operation.
func (p *Pipeline) publish(ctx context.Context, e events.Event) {
	ctx, cancel := context.WithTimeout(ctx, p.opts.PublishTimeout)
	defer cancel()
	if err := p.publisher.Publish(ctx, e); err != nil {
		p.logger.Warn("publish event failed", zap.String("type", e.Type), zap.Error(err))
	}
}
