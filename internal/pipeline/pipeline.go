// Package pipeline wires the stages together: clean, key derivation,
// join/enrichment, and scoring. One Run call transforms the four raw
// tables into the scored output table. The stages are strictly
// sequential; the only cross-row work (presenter frequency, delta
// deviation, dedup sort) happens inside enrich on fully materialized
// tables.
package pipeline

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/contract-risk/internal/cleaner"
	"github.com/sells-group/contract-risk/internal/enrich"
	"github.com/sells-group/contract-risk/internal/model"
	"github.com/sells-group/contract-risk/internal/scorer"
)

// Inputs are the four raw tables, already parsed into records.
type Inputs struct {
	Contracts  []model.ContractRecord
	BlueCards  []model.BlueCardRecord
	Presenters []model.PresenterRecord
	Leads      []model.LeadRecord
}

// Result is the scored output table plus per-stage row counts.
type Result struct {
	Rows   []model.EnrichedContract
	Counts model.RunCounts
}

// Pipeline runs the batch transformation with a fixed scorer.
type Pipeline struct {
	scorer *scorer.RiskScorer
}

// New creates a Pipeline. A nil scorer gets the default weights.
func New(s *scorer.RiskScorer) *Pipeline {
	if s == nil {
		s = scorer.New(scorer.DefaultWeights())
	}
	return &Pipeline{scorer: s}
}

// Run executes clean -> keys -> enrich -> score over the inputs. The
// context is checked between stages; mid-stage work never blocks.
func (p *Pipeline) Run(ctx context.Context, in Inputs) (*Result, error) {
	log := zap.L().With(zap.String("component", "pipeline"))

	counts := model.RunCounts{
		ContractsIn:  len(in.Contracts),
		BlueCardsIn:  len(in.BlueCards),
		PresentersIn: len(in.Presenters),
		LeadsIn:      len(in.Leads),
	}

	contracts := cleaner.Contracts(in.Contracts)
	bluecards := cleaner.BlueCards(in.BlueCards)
	presenters := cleaner.Presenters(in.Presenters)
	leads := cleaner.Leads(in.Leads)
	counts.ContractsCleaned = len(contracts)
	counts.BlueCardsCleaned = len(bluecards)
	counts.PresentersCleaned = len(presenters)
	counts.LeadsCleaned = len(leads)

	log.Info("cleaned input tables",
		zap.Int("contracts", counts.ContractsCleaned),
		zap.Int("bluecards", counts.BlueCardsCleaned),
		zap.Int("presenters", counts.PresentersCleaned),
		zap.Int("leads", counts.LeadsCleaned),
	)

	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "pipeline: cancelled after clean")
	}

	cleaner.BuildMatchKeys(contracts, bluecards)

	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "pipeline: cancelled after key derivation")
	}

	rows := enrich.Enrich(contracts, bluecards)
	counts.Enriched = len(rows)
	for _, r := range rows {
		if r.BlueCardNumber == nil {
			counts.JoinMisses++
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "pipeline: cancelled after enrich")
	}

	p.scorer.ScoreAll(rows)

	return &Result{Rows: rows, Counts: counts}, nil
}
