package main

import (
	"context"

	"github.com/rotisserie/eris"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/contract-risk/internal/fetcher"
	"github.com/sells-group/contract-risk/internal/pipeline"
)

// inputPaths are the four raw export files. Contracts and bluecards
// are required; presenters and leads are optional.
type inputPaths struct {
	Contracts  string
	BlueCards  string
	Presenters string
	Leads      string
}

// loadInputs reads the four tables concurrently and maps them into
// records.
func loadInputs(ctx context.Context, paths inputPaths) (pipeline.Inputs, error) {
	if paths.Contracts == "" || paths.BlueCards == "" {
		return pipeline.Inputs{}, eris.New("both --contracts and --bluecards are required")
	}

	var in pipeline.Inputs
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		t, err := fetcher.ReadTableFile(gctx, paths.Contracts)
		if err != nil {
			return eris.Wrap(err, "load contracts")
		}
		in.Contracts = fetcher.Contracts(t)
		return nil
	})
	g.Go(func() error {
		t, err := fetcher.ReadTableFile(gctx, paths.BlueCards)
		if err != nil {
			return eris.Wrap(err, "load bluecards")
		}
		in.BlueCards = fetcher.BlueCards(t)
		return nil
	})
	if paths.Presenters != "" {
		g.Go(func() error {
			t, err := fetcher.ReadTableFile(gctx, paths.Presenters)
			if err != nil {
				return eris.Wrap(err, "load presenters")
			}
			in.Presenters = fetcher.Presenters(t)
			return nil
		})
	}
	if paths.Leads != "" {
		g.Go(func() error {
			t, err := fetcher.ReadTableFile(gctx, paths.Leads)
			if err != nil {
				return eris.Wrap(err, "load leads")
			}
			in.Leads = fetcher.Leads(t)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return pipeline.Inputs{}, err
	}
	return in, nil
}
