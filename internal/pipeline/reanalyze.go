package pipeline

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/talexa/talexa/internal/types"
)

const defaultReanalyzeConcurrency = 4

// ReanalyzeInput is one stored application to re-run through analysis.
type ReanalyzeInput struct {
	ApplicationID uuid.UUID
	ResumeText    string
}

// ReanalyzeOutput pairs an application with its fresh analysis.
type ReanalyzeOutput struct {
	ApplicationID uuid.UUID
	Result        *types.AnalysisResult
}

// Reanalyze re-runs analysis and scoring for a batch of stored applications,
// typically after a job's requirements changed. Work runs concurrently with
// a bounded number of in-flight analyses. Outputs keep the input order. A
// cancelled context stops the batch; no partial output is returned.
func (o *Orchestrator) Reanalyze(ctx context.Context, inputs []ReanalyzeInput, reqs types.JobRequirements, concurrency int) ([]ReanalyzeOutput, error) {
	if concurrency <= 0 {
		concurrency = defaultReanalyzeConcurrency
	}

	outputs := make([]ReanalyzeOutput, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, in := range inputs {
		g.Go(func() error {
			result, err := o.AnalyzeText(gctx, in.ResumeText, reqs)
			if err != nil {
				return err
			}
			outputs[i] = ReanalyzeOutput{ApplicationID: in.ApplicationID, Result: result}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outputs, nil
}
