package prep

import (
	"fmt"

	"github.com/LeoSousa155/DataScience/internal/dag"
)

// Stage is a single feature-derivation step. Inputs and Outputs
// declare the columns it reads and produces, so the pipeline can
// reject a stage list with unsatisfiable prerequisites before any row
// is touched instead of failing mid-run. Stages add columns and never
// remove them; re-running a stage recomputes and overwrites its
// outputs.
type Stage interface {
	Name() string
	Inputs() []string
	Outputs() []string
	Apply(p *Partition) error
}

// validateStages checks that every stage input is satisfied by the raw
// schema or by the outputs of an earlier stage, and that the producer
// graph is acyclic. Returns ErrMissingColumn naming the first column
// no stage or raw column can provide.
func validateStages(schema []string, stages []Stage) error {
	g := dag.New()
	producer := make(map[string]string)
	for _, s := range stages {
		g.AddNode(s.Name())
		for _, out := range s.Outputs() {
			producer[out] = s.Name()
		}
	}

	available := make(map[string]struct{}, len(schema))
	for _, name := range schema {
		available[name] = struct{}{}
	}

	for _, s := range stages {
		for _, in := range s.Inputs() {
			if _, raw := available[in]; raw {
				continue
			}
			from, produced := producer[in]
			if !produced {
				return fmt.Errorf("%w: stage %q requires column %q", ErrMissingColumn, s.Name(), in)
			}
			if from != s.Name() {
				if err := g.AddEdge(from, s.Name()); err != nil {
					return fmt.Errorf("stage graph: %w", err)
				}
			}
		}
	}

	if cyclic, path := g.HasCycle(); cyclic {
		return fmt.Errorf("stage graph: cycle %v", path)
	}

	// The caller's declared order must already respect the producer
	// graph; a stage may not read a column produced later.
	seen := make(map[string]struct{}, len(schema))
	for _, name := range schema {
		seen[name] = struct{}{}
	}
	for _, s := range stages {
		for _, in := range s.Inputs() {
			if _, ok := seen[in]; !ok {
				return fmt.Errorf("%w: stage %q reads column %q before stage %q produces it",
					ErrMissingColumn, s.Name(), in, producer[in])
			}
		}
		for _, out := range s.Outputs() {
			seen[out] = struct{}{}
		}
	}
	return nil
}
