package atom

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/meridian-os/sdkforge/errors"
	"github.com/meridian-os/sdkforge/logger"
)

// Closure is the result of gathering: the transitive dependency closure of
// the input manifests plus, separately, their direct roots. Some callers
// only need the roots (ids output); both are kept sorted.
type Closure struct {
	Atoms []Atom
	Roots []Identifier
}

// Manifest converts the closure back into a writable manifest.
func (c *Closure) Manifest() *Manifest {
	return &Manifest{IDs: c.Roots, Atoms: c.Atoms}
}

// Get returns the atom with the given identifier, if present.
func (c *Closure) Get(id Identifier) (Atom, bool) {
	for _, a := range c.Atoms {
		if a.ID == id {
			return a, true
		}
	}
	return Atom{}, false
}

// Gatherer merges atom manifests into a single closure. Input files are
// loaded concurrently; the merge itself is sequential so collision reporting
// stays deterministic.
type Gatherer struct {
	jobs int
	log  *zap.SugaredLogger
}

// NewGatherer returns a Gatherer that loads up to jobs manifests at once.
// jobs <= 0 means no limit.
func NewGatherer(jobs int) *Gatherer {
	return &Gatherer{
		jobs: jobs,
		log:  logger.Named("gather"),
	}
}

// Gather loads every manifest in paths and computes the transitive closure
// of their root atoms, breadth-first over deps edges.
//
// Errors:
//   - ErrCollision if two manifests carry the same identifier with different
//     content (both GN labels are named in the message)
//   - ErrMissingDependency if a reachable atom names a dep no manifest knows
//
// The dependency graph is a DAG by construction upstream, so the visited set
// is the only cycle protection needed.
func (g *Gatherer) Gather(ctx context.Context, paths []string) (*Closure, error) {
	manifests := make([]*Manifest, len(paths))

	eg, ctx := errgroup.WithContext(ctx)
	if g.jobs > 0 {
		eg.SetLimit(g.jobs)
	}
	for i, path := range paths {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m, err := LoadManifest(path)
			if err != nil {
				return err
			}
			manifests[i] = m
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	// Merge atom indexes, detecting collisions. Manifests overlap whenever
	// two targets share a dependency subtree, so identical duplicates are
	// the common case, not an error.
	index := make(map[Identifier]Atom)
	var roots []Identifier
	rootSeen := make(map[Identifier]struct{})
	for i, m := range manifests {
		for _, a := range m.Atoms {
			existing, ok := index[a.ID]
			if !ok {
				index[a.ID] = a
				continue
			}
			if !existing.Equal(a) {
				return nil, errors.WithHint(
					errors.Wrapf(errors.ErrCollision,
						"atom %s has conflicting definitions (%s vs %s)",
						a.ID, existing.GNLabel, a.GNLabel),
					"two build targets are publishing different content under the same identifier")
			}
		}
		for _, id := range m.IDs {
			if _, ok := rootSeen[id]; ok {
				continue
			}
			rootSeen[id] = struct{}{}
			roots = append(roots, id)
		}
		g.log.Debugw("merged manifest",
			logger.FieldManifest, paths[i],
			logger.FieldCount, len(m.Atoms))
	}

	// Breadth-first traversal from the roots over deps edges.
	visited := make(map[Identifier]struct{}, len(roots))
	queue := make([]Identifier, 0, len(roots))
	for _, id := range roots {
		visited[id] = struct{}{}
		queue = append(queue, id)
	}

	var atoms []Atom
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		a, ok := index[id]
		if !ok {
			return nil, errors.Wrapf(errors.ErrMissingDependency,
				"atom %s is required but not defined in any input manifest", id)
		}
		atoms = append(atoms, a)

		for _, dep := range a.Deps {
			if _, seen := visited[dep]; seen {
				continue
			}
			visited[dep] = struct{}{}
			queue = append(queue, dep)
		}
	}

	SortAtoms(atoms)
	SortIdentifiers(roots)
	g.log.Infow("gathered closure",
		logger.FieldCount, len(atoms),
		"roots", len(roots))

	return &Closure{Atoms: atoms, Roots: roots}, nil
}
