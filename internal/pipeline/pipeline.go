package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"classpatch/internal/classfile"
	"classpatch/internal/logging"
	"classpatch/internal/transform"
)

var (
	// ErrRejected is returned when a transformer votes to reject a class.
	ErrRejected = errors.New("class transformation rejected")
	// ErrNilClass is returned when a nil class is presented.
	ErrNilClass = errors.New("nil class")
)

// DefaultWorkers is the parallelism of TransformAll when none is set.
const DefaultWorkers = 4

// Options configures a Pipeline.
type Options struct {
	// Workers bounds how many classes TransformAll works on at once.
	Workers int
	// Rollback substitutes an untouched copy of the class when an Applier
	// reports a failure.
	Rollback bool
	Logger   *zap.Logger
}

// Failure is one transformer failure on a class.
type Failure struct {
	Transformer string
	Kind        string
	Err         error
}

// Outcome summarizes what happened to one class.
type Outcome struct {
	Class   string
	Ran     []string
	Skipped []string
	Failed  []Failure
	// RolledBack counts the failures whose changes were discarded.
	RolledBack int
	// Err is ErrRejected when a transformer rejected the class.
	Err error
}

// Changed reports whether at least one transformer completed on the class.
func (o Outcome) Changed() bool {
	return len(o.Ran) > 0
}

// Pipeline presents classes to the transformers of a Registry.
type Pipeline struct {
	registry *Registry
	workers  int
	rollback bool
	logger   *zap.Logger

	mu     sync.Mutex
	passes map[string]int
}

// New creates a pipeline over registry.
func New(registry *Registry, opts Options) *Pipeline {
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}

	return &Pipeline{
		registry: registry,
		workers:  opts.Workers,
		rollback: opts.Rollback,
		logger:   logging.OrNop(opts.Logger),
		passes:   make(map[string]int),
	}
}

// TransformClass runs every transformer targeting class. Votes are collected
// first; a single VoteReject aborts the class before any transformer runs.
// The returned class is the one to define, which differs from the argument
// only after a rollback.
func (p *Pipeline) TransformClass(ctx context.Context, class *classfile.ClassNode) (*classfile.ClassNode, Outcome, error) {
	if err := ctx.Err(); err != nil {
		return class, Outcome{}, err
	}

	if class == nil {
		return nil, Outcome{}, ErrNilClass
	}

	out := Outcome{Class: class.Name}

	transformers := p.registry.For(transform.Target(class.Name))
	if len(transformers) == 0 {
		return class, out, nil
	}

	tctx := transform.Context{Class: class.Name, Pass: p.nextPass(class.Name)}
	logger := p.logger.With(zap.String("class", class.Name), zap.Int("pass", tctx.Pass))

	selected := make([]Transformer, 0, len(transformers))

	for _, t := range transformers {
		switch vote := t.CastVote(tctx); vote {
		case transform.VoteYes:
			selected = append(selected, t)
		case transform.VoteReject:
			logger.Warn("Class transformation rejected", zap.String("transformer", transformerName(t)))
			out.Err = fmt.Errorf("%w: %s by %s", ErrRejected, class.Name, transformerName(t))

			return class, out, out.Err
		default:
			out.Skipped = append(out.Skipped, transformerName(t))
		}
	}

	logger.Debug("Transforming class", zap.Int("transformers", len(selected)))

	for _, t := range selected {
		class = p.run(t, class, tctx, &out, logger)
	}

	return class, out, nil
}

func (p *Pipeline) run(t Transformer, class *classfile.ClassNode, tctx transform.Context, out *Outcome, logger *zap.Logger) *classfile.ClassNode {
	name := transformerName(t)

	a, ok := t.(Applier)
	if !ok {
		out.Ran = append(out.Ran, name)
		return t.Transform(class, tctx)
	}

	var snapshot *classfile.ClassNode
	if p.rollback {
		snapshot = class.Clone()
	}

	res := a.Apply(class)
	result := a.Report(res)

	if res.Err == nil {
		out.Ran = append(out.Ran, name)
		return result
	}

	out.Failed = append(out.Failed, Failure{Transformer: name, Kind: transform.Kind(res.Err), Err: res.Err})

	if snapshot == nil {
		return result
	}

	out.RolledBack++

	logger.Info("Rolled back failed transformer", zap.String("transformer", name))

	return snapshot
}

func (p *Pipeline) nextPass(class string) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := p.passes[class]
	p.passes[class] = n + 1

	return n
}

// TransformAll transforms a batch of classes. Classes with distinct names run
// in parallel, bounded by the worker count; classes sharing a name run
// serially in batch order. Results are returned in batch order. Only context
// cancellation fails the batch; per-class rejections are in Outcome.Err.
func (p *Pipeline) TransformAll(ctx context.Context, classes []*classfile.ClassNode) ([]*classfile.ClassNode, []Outcome, error) {
	results := make([]*classfile.ClassNode, len(classes))
	outcomes := make([]Outcome, len(classes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for _, group := range groupByName(classes) {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			for _, i := range group {
				class, outcome, err := p.TransformClass(gctx, classes[i])
				if err != nil && !errors.Is(err, ErrRejected) && !errors.Is(err, ErrNilClass) {
					return err
				}

				if err != nil {
					outcome.Err = err
				}

				results[i], outcomes[i] = class, outcome
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, outcomes, err
	}

	return results, outcomes, ctx.Err()
}

// groupByName groups batch indexes by class name, keeping first-seen order.
func groupByName(classes []*classfile.ClassNode) [][]int {
	var (
		groups [][]int
		index  = make(map[string]int)
	)

	for i, c := range classes {
		name := ""
		if c != nil {
			name = c.Name
		}

		g, ok := index[name]
		if !ok {
			g = len(groups)
			index[name] = g
			groups = append(groups, nil)
		}

		groups[g] = append(groups[g], i)
	}

	return groups
}
