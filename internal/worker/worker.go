package worker

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/warnodata/extractor/internal/logging"
	"github.com/warnodata/extractor/internal/ndf"
	"github.com/warnodata/extractor/pkg/core"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"
)

const instrumentationName = "github.com/warnodata/extractor/internal/worker"

// Extractor turns one unit descriptor into a unit record.
type Extractor interface {
	ParseUnit(node *ndf.Node) (core.Unit, error)
}

// Dependencies holds all dependencies for the worker manager
type Dependencies struct {
	Extractor Extractor
	Logger    *slog.Logger
	// Meter defaults to the global OTel meter, a no-op unless one is installed.
	Meter   metric.Meter
	Workers int
}

// Failure is a unit that could not be extracted.
type Failure struct {
	Descriptor string
	Err        error
}

// Result holds the extracted units in descriptor order and the units skipped.
type Result struct {
	Units    []core.Unit
	Failures []Failure
	Duration time.Duration
}

// Manager fans unit extraction out over a bounded pool of goroutines.
type Manager struct {
	extractor Extractor
	logger    *slog.Logger
	workers   int

	extracted metric.Int64Counter
	failed    metric.Int64Counter
	weapons   metric.Int64Counter
	duration  metric.Float64Histogram
}

// NewManager creates a new worker manager
func NewManager(deps Dependencies) (*Manager, error) {
	if deps.Extractor == nil {
		return nil, fmt.Errorf("worker: extractor is required")
	}
	m := &Manager{
		extractor: deps.Extractor,
		logger:    deps.Logger,
		workers:   max(deps.Workers, 1),
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}

	meter := deps.Meter
	if meter == nil {
		meter = otel.Meter(instrumentationName)
	}

	var err error
	m.extracted, err = meter.Int64Counter(
		"ndf.units.extracted",
		metric.WithDescription("Units extracted successfully"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create extracted counter: %w", err)
	}
	m.failed, err = meter.Int64Counter(
		"ndf.units.failed",
		metric.WithDescription("Units skipped because extraction failed"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create failed counter: %w", err)
	}
	m.weapons, err = meter.Int64Counter(
		"ndf.weapons.merged",
		metric.WithDescription("Merged weapons across extracted units"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create weapons counter: %w", err)
	}
	m.duration, err = meter.Float64Histogram(
		"ndf.unit.extract.duration",
		metric.WithDescription("Time spent extracting one unit"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	return m, nil
}

// Run extracts every unit descriptor. Output order follows input order
// whatever the scheduling. A unit that fails is logged and skipped.
// Cancelling ctx stops scheduling further units; Run then returns ctx's error
// and no result.
func (m *Manager) Run(ctx context.Context, units []*ndf.Node) (Result, error) {
	start := time.Now()
	slots := make([]*core.Unit, len(units))

	var (
		mu       sync.Mutex
		failures = make(map[int]Failure)
	)

	g := new(errgroup.Group)
	g.SetLimit(m.workers)

	var cancelled error
	for i, node := range units {
		if err := ctx.Err(); err != nil {
			cancelled = err
			break
		}
		i, node := i, node
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			unit, err := m.extract(ctx, node)
			if err != nil {
				mu.Lock()
				failures[i] = Failure{Descriptor: node.Name, Err: err}
				mu.Unlock()
				return nil
			}
			slots[i] = &unit
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	if cancelled != nil {
		return Result{}, cancelled
	}

	result := Result{Units: make([]core.Unit, 0, len(units))}
	for _, u := range slots {
		if u != nil {
			result.Units = append(result.Units, *u)
		}
	}
	indices := make([]int, 0, len(failures))
	for i := range failures {
		indices = append(indices, i)
	}
	slices.Sort(indices)
	for _, i := range indices {
		result.Failures = append(result.Failures, failures[i])
	}
	result.Duration = time.Since(start)

	m.logger.InfoContext(ctx, "Extraction finished",
		"units", len(result.Units),
		"failed", len(result.Failures),
		"duration", result.Duration)

	return result, nil
}

func (m *Manager) extract(ctx context.Context, node *ndf.Node) (core.Unit, error) {
	ctx = logging.WithAttrs(ctx, slog.String("descriptor", node.Name))
	start := time.Now()

	unit, err := m.extractor.ParseUnit(node)
	m.duration.Record(ctx, float64(time.Since(start).Microseconds())/1000)
	if err != nil {
		m.failed.Add(ctx, 1)
		m.logger.ErrorContext(ctx, "Failed to extract unit", "error", err)
		return unit, err
	}

	m.extracted.Add(ctx, 1)
	m.weapons.Add(ctx, int64(len(unit.Weapons)))
	m.logger.DebugContext(ctx, "Extracted unit", "weapons", len(unit.Weapons))
	return unit, nil
}
