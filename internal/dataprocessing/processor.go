package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"censuscli/internal/infrastructure"
	"censuscli/pkg/contracts/domain"
)

const (
	TracerName = "censuscli.prepare"

	// Sentinel marks an unknown raw value in the census data.
	Sentinel = "?"

	IdentifierColumn     = "fnlwgt"
	WorkclassColumn      = "workclass"
	OccupationColumn     = "occupation"
	NativeCountryColumn  = "native-country"
	EducationColumn      = "education"
	EducationGroupColumn = "education_grouped"
	AgeColumn            = "age"
	AgeGroupColumn       = "age_grouped"
)

// Preparation step names, used in errors, spans and metrics.
const (
	StepDropIdentifier = "drop_identifier_column"
	StepNormalize      = "normalize_sentinel"
	StepOrderOutcome   = "order_outcome_column"
	StepEducationGroup = "derive_education_group"
	StepAgeGroup       = "derive_age_group"
)

// SentinelColumns are the columns in which "?" stands for a missing value.
func SentinelColumns() []string {
	return []string{WorkclassColumn, OccupationColumn, NativeCountryColumn}
}

// PreparerConfig tunes the feature preparer.
type PreparerConfig struct {
	// Workers bounds the goroutines used by the per-row steps. Values below 1
	// mean sequential.
	Workers int
	// CoerceUnknownIncome turns out-of-domain income labels into absent
	// values instead of failing.
	CoerceUnknownIncome bool
}

// PrepareReport summarizes what preparation changed.
type PrepareReport struct {
	Rows              int                       `json:"rows"`
	SentinelsReplaced map[string]int            `json:"sentinels_replaced"`
	LookupMisses      map[string]int            `json:"lookup_misses"`
	MissedValues      map[string]map[string]int `json:"missed_values"`
	CoercedIncomes    []CategoryViolation       `json:"coerced_incomes,omitempty"`
	Duration          time.Duration             `json:"duration"`
}

func newPrepareReport() *PrepareReport {
	return &PrepareReport{
		SentinelsReplaced: make(map[string]int),
		LookupMisses:      make(map[string]int),
		MissedValues:      make(map[string]map[string]int),
	}
}

// Preparer turns the raw record table into the cleaned, enriched table.
type Preparer struct {
	cfg     PreparerConfig
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *infrastructure.PipelineMetrics
}

// NewPreparer creates a preparer. metrics may be nil.
func NewPreparer(cfg PreparerConfig, logger *slog.Logger, metrics *infrastructure.PipelineMetrics) *Preparer {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Preparer{
		cfg:     cfg,
		logger:  infrastructure.WithComponent(logger, "preparer"),
		tracer:  otel.Tracer(TracerName),
		metrics: metrics,
	}
}

// Prepare applies every preparation step to t in order, mutating it in place.
// Structural problems abort; lookup misses only show up in the report.
func (p *Preparer) Prepare(ctx context.Context, t *Table) (*PrepareReport, error) {
	start := time.Now()
	report := newPrepareReport()

	steps := []struct {
		name string
		run  func(ctx context.Context) error
	}{
		{StepDropIdentifier, func(context.Context) error {
			return DropIdentifierColumn(t, IdentifierColumn)
		}},
		{StepNormalize, func(ctx context.Context) error {
			replaced, err := p.NormalizeSentinel(ctx, t, SentinelColumns())
			for col, n := range replaced {
				report.SentinelsReplaced[col] = n
				p.metrics.RecordSentinels(ctx, col, n)
			}
			return err
		}},
		{StepOrderOutcome, func(ctx context.Context) error {
			coerced, err := OrderOutcomeColumn(t, IncomeColumn, p.cfg.CoerceUnknownIncome)
			for _, c := range coerced {
				p.logger.WarnContext(ctx, "Income value outside declared categories coerced to absent",
					slog.Int("row", c.Row),
					slog.String("value", c.Value))
			}
			report.CoercedIncomes = coerced
			p.metrics.RecordCoercedIncomes(ctx, len(coerced))
			return err
		}},
		{StepEducationGroup, func(ctx context.Context) error {
			missed, err := p.DeriveEducationGroup(ctx, t)
			p.recordMisses(ctx, report, EducationGroupColumn, missed)
			return err
		}},
		{StepAgeGroup, func(ctx context.Context) error {
			missed, err := p.DeriveAgeGroup(ctx, t)
			p.recordMisses(ctx, report, AgeGroupColumn, missed)
			return err
		}},
	}

	for _, step := range steps {
		if err := p.runStep(ctx, step.name, step.run); err != nil {
			return report, err
		}
	}

	report.Rows = t.Len()
	report.Duration = time.Since(start)

	p.logger.InfoContext(ctx, "Feature preparation complete",
		slog.Int("rows", report.Rows),
		slog.Any("sentinels_replaced", report.SentinelsReplaced),
		slog.Any("lookup_misses", report.LookupMisses),
		slog.Int("coerced_incomes", len(report.CoercedIncomes)),
		slog.Duration("duration", report.Duration))

	return report, nil
}

func (p *Preparer) runStep(ctx context.Context, name string, run func(context.Context) error) error {
	ctx, span := p.tracer.Start(ctx, "prepare."+name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("step", name)),
	)
	defer span.End()

	start := time.Now()
	err := run(ctx)
	p.metrics.RecordStep(ctx, name, time.Since(start), err == nil)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		p.logger.ErrorContext(ctx, "Preparation step failed",
			slog.String("step", name),
			slog.String("error", err.Error()))
		return wrapStep(name, err)
	}

	p.logger.DebugContext(ctx, "Preparation step complete",
		slog.String("step", name),
		slog.Duration("duration", time.Since(start)))
	return nil
}

func (p *Preparer) recordMisses(ctx context.Context, report *PrepareReport, column string, missed map[string]int) {
	total := 0
	for _, n := range missed {
		total += n
	}
	report.LookupMisses[column] = total
	report.MissedValues[column] = missed
	p.metrics.RecordLookupMisses(ctx, column, total)

	if total == 0 {
		return
	}
	values := make([]string, 0, len(missed))
	for v := range missed {
		values = append(values, v)
	}
	sort.Strings(values)
	for _, v := range values {
		p.logger.DebugContext(ctx, "Value has no group",
			slog.String("column", column),
			slog.String("value", v),
			slog.Int("rows", missed[v]))
	}
	p.logger.InfoContext(ctx, "Derived column has ungrouped rows",
		slog.String("column", column),
		slog.Int("rows", total))
}

// DropIdentifierColumn removes column from the table. The column must exist.
func DropIdentifierColumn(t *Table, column string) error {
	if !t.HasColumn(column) {
		return missingColumn(StepDropIdentifier, column)
	}
	return t.DropColumn(column)
}

// NormalizeSentinel trims every present value of columns and replaces the
// sentinel with an absent value. It returns how many sentinels each column
// held. Running it again on its own output changes nothing.
func (p *Preparer) NormalizeSentinel(ctx context.Context, t *Table, columns []string) (map[string]int, error) {
	idx := make([]int, len(columns))
	for i, col := range columns {
		c, ok := t.index[col]
		if !ok {
			return nil, missingColumn(StepNormalize, col)
		}
		idx[i] = c
	}

	chunks, err := forEachChunk(ctx, p.cfg.Workers, t.Len(), func(lo, hi int) ([]int, error) {
		counts := make([]int, len(columns))
		for r := lo; r < hi; r++ {
			row := t.rows[r]
			for i, c := range idx {
				next, replaced := normalizeCell(row[c])
				row[c] = next
				if replaced {
					counts[i]++
				}
			}
		}
		return counts, nil
	})
	if err != nil {
		return nil, err
	}

	replaced := make(map[string]int, len(columns))
	for _, col := range columns {
		replaced[col] = 0
	}
	for _, counts := range chunks {
		for i, n := range counts {
			replaced[columns[i]] += n
		}
	}
	return replaced, nil
}

func normalizeCell(v domain.Value) (domain.Value, bool) {
	if v.IsAbsent() {
		return v, false
	}
	trimmed := strings.TrimSpace(v.String())
	if trimmed == Sentinel {
		return domain.Absent(), true
	}
	return domain.Some(trimmed), false
}

// OrderOutcomeColumn parses every present cell of column as a domain.Income
// and declares the income categories, in order, on the column. Labels that do
// not parse fail with an UnknownCategoryError unless coerce is set, in which
// case they become absent and are returned.
func OrderOutcomeColumn(t *Table, column string, coerce bool) ([]CategoryViolation, error) {
	cells, err := t.Column(column)
	if err != nil {
		return nil, missingColumn(StepOrderOutcome, column)
	}

	var violations []CategoryViolation
	for i, v := range cells {
		raw, present := v.Get()
		if !present {
			continue
		}
		if _, err := domain.ParseIncome(raw); err != nil {
			violations = append(violations, CategoryViolation{Row: i, Value: raw})
		}
	}

	categories := domain.IncomeCategories()
	if len(violations) > 0 {
		if !coerce {
			return nil, &UnknownCategoryError{
				Column:    column,
				Allowed:   categories,
				Offenders: violations,
			}
		}
		for _, v := range violations {
			if err := t.Set(v.Row, column, domain.Absent()); err != nil {
				return nil, err
			}
		}
	}

	if err := t.SetCategories(column, categories, true); err != nil {
		return nil, err
	}
	if coerce {
		return violations, nil
	}
	return nil, nil
}

// DeriveEducationGroup stores the education group of every row in the
// education_grouped column. Labels missing from the mapping give an absent
// group; the returned map counts them by raw value.
func (p *Preparer) DeriveEducationGroup(ctx context.Context, t *Table) (map[string]int, error) {
	return p.deriveColumn(ctx, t, StepEducationGroup, EducationColumn, EducationGroupColumn,
		domain.EducationGroupOrder(), func(raw string) (string, bool) {
			return domain.GroupEducation(raw)
		})
}

// DeriveAgeGroup stores the age bin label of every row in the age_grouped
// column. Ages outside [17, 90) or not integers give an absent label; the
// returned map counts them by raw value.
func (p *Preparer) DeriveAgeGroup(ctx context.Context, t *Table) (map[string]int, error) {
	return p.deriveColumn(ctx, t, StepAgeGroup, AgeColumn, AgeGroupColumn,
		domain.AgeBinLabels, func(raw string) (string, bool) {
			age, err := strconv.Atoi(strings.TrimSpace(raw))
			if err != nil {
				return "", false
			}
			return domain.AgeBinLabel(age)
		})
}

func (p *Preparer) deriveColumn(
	ctx context.Context,
	t *Table,
	step, source, target string,
	order []string,
	lookup func(raw string) (string, bool),
) (map[string]int, error) {
	src, ok := t.index[source]
	if !ok {
		return nil, missingColumn(step, source)
	}

	cells := make([]domain.Value, t.Len())
	chunks, err := forEachChunk(ctx, p.cfg.Workers, t.Len(), func(lo, hi int) (map[string]int, error) {
		missed := make(map[string]int)
		for r := lo; r < hi; r++ {
			raw, present := t.rows[r][src].Get()
			if !present {
				missed[""]++
				continue
			}
			label, ok := lookup(raw)
			if !ok {
				missed[raw]++
				continue
			}
			cells[r] = domain.Some(label)
		}
		return missed, nil
	})
	if err != nil {
		return nil, err
	}

	missed := make(map[string]int)
	for _, m := range chunks {
		for v, n := range m {
			missed[v] += n
		}
	}

	if err := t.putColumn(target, cells); err != nil {
		return nil, err
	}
	if err := t.SetCategories(target, order, true); err != nil {
		return nil, fmt.Errorf("%s: %w", target, err)
	}
	return missed, nil
}

// putColumn replaces the cells of name, adding the column when missing.
func (t *Table) putColumn(name string, cells []domain.Value) error {
	c, ok := t.index[name]
	if !ok {
		return t.AddColumn(name, cells)
	}
	if len(cells) != len(t.rows) {
		return fmt.Errorf("column %q has %d cells, table has %d rows", name, len(cells), len(t.rows))
	}
	for i := range t.rows {
		t.rows[i][c] = cells[i]
	}
	return nil
}

// forEachChunk splits [0, n) into contiguous chunks and runs fn on each,
// with at most workers chunks in flight. Results come back in chunk order so
// merged output never depends on scheduling.
func forEachChunk[R any](ctx context.Context, workers, n int, fn func(lo, hi int) (R, error)) ([]R, error) {
	if workers < 1 {
		workers = 1
	}
	if n == 0 {
		return nil, nil
	}
	size := (n + workers - 1) / workers
	results := make([]R, (n+size-1)/size)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range results {
		lo := i * size
		hi := min(lo+size, n)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := fn(lo, hi)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
