package content

import (
	"context"
	"encoding/json"
	"errors"
	"iter"
	"log/slog"
	"slices"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/iamsank8/portfolio/pkg/defaults"
	cerrors "github.com/iamsank8/portfolio/pkg/errors"
	"github.com/iamsank8/portfolio/pkg/store"
)

const tracerName = "github.com/iamsank8/portfolio/pkg/content"

// Fallback reasons, used as the "reason" metric label.
const (
	ReasonNoStore     = "no_store"
	ReasonEmpty       = "empty"
	ReasonQueryError  = "query_error"
	ReasonTimeout     = "timeout"
	ReasonDecodeError = "decode_error"
)

// reasonCanceled marks a load abandoned by the caller. It is not a store
// fault and is neither counted nor logged as one.
const reasonCanceled = "canceled"

const (
	sourceStore    = "store"
	sourceFallback = "fallback"
)

var fallbackTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "portfolio_content_fallback_total",
		Help: "Total number of content loads served from the embedded fallback dataset",
	},
	[]string{"category", "reason"},
)

// Adapter reads content categories from a document store and falls back to
// the embedded dataset when the store is missing, empty or failing. Callers
// never see a store error.
type Adapter struct {
	reader   store.Reader
	fallback *Dataset
	logger   *slog.Logger
	tracer   trace.Tracer
	timeout  time.Duration
}

// AdapterOption configures an Adapter.
type AdapterOption func(*Adapter)

// WithLogger sets the logger used to report fallbacks.
func WithLogger(l *slog.Logger) AdapterOption {
	return func(a *Adapter) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithQueryTimeout bounds each store query.
func WithQueryTimeout(d time.Duration) AdapterOption {
	return func(a *Adapter) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// NewAdapter creates an Adapter over r. A nil reader serves fallback data only.
func NewAdapter(r store.Reader, opts ...AdapterOption) (*Adapter, error) {
	ds, err := Fallback()
	if err != nil {
		return nil, err
	}
	a := &Adapter{
		reader:   r,
		fallback: ds,
		logger:   slog.Default(),
		tracer:   otel.Tracer(tracerName),
		timeout:  defaults.StoreQueryTimeout,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Projects yields all projects.
func (a *Adapter) Projects(ctx context.Context) iter.Seq[Project] {
	return load(ctx, a, CategoryProjects, a.fallback.Projects, nil)
}

// Skills yields all skill categories.
func (a *Adapter) Skills(ctx context.Context) iter.Seq[SkillCategory] {
	return load(ctx, a, CategorySkills, a.fallback.Skills, nil)
}

// Experience yields positions, most recent first when read from the store.
// Fallback data is already in that order and is yielded as is.
func (a *Adapter) Experience(ctx context.Context) iter.Seq[Experience] {
	return load(ctx, a, CategoryExperience, a.fallback.Experience, sortByRecency)
}

// Education yields education records.
func (a *Adapter) Education(ctx context.Context) iter.Seq[Education] {
	return load(ctx, a, CategoryEducation, a.fallback.Education, nil)
}

// About yields the about section.
func (a *Adapter) About(ctx context.Context) iter.Seq[About] {
	return load(ctx, a, CategoryAbout, a.fallback.About, nil)
}

func sortByRecency(items []Experience) {
	slices.SortStableFunc(items, func(x, y Experience) int {
		return ParsePeriodStart(y.Period).Compare(ParsePeriodStart(x.Period))
	})
}

// load returns a single-use sequence. The store is queried when iteration
// starts; ranging over the sequence again yields nothing.
func load[T record[T]](ctx context.Context, a *Adapter, c Category, fallback func() []T, order func([]T)) iter.Seq[T] {
	var started atomic.Bool
	return func(yield func(T) bool) {
		if started.Swap(true) {
			return
		}
		for _, item := range fetch(ctx, a, c, fallback, order) {
			if !yield(item) {
				return
			}
		}
	}
}

func fetch[T record[T]](ctx context.Context, a *Adapter, c Category, fallback func() []T, order func([]T)) []T {
	ctx, span := a.tracer.Start(ctx, "content.load",
		trace.WithAttributes(attribute.String("content.category", c.String())))
	defer span.End()

	items, reason, err := fromStore[T](ctx, a, c)
	if reason == "" {
		if order != nil {
			order(items)
		}
		span.SetAttributes(
			attribute.String("content.source", sourceStore),
			attribute.Int("content.count", len(items)),
		)
		return items
	}

	if reason == reasonCanceled {
		span.SetAttributes(attribute.String("content.source", sourceFallback))
		span.SetStatus(codes.Error, reason)
		a.logger.DebugContext(ctx, "content load canceled by caller", "category", c, "error", err)
		return fallback()
	}

	fallbackTotal.WithLabelValues(c.String(), reason).Inc()
	span.SetAttributes(
		attribute.String("content.source", sourceFallback),
		attribute.String("content.fallback_reason", reason),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, reason)
		a.logger.WarnContext(ctx, "content store failed, serving fallback",
			"category", c, "reason", reason, "error", err)
	} else {
		a.logger.DebugContext(ctx, "serving fallback content", "category", c, "reason", reason)
	}
	return fallback()
}

// fromStore returns the decoded documents of a category, or the reason
// they cannot be used. A decode failure on any document discards the whole
// result so a response never mixes store and fallback records.
func fromStore[T record[T]](ctx context.Context, a *Adapter, c Category) ([]T, string, error) {
	if a.reader == nil {
		return nil, ReasonNoStore, nil
	}

	qctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	docs, err := a.reader.List(qctx, c.Collection())
	if err != nil {
		if ctx.Err() != nil {
			return nil, reasonCanceled, err
		}
		if errors.Is(err, context.DeadlineExceeded) || cerrors.IsCode(err, cerrors.ErrCodeTimeout) {
			return nil, ReasonTimeout, err
		}
		return nil, ReasonQueryError, err
	}
	if len(docs) == 0 {
		return nil, ReasonEmpty, nil
	}

	items := make([]T, 0, len(docs))
	for _, doc := range docs {
		var v T
		if err := json.Unmarshal(doc.Data, &v); err != nil {
			return nil, ReasonDecodeError, cerrors.WrapWithContext(cerrors.ErrCodeInternal, "decode document", err,
				map[string]any{"collection": c.Collection(), "id": doc.ID})
		}
		items = append(items, v.withID(doc.ID))
	}
	return items, "", nil
}
