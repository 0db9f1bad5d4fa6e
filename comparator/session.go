// Package comparator holds the per-user state of the plan comparator: the
// displayed category, its plans and statistics, the bounded selection and
// the transient notice shown after a failure.
package comparator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/orlando572/sumaq-seguros-sub000/logger"
	"github.com/orlando572/sumaq-seguros-sub000/plan"
	"github.com/orlando572/sumaq-seguros-sub000/selection"
)

// NoticeTTL is how long a notice stays visible.
const NoticeTTL = 3 * time.Second

// DefaultCategory is shown before the user picks one.
const DefaultCategory = plan.CategoryVehicular

var (
	// ErrStaleResponse signals a category fetch superseded by a newer change.
	ErrStaleResponse = errors.New("comparator: stale category response")
	// ErrLoadFailed signals the plans or statistics of a category could not be fetched.
	ErrLoadFailed = errors.New("comparator: load category failed")
	// ErrPlanNotListed signals a plan id outside the displayed category.
	ErrPlanNotListed = errors.New("comparator: plan not in current category")
)

const (
	msgLoadFailed = "No se pudieron cargar los planes. Intenta nuevamente."
	msgCapacity   = "Solo puedes comparar hasta 3 planes"
)

// NoticeKind classifies a notice for display.
type NoticeKind string

const (
	NoticeError    NoticeKind = "error"
	NoticeCapacity NoticeKind = "capacity"
)

// Notice is a dismissible message that expires on its own.
type Notice struct {
	Kind      NoticeKind `json:"kind"`
	Message   string     `json:"message"`
	ExpiresAt time.Time  `json:"expiresAt"`
}

// Catalog supplies the plans and statistics of a category.
type Catalog interface {
	ListByCategory(ctx context.Context, category plan.Category) ([]plan.Plan, error)
	StatsByCategory(ctx context.Context, category plan.Category) (plan.CategoryStats, error)
}

// Session is one user's comparator. It is safe for concurrent use; category
// fetches run outside the lock and only the latest one is applied.
type Session struct {
	catalog Catalog
	now     func() time.Time

	mu         sync.Mutex
	category   plan.Category
	generation uint64
	loading    bool
	selection  selection.Selection
	plans      []plan.Plan
	stats      plan.CategoryStats
	notice     *Notice
}

// NewSession builds an empty session reading from catalog.
func NewSession(catalog Catalog) *Session {
	return &Session{catalog: catalog, now: time.Now}
}

// WithClock overrides the clock used for notice expiry.
func (s *Session) WithClock(now func() time.Time) *Session {
	s.now = now
	return s
}

// Category returns the displayed category, or "" before the first change.
func (s *Session) Category() plan.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.category
}

// ChangeCategory switches the displayed category. The selection is cleared
// immediately; plans and statistics are fetched in parallel. When another
// change started while this one was in flight, its result is dropped and
// ErrStaleResponse is returned.
func (s *Session) ChangeCategory(ctx context.Context, category plan.Category) error {
	if !category.Valid() {
		return fmt.Errorf("%w: %q", plan.ErrInvalidCategory, category)
	}

	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.category = category
	s.selection = s.selection.Clear()
	s.plans = nil
	s.stats = plan.CategoryStats{Category: category}
	s.loading = true
	s.mu.Unlock()

	var (
		plans []plan.Plan
		stats plan.CategoryStats
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		plans, err = s.catalog.ListByCategory(gctx, category)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = s.catalog.StatsByCategory(gctx, category)
		return err
	})
	err := g.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		return ErrStaleResponse
	}
	s.loading = false

	if err != nil {
		logger.FromContext(ctx).Error("comparator category load failed", "category", category, "error", err)
		s.setNotice(NoticeError, msgLoadFailed)
		return fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}

	s.plans = plans
	s.stats = stats
	return nil
}

// Toggle adds or removes planID from the selection. A fourth plan is
// rejected with selection.ErrCapacityExceeded and a capacity notice.
func (s *Session) Toggle(planID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.findPlan(planID); !ok {
		return ErrPlanNotListed
	}

	next, err := s.selection.Toggle(planID)
	if err != nil {
		if errors.Is(err, selection.ErrCapacityExceeded) {
			s.setNotice(NoticeCapacity, msgCapacity)
		}
		return err
	}
	s.selection = next
	return nil
}

// QuoteSingle replaces the selection with planID alone and returns it, ready
// to be handed to the quotation flow.
func (s *Session) QuoteSingle(planID int64) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.findPlan(planID); !ok {
		return nil, ErrPlanNotListed
	}
	s.selection = s.selection.ReplaceWithSingle(planID)
	return s.selection.IDs(), nil
}

// Selection returns the selected plan ids in selection order.
func (s *Session) Selection() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.IDs()
}

// SelectedPlans resolves the selection against the displayed plans.
func (s *Session) SelectedPlans() []plan.Plan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedPlans()
}

// Notice returns the current notice, or nil once it has expired.
func (s *Session) Notice() *Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentNotice()
}

// ReportError shows msg as an error notice. The quotation flow uses it to
// surface failures in the comparator.
func (s *Session) ReportError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setNotice(NoticeError, msg)
}

func (s *Session) setNotice(kind NoticeKind, msg string) {
	s.notice = &Notice{Kind: kind, Message: msg, ExpiresAt: s.now().Add(NoticeTTL)}
}

func (s *Session) currentNotice() *Notice {
	if s.notice == nil {
		return nil
	}
	if !s.now().Before(s.notice.ExpiresAt) {
		s.notice = nil
		return nil
	}
	n := *s.notice
	return &n
}

func (s *Session) findPlan(id int64) (plan.Plan, bool) {
	for _, p := range s.plans {
		if p.ID == id {
			return p, true
		}
	}
	return plan.Plan{}, false
}

func (s *Session) selectedPlans() []plan.Plan {
	ids := s.selection.IDs()
	out := make([]plan.Plan, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.findPlan(id); ok {
			out = append(out, p)
		}
	}
	return out
}
