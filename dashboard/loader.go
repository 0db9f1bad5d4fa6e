package dashboard

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/orlando572/sumaq-seguros-sub000/logger"
)

// ErrLoadFailed is the single failure state of a dashboard load.
var ErrLoadFailed = errors.New("dashboard: failed to load dashboard")

// Source fetches the five dashboard sub-resources of a user. A method returns
// (nil, nil) when the user simply has no such data.
type Source interface {
	PersonalInfo(ctx context.Context, userID string) (*PersonalInfo, error)
	FinancialSummary(ctx context.Context, userID string) (*FinancialSummary, error)
	InsuranceSummary(ctx context.Context, userID string) (*InsuranceSummary, error)
	Alerts(ctx context.Context, userID string) (*Alerts, error)
	Activity(ctx context.Context, userID string) (*Activity, error)
}

// Loader fans the five fetches out in parallel and aggregates the result.
type Loader struct {
	src Source
}

// NewLoader builds a Loader reading from src.
func NewLoader(src Source) *Loader {
	return &Loader{src: src}
}

// Load fetches every sub-resource concurrently. If any fetch fails the
// remaining ones are cancelled and ErrLoadFailed is returned; no partial
// summary is produced.
func (l *Loader) Load(ctx context.Context, userID string) (Summary, error) {
	var src Sources

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		src.PersonalInfo, err = l.src.PersonalInfo(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		src.Financial, err = l.src.FinancialSummary(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		src.Insurance, err = l.src.InsuranceSummary(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		src.Alerts, err = l.src.Alerts(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		src.Activity, err = l.src.Activity(gctx, userID)
		return err
	})

	if err := g.Wait(); err != nil {
		logger.FromContext(ctx).Error("dashboard load failed", "user_id", userID, "error", err)
		return Summary{}, ErrLoadFailed
	}

	return Aggregate(src), nil
}
