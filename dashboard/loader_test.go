package dashboard

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	personal  *PersonalInfo
	financial *FinancialSummary
	insurance *InsuranceSummary
	alerts    *Alerts
	activity  *Activity

	alertsErr error
	calls     atomic.Int32
}

func (f *fakeSource) PersonalInfo(ctx context.Context, userID string) (*PersonalInfo, error) {
	f.calls.Add(1)
	return f.personal, nil
}

func (f *fakeSource) FinancialSummary(ctx context.Context, userID string) (*FinancialSummary, error) {
	f.calls.Add(1)
	return f.financial, nil
}

func (f *fakeSource) InsuranceSummary(ctx context.Context, userID string) (*InsuranceSummary, error) {
	f.calls.Add(1)
	return f.insurance, nil
}

func (f *fakeSource) Alerts(ctx context.Context, userID string) (*Alerts, error) {
	f.calls.Add(1)
	if f.alertsErr != nil {
		return nil, f.alertsErr
	}
	return f.alerts, nil
}

func (f *fakeSource) Activity(ctx context.Context, userID string) (*Activity, error) {
	f.calls.Add(1)
	return f.activity, nil
}

func TestLoader_Load(t *testing.T) {
	src := &fakeSource{
		personal:  &PersonalInfo{FullName: "Rosa Quispe"},
		financial: &FinancialSummary{TotalBalance: decimal.NewFromInt(1000)},
		alerts:    &Alerts{Total: 1, Items: []Alert{{ID: "a1", Kind: "warning", Icon: "AlertTriangle"}}},
	}

	summary, err := NewLoader(src).Load(context.Background(), "user-1")

	require.NoError(t, err)
	require.EqualValues(t, 5, src.calls.Load())
	require.Equal(t, "Rosa Quispe", summary.Personal.FullName)
	require.Contains(t, summary.Financial.TotalBalanceText, "1,000.00")
	require.Zero(t, summary.Insurance.ActivePolicies)
	require.Equal(t, 1, summary.Alerts.Count)
	require.Equal(t, IconAlertTriangle, summary.Alerts.Cards[0].Icon)
	require.Zero(t, summary.Activity.Count)
}

func TestLoader_AnyFailureFailsWholeLoad(t *testing.T) {
	src := &fakeSource{
		personal:  &PersonalInfo{FullName: "Rosa Quispe"},
		alertsErr: errors.New("connection reset"),
	}

	summary, err := NewLoader(src).Load(context.Background(), "user-1")

	require.ErrorIs(t, err, ErrLoadFailed)
	require.Equal(t, Summary{}, summary)
}
