// Package quotation validates and submits quotation requests for the plans a
// user selected.
package quotation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/orlando572/sumaq-seguros-sub000/auth"
	"github.com/orlando572/sumaq-seguros-sub000/logger"
)

var (
	// ErrEmptySelection signals a request without plans.
	ErrEmptySelection = errors.New("quotation: no plans selected")
	// ErrUnauthenticated signals a request without a resolvable user.
	ErrUnauthenticated = errors.New("quotation: no authenticated user")
	// ErrSubmitFailed signals the submission could not be delivered.
	ErrSubmitFailed = errors.New("quotation: submit failed")
	// ErrRejected signals the collaborator declined the request.
	ErrRejected = errors.New("quotation: request rejected")
)

// Submitter delivers a request to whoever prepares the quotation.
type Submitter interface {
	Submit(ctx context.Context, req Request) (Receipt, error)
}

// Notifier is told about accepted requests. Its failures never affect the
// result reported to the user.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// Dispatcher submits quotation requests at most once: there is no retry and
// no local queue.
type Dispatcher struct {
	submitter Submitter
	notifier  Notifier
	idGen     func() string
	now       func() time.Time
}

// NewDispatcher builds a Dispatcher using submitter.
func NewDispatcher(submitter Submitter) *Dispatcher {
	return &Dispatcher{
		submitter: submitter,
		idGen:     func() string { return uuid.NewString() },
		now:       time.Now,
	}
}

// WithNotifier registers n to be informed of accepted requests.
func (d *Dispatcher) WithNotifier(n Notifier) *Dispatcher {
	d.notifier = n
	return d
}

// WithIDGenerator overrides request id generation.
func (d *Dispatcher) WithIDGenerator(gen func() string) *Dispatcher {
	d.idGen = gen
	return d
}

// WithClock overrides the request timestamp source.
func (d *Dispatcher) WithClock(now func() time.Time) *Dispatcher {
	d.now = now
	return d
}

// Request validates and submits a quotation for planIDs on behalf of sess.
// Validation runs in order (selection, then session) before any I/O. The
// returned Result always carries a user-facing message; the error identifies
// the failure kind.
func (d *Dispatcher) Request(ctx context.Context, sess *auth.Session, planIDs []int64, comments string) (Result, error) {
	if len(planIDs) == 0 {
		return Result{Message: MsgEmptySelection}, ErrEmptySelection
	}
	if !sess.Authenticated() {
		return Result{Message: MsgUnauthenticated}, ErrUnauthenticated
	}

	ids := make([]int64, len(planIDs))
	copy(ids, planIDs)
	req := Request{
		ID:          d.idGen(),
		UserID:      sess.UserID,
		PlanIDs:     ids,
		Comments:    comments,
		RequestedAt: d.now(),
	}

	log := logger.FromContext(logger.WithUserID(ctx, sess.UserID))

	receipt, err := d.submitter.Submit(ctx, req)
	if err != nil {
		log.Error("quotation submit failed", "request_id", req.ID, "plans", len(ids), "error", err)
		return Result{Message: MsgSubmitFailed}, ErrSubmitFailed
	}
	if !receipt.Accepted {
		msg := receipt.Message
		if msg == "" {
			msg = MsgRejected
		}
		return Result{Message: msg, RequestID: req.ID}, ErrRejected
	}

	target := receipt.DeliveryTarget
	if target == "" {
		target = sess.Email
	}

	if d.notifier != nil {
		err := d.notifier.Notify(ctx, Notification{
			RequestID:      req.ID,
			UserID:         req.UserID,
			PlanIDs:        req.PlanIDs,
			Comments:       req.Comments,
			DeliveryTarget: target,
			RequestedAt:    req.RequestedAt,
		})
		if err != nil {
			log.Warn("quotation notification failed", "request_id", req.ID, "error", err)
		}
	}

	msg := receipt.Message
	if msg == "" {
		msg = fmt.Sprintf("Solicitud enviada. Recibirás la cotización en %s", target)
	}
	log.Info("quotation requested", "request_id", req.ID, "plans", len(ids))

	return Result{
		Success:        true,
		Message:        msg,
		RequestID:      req.ID,
		DeliveryTarget: target,
	}, nil
}
