package payment

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/ariefcatur/go-restaurant-orders/internal/events"
	"github.com/ariefcatur/go-restaurant-orders/internal/orders"
	"github.com/ariefcatur/go-restaurant-orders/internal/tracing"
)

type Link struct {
	PaymentURL string `json:"paymentUrl"`
}

type Gateway interface {
	CreatePaymentLink(ctx context.Context, orderID string) (Link, error)
}

type EventPublisher interface {
	PublishEvent(ctx context.Context, env events.Envelope) error
}

// RedirectOutcome tells the caller where to send the user. Navigation itself
// is the caller's job.
type RedirectOutcome struct {
	OrderID    string `json:"order_id"`
	PaymentURL string `json:"payment_url"`
}

type Flow struct {
	gw       Gateway
	log      *zap.Logger
	pub      EventPublisher
	producer string
}

type Option func(*Flow)

// WithPublisher announces every issued link as a PaymentLinkRequested event.
func WithPublisher(p EventPublisher, producer string) Option {
	return func(f *Flow) {
		f.pub = p
		f.producer = producer
	}
}

func NewFlow(gw Gateway, log *zap.Logger, opts ...Option) *Flow {
	f := &Flow{gw: gw, log: log}
	for _, o := range opts {
		o(f)
	}
	return f
}

// InitiatePayment asks the gateway for a payment link. It never changes the
// order's payment status; settlement arrives out of band.
func (f *Flow) InitiatePayment(ctx context.Context, o orders.Order) (_ RedirectOutcome, err error) {
	ctx, span := tracing.Start(ctx, "payment.InitiatePayment", trace.WithAttributes(
		attribute.String("order.id", o.ID),
		attribute.String("order.payment_method", string(o.PaymentMethod)),
	))
	defer func() { tracing.End(span, err) }()

	if !orders.IsPaymentActionEligible(o) {
		return RedirectOutcome{}, ErrPaymentNotEligible
	}

	link, err := f.gw.CreatePaymentLink(ctx, o.ID)
	if err != nil {
		var ge *GatewayError
		if errors.As(err, &ge) {
			return RedirectOutcome{}, ge
		}
		return RedirectOutcome{}, &GatewayError{Message: err.Error(), Err: err}
	}
	if strings.TrimSpace(link.PaymentURL) == "" {
		return RedirectOutcome{}, ErrPaymentLinkUnavailable
	}

	out := RedirectOutcome{OrderID: o.ID, PaymentURL: link.PaymentURL}
	f.announce(ctx, out)
	return out, nil
}

func (f *Flow) announce(ctx context.Context, out RedirectOutcome) {
	if f.pub == nil {
		return
	}
	env, err := events.New(events.EventPaymentLinkRequested, f.producer, out.OrderID,
		events.PaymentLinkRequestedPayload{OrderID: out.OrderID, PaymentURL: out.PaymentURL})
	if err == nil {
		env.TraceID = tracing.Traceparent(ctx)
		err = f.pub.PublishEvent(ctx, env)
	}
	if err != nil {
		f.log.Warn("publish payment link event", zap.String("order_id", out.OrderID), zap.Error(err))
	}
}
