package orders

import "github.com/ariefcatur/go-restaurant-orders/internal/display"

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusConfirmed  Status = "CONFIRMED"
	StatusDelivering Status = "DELIVERING"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
)

type PaymentMethod string

const (
	PaymentCash  PaymentMethod = "CASH"
	PaymentVNPay PaymentMethod = "VNPAY"
)

type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "PAID"
	PaymentUnpaid  PaymentStatus = "PAYMENT_UNPAID"
	PaymentUnknown PaymentStatus = "UNKNOWN"
)

// ParsePaymentStatus turns a nullable stored value into a PaymentStatus.
// NULL and empty both mean UNKNOWN; other values pass through as-is.
func ParsePaymentStatus(v *string) PaymentStatus {
	if v == nil || *v == "" {
		return PaymentUnknown
	}
	return PaymentStatus(*v)
}

// payment axis only; fulfillment status is driven by the kitchen workflow.
var validNextPayment = map[PaymentStatus]map[PaymentStatus]bool{
	PaymentUnknown: {PaymentUnpaid: true, PaymentPaid: true},
	PaymentUnpaid:  {PaymentPaid: true},
	PaymentPaid:    {},
}

func CanTransitionPayment(from, to PaymentStatus) bool {
	return validNextPayment[from.orUnknown()][to]
}

// orUnknown treats the zero value as an absent status.
func (s PaymentStatus) orUnknown() PaymentStatus {
	if s == "" {
		return PaymentUnknown
	}
	return s
}

var statusLabels = map[Status]display.Label{
	StatusPending:    {Text: "awaiting confirmation", Tag: display.TagInfo},
	StatusConfirmed:  {Text: "confirmed", Tag: display.TagSuccess},
	StatusDelivering: {Text: "out for delivery", Tag: display.TagWarning},
	StatusDelivered:  {Text: "delivered", Tag: display.TagSuccessStrong},
	StatusCancelled:  {Text: "cancelled", Tag: display.TagDanger},
}

var methodLabels = map[PaymentMethod]display.Label{
	PaymentCash:  {Text: "cash on delivery", Tag: display.TagWarning},
	PaymentVNPay: {Text: "online gateway", Tag: display.TagInfo},
}

var paymentStatusLabels = map[PaymentStatus]display.Label{
	PaymentPaid:    {Text: "paid", Tag: display.TagSuccess},
	PaymentUnpaid:  {Text: "unpaid", Tag: display.TagDanger},
	PaymentUnknown: {Text: "unpaid", Tag: display.TagNeutral},
}

func StatusLabel(s Status) display.Label {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return display.Label{Text: string(s), Tag: display.TagNeutral}
}

type PaymentLabels struct {
	Method display.Label `json:"method"`
	Status display.Label `json:"status"`
}

func PaymentLabel(m PaymentMethod, s PaymentStatus) PaymentLabels {
	s = s.orUnknown()
	out := PaymentLabels{
		Method: display.Label{Text: string(m), Tag: display.TagNeutral},
		Status: display.Label{Text: string(s), Tag: display.TagNeutral},
	}
	if l, ok := methodLabels[m]; ok {
		out.Method = l
	}
	if l, ok := paymentStatusLabels[s]; ok {
		out.Status = l
	}
	return out
}

// IsPaymentActionEligible gates the "request payment" action: only online-gateway
// orders that have not been paid yet.
func IsPaymentActionEligible(o Order) bool {
	if o.PaymentMethod != PaymentVNPay {
		return false
	}
	ps := o.PaymentStatus.orUnknown()
	return ps == PaymentUnpaid || ps == PaymentUnknown
}
