package stock

import "github.com/ariefcatur/go-restaurant-orders/internal/display"

type Status string

const (
	StatusSufficient Status = "SUFFICIENT"
	StatusLow        Status = "LOW"
	StatusCritical   Status = "CRITICAL"
	StatusOutOfStock Status = "OUT_OF_STOCK"
)

// Tier boundaries, inclusive upper bounds.
const (
	LowMax      = 20
	CriticalMax = 10
)

// Classify maps a stock count to its tier. Negative counts are treated as 0.
func Classify(stock int) Status {
	if stock < 0 {
		stock = 0
	}
	switch {
	case stock > LowMax:
		return StatusSufficient
	case stock > CriticalMax:
		return StatusLow
	case stock > 0:
		return StatusCritical
	default:
		return StatusOutOfStock
	}
}

var labels = map[Status]display.Label{
	StatusSufficient: {Text: "in stock", Tag: display.TagSuccess},
	StatusLow:        {Text: "running low", Tag: display.TagWarning},
	StatusCritical:   {Text: "critical", Tag: display.TagDanger},
	StatusOutOfStock: {Text: "out of stock", Tag: display.TagNeutral},
}

func (s Status) Label() display.Label {
	if l, ok := labels[s]; ok {
		return l
	}
	return display.Label{Text: string(s), Tag: display.TagNeutral}
}
