package events

const (
	TopicStockChanged     = "dish.stock.changed"
	TopicPaymentRequested = "order.payment.requested"
	TopicPaymentSettled   = "order.payment.settled"
)

// Partition key = aggregate id so every event of one dish/order stays ordered.
func PartitionKey(id string) []byte { return []byte(id) }
