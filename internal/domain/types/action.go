package types

const (
	ActionRabbitMQConnected       = "rabbitmq_connected"
	ActionRabbitConnectionClosed  = "rabbitmq_connection_closed"
	ActionRabbitConnectionClosing = "rabbitmq_connection_closing"
	ActionRabbitReconnected       = "rabbitmq_reconnection_success"

	ActionSequenceStoreFailed = "sequence_store_failed"
	ActionLedgerWriteFailed   = "ledger_write_failed"
	ActionFallbackAllocation  = "fallback_allocation"
)
