package rabbitmq

type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetAccountQueues перечисляет очереди событий учётных записей.
func GetAccountQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "accounts.created", RoutingKey: "created"},
	}
}
