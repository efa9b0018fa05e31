package kafka

import (
	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"github.com/tsel-ticketmaster/tm-ticket/config"
)

func NewProducer() *kafka.Producer {
	c := config.Get()

	producer, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": c.Kafka.BootstrapServers,
		"sasl.username":     c.Kafka.SASLUsername,
		"sasl.password":     c.Kafka.SASLPassword,
		"security.protocol": c.Kafka.SecurityProtocol,
		"acks":              "all",
	})
	if err != nil {
		panic(err)
	}

	return producer
}
