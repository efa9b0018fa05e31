package pubsub

import (
	"context"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/sirupsen/logrus"
)

type Publisher interface {
	Publish(ctx context.Context, topic string, key string, headers map[string]string, message []byte) error
	Close()
}

type confluentKafkaPublisher struct {
	logger   *logrus.Logger
	producer *kafka.Producer
}

// PublisherFromConfluentKafkaProducer adapts a confluent kafka producer to the
// Publisher interface. Delivery reports are drained in the background and
// failed deliveries are logged.
func PublisherFromConfluentKafkaProducer(logger *logrus.Logger, producer *kafka.Producer) Publisher {
	p := &confluentKafkaPublisher{
		logger:   logger,
		producer: producer,
	}

	go p.drainDeliveryReports()

	return p
}

func (p *confluentKafkaPublisher) drainDeliveryReports() {
	for e := range p.producer.Events() {
		switch ev := e.(type) {
		case *kafka.Message:
			if ev.TopicPartition.Error != nil {
				p.logger.WithFields(logrus.Fields{
					"object": "pubsub",
					"topic":  *ev.TopicPartition.Topic,
				}).Error(ev.TopicPartition.Error)
			}
		}
	}
}

func (p *confluentKafkaPublisher) Publish(ctx context.Context, topic string, key string, headers map[string]string, message []byte) error {
	kafkaHeaders := make([]kafka.Header, 0, len(headers))
	for k, v := range headers {
		kafkaHeaders = append(kafkaHeaders, kafka.Header{Key: k, Value: []byte(v)})
	}

	msg := &kafka.Message{
		TopicPartition: kafka.TopicPartition{
			Topic:     &topic,
			Partition: kafka.PartitionAny,
		},
		Key:     []byte(key),
		Value:   message,
		Headers: kafkaHeaders,
	}

	if err := p.producer.Produce(msg, nil); err != nil {
		p.logger.WithContext(ctx).WithField("topic", topic).Error(err)
		return err
	}

	return nil
}

func (p *confluentKafkaPublisher) Close() {
	p.producer.Flush(5000)
	p.producer.Close()
}
