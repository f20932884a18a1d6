package producers

import (
	"fmt"
	"strings"
	"time"

	"github.com/IBM/sarama"
	"github.com/chrisdamba/cafesim/internal/models"
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("cafesim")

type SaramaProducer struct {
	producer sarama.SyncProducer
}

func NewSaramaConfig(config models.KafkaConfig) *sarama.Config {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 5
	saramaConfig.Producer.Retry.Backoff = 100 * time.Millisecond
	saramaConfig.Producer.Return.Successes = true // required by SyncProducer
	saramaConfig.Net.DialTimeout = 30 * time.Second
	saramaConfig.Net.ReadTimeout = 30 * time.Second
	saramaConfig.Net.WriteTimeout = 30 * time.Second

	if config.SessionTimeoutMs > 0 {
		saramaConfig.Consumer.Group.Session.Timeout = time.Duration(config.SessionTimeoutMs) * time.Millisecond
	} else {
		saramaConfig.Consumer.Group.Session.Timeout = 45 * time.Second
	}
	return saramaConfig
}

func NewSaramaProducer(config models.KafkaConfig) (*SaramaProducer, error) {
	brokerList := strings.Split(config.BrokerList, ",")

	producer, err := sarama.NewSyncProducer(brokerList, NewSaramaConfig(config))
	if err != nil {
		return nil, fmt.Errorf("failed to create Sarama producer: %w", err)
	}

	log.Infof("Sarama producer created with brokers %v", brokerList)
	return &SaramaProducer{producer: producer}, nil
}

// NewSaramaProducerFrom wraps an existing producer, such as a mock.
func NewSaramaProducerFrom(producer sarama.SyncProducer) *SaramaProducer {
	return &SaramaProducer{producer: producer}
}

// WriteMessages sends a batch of keyed messages to one topic.
func (s *SaramaProducer) WriteMessages(topic string, keys, msgs [][]byte) error {
	if s.producer == nil {
		return fmt.Errorf("Sarama producer is not initialized")
	}

	batch := make([]*sarama.ProducerMessage, len(msgs))
	for i, msg := range msgs {
		batch[i] = &sarama.ProducerMessage{
			Topic: topic,
			Value: sarama.ByteEncoder(msg),
		}
		if i < len(keys) && keys[i] != nil {
			batch[i].Key = sarama.ByteEncoder(keys[i])
		}
	}
	if err := s.producer.SendMessages(batch); err != nil {
		log.Errorf("Failed to send %d messages to topic %s: %v", len(batch), topic, err)
		return err
	}
	return nil
}

func (s *SaramaProducer) Close() error {
	if s.producer != nil {
		return s.producer.Close()
	}
	return nil
}
