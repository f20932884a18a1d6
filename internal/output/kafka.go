package output

import (
	"encoding/json"
	"fmt"

	"github.com/chrisdamba/cafesim/internal/models"
)

const kafkaBatchSize = 500

// MessageProducer publishes keyed messages to a topic.
type MessageProducer interface {
	WriteMessages(topic string, keys, msgs [][]byte) error
	Close() error
}

// KafkaOutput publishes every row as a JSON message on <prefix>_<table>, keyed by the
// row's first column.
type KafkaOutput struct {
	producer    MessageProducer
	topicPrefix string
}

func NewKafkaOutput(producer MessageProducer, topicPrefix string) *KafkaOutput {
	return &KafkaOutput{producer: producer, topicPrefix: topicPrefix}
}

func (k *KafkaOutput) Topic(table string) string {
	if k.topicPrefix == "" {
		return table
	}
	return k.topicPrefix + "_" + table
}

func (k *KafkaOutput) WriteTable(table *models.Table) error {
	topic := k.Topic(table.Name)
	keys := make([][]byte, 0, kafkaBatchSize)
	msgs := make([][]byte, 0, kafkaBatchSize)

	flush := func() error {
		if len(msgs) == 0 {
			return nil
		}
		if err := k.producer.WriteMessages(topic, keys, msgs); err != nil {
			return fmt.Errorf("failed to publish to %s: %w", topic, err)
		}
		keys, msgs = keys[:0], msgs[:0]
		return nil
	}

	for _, row := range table.Rows {
		msg, err := json.Marshal(orderedRecord{columns: table.Columns, values: row})
		if err != nil {
			return err
		}
		var key []byte
		if len(row) > 0 && !models.IsNull(row[0]) {
			key = []byte(models.FormatCell(table.Columns[0], row[0]))
		}
		keys = append(keys, key)
		msgs = append(msgs, msg)
		if len(msgs) == kafkaBatchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	return flush()
}

func (k *KafkaOutput) Close() error {
	return k.producer.Close()
}
