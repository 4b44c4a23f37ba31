package alerts

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"order_router/internal/config"
	"order_router/internal/metrics"
)

// Коды оповещений. Печатаются в stdout для запускающего скрипта,
// дополнительно уходят в Kafka-топик для дежурного.
const (
	CodeError        = "ERROR_CALL_DADDY"        // фатальная ошибка запуска
	CodeSchemaError  = "ERROR_IN_SOURCE_HEADERS" // в выгрузке нет ожидаемой колонки
	CodeNoNewJob     = "NO NEW JOB"              // все заказы уже обработаны
	CodeForexFailure = "FOREX FAILURE"           // конвертация/обновление курсов не удались
	CodeNoForexData  = "NO FOREX DATA"           // первый запуск без курсов - работать нельзя
	CodeCharlimit    = "DPOST_CHARLIMIT_WARNING" // имя/адрес не влезли в лимиты DP
	CodeDuplicateSKU = "DUPLICATE SKU IN MAPPING"
	CodeExportedOK   = "EXPORTED_SUCCESSFULLY"
)

// message - структура сообщения в топике оповещений.
type message struct {
	Code      string    `json:"code"`
	Detail    string    `json:"detail"`
	Channel   string    `json:"channel"`
	Timestamp time.Time `json:"timestamp"`
}

// Notifier отправляет операторские оповещения: всегда в stdout,
// при включенной Kafka - еще и в топик (best-effort, отказ не фатален).
type Notifier struct {
	writer  *kafka.Writer
	channel string
}

// New создает Notifier. При cfg.Enabled=false работает только stdout.
func New(cfg config.KafkaConfig, salesChannel string) *Notifier {
	n := &Notifier{channel: salesChannel}
	if cfg.Enabled {
		n.writer = &kafka.Writer{
			Addr:     kafka.TCP(cfg.Brokers...),
			Topic:    cfg.AlertsTopic,
			Balancer: &kafka.LeastBytes{},
		}
	}
	return n
}

// Send публикует оповещение с кодом и деталью.
func (n *Notifier) Send(ctx context.Context, code, detail string) {
	// stdout читает запускающая сторона - код должен быть отдельной строкой
	fmt.Println(code)
	metrics.AlertsSent.WithLabelValues(code).Inc()

	if n.writer == nil {
		return
	}
	payload, err := json.Marshal(message{
		Code:      code,
		Detail:    detail,
		Channel:   n.channel,
		Timestamp: time.Now(),
	})
	if err != nil {
		log.Printf("Ошибка сериализации оповещения %s: %v", code, err)
		return
	}
	err = n.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(code),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "X-Sales-Channel", Value: []byte(n.channel)},
		},
	})
	if err != nil {
		log.Printf("Не удалось отправить оповещение %s в Kafka: %v", code, err)
	}
}

// Close закрывает Kafka writer, если он был создан.
func (n *Notifier) Close() {
	if n.writer == nil {
		return
	}
	if err := n.writer.Close(); err != nil {
		log.Printf("Ошибка закрытия Kafka writer оповещений: %v", err)
	}
}
