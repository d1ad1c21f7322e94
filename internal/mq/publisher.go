package mq

import (
	"encoding/json"
	"log"

	"github.com/streadway/amqp"

	"ssc-pay-api/internal/dal"
)

// PaymentOutcomeEvent 支付终态事件, 供邮件/统计等下游消费
type PaymentOutcomeEvent struct {
	OrderID     string `json:"order_id"`
	OrderCode   int64  `json:"order_code"`
	PaymentID   string `json:"payment_id"`
	OrderStatus string `json:"order_status"`
	Status      string `json:"status"`
	AppliedAt   int64  `json:"applied_at"`
}

// RabbitPublisher event.Publisher 的 RabbitMQ 实现
type RabbitPublisher struct{}

func NewRabbitPublisher() *RabbitPublisher { return &RabbitPublisher{} }

// Publish 发布到 payment_events 交换机, 通道未就绪时静默跳过
func (p *RabbitPublisher) Publish(topic string, msg any) error {
	if dal.RabbitCh == nil {
		return nil
	}
	b, _ := json.Marshal(msg)
	err := dal.RabbitCh.Publish(
		"payment_events",
		topic,
		false, false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         b,
		},
	)
	if err != nil {
		log.Printf("publish %s failed: %v", topic, err)
	}
	return err
}
