package kafka

import (
	"context"

	"github.com/IBM/sarama"

	"gomart-social/pkg/logger"
)

// Producer Kafka生产者
type Producer struct {
	asyncProducer sarama.AsyncProducer
}

// InitProducer 初始化生产者
func InitProducer(brokers []string) (*Producer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewAsyncProducer(brokers, config)
	if err != nil {
		return nil, err
	}
	return newProducer(producer), nil
}

// newProducer 包装异步生产者并启动回执消费
// 成功与失败回执都由后台协程消费，Input不会因回执堆积而阻塞调用方
func newProducer(asyncProducer sarama.AsyncProducer) *Producer {
	p := &Producer{asyncProducer: asyncProducer}
	go p.drainSuccesses()
	go p.drainErrors()
	return p
}

// drainSuccesses 消费成功回执
func (p *Producer) drainSuccesses() {
	for range p.asyncProducer.Successes() {
	}
}

// drainErrors 消费失败回执并记录日志
func (p *Producer) drainErrors() {
	log := logger.GetLogger()
	for producerErr := range p.asyncProducer.Errors() {
		log.Error(context.Background(), "Kafka message delivery failed",
			logger.F("topic", producerErr.Msg.Topic),
			logger.F("error", producerErr.Err.Error()))
	}
}

// SendMessage 发送消息
func (p *Producer) SendMessage(topic string, key, value []byte) error {
	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.ByteEncoder(key),
		Value: sarama.ByteEncoder(value),
	}
	p.asyncProducer.Input() <- msg
	return nil
}

// Close 关闭生产者
func (p *Producer) Close() error {
	return p.asyncProducer.Close()
}
