package messaging

import "github.com/segmentio/kafka-go"

// MessageCarrier adapts kafka message headers to the OTel TextMapCarrier
// interface so trace context can ride along with the event.
type MessageCarrier struct {
	msg *kafka.Message
}

func NewMessageCarrier(msg *kafka.Message) *MessageCarrier {
	return &MessageCarrier{msg: msg}
}

func (mc *MessageCarrier) Get(key string) string {
	for _, h := range mc.msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func (mc *MessageCarrier) Set(key, value string) {
	for i, h := range mc.msg.Headers {
		if h.Key == key {
			mc.msg.Headers[i].Value = []byte(value)
			return
		}
	}
	mc.msg.Headers = append(mc.msg.Headers, kafka.Header{
		Key:   key,
		Value: []byte(value),
	})
}

func (mc *MessageCarrier) Keys() []string {
	keys := make([]string, len(mc.msg.Headers))
	for i, h := range mc.msg.Headers {
		keys[i] = h.Key
	}
	return keys
}
