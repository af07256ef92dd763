package notify

import (
	"fmt"
	"log"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// pendingCapacity bounds how many messages are held while the broker
// is unreachable.
const pendingCapacity = 64

// MQTT publishes warnings and lifecycle events to an MQTT broker.
// While disconnected, messages are ring-buffered and replayed on
// reconnect, so a broker outage during a low-battery episode still
// leaves a trail once connectivity returns.
type MQTT struct {
	client paho.Client

	mu      sync.Mutex
	pending *ringBuffer
}

// NewMQTT creates a publisher for the given broker. The connection is
// established in the background with retry; a broker that is down at
// startup degrades to buffering, it does not fail construction.
func NewMQTT(broker string) *MQTT {
	m := &MQTT{pending: newRingBuffer(pendingCapacity)}

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID("zero2-controller").
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetOnConnectHandler(func(paho.Client) { m.drainPending() })

	m.client = paho.NewClient(opts)
	token := m.client.Connect()
	if !token.WaitTimeout(5 * time.Second) {
		log.Printf("notify: broker %s not reachable yet, buffering", broker)
	} else if err := token.Error(); err != nil {
		log.Printf("notify: connect to %s: %v (retrying in background)", broker, err)
	}

	return m
}

// SendAllUsers publishes the text to the warnings topic.
func (m *MQTT) SendAllUsers(text string) error {
	payload, err := FormatWarningPayload(time.Now(), text)
	if err != nil {
		return fmt.Errorf("format warning payload: %w", err)
	}
	// QoS 1: warnings precede shutdown, delivery matters.
	return m.publish(TopicWarnings, 1, false, payload)
}

// PublishSystem sends a lifecycle event to the system topic.
func (m *MQTT) PublishSystem(event SystemEvent) error {
	payload, err := FormatSystemPayload(event)
	if err != nil {
		return fmt.Errorf("format system payload: %w", err)
	}
	return m.publish(TopicSystem, 1, event.Retained, payload)
}

// IsConnected reports whether the broker connection is active.
func (m *MQTT) IsConnected() bool {
	return m.client.IsConnectionOpen()
}

// Close disconnects from the broker. Buffered messages that never got
// a connection are dropped.
func (m *MQTT) Close() error {
	m.mu.Lock()
	if n := m.pending.len(); n > 0 {
		log.Printf("notify: dropping %d undelivered messages on close", n)
	}
	m.mu.Unlock()
	m.client.Disconnect(1000) // 1 second timeout
	return nil
}

func (m *MQTT) publish(topic string, qos byte, retained bool, payload []byte) error {
	if !m.client.IsConnectionOpen() {
		m.mu.Lock()
		m.pending.push(pendingMsg{topic: topic, payload: payload, qos: qos, retained: retained})
		m.mu.Unlock()
		return nil
	}

	token := m.client.Publish(topic, qos, retained, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

// drainPending replays buffered messages after a (re)connect.
func (m *MQTT) drainPending() {
	m.mu.Lock()
	msgs := m.pending.drainAll()
	m.mu.Unlock()

	if len(msgs) == 0 {
		return
	}
	log.Printf("notify: replaying %d buffered messages", len(msgs))
	for _, msg := range msgs {
		token := m.client.Publish(msg.topic, msg.qos, msg.retained, msg.payload)
		if !token.WaitTimeout(5 * time.Second) {
			log.Printf("notify: replay timeout on %s", msg.topic)
			continue
		}
		if err := token.Error(); err != nil {
			log.Printf("notify: replay failed on %s: %v", msg.topic, err)
		}
	}
}
