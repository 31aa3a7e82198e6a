package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/Asadel-Surveillance/asadel-console/config"
	"github.com/Asadel-Surveillance/asadel-console/metrics"
)

// DetectionIngestor subscribes to the analytics workers' MQTT topic and
// stores every valid detection event it receives
type DetectionIngestor struct {
	broker   string
	topic    string
	clientID string
	qos      byte

	client mqtt.Client
	events chan []byte
	stop   chan struct{}
	once   sync.Once
	wg     sync.WaitGroup
	svc    *DetectionService
}

func NewDetectionIngestor(cfg config.AppConfig, svc *DetectionService) *DetectionIngestor {
	return &DetectionIngestor{
		broker:   cfg.MQTTBroker,
		topic:    cfg.MQTTTopic,
		clientID: cfg.MQTTClientID,
		qos:      1,
		events:   make(chan []byte, 64),
		stop:     make(chan struct{}),
		svc:      svc,
	}
}

// Start connects, subscribes and processes messages until ctx is done
func (d *DetectionIngestor) Start(ctx context.Context) error {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(d.broker)
	opts.SetClientID(d.clientID)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(2 * time.Second)
	opts.SetMaxReconnectInterval(30 * time.Second)

	// Re-subscribe after every reconnect
	opts.OnConnect = func(c mqtt.Client) {
		token := c.Subscribe(d.topic, d.qos, d.onMessage)
		if !token.WaitTimeout(5*time.Second) || token.Error() != nil {
			log.Printf("[detection.mqtt] subscribe to %s failed: %v", d.topic, token.Error())
			return
		}
		log.Printf("✅ Subscribed to detections on %s", d.topic)
	}
	opts.OnConnectionLost = func(c mqtt.Client, err error) {
		log.Printf("⚠️  MQTT connection lost, will auto-reconnect: %v", err)
	}

	d.client = mqtt.NewClient(opts)
	token := d.client.Connect()
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("mqtt connection timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt connection failed: %w", err)
	}

	d.wg.Add(1)
	go d.process(ctx)
	return nil
}

func (d *DetectionIngestor) onMessage(_ mqtt.Client, msg mqtt.Message) {
	select {
	case d.events <- msg.Payload():
	default:
		metrics.DetectionsDropped.Inc()
		log.Printf("[detection.mqtt] queue full, dropping message")
	}
}

func (d *DetectionIngestor) process(ctx context.Context) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-d.stop:
			return
		case payload := <-d.events:
			d.handle(payload)
		}
	}
}

func (d *DetectionIngestor) handle(payload []byte) {
	ev, err := ParseDetectionPayload(payload)
	if err != nil {
		metrics.DetectionsDropped.Inc()
		log.Printf("[detection.mqtt] dropped message: %v", err)
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()
	if _, err := d.svc.Ingest(ctx, ev, DetectionSourceMQTT, nil); err != nil {
		log.Printf("[detection.mqtt] ingest failed: %v", err)
	}
}

// Stop unsubscribes, disconnects and waits for the worker
func (d *DetectionIngestor) Stop() {
	d.once.Do(func() { close(d.stop) })
	if d.client != nil && d.client.IsConnected() {
		d.client.Unsubscribe(d.topic).WaitTimeout(2 * time.Second)
		d.client.Disconnect(250)
	}
	d.wg.Wait()
	log.Println("✅ Detection ingestor stopped")
}
