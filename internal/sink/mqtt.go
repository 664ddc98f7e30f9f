package sink

import (
	"context"
	"encoding/json"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// MQTT publishes each reading under <prefix>/<label>, retained, so late
// subscribers immediately see the latest value per sensor.
type MQTT struct {
	client mqtt.Client
	prefix string
}

func NewMQTT(broker, clientID, prefix string) (*MQTT, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(broker)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connect %s: %w", broker, token.Error())
	}
	return &MQTT{client: client, prefix: prefix}, nil
}

func (s *MQTT) Name() string { return "mqtt" }

func (s *MQTT) Record(ctx context.Context, r Reading) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode reading: %w", err)
	}
	topic := s.prefix + "/" + r.Label
	token := s.client.Publish(topic, 0, true, payload)
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("publish %s: %w", topic, token.Error())
	}
	return nil
}

func (s *MQTT) Close() error {
	s.client.Disconnect(250)
	return nil
}
