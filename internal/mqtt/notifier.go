// Package mqtt pushes refresh signals to the wall-mounted schedule
// boards. Boards subscribe to the refresh topic and re-fetch the
// calendar whenever shifts change, instead of polling.
package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

const refreshTopic = "carecal/board/refresh"

type Notifier struct {
	client mqtt.Client
}

// NewNotifier connects to the broker. Returns an error when the broker
// is configured but unreachable; callers treat a nil *Notifier as
// "notifications disabled".
func NewNotifier(brokerURL, clientID string) (*Notifier, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true)
	opts.OnConnect = func(mqtt.Client) {
		log.Info().Str("broker", brokerURL).Msg("connected to MQTT broker")
	}
	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		log.Error().Err(err).Msg("MQTT connection lost")
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}
	return &Notifier{client: client}, nil
}

type refreshMessage struct {
	Reason string    `json:"reason"`
	At     time.Time `json:"at"`
}

// BoardChanged publishes a retained refresh signal. Fire and forget:
// a dropped signal only delays the board until its next reconnect.
// Safe to call on a nil Notifier.
func (n *Notifier) BoardChanged(reason string) {
	if n == nil || n.client == nil {
		return
	}
	payload, err := json.Marshal(refreshMessage{Reason: reason, At: time.Now()})
	if err != nil {
		return
	}
	n.client.Publish(refreshTopic, 0, true, payload)
}

// Close disconnects from the broker, letting in-flight publishes drain.
func (n *Notifier) Close() {
	if n == nil || n.client == nil {
		return
	}
	n.client.Disconnect(250)
}
