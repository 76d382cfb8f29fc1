package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"vendoradapter/backend/services/vendor-adapter/internal/dispatcher"
	"vendoradapter/backend/services/vendor-adapter/internal/models"
)

// Dispatcher runs one action request.
type Dispatcher interface {
	Dispatch(ctx context.Context, req models.ActionRequest) (models.Envelope, error)
}

// MQTTConfig describes the broker connection and topic layout.
type MQTTConfig struct {
	Broker       string
	ClientID     string
	Username     string
	Password     string
	RequestTopic string
	QoS          byte
}

// Subscriber answers action requests published on <RequestTopic>/<id>/request
// with the envelope on <RequestTopic>/<id>/response.
type Subscriber struct {
	cfg        MQTTConfig
	client     mqtt.Client
	dispatcher Dispatcher
	logger     *zap.Logger
	ctx        context.Context
}

// NewSubscriber prepares a subscriber; Start connects it.
func NewSubscriber(cfg MQTTConfig, d Dispatcher, logger *zap.Logger) *Subscriber {
	return &Subscriber{cfg: cfg, dispatcher: d, logger: logger, ctx: context.Background()}
}

// Start connects to the broker. The request subscription is renewed on every reconnect.
func (s *Subscriber) Start(ctx context.Context) error {
	s.ctx = ctx

	opts := mqtt.NewClientOptions()
	opts.AddBroker(s.cfg.Broker)
	opts.SetClientID(s.cfg.ClientID)
	if s.cfg.Username != "" {
		opts.SetUsername(s.cfg.Username)
		opts.SetPassword(s.cfg.Password)
	}
	opts.SetKeepAlive(60 * time.Second)
	opts.SetAutoReconnect(true)
	opts.SetOnConnectHandler(s.onConnect)
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		s.logger.Warn("mqtt connection lost", zap.Error(err))
	})

	s.client = mqtt.NewClient(opts)
	if token := s.client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("ingest: mqtt connect: %w", token.Error())
	}
	s.logger.Info("mqtt subscriber connected", zap.String("broker", s.cfg.Broker))
	return nil
}

// Stop disconnects from the broker.
func (s *Subscriber) Stop() {
	if s.client != nil && s.client.IsConnected() {
		s.client.Disconnect(1000)
	}
}

func (s *Subscriber) onConnect(client mqtt.Client) {
	filter := s.cfg.RequestTopic + "/+/request"
	if token := client.Subscribe(filter, s.cfg.QoS, s.handleMessage); token.Wait() && token.Error() != nil {
		s.logger.Error("mqtt subscribe failed", zap.String("topic", filter), zap.Error(token.Error()))
		return
	}
	s.logger.Info("mqtt subscribed", zap.String("topic", filter))
}

func (s *Subscriber) handleMessage(client mqtt.Client, msg mqtt.Message) {
	topic, ok := responseTopic(msg.Topic())
	if !ok {
		s.logger.Warn("mqtt message on unexpected topic", zap.String("topic", msg.Topic()))
		return
	}

	env := s.process(msg.Payload())
	body, err := json.Marshal(env)
	if err != nil {
		s.logger.Error("encode envelope", zap.Error(err))
		return
	}
	if token := client.Publish(topic, s.cfg.QoS, false, body); token.Wait() && token.Error() != nil {
		s.logger.Error("mqtt publish failed", zap.String("topic", topic), zap.Error(token.Error()))
	}
}

func (s *Subscriber) process(payload []byte) models.Envelope {
	req, err := Decode(payload)
	if err != nil {
		return dispatcher.ErrorEnvelope(err)
	}
	env, err := s.dispatcher.Dispatch(s.ctx, req)
	if err != nil {
		return dispatcher.ErrorEnvelope(err)
	}
	return env
}

// responseTopic turns <prefix>/<id>/request into <prefix>/<id>/response.
func responseTopic(topic string) (string, bool) {
	prefix, found := strings.CutSuffix(topic, "/request")
	if !found || prefix == "" || strings.HasSuffix(prefix, "/") {
		return "", false
	}
	return prefix + "/response", true
}
