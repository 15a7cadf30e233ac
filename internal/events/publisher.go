package events

import (
	"encoding/json"
	"time"

	"fleetops/internal/domain/stoppage"
	"fleetops/internal/logger"
	"fleetops/pkg/mqtt"

	"go.uber.org/zap"
)

const (
	EventStoppageOpened = "parada_aberta"
	EventStoppageClosed = "parada_liberada"

	topicPrefix = "fleetops/paradas/"
)

// StoppageEvent is the wire payload published for dashboard live refresh.
type StoppageEvent struct {
	Event           string     `json:"event"`
	StoppageID      string     `json:"parada_id"`
	FleetID         string     `json:"frota_id"`
	TypeID          string     `json:"tipo_parada_id"`
	Reason          string     `json:"motivo"`
	StartedAt       time.Time  `json:"inicio"`
	EndedAt         *time.Time `json:"fim,omitempty"`
	ExpectedMinutes *int       `json:"previsao_minutos,omitempty"`
	PublishedAt     time.Time  `json:"published_at"`
}

// Publisher notifies dashboards about stoppage lifecycle changes. Publishing
// is best effort; a failed publish never fails the mutation that caused it.
type Publisher interface {
	StoppageOpened(s *stoppage.Stoppage)
	StoppageClosed(s *stoppage.Stoppage)
}

// MQTTPublisher publishes stoppage events to fleetops/paradas/<frota_id>.
type MQTTPublisher struct {
	client *mqtt.Client
}

func NewMQTTPublisher(client *mqtt.Client) *MQTTPublisher {
	return &MQTTPublisher{client: client}
}

func (p *MQTTPublisher) StoppageOpened(s *stoppage.Stoppage) {
	p.publish(EventStoppageOpened, s)
}

func (p *MQTTPublisher) StoppageClosed(s *stoppage.Stoppage) {
	p.publish(EventStoppageClosed, s)
}

func (p *MQTTPublisher) publish(event string, s *stoppage.Stoppage) {
	payload, err := json.Marshal(StoppageEvent{
		Event:           event,
		StoppageID:      s.ID.String(),
		FleetID:         s.FleetID.String(),
		TypeID:          s.TypeID.String(),
		Reason:          s.Reason,
		StartedAt:       s.StartedAt,
		EndedAt:         s.EndedAt,
		ExpectedMinutes: s.ExpectedMinutes,
		PublishedAt:     time.Now(),
	})
	if err != nil {
		logger.Error("Failed to encode stoppage event", zap.Error(err))
		return
	}

	topic := topicPrefix + s.FleetID.String()
	if err := p.client.Publish(topic, 1, false, payload); err != nil {
		logger.Warn("Failed to publish stoppage event",
			zap.String("topic", topic),
			zap.String("event", event),
			zap.Error(err),
		)
	}
}

// NopPublisher is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) StoppageOpened(*stoppage.Stoppage) {}
func (NopPublisher) StoppageClosed(*stoppage.Stoppage) {}
