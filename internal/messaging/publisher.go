package messaging

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/veildrift/go-incursion/internal/actions"
	"github.com/veildrift/go-incursion/internal/decision"
)

const (
	subjectContextPrefix = "sim.context."
	subjectCommandPrefix = "sim.command."
	SubjectResult        = "sim.result"
	SubjectMission       = "sim.mission"
)

// Broker is the part of the NATS server the publisher needs. Split out so
// the turn loop can be tested against an in-memory fake.
type Broker interface {
	Publish(subject string, data []byte) error
	Subscribe(subject string, handler func(data []byte)) (func(), error)
}

// SubjectContext is the per-character subject decision contexts go out on.
func SubjectContext(character string) string {
	return subjectContextPrefix + subjectToken(character)
}

// SubjectCommand is the per-character subject commands come back in on.
func SubjectCommand(character string) string {
	return subjectCommandPrefix + subjectToken(character)
}

// subjectToken flattens a display name into a NATS subject token.
func subjectToken(name string) string {
	token := strings.ToLower(strings.TrimSpace(name))
	token = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '-'
		}
	}, token)
	return token
}

// ContextEnvelope wraps a decision context for the wire.
type ContextEnvelope struct {
	InstanceId string            `json:"instanceId"`
	Character  string            `json:"character"`
	Context    *decision.Context `json:"context"`
}

// TurnReport is the published record of one resolved turn.
type TurnReport struct {
	InstanceId string           `json:"instanceId"`
	Tick       int64            `json:"tick"`
	Character  string           `json:"character"`
	Success    bool             `json:"success"`
	Narration  string           `json:"narration,omitempty"`
	Speech     string           `json:"speech,omitempty"`
	Errors     []string         `json:"errors,omitempty"`
	Warnings   []string         `json:"warnings,omitempty"`
	Effects    []actions.Effect `json:"effects,omitempty"`
	Cost       int              `json:"cost,omitempty"`
}

// MissionReport is published whenever the mission evaluator has news.
type MissionReport struct {
	InstanceId         string   `json:"instanceId"`
	Tick               int64    `json:"tick"`
	Status             string   `json:"status"`
	Message            string   `json:"message,omitempty"`
	NewlyCompleted     []string `json:"newlyCompleted,omitempty"`
	TriggeredCondition string   `json:"triggeredCondition,omitempty"`
}

// Publisher serializes simulation events onto their subjects, stamping each
// with a fresh instance id so consumers can de-duplicate.
type Publisher struct {
	broker Broker
}

func NewPublisher(broker Broker) *Publisher {
	return &Publisher{broker: broker}
}

func (p *Publisher) PublishContext(character string, dc *decision.Context) error {
	env := &ContextEnvelope{
		InstanceId: uuid.NewString(),
		Character:  character,
		Context:    dc,
	}
	return p.publish(SubjectContext(character), env)
}

func (p *Publisher) PublishResult(report *TurnReport) error {
	report.InstanceId = uuid.NewString()
	return p.publish(SubjectResult, report)
}

func (p *Publisher) PublishMission(report *MissionReport) error {
	report.InstanceId = uuid.NewString()
	return p.publish(SubjectMission, report)
}

func (p *Publisher) publish(subject string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling %s message: %w", subject, err)
	}
	return p.broker.Publish(subject, data)
}
