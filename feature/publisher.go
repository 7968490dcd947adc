package feature

import (
	"fmt"

	"riichiengine/internal/rlog"

	"github.com/goccy/go-json"
	"github.com/nats-io/nats.go"
)

// Sample is one published observation: the encoded vector plus enough
// identity to line it back up with its source seat downstream.
type Sample struct {
	PlayerID int       `json:"player_id"`
	Kyoku    int       `json:"kyoku"`
	Vector   []float32 `json:"vector"`
}

// Publisher streams encoded samples onto a nats subject for a training
// pipeline to consume, adapted from the teacher's NatsClient publish
// path — connect once, publish repeatedly, no subscription side.
type Publisher struct {
	subject string
	conn    *nats.Conn
}

// NewPublisher dials url and returns a Publisher bound to subject.
func NewPublisher(url, subject string) (*Publisher, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("feature: nats connect: %w", err)
	}
	rlog.Info("feature publisher connected, url=%s subject=%s", url, subject)
	return &Publisher{subject: subject, conn: conn}, nil
}

// Publish marshals sample to JSON and publishes it. Errors are logged, not returned —
// a dropped training sample must never stall or crash the validator
// loop that produced it.
func (p *Publisher) Publish(sample Sample) {
	data, err := json.Marshal(sample)
	if err != nil {
		rlog.Error("feature: marshal sample: %v", err)
		return
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		rlog.Error("feature: publish: %v", err)
	}
}

// Close flushes and closes the underlying nats connection.
func (p *Publisher) Close() {
	if p.conn == nil {
		return
	}
	p.conn.Close()
}
