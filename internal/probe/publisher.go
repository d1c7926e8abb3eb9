package probe

import (
	"log"

	"MidasFlow/internal/config"
	"MidasFlow/internal/model"

	"github.com/nats-io/nats.go"
)

// Publisher is responsible for publishing events to a NATS subject.
type Publisher struct {
	nc      *nats.Conn
	subject string
}

// NewPublisher creates a new NATS publisher.
func NewPublisher(cfg config.IngestConfig) (*Publisher, error) {
	nc, err := nats.Connect(cfg.NATSURL)
	if err != nil {
		return nil, err
	}
	log.Printf("Connected to NATS server at %s", cfg.NATSURL)
	return &Publisher{nc: nc, subject: cfg.Subject}, nil
}

// Publish serializes an event and publishes it to the configured subject.
func (p *Publisher) Publish(e *model.Event) error {
	return p.nc.Publish(p.subject, Marshal(e))
}

// Close drains and closes the NATS connection.
func (p *Publisher) Close() {
	if p.nc != nil {
		p.nc.Drain()
		log.Println("NATS connection drained and closed.")
	}
}
