package notifier

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go"
)

// NATSSMSPublisher публикует задания SMS в subject NATS
type NATSSMSPublisher struct {
	conn    *nats.Conn
	subject string
}

func NewNATSSMSPublisher(conn *nats.Conn, subject string) *NATSSMSPublisher {
	return &NATSSMSPublisher{
		conn:    conn,
		subject: subject,
	}
}

// SendAlert публикует задание. NATS core не подтверждает доставку подписчику.
func (p *NATSSMSPublisher) SendAlert(ctx context.Context, phone, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := newSMSJob(phone, message)
	if err != nil {
		return err
	}
	if err := p.conn.Publish(p.subject, payload); err != nil {
		return fmt.Errorf("failed to publish sms job to NATS: %w", err)
	}
	return nil
}
