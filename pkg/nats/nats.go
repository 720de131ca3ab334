package nats

import (
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// NewNatsConn подключается к NATS с переподключением по умолчанию
func NewNatsConn(url, clientName string) (*nats.Conn, error) {
	opts := []nats.Option{
		nats.Name(clientName),
		nats.Timeout(5 * time.Second),
		nats.ReconnectWait(2 * time.Second),
		nats.MaxReconnects(10),
	}

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return conn, nil
}
