package events

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/x-xyz/nftcheckout/base/ctx"
	"github.com/x-xyz/nftcheckout/base/metrics"
)

// publisher is satisfied by *nats.Conn
type publisher interface {
	Publish(subj string, data []byte) error
}

type natsSink struct {
	pub    publisher
	prefix string
	met    metrics.Service
}

// ConnectNats dials url for a sink, the caller drains the connection on shutdown
func ConnectNats(url, name string) (*nats.Conn, error) {
	return nats.Connect(url,
		nats.Name(name),
		nats.Timeout(10*time.Second),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(-1),
	)
}

// NewNatsSink publishes each event as json to "<prefix>.<type>"
func NewNatsSink(conn *nats.Conn, prefix string) Sink {
	return newNatsSink(conn, prefix)
}

func newNatsSink(pub publisher, prefix string) *natsSink {
	if prefix == "" {
		prefix = "nftcheckout"
	}
	return &natsSink{
		pub:    pub,
		prefix: prefix,
		met:    metrics.New("events"),
	}
}

func (s *natsSink) Subject(t Type) string {
	return s.prefix + "." + string(t)
}

func (s *natsSink) Publish(c ctx.Ctx, ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		c.WithField("err", err).Error("json.Marshal failed")
		return err
	}
	if err := s.pub.Publish(s.Subject(ev.Type), data); err != nil {
		s.met.BumpSum("nats.publish.err", 1, "type", string(ev.Type))
		c.WithField("err", err).Error("nats.Publish failed")
		return err
	}
	s.met.BumpSum("nats.publish", 1, "type", string(ev.Type))
	return nil
}
