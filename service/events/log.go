package events

import (
	"github.com/x-xyz/nftcheckout/base/ctx"
	"github.com/x-xyz/nftcheckout/base/log"
)

type logSink struct{}

// NewLogSink writes events through the request logger
func NewLogSink() Sink {
	return &logSink{}
}

func (s *logSink) Publish(c ctx.Ctx, ev Event) error {
	l := c.WithFields(log.Fields{
		"event":      string(ev.Type),
		"identifier": ev.Identifier,
		"mode":       ev.Mode,
	})
	if ev.Error != "" {
		l.WithField("err", ev.Error).Warn("event")
		return nil
	}
	l.Info("event")
	return nil
}
