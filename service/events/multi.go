package events

import (
	"github.com/x-xyz/nftcheckout/base/ctx"
)

type multi []Sink

// Multi publishes to every sink and returns the first error
func Multi(sinks ...Sink) Sink {
	return multi(sinks)
}

func (m multi) Publish(c ctx.Ctx, ev Event) error {
	var first error
	for _, s := range m {
		if err := s.Publish(c, ev); err != nil && first == nil {
			first = err
		}
	}
	return first
}
