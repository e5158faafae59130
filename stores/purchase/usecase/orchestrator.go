package usecase

import (
	"fmt"
	"time"

	"github.com/x-xyz/nftcheckout/base/ctx"
	"github.com/x-xyz/nftcheckout/base/log"
	"github.com/x-xyz/nftcheckout/base/metrics"
	"github.com/x-xyz/nftcheckout/domain/purchase"
	"github.com/x-xyz/nftcheckout/service/events"
)

var timeNow = time.Now

type OrchestratorCfg struct {
	Builder purchase.Builder
	Mode    purchase.Mode
	Sink    events.Sink
}

type orchestrator struct {
	builder purchase.Builder
	mode    purchase.Mode
	sink    events.Sink
	met     metrics.Service
}

func NewOrchestrator(cfg OrchestratorCfg) purchase.Orchestrator {
	sink := cfg.Sink
	if sink == nil {
		sink = events.NewLogSink()
	}
	return &orchestrator{
		builder: cfg.Builder,
		mode:    cfg.Mode,
		sink:    sink,
		met:     metrics.New("purchase"),
	}
}

func (o *orchestrator) Mode() purchase.Mode {
	return o.mode
}

// Execute hands the selected nft to the widget. A failure closes the widget
// and always leaves the target out of processing.
func (o *orchestrator) Execute(c ctx.Ctx, target purchase.Target, widget purchase.Widget) (err error) {
	wallet, selected, ok := target.TryBeginProcessing(o.mode.RequiresListing())
	if !ok {
		return purchase.ErrPurchaseUnavailable
	}

	c = ctx.WithValues(c, map[string]interface{}{
		"identifier": selected.Identifier,
		"mode":       o.mode.String(),
	})
	defer o.met.BumpTime("execute.time", "mode", o.mode.String()).End()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("purchase panicked: %v", r)
		}
		if err == nil {
			return
		}
		widget.Close()
		target.SetProcessing(false)
		o.met.BumpSum("execute.err", 1, "mode", o.mode.String())
		c.WithField("err", err).Error("purchase failed")
		o.publish(c, events.Event{
			Type:       events.TypePurchaseFailed,
			Wallet:     wallet.Address.ToLowerStr(),
			Identifier: selected.Identifier.String(),
			Mode:       o.mode.String(),
			Error:      err.Error(),
		})
	}()

	amount, dest, err := o.builder.Build(selected, o.mode, wallet.Address)
	if err != nil {
		return err
	}

	widget.UpdateRequestedAmount(amount)
	widget.UpdateDestinationContract(*dest)
	widget.OpenModal()

	target.ClearSelection()
	target.SetProcessing(false)

	o.publish(c, events.Event{
		Type:       events.TypePurchaseOpened,
		Wallet:     wallet.Address.ToLowerStr(),
		Identifier: selected.Identifier.String(),
		Mode:       o.mode.String(),
		Amount:     amount.String(),
	})
	return nil
}

func (o *orchestrator) publish(c ctx.Ctx, ev events.Event) {
	ev.Time = timeNow()
	if err := o.sink.Publish(c, ev); err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"event": ev.Type,
		}).Warn("sink.Publish failed")
	}
}
