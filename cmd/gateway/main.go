// command gateway bridges a proprietary register-oriented DC/DC converter
// to a CANopen-based EV charging supervisor over two CAN interfaces.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"zekagateway.dev/canbus"
	"zekagateway.dev/config"
	"zekagateway.dev/converter"
	"zekagateway.dev/supervisor"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "gateway: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	log.SetFlags(log.Flags() &^ (log.Ldate | log.Ltime))
	cfg := config.Default()

	converterTransport, err := canbus.OpenSocketCAN(cfg.ConverterChannel)
	if err != nil {
		return fmt.Errorf("opening converter bus %s: %w", cfg.ConverterChannel, err)
	}
	defer converterTransport.Close()
	converterBus := canbus.NewBus(converterTransport)

	supervisorTransport, err := canbus.OpenSocketCAN(cfg.SupervisorChannel)
	if err != nil {
		return fmt.Errorf("opening supervisor bus %s: %w", cfg.SupervisorChannel, err)
	}
	defer supervisorTransport.Close()
	supervisorBus := canbus.NewBus(supervisorTransport)

	ids := cfg.IDs()

	log.Println("gateway: resetting converter...")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	converterMode := supervisor.ConverterModeFor(cfg.Mode)
	if replied, err := converter.Reset(ctx, converterBus, ids.ControlID, converterMode, cfg.ReplyTimeout); err != nil {
		return fmt.Errorf("initial converter reset: %w", err)
	} else if !replied {
		return fmt.Errorf("initial converter reset: %w", converter.ErrInitFailed)
	}

	shadow := converter.NewShadow()
	directives := supervisor.NewDirectives()

	poller := &converter.Poller{
		Bus:              converterBus,
		ControlID:        ids.ControlID,
		StatusID:         ids.StatusID,
		Shadow:           shadow,
		Period:           cfg.PollPeriod,
		ReplyTimeout:     cfg.ReplyTimeout,
		Verbose:          cfg.Verbose,
		IsStandbyRequest: func() bool {
			directives.Lock()
			defer directives.Unlock()
			return directives.StateRequest == supervisor.Standby
		},
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		poller.Run(ctx)
	}()

	// Let the first shadow snapshot exist before the dispatcher starts
	// sampling it.
	time.Sleep(time.Second)

	heartbeat := &supervisor.Heartbeat{
		Bus:    supervisorBus,
		ID:     ids.Heartbeat,
		Period: cfg.HeartbeatPeriod,
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		heartbeat.Run(ctx)
	}()

	dispatcher := supervisor.NewDispatcher(supervisor.Dispatcher{
		SupervisorBus: supervisorBus,
		ConverterBus:  converterBus,
		IDs:           supervisor.ForNode(cfg.SupervisorNodeID),
		ConverterIDs:  ids,
		Shadow:        shadow,
		Directives:    directives,
		Capability: supervisor.Capability{
			BatteryMaxVoltage: cfg.BatteryMaxVoltage,
			BatteryMaxCurrent: cfg.BatteryMaxCurrent,
			GridMaxCurrent:    cfg.GridMaxCurrent,
			GridMaxPower:      cfg.GridMaxPower,
		},
		Mode:           cfg.Mode,
		RealPrecharge:  cfg.RealPrecharge,
		CommandTimeout: cfg.ReplyTimeout,
	})
	wg.Add(1)
	go func() {
		defer wg.Done()
		dispatcher.Run(ctx)
	}()

	log.Println("gateway: running")
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	log.Println("gateway: shutting down...")
	if _, err := converter.Reset(context.Background(), converterBus, ids.ControlID, converterMode, cfg.ReplyTimeout); err != nil {
		log.Printf("gateway: shutdown reset: %v", err)
	}
	cancel()
	wg.Wait()
	return nil
}
