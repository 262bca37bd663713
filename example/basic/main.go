package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	graphiteflow "github.com/ghalamif/GraphiteFlow"
)

func main() {
	bridge, err := graphiteflow.Conf("../../data/config.yaml")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go feed(ctx, bridge)

	if err := bridge.Run(ctx); err != nil {
		log.Fatalf("run: %v", err)
	}
}

// feed pushes one synthetic load batch per second until cancelled.
func feed(ctx context.Context, bridge *graphiteflow.Bridge) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			bridge.Write(&graphiteflow.SampleBatch{
				Host:   "localhost",
				Plugin: "load",
				Type:   "load",
				Time:   graphiteflow.TimeFromGo(now),
				Values: []graphiteflow.NamedValue{
					{Name: "shortterm", Value: graphiteflow.Gauge(0.42)},
					{Name: "midterm", Value: graphiteflow.Gauge(0.33)},
					{Name: "longterm", Value: graphiteflow.Gauge(0.25)},
				},
			})
		}
	}
}
