package main

import (
	"fmt"
	"log"
	"time"

	graphiteflow "github.com/ghalamif/GraphiteFlow"
)

// Demonstrates registering a callback destination next to the
// configured graphite nodes. Useful for tapping the batch stream
// without opening a socket.
func main() {
	tap := graphiteflow.NewCallbackWriter("stdout", func(b *graphiteflow.SampleBatch) error {
		fmt.Printf("%s/%s: %d value(s) at %s\n", b.Host, b.Plugin, len(b.Values), b.Time.Time())
		return nil
	})

	bridge, err := graphiteflow.New(&graphiteflow.Config{}, graphiteflow.WithWriter(tap))
	if err != nil {
		log.Fatalf("new: %v", err)
	}

	bridge.Write(&graphiteflow.SampleBatch{
		Host:   "localhost",
		Plugin: "example",
		Type:   "gauge",
		Time:   graphiteflow.TimeFromGo(time.Now()),
		Values: []graphiteflow.NamedValue{{Value: graphiteflow.Gauge(1)}},
	})
}
