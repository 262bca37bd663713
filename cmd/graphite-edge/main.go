package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	graphiteflow "github.com/ghalamif/GraphiteFlow"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	var err error

	switch cmd {
	case "run":
		err = runCommand(os.Args[2:])
	case "validate":
		err = validateCommand(os.Args[2:])
	case "stats":
		err = statsCommand(os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		printUsage()
		err = fmt.Errorf("unknown command %q", cmd)
	}

	if err != nil {
		log.Fatalf("graphite-edge %s: %v", cmd, err)
	}
}

// runCommand bridges stdin to the configured destinations: one JSON
// sample batch per line, the way a collection daemon would hand them
// over per cycle.
func runCommand(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	cfgPath := fs.String("config", "./data/config.yaml", "Path to edge configuration file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	bridge, err := graphiteflow.Conf(*cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bridge.Start()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := bridge.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if strings.TrimSpace(line) == "" {
				continue
			}
			batch, err := decodeBatch([]byte(line))
			if err != nil {
				log.Printf("skipping malformed batch: %v", err)
				continue
			}
			bridge.Write(batch)
		}
	}
}

func validateCommand(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	cfgPath := fs.String("config", "./data/config.yaml", "Path to configuration file to validate")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, err := graphiteflow.LoadConfig(*cfgPath); err != nil {
		return err
	}
	fmt.Printf("config %s looks good\n", *cfgPath)
	return nil
}

func statsCommand(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	url := fs.String("url", "http://localhost:9100/metrics", "Prometheus metrics endpoint")
	interval := fs.Duration("interval", 2*time.Second, "Refresh interval")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	fmt.Printf("Streaming metrics from %s (Ctrl+C to stop)\n", *url)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := printMetricsSnapshot(*url); err != nil {
				fmt.Fprintf(os.Stderr, "stats error: %v\n", err)
			}
		}
	}
}

func printMetricsSnapshot(url string) error {
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	targets := map[string]float64{
		"graphite_lines_sent_total":   0,
		"graphite_write_errors_total": 0,
		"graphite_nodes_connected":    0,
	}

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}
		for key := range targets {
			if strings.HasPrefix(line, key+" ") {
				var value float64
				if _, err := fmt.Sscanf(line, key+" %f", &value); err == nil {
					targets[key] = value
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	fmt.Printf("[%s] sent=%f errors=%f nodes=%f\n",
		time.Now().Format(time.RFC3339),
		targets["graphite_lines_sent_total"],
		targets["graphite_write_errors_total"],
		targets["graphite_nodes_connected"],
	)
	return nil
}

// wireBatch is the stdin JSON representation of one sample batch.
type wireBatch struct {
	Host           string      `json:"host"`
	Plugin         string      `json:"plugin"`
	PluginInstance string      `json:"plugin_instance,omitempty"`
	Type           string      `json:"type"`
	TypeInstance   string      `json:"type_instance,omitempty"`
	Time           float64     `json:"time,omitempty"`     // epoch seconds, fractional allowed
	Interval       float64     `json:"interval,omitempty"` // seconds
	Values         []wireValue `json:"values"`
}

type wireValue struct {
	Name  string  `json:"name,omitempty"`
	Kind  string  `json:"kind,omitempty"` // gauge (default), derive, counter, absolute
	Value float64 `json:"value"`
}

func decodeBatch(raw []byte) (*graphiteflow.SampleBatch, error) {
	var wb wireBatch
	if err := json.Unmarshal(raw, &wb); err != nil {
		return nil, err
	}
	if wb.Host == "" || wb.Plugin == "" || wb.Type == "" {
		return nil, fmt.Errorf("host, plugin and type are required")
	}
	if len(wb.Values) == 0 {
		return nil, fmt.Errorf("at least one value is required")
	}

	batch := &graphiteflow.SampleBatch{
		Host:           wb.Host,
		Plugin:         wb.Plugin,
		PluginInstance: wb.PluginInstance,
		Type:           wb.Type,
		TypeInstance:   wb.TypeInstance,
	}

	when := time.Now()
	if wb.Time > 0 {
		sec := int64(wb.Time)
		when = time.Unix(sec, int64((wb.Time-float64(sec))*1e9))
	}
	batch.Time = graphiteflow.TimeFromGo(when)
	if wb.Interval > 0 {
		iv, err := graphiteflow.TimeFromDuration(time.Duration(wb.Interval * float64(time.Second)))
		if err != nil {
			return nil, err
		}
		batch.Interval = iv
	}

	for _, v := range wb.Values {
		val, err := decodeValue(v)
		if err != nil {
			return nil, err
		}
		batch.Values = append(batch.Values, graphiteflow.NamedValue{Name: v.Name, Value: val})
	}
	return batch, nil
}

func decodeValue(v wireValue) (graphiteflow.Value, error) {
	switch v.Kind {
	case "", "gauge":
		return graphiteflow.Gauge(v.Value), nil
	case "derive":
		return graphiteflow.Derive(int64(v.Value)), nil
	case "counter":
		return graphiteflow.Counter(uint64(v.Value)), nil
	case "absolute":
		return graphiteflow.Absolute(uint64(v.Value)), nil
	default:
		return nil, fmt.Errorf("unknown value kind %q", v.Kind)
	}
}

func printUsage() {
	fmt.Print(`graphite-edge — forward sample batches to graphite destinations

Usage:
  graphite-edge run       [-config path]    read JSON batches from stdin and dispatch them
  graphite-edge validate  [-config path]    check a configuration file
  graphite-edge stats     [-url endpoint]   stream delivery counters from the metrics endpoint
  graphite-edge help                        show this message
`)
}
