package main

import (
	"testing"

	graphiteflow "github.com/ghalamif/GraphiteFlow"
)

func TestDecodeBatch(t *testing.T) {
	raw := `{"host":"web01","plugin":"if","plugin_instance":"eth0","type":"octets","time":1439981652.8,"interval":10,"values":[{"name":"rx","kind":"counter","value":10},{"name":"tx","kind":"counter","value":20}]}`

	batch, err := decodeBatch([]byte(raw))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if batch.Host != "web01" || batch.PluginInstance != "eth0" {
		t.Fatalf("metadata not decoded: %+v", batch)
	}
	if batch.Time.Unix() != 1439981652 {
		t.Fatalf("expected timestamp 1439981652, got %d", batch.Time.Unix())
	}
	if len(batch.Values) != 2 {
		t.Fatalf("expected 2 values, got %d", len(batch.Values))
	}
	if _, ok := batch.Values[0].Value.(graphiteflow.Counter); !ok {
		t.Fatalf("expected counter kind, got %T", batch.Values[0].Value)
	}
}

func TestDecodeBatchDefaultsToGauge(t *testing.T) {
	raw := `{"host":"h","plugin":"p","type":"t","values":[{"value":1.5}]}`
	batch, err := decodeBatch([]byte(raw))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := batch.Values[0].Value.(graphiteflow.Gauge); !ok {
		t.Fatalf("expected gauge default, got %T", batch.Values[0].Value)
	}
	if batch.Time == 0 {
		t.Fatalf("expected missing time to default to now")
	}
}

func TestDecodeBatchRejectsBadInput(t *testing.T) {
	cases := []string{
		`{"plugin":"p","type":"t","values":[{"value":1}]}`,
		`{"host":"h","plugin":"p","type":"t","values":[]}`,
		`{"host":"h","plugin":"p","type":"t","values":[{"kind":"bogus","value":1}]}`,
		`not json`,
	}
	for _, raw := range cases {
		if _, err := decodeBatch([]byte(raw)); err == nil {
			t.Fatalf("expected error for %s", raw)
		}
	}
}
