package factory

import "testing"

type stubConf struct {
	URL     string `json:"url"`
	Retries int    `json:"retries"`
}

func TestDecode(t *testing.T) {
	var c stubConf
	err := Decode(map[string]any{"url": "http://localhost:8086", "retries": 3}, &c)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if c.URL != "http://localhost:8086" || c.Retries != 3 {
		t.Fatalf("unexpected config: %+v", c)
	}
}

func TestDecodeIgnoresUnknownKeys(t *testing.T) {
	var c stubConf
	if err := Decode(map[string]any{"url": "u", "extra": true}, &c); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if c.URL != "u" {
		t.Fatalf("url = %q, want u", c.URL)
	}
}

func TestDecodeTypeMismatch(t *testing.T) {
	var c stubConf
	if err := Decode(map[string]any{"retries": "many"}, &c); err == nil {
		t.Fatal("expected type mismatch error")
	}
}
