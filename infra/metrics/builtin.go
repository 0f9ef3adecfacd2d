package metrics

import (
	"sync"

	"github.com/registrarlab/regsim/core/factory"
	coremetrics "github.com/registrarlab/regsim/core/metrics"
)

var registerOnce sync.Once

// RegisterBuiltins makes the prometheus and influx sink factories available
// to the configuration loader. Safe to call more than once.
func RegisterBuiltins() {
	registerOnce.Do(func() {
		// Registration errors only occur on duplicates, which the once guard
		// rules out.
		_ = coremetrics.RegisterSink("prometheus", func(_ map[string]any) (coremetrics.Sink, error) {
			return NewPromSink()
		})
		_ = coremetrics.RegisterSink("influx", func(conf map[string]any) (coremetrics.Sink, error) {
			var c struct {
				URL    string `json:"url"`
				Token  string `json:"token"`
				Org    string `json:"org"`
				Bucket string `json:"bucket"`
			}
			if err := factory.Decode(conf, &c); err != nil {
				return nil, err
			}
			return NewInfluxSinkWithFallback(c.URL, c.Token, c.Org, c.Bucket), nil
		})
	})
}
