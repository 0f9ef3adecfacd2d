package metrics

import (
	"context"
	"net/http"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/registrarlab/regsim/core/metrics"
	"github.com/registrarlab/regsim/infra/logger"
)

// InfluxSink writes run results to an InfluxDB instance using the official
// client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a sink for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	client := influxdb2.NewClientWithOptions(url, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a
// NopSink when the health check fails, so a missing backend never blocks
// simulation traffic.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.Sink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordRun writes one run summary point plus a per-agent load point.
func (s *InfluxSink) RecordRun(res coremetrics.RunResult) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	rep := res.Report
	p := write.NewPointWithMeasurement("simulation_run").
		AddTag("run_id", rep.RunID).
		AddTag("scenario", rep.Scenario).
		AddTag("scheduler", res.Scheduler).
		AddTag("allocator", res.Allocator).
		AddField("avg_waiting_minutes", rep.AvgWaitingTime).
		AddField("avg_turnaround_minutes", rep.AvgTurnaround).
		AddField("throughput_per_hour", rep.Throughput).
		AddField("total_processed", rep.TotalProcessed).
		AddField("dropped", res.Dropped()).
		AddField("elapsed_seconds", res.Elapsed.Seconds()).
		SetTime(res.Time)
	if err := s.writeAPI.WritePoint(ctx, p); err != nil {
		return err
	}

	for staffID, assigned := range rep.StaffLoad {
		lp := write.NewPointWithMeasurement("staff_load").
			AddTag("run_id", rep.RunID).
			AddTag("scenario", rep.Scenario).
			AddTag("staff_id", staffID).
			AddField("assigned", assigned).
			SetTime(res.Time)
		if err := s.writeAPI.WritePoint(ctx, lp); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying client.
func (s *InfluxSink) Close() {
	s.client.Close()
}
