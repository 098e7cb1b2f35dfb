package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	framesReceived = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ros2webrtc",
		Name:      "frames_received_total",
		Help:      "Frames delivered to the pipeline.",
	}, []string{"stream"})
	framesDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ros2webrtc",
		Name:      "frames_dropped_total",
		Help:      "Frames skipped by the rate limiter.",
	}, []string{"stream"})
	framesWritten = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ros2webrtc",
		Name:      "frames_written_total",
		Help:      "Frames written to the capture device.",
	}, []string{"stream"})
	bytesWritten = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ros2webrtc",
		Name:      "bytes_written_total",
		Help:      "Payload bytes written to the capture device.",
	}, []string{"stream"})
	outputRate = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "ros2webrtc",
		Name:      "output_fps",
		Help:      "Instantaneous output frame rate.",
	}, []string{"stream"})
)

type metrics struct {
	received prometheus.Counter
	dropped  prometheus.Counter
	written  prometheus.Counter
	bytes    prometheus.Counter
	fps      prometheus.Gauge
}

func newMetrics(stream string) metrics {
	return metrics{
		received: framesReceived.WithLabelValues(stream),
		dropped:  framesDropped.WithLabelValues(stream),
		written:  framesWritten.WithLabelValues(stream),
		bytes:    bytesWritten.WithLabelValues(stream),
		fps:      outputRate.WithLabelValues(stream),
	}
}
