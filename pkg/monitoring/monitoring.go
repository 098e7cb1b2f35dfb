package monitoring

import (
	"context"
	"fmt"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prothen/ros2webrtc/pkg/config"
	"github.com/prothen/ros2webrtc/pkg/logger"
)

type Monitoring struct {
	conf   config.Monitoring
	log    *logger.Logger
	server *http.Server
}

// New creates new monitoring service.
// The tag param specifies owner label for logs.
func New(conf config.Monitoring, tag string, log *logger.Logger) *Monitoring {
	h := http.NewServeMux()

	if conf.ProfilingEnabled {
		prefix := fmt.Sprintf("%s/debug/pprof", conf.URLPrefix)
		h.HandleFunc(prefix+"/", pprof.Index)
		h.HandleFunc(prefix+"/cmdline", pprof.Cmdline)
		h.HandleFunc(prefix+"/profile", pprof.Profile)
		h.HandleFunc(prefix+"/symbol", pprof.Symbol)
		h.HandleFunc(prefix+"/trace", pprof.Trace)
		h.Handle(prefix+"/allocs", pprof.Handler("allocs"))
		h.Handle(prefix+"/block", pprof.Handler("block"))
		h.Handle(prefix+"/goroutine", pprof.Handler("goroutine"))
		h.Handle(prefix+"/heap", pprof.Handler("heap"))
		h.Handle(prefix+"/mutex", pprof.Handler("mutex"))
		h.Handle(prefix+"/threadcreate", pprof.Handler("threadcreate"))
	}
	if conf.MetricEnabled {
		h.Handle(fmt.Sprintf("%s/metrics", conf.URLPrefix), promhttp.Handler())
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", conf.Port),
		Handler:      h,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	l := log.Extend(log.With().Str("service", "monitoring").Str("tag", tag))
	return &Monitoring{conf: conf, log: l, server: server}
}

func (m *Monitoring) Run() {
	m.log.Info().Msgf("starting monitoring server at %v", m.server.Addr)
	go func() {
		if err := m.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			m.log.Error().Err(err).Msg("monitoring server failed")
		}
	}()
}

func (m *Monitoring) Shutdown(ctx context.Context) error {
	m.log.Info().Msg("shutting down monitoring server")
	return m.server.Shutdown(ctx)
}

func (m *Monitoring) String() string {
	return fmt.Sprintf("monitoring::%s:%d", m.conf.URLPrefix, m.conf.Port)
}
