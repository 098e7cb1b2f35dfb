//go:build linux

package main

import (
	"context"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/prothen/ros2webrtc/pkg/config"
	"github.com/prothen/ros2webrtc/pkg/logger"
	"github.com/prothen/ros2webrtc/pkg/monitoring"
	xos "github.com/prothen/ros2webrtc/pkg/os"
	"github.com/prothen/ros2webrtc/pkg/pipeline"
	"github.com/prothen/ros2webrtc/pkg/service"
	"github.com/prothen/ros2webrtc/pkg/source"
	"github.com/prothen/ros2webrtc/pkg/v4l2"
)

var Version = ""

func main() {
	conf, err := config.NewConfig("")
	if err != nil {
		logger.Default().Fatal().Err(err).Msg("configuration load failed")
	}
	conf.WithFlags(flag.CommandLine)
	flag.Parse()
	if err := conf.Validate(); err != nil {
		logger.Default().Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.New(conf.Debug)
	log.Info().
		Str("version", Version).
		Str("stream", conf.Stream.Name).
		Int("device", conf.Stream.Device).
		Str("topic", conf.Source.Topic).
		Float64("frequency", conf.Stream.Frequency).
		Msg("starting webrtc media device streamer")

	if err := v4l2.VerifyPrerequisites(conf.Stream.Device); err != nil {
		log.Fatal().Err(err).Msg("device prerequisites not met")
	}
	dev, err := v4l2.Open(conf.Stream.Device, log)
	if err != nil {
		log.Fatal().Err(err).Msg("could not open the capture device")
	}
	if err := dev.Negotiate(v4l2.NewFormat(conf.Stream.Width, conf.Stream.Height)); err != nil {
		_ = dev.Close()
		log.Fatal().Err(err).Msg("format negotiation failed")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pipe := pipeline.New(dev, conf.Stream, log)
	sub := source.NewSubscriber(conf.Source, pipe.OnFrame, log)
	if err := sub.Connect(ctx); err != nil {
		_ = dev.Close()
		log.Fatal().Err(err).Msg("source subscription failed")
	}
	pipe.Start()

	var services service.Group
	services.Add(sub)
	if conf.Monitoring.IsEnabled() {
		services.Add(monitoring.New(conf.Monitoring, "streamer", log))
	}
	services.Start()

	gone, err := dev.Watch(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("device node watch unavailable")
	}

	select {
	case <-xos.ExpectTermination():
		log.Info().Msg("shutdown requested")
	case <-sub.Done():
		log.Info().Msg("subscription ended")
	case err := <-gone:
		if err != nil {
			log.Error().Err(err).Msg("capture device disappeared")
		}
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	if err := services.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("service shutdown failed")
	}
	cancel()
	if err := dev.Close(); err != nil {
		log.Error().Err(err).Msg("device close failed")
	}
}
