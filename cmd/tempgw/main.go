// tempgw is the receiving gateway: it listens on the radio link, enriches
// node readings and fans them out to MQTT, InfluxDB and Kafka, with an HTTP
// surface for health, status and Prometheus scrapes.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MikaPetteriLundgren/templogger/internal/api"
	"github.com/MikaPetteriLundgren/templogger/internal/config"
	"github.com/MikaPetteriLundgren/templogger/internal/gateway"
	"github.com/MikaPetteriLundgren/templogger/internal/logging"
	"github.com/MikaPetteriLundgren/templogger/internal/radio"
	"github.com/MikaPetteriLundgren/templogger/internal/sink"
)

func main() {
	log, logFile := logging.Init()
	if logFile != nil {
		defer logFile.Close()
	}

	cfg, err := config.LoadGateway()
	if err != nil {
		log.Error("configuration failed", "err", err)
		os.Exit(1)
	}

	sinks, err := buildSinks(cfg)
	if err != nil {
		log.Error("sink setup failed", "err", err)
		os.Exit(1)
	}
	defer closeSinks(log, sinks)
	if len(sinks) == 0 {
		log.Warn("no sinks configured, readings will only be logged")
	}

	rx := radio.NewListener(cfg.ModemPath, cfg.ModemBaud, log.With("component", "radio"))
	svc := gateway.New(rx, sinks, cfg, log.With("component", "gateway"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		svc.Run(ctx)
	}()

	accessLog := io.Writer(os.Stdout)
	if logFile != nil {
		accessLog = io.MultiWriter(os.Stdout, logFile)
	}
	srv := &http.Server{
		Addr:        cfg.ListenAddr,
		Handler:     api.NewRouter(svc, accessLog),
		ReadTimeout: cfg.ReadTimeout,
	}
	go func() {
		log.Info("http server listening", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	// Closing the listener unblocks a pending serial read; wait for the
	// last fanout to finish before the sinks go away.
	rx.Close()
	<-done

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "err", err)
	}
	log.Info("tempgw stopped")
}

func buildSinks(cfg *config.GatewayConfig) ([]sink.Sink, error) {
	var sinks []sink.Sink
	if cfg.MQTTBroker != "" {
		s, err := sink.NewMQTT(cfg.MQTTBroker, cfg.MQTTClientID, cfg.MQTTTopic)
		if err != nil {
			return nil, fmt.Errorf("mqtt: %w", err)
		}
		sinks = append(sinks, s)
	}
	if cfg.InfluxURL != "" {
		s, err := sink.NewInflux(cfg.InfluxURL, cfg.InfluxDB, cfg.InfluxUser, cfg.InfluxPassword)
		if err != nil {
			return nil, fmt.Errorf("influx: %w", err)
		}
		sinks = append(sinks, s)
	}
	if len(cfg.KafkaBrokers) > 0 {
		sinks = append(sinks, sink.NewKafka(cfg.KafkaBrokers, cfg.KafkaTopic))
	}
	return sinks, nil
}

func closeSinks(log *slog.Logger, sinks []sink.Sink) {
	for _, s := range sinks {
		if err := s.Close(); err != nil {
			log.Warn("sink close failed", "sink", s.Name(), "err", err)
		}
	}
}
