package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/gorilla/mux"
	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"

	"profanity/pkg/censor"
	"profanity/pkg/metrics"
	"profanity/pkg/moderator"
)

type Config struct {
	LogLevel       string `toml:"logLevel"`
	DictionaryPath string `toml:"dictionaryPath"`
	MetricsAddr    string `toml:"metricsAddr"`

	KafkaBrokers  []string `toml:"kafkaBrokers"`
	KafkaGroupID  string   `toml:"kafkaGroupID"`
	CommentsTopic string   `toml:"commentsTopic"`
	VerdictsTopic string   `toml:"verdictsTopic"`

	NumWorkers int `toml:"numWorkers"`

	Censor censor.Config `toml:"censor"`
}

func main() {
	var (
		configPath string
		logLevel   string
		numWorkers int
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("[moderator] shutting down gracefully...")
		cancel()
	}()

	flag.StringVar(&configPath, "config", "cmd/moderator/config.toml", "Path to TOML config file")
	flag.StringVar(&logLevel, "log", "", "Log level: debug, info, warn, error.")
	flag.IntVar(&numWorkers, "workers", 0, "Number of moderation workers.")
	flag.Parse()

	cfg := Config{LogLevel: "info", NumWorkers: 4}
	if _, err := toml.DecodeFile(configPath, &cfg); err != nil {
		log.Fatalf("[moderator] failed to load config file %s: %v", configPath, err)
	}

	// Override config with flags if set
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if numWorkers != 0 {
		cfg.NumWorkers = numWorkers
	}

	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	}

	tree := censor.Default()
	if cfg.DictionaryPath != "" {
		var err error
		if tree, err = censor.LoadFromJSON(cfg.DictionaryPath); err != nil {
			log.Fatalf("[moderator] failed to load dictionary: %v", err)
		}
	}
	opts, err := cfg.Censor.Options(censor.DefaultOptions())
	if err != nil {
		log.Fatalf("[moderator] invalid censor options: %v", err)
	}
	c, err := censor.New(tree, opts)
	if err != nil {
		log.Fatalf("[moderator] failed to create censor: %v", err)
	}

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.KafkaBrokers,
		Topic:    cfg.CommentsTopic,
		GroupID:  cfg.KafkaGroupID,
		MinBytes: 10e3, // 10KB
		MaxBytes: 10e6, // 10MB
	})
	defer r.Close()

	w := &kafka.Writer{
		Addr:     kafka.TCP(cfg.KafkaBrokers...),
		Topic:    cfg.VerdictsTopic,
		Balancer: &kafka.Hash{},
	}
	defer w.Close()

	m := metrics.New("moderator")
	if cfg.MetricsAddr != "" {
		router := mux.NewRouter()
		router.Handle("/metrics", m.Handler()).Methods(http.MethodGet)
		srv := &http.Server{Addr: cfg.MetricsAddr, Handler: router, ReadHeaderTimeout: 10 * time.Second}
		go func() {
			log.Infof("[moderator] serving metrics on %v", cfg.MetricsAddr)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				log.Errorf("[moderator] metrics server failed: %v", err)
			}
		}()
		defer srv.Close()
	}

	s := &moderator.Service{
		Reader:     r,
		Writer:     w,
		Censor:     c,
		NumWorkers: cfg.NumWorkers,
		Metrics:    m,
	}
	if err := s.Run(ctx); err != nil {
		log.Errorf("[moderator] stopped: %v", err)
	}
}
