package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"MidasFlow/internal/alerter"
	"MidasFlow/internal/config"
	"MidasFlow/internal/engine"
	"MidasFlow/internal/model"
	"MidasFlow/internal/notification"
	"MidasFlow/internal/probe"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "Path to the configuration file.")
	flag.Parse()

	log.Println("Starting mf-engine...")

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Println("Configuration loaded successfully.")

	manager, err := engine.NewManager(cfg)
	if err != nil {
		log.Fatalf("Failed to create manager: %v", err)
	}

	var alertr *alerter.Alerter
	if cfg.Alerter.Enabled {
		if cfg.SMTP.Host == "" {
			log.Println("Alerter is enabled in config, but no notifiers are configured. Alerter will not run.")
		} else {
			notifier := notification.NewEmailNotifier(cfg.SMTP)
			alertr, err = alerter.NewAlerter(&cfg.Alerter, notifier)
			if err != nil {
				log.Fatalf("Failed to create alerter: %v", err)
			}
			manager.SetScoreSink(alertr.Observe)
			log.Println("Alerter enabled and initialized.")
		}
	}

	manager.Start()
	if alertr != nil {
		go alertr.Start()
	}

	sub, err := probe.NewSubscriber(cfg.Ingest)
	if err != nil {
		log.Fatalf("Failed to create subscriber: %v", err)
	}
	defer sub.Close()

	if err := sub.Start(func(e model.Event) {
		manager.Input() <- e
	}); err != nil {
		log.Fatalf("Subscriber failed to start: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutdown signal received, stopping engine...")
	sub.Close()
	manager.Stop()
	if alertr != nil {
		alertr.Stop()
	}
	log.Println("Shutdown complete.")
}
