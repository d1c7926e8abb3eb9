package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"MidasFlow/internal/config"
	"MidasFlow/internal/model"
	"MidasFlow/internal/probe"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "Path to the configuration file.")
	mode := flag.String("mode", "sub", "Operating mode: 'pub' to capture and publish, 'sub' to subscribe and print.")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	switch *mode {
	case "pub":
		runProbe(cfg)
	case "sub":
		runSubscriber(cfg)
	default:
		fmt.Fprintf(os.Stderr, "Invalid mode: %s\n", *mode)
		flag.Usage()
		os.Exit(1)
	}
}

// runProbe captures packets on the configured interface and publishes one
// event per IP packet to NATS.
func runProbe(cfg *config.Config) {
	if cfg.Probe.Interface == "" {
		log.Fatalf("probe.interface must be set for pub mode.")
	}

	tickInterval, err := time.ParseDuration(cfg.Probe.TickInterval)
	if err != nil {
		log.Fatalf("Invalid probe.tick_interval: %v", err)
	}

	log.Printf("Starting mf-probe in PROBE mode on interface: %s", cfg.Probe.Interface)

	pub, err := probe.NewPublisher(cfg.Ingest)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	defer pub.Close()

	capture, err := probe.NewCapture(cfg.Probe.Interface, tickInterval)
	if err != nil {
		log.Fatalf("Failed to start capture: %v", err)
	}
	defer capture.Close()

	log.Println("Capture started successfully. Publishing events to NATS...")

	go func() {
		published := 0
		capture.Run(func(e model.Event) {
			if err := pub.Publish(&e); err != nil {
				log.Printf("Failed to publish event: %v", err)
				return
			}
			published++
			if published%1000 == 0 {
				log.Printf("%d events published...", published)
			}
		})
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	log.Println("Shutdown signal received, cleaning up...")
}

// runSubscriber subscribes to NATS and prints every received event.
func runSubscriber(cfg *config.Config) {
	log.Println("Starting mf-probe in SUBSCRIBER mode...")

	sub, err := probe.NewSubscriber(cfg.Ingest)
	if err != nil {
		log.Fatalf("Failed to create subscriber: %v", err)
	}
	defer sub.Close()

	if err := sub.Start(func(e model.Event) {
		log.Printf("Received Event: %+v", e)
	}); err != nil {
		log.Fatalf("Subscriber failed to start: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	log.Println("Shutdown signal received, cleaning up...")
}
