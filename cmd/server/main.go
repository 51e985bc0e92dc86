package main

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"wamserver/internal/cluster"
	"wamserver/internal/console"
	"wamserver/internal/device"
	"wamserver/internal/events"
	"wamserver/internal/game"
	"wamserver/internal/network"
)

// ============================================================================
// Default configuration
// ============================================================================

const (
	defaultServiceName   = "wam-server"
	defaultListenAddr    = ":8080"
	defaultPadListenAddr = ":7777"
	defaultReadTimeout   = 10 * time.Second
)

// Config holds everything the server reads from the environment.
type Config struct {
	ServiceName   string
	ListenAddr    string
	PadListenAddr string
	ReadTimeout   time.Duration
	Tuning        game.Tuning

	// Optional integrations; empty means disabled.
	NatsURL    string
	ConsulAddr string
}

func loadConfig() (*Config, error) {
	cfg := &Config{
		ServiceName:   envString("WAM_SERVICE_NAME", defaultServiceName),
		ListenAddr:    envString("WAM_LISTEN_ADDR", defaultListenAddr),
		PadListenAddr: envString("WAM_PAD_LISTEN_ADDR", defaultPadListenAddr),
		NatsURL:       os.Getenv("WAM_NATS_URL"),
		ConsulAddr:    os.Getenv("WAM_CONSUL_ADDR"),
		Tuning:        game.DefaultTuning(),
	}

	var err error
	if cfg.ReadTimeout, err = envDuration("WAM_READ_TIMEOUT", defaultReadTimeout); err != nil {
		return nil, err
	}
	if cfg.Tuning.MaxHealth, err = envInt("WAM_MAX_HEALTH", cfg.Tuning.MaxHealth); err != nil {
		return nil, err
	}
	if cfg.Tuning.HealAmount, err = envInt("WAM_HEAL_AMOUNT", cfg.Tuning.HealAmount); err != nil {
		return nil, err
	}
	if cfg.Tuning.AttackDamage, err = envInt("WAM_ATTACK_DAMAGE", cfg.Tuning.AttackDamage); err != nil {
		return nil, err
	}
	return cfg, nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

// ============================================================================
// Main
// ============================================================================

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := loadConfig()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}
	logger.Info("configuration loaded",
		zap.String("listenAddr", cfg.ListenAddr),
		zap.String("padListenAddr", cfg.PadListenAddr),
		zap.Duration("readTimeout", cfg.ReadTimeout),
		zap.Int("maxHealth", cfg.Tuning.MaxHealth),
		zap.Int("healAmount", cfg.Tuning.HealAmount),
		zap.Int("attackDamage", cfg.Tuning.AttackDamage),
	)

	// Pad pool and the TCP pad source for bench rigs / fake pads.
	pool := device.NewPool()
	source := device.NewTCPSource(cfg.PadListenAddr, pool, logger)
	go func() {
		if err := source.Run(); err != nil {
			logger.Fatal("pad source failed", zap.Error(err))
		}
	}()

	// Session manager, operator console handler and observers.
	manager := game.NewManager(pool, cfg.Tuning, cfg.ReadTimeout, logger)
	handler := console.NewHandler(manager, logger)

	observers := game.MultiObserver{handler}
	if cfg.NatsURL != "" {
		publisher, err := events.NewPublisher(cfg.NatsURL, logger)
		if err != nil {
			logger.Fatal("failed to connect to NATS", zap.Error(err))
		}
		defer publisher.Close()
		observers = append(observers, publisher)
	}
	manager.SetObserver(observers)
	go manager.Run()

	// Operator websocket server.
	server := network.NewServer(handler, logger)
	handler.BindHub(server.Hub())
	go server.Hub().Run()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", server.WSHandler)
	mux.HandleFunc("/health", cluster.NewBasicHealthHandler())

	// Optional venue service discovery.
	if cfg.ConsulAddr != "" {
		port := listenPort(cfg.ListenAddr)
		if err := cluster.RegisterService(cfg.ServiceName, port, port, cfg.ConsulAddr, logger); err != nil {
			logger.Fatal("consul registration failed", zap.Error(err))
		}
	}

	logger.Info("operator console server listening", zap.String("addr", cfg.ListenAddr))
	if err := http.ListenAndServe(cfg.ListenAddr, mux); err != nil {
		logger.Fatal("http server failed", zap.Error(err))
	}
}

func listenPort(addr string) int {
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == ':' {
			if port, err := strconv.Atoi(addr[i+1:]); err == nil {
				return port
			}
			break
		}
	}
	return 0
}
