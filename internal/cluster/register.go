// Package cluster registers the cabinet server with the venue's service
// discovery, so operator tooling can find running cabinets. It is
// optional: stand-alone cabinets skip it entirely.
package cluster

import (
	"fmt"
	"os"

	consul "github.com/hashicorp/consul/api"
	"go.uber.org/zap"
)

// RegisterService announces this server in Consul under serviceName,
// with an HTTP health check against healthPort.
func RegisterService(serviceName string, servicePort, healthPort int, consulAddr string, logger *zap.Logger) error {
	config := consul.DefaultConfig()
	config.Address = consulAddr

	client, err := consul.NewClient(config)
	if err != nil {
		return fmt.Errorf("create consul client: %w", err)
	}

	// The hostname makes a unique service ID per cabinet.
	hostname := os.Getenv("HOSTNAME")
	if hostname == "" {
		hostname, _ = os.Hostname()
	}
	serviceID := fmt.Sprintf("%s-%s", serviceName, hostname)

	registration := &consul.AgentServiceRegistration{
		ID:   serviceID,
		Name: serviceName,
		Port: servicePort,
		Check: &consul.AgentServiceCheck{
			HTTP:     fmt.Sprintf("http://%s:%d/health", hostname, healthPort),
			Timeout:  "5s",
			Interval: "10s",
			// Deregister automatically if the cabinet stays critical.
			DeregisterCriticalServiceAfter: "1m",
		},
	}

	if err := client.Agent().ServiceRegister(registration); err != nil {
		return fmt.Errorf("register service: %w", err)
	}

	logger.Info("registered with consul",
		zap.String("service", serviceName),
		zap.String("serviceId", serviceID),
	)
	return nil
}
