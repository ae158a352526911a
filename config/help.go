package config

import (
	"fmt"
)

const HelpMessage = `
booking-ref-system — booking reference allocator

Usage:
  allocator -mode allocator-service [-config-path config.yaml]
  allocator -mode conformance -service FLT -n 500

Modes:
  allocator-service   HTTP service issuing RHB booking references
  conformance         run the concurrency conformance harness and exit

Flags:
  -mode          application mode (required)
  -config-path   path to the config yaml file (default "config.yaml")
  -service       service code for conformance mode (default "HTL")
  -n             concurrent allocations for conformance mode (default 500)
  -help          show this message
`

func PrintHelp() {
	fmt.Printf("%s", HelpMessage)
}

// PrintConfig prints the effective non-secret configuration on startup.
func PrintConfig(cfg *Config) {
	fmt.Printf("mode: %s\n", cfg.Mode)
	fmt.Printf("http port: %s\n", cfg.Services.AllocatorService)
	fmt.Printf("store driver: %s\n", cfg.Allocator.StoreDriver)
	fmt.Printf("service codes: %s\n", cfg.Allocator.ServiceCodes)
	fmt.Printf("store timeout: %s\n", cfg.Allocator.StoreTimeout)
	fmt.Printf("rabbitmq enabled: %v\n", cfg.RabbitMQ.Enabled)
}
