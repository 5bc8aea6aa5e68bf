package config

import (
	"os"
	"strconv"
	"strings"
)

var (
	DefaultLogLevel       string  = "info"
	DefaultBlocks         int     = 40
	DefaultStep           int     = 4
	DefaultTolerancePct   float64 = 30.0
	DefaultTimeout        float64 = 20.0
	DefaultWorkerNum      int     = 4
	DefaultPrometheusPort int     = 9080
)

// Environment variables honored as defaults, kept compatible with the
// previous generations of the tool.
const (
	envBlocks       = "GAS_SND_BLOCKS"
	envStep         = "GAS_SND_STEP"
	envTolerancePct = "GAS_SND_TOLERANCE_PCT"
	envTimeout      = "GAS_SND_TIMEOUT"
	envRPCUrls      = "RPC_URLS"
)

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func envFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return value
}

// envRPCList reads the comma-separated RPC_URLS fallback used when no
// --rpc flag is given.
func envRPCList() []string {
	raw := strings.TrimSpace(os.Getenv(envRPCUrls))
	if raw == "" {
		return nil
	}
	urls := make([]string, 0)
	for _, chunk := range strings.Split(raw, ",") {
		chunk = strings.TrimSpace(chunk)
		if chunk != "" {
			urls = append(urls, chunk)
		}
	}
	return urls
}
