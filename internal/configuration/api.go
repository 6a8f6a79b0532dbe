package configuration

import "time"

type ApiConfig struct {
	Enabled bool   `json:"enabled"`
	Host    string `json:"host"`
	Port    int    `json:"port"`
	// graceful shutdown timeout
	Timeout time.Duration `json:"timeout"`
}
