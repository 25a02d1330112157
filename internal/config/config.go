package config

import (
	"go.uber.org/zap"
)

// NewLogger ساخت لاگر zap بر اساس LOG_MODE
func NewLogger(mode string) (*zap.Logger, error) {
	if mode == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
