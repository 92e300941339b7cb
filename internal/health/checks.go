package health

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aaravmahajanofficial/afos-pos/internal/config"
	"github.com/hellofresh/health-go/v5"
	"github.com/hellofresh/health-go/v5/checks/postgres"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
)

const Version = "1.0.0"

// NewHealthHandler registers a check for every backing service the config
// enables. The receipt spool is always checked since the slip printer is the
// only output that cannot be switched off.
func NewHealthHandler(cfg *config.Config) (*health.Health, error) {
	checks := []health.Config{
		{
			Name:      "receipt-spool",
			Timeout:   time.Second,
			SkipOnErr: false,
			Check:     spoolCheck(cfg.Receipts.SpoolDir),
		},
	}

	if cfg.Database.Enabled() {
		checks = append(checks, health.Config{
			Name:      "database",
			Timeout:   3 * time.Second,
			SkipOnErr: true,
			Check: postgres.New(postgres.Config{
				DSN: cfg.Database.GetDSN(),
			}),
		})
	}

	if cfg.RedisConnect.Enabled() {
		checks = append(checks, health.Config{
			Name:      "redis",
			Timeout:   2 * time.Second,
			SkipOnErr: true,
			Check: healthRedis.New(healthRedis.Config{
				DSN: cfg.RedisConnect.GetDSN(),
			}),
		})
	}

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    cfg.Otel.ServiceName,
			Version: Version,
		}),
		health.WithSystemInfo(),
		health.WithChecks(checks...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}

func spoolCheck(dir string) func(context.Context) error {
	return func(context.Context) error {
		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("receipt spool unavailable: %w", err)
		}

		if !info.IsDir() {
			return fmt.Errorf("receipt spool %s is not a directory", dir)
		}

		return nil
	}
}
