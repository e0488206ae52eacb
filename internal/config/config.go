package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	LogLevel         string
	PaymentDelay     time.Duration
	SubmitTimeout    time.Duration
	PaymentWorkers   int
	PaymentQueueSize int
}

// LoadDotEnv loads variables from the given files, or ".env" when none are
// named. Missing files are ignored and variables already set win.
func LoadDotEnv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}

	for _, name := range filenames {
		err := godotenv.Load(name)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("config: loading %s: %w", name, err)
		}
	}
	return nil
}

func ProcessEnvironmentVariables() (*Config, error) {
	// Defaults suit a local run against the simulated gateway
	env := Config{
		Port:             "9446",
		LogLevel:         "info",
		PaymentDelay:     2 * time.Second,
		SubmitTimeout:    30 * time.Second,
		PaymentWorkers:   4,
		PaymentQueueSize: 1000,
	}

	envPort := os.Getenv("PORT")
	envLogLevel := os.Getenv("LOG_LEVEL")
	envPaymentDelay := os.Getenv("PAYMENT_DELAY")
	envSubmitTimeout := os.Getenv("SUBMIT_TIMEOUT")
	envPaymentWorkers := os.Getenv("PAYMENT_WORKERS")
	envPaymentQueueSize := os.Getenv("PAYMENT_QUEUE_SIZE")

	if len(envPort) != 0 {
		env.Port = envPort
	}

	if len(envLogLevel) != 0 {
		env.LogLevel = envLogLevel
	}

	if len(envPaymentDelay) != 0 {
		delay, err := time.ParseDuration(envPaymentDelay)
		if err != nil || delay < 0 {
			return nil, fmt.Errorf("config: invalid PAYMENT_DELAY %q", envPaymentDelay)
		}
		env.PaymentDelay = delay
	}

	if len(envSubmitTimeout) != 0 {
		timeout, err := time.ParseDuration(envSubmitTimeout)
		if err != nil || timeout < 0 {
			return nil, fmt.Errorf("config: invalid SUBMIT_TIMEOUT %q", envSubmitTimeout)
		}
		env.SubmitTimeout = timeout
	}

	if len(envPaymentWorkers) != 0 {
		workers, err := strconv.Atoi(envPaymentWorkers)
		if err != nil || workers < 1 {
			return nil, fmt.Errorf("config: invalid PAYMENT_WORKERS %q", envPaymentWorkers)
		}
		env.PaymentWorkers = workers
	}

	if len(envPaymentQueueSize) != 0 {
		size, err := strconv.Atoi(envPaymentQueueSize)
		if err != nil || size < 1 {
			return nil, fmt.Errorf("config: invalid PAYMENT_QUEUE_SIZE %q", envPaymentQueueSize)
		}
		env.PaymentQueueSize = size
	}

	return &env, nil
}
