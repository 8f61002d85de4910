package configuration

import "time"

type PostgresConfig struct {
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	Connection      map[string]string
}

type SensorIngesterConfiguration struct {
	// Database configuration
	Postgres PostgresConfig
	// Port on which prometheus metrics are exposed
	MetricsPort uint16
	// Path to the sensor readings file to ingest
	DataFile string `validate:"required"`
	// Number of readings that are batched together before being inserted into the database
	BatchSize int `validate:"required,gt=0"`
	// Delay between readiness probes while waiting for the database and the data file
	PollInterval time.Duration `validate:"required"`
}
