package sensoringester

import (
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/sensorbench/sensoringester/internal/common"
	"github.com/sensorbench/sensoringester/internal/common/app"
	"github.com/sensorbench/sensoringester/internal/common/database"
	"github.com/sensorbench/sensoringester/internal/sensoringester/batcher"
	"github.com/sensorbench/sensoringester/internal/sensoringester/configuration"
	"github.com/sensorbench/sensoringester/internal/sensoringester/metrics"
	"github.com/sensorbench/sensoringester/internal/sensoringester/model"
	"github.com/sensorbench/sensoringester/internal/sensoringester/parser"
	"github.com/sensorbench/sensoringester/internal/sensoringester/readiness"
	"github.com/sensorbench/sensoringester/internal/sensoringester/sensordb"
)

// Run ingests the configured data file into both destination tables and returns when
// the file has been fully processed. Startup blocks indefinitely until the database
// and the data file are reachable. A non-nil error means a read or write failure
// part-way through the run; batches committed before the failure stay committed, and
// the next run re-reads the file from the beginning.
func Run(config *configuration.SensorIngesterConfiguration) error {
	m := metrics.Get()
	ctx := app.CreateContextWithShutdown()

	log.Info("Sensor Ingester starting")

	shutdownMetricServer := common.ServeMetrics(config.MetricsPort)
	defer shutdownMetricServer()

	var pool *pgxpool.Pool
	dbGate := readiness.NewGate(config.PollInterval)
	err := dbGate.Await(ctx, "database", func() error {
		var err error
		pool, err = database.OpenPgxPool(config.Postgres)
		if err != nil && pool != nil {
			// ping failed after connecting
			pool.Close()
			pool = nil
		}
		return err
	})
	if err != nil {
		return err
	}
	defer pool.Close()

	fileGate := readiness.NewGate(config.PollInterval)
	err = fileGate.Await(ctx, fmt.Sprintf("data file %s", config.DataFile), func() error {
		_, err := os.Stat(config.DataFile)
		return err
	})
	if err != nil {
		return err
	}

	f, err := os.Open(config.DataFile)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()

	db := sensordb.NewSensorDb(pool, m)

	log.Info("Starting data import")
	batchIndex := 0
	b := batcher.NewBatcher[model.SensorReading](config.BatchSize, func(batch []model.SensorReading) error {
		if err := db.Store(ctx, batch); err != nil {
			return err
		}
		batchIndex++
		log.Infof("Loaded batch %d (%d readings) into both tables", batchIndex, len(batch))
		return nil
	})

	p := parser.NewParser(m)
	if err := p.Run(f, b.Add); err != nil {
		return err
	}
	if err := b.Flush(); err != nil {
		return err
	}

	log.Infof("Data import complete, %d batches loaded", batchIndex)
	return nil
}
