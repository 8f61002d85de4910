package sensordb

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/sensorbench/sensoringester/internal/sensoringester/metrics"
	"github.com/sensorbench/sensoringester/internal/sensoringester/model"
)

// Destination tables. Both receive identical rows; one is left as a plain table
// while the other is intended to be partitioned by time (e.g. a TimescaleDB
// hypertable) so the two storage layouts can be benchmarked against each other.
// Converting the second table to a hypertable is a provisioning concern, not the
// ingester's.
const (
	UnpartitionedTable = "sensor_data_postgres"
	PartitionedTable   = "sensor_data_timescale"
)

var tableColumns = []string{"time", "sensor_id", "temperature", "humidity", "light", "voltage"}

type SensorDb struct {
	db      *pgxpool.Pool
	metrics *metrics.Metrics
}

func NewSensorDb(db *pgxpool.Pool, metrics *metrics.Metrics) *SensorDb {
	return &SensorDb{db: db, metrics: metrics}
}

// Store appends the batch to both destination tables, the unpartitioned one first.
// The two appends are independent: there is no cross-table transaction, so a failure
// on the second table leaves the first table's rows committed. Delivery is
// at-least-once per table, not atomic across tables; re-running the same input
// appends duplicate rows to both.
func (s *SensorDb) Store(ctx context.Context, batch []model.SensorReading) error {
	if len(batch) == 0 {
		return nil
	}
	if err := s.appendBatch(ctx, UnpartitionedTable, batch); err != nil {
		return errors.Wrapf(err, "appending batch to %s", UnpartitionedTable)
	}
	if err := s.appendBatch(ctx, PartitionedTable, batch); err != nil {
		return errors.Wrapf(err, "appending batch to %s", PartitionedTable)
	}
	return nil
}

// appendBatch writes the whole batch to one table in a single transaction: the table
// is created from the batch's column shape if it does not yet exist, then all rows go
// in via one COPY. No per-row inserts and no conflict handling; the tables carry no
// unique constraint. Write failures are not retried here, they propagate and
// terminate the run.
func (s *SensorDb) appendBatch(ctx context.Context, table string, batch []model.SensorReading) error {
	return pgx.BeginTxFunc(ctx, s.db, pgx.TxOptions{
		IsoLevel:   pgx.ReadCommitted,
		AccessMode: pgx.ReadWrite,
	}, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s
			(
			  time        timestamp,
			  sensor_id   integer,
			  temperature double precision,
			  humidity    double precision,
			  light       double precision,
			  voltage     double precision
			);`, table))
		if err != nil {
			s.metrics.RecordDBError(metrics.DBOperationCreateTable)
			return err
		}

		_, err = tx.CopyFrom(ctx,
			pgx.Identifier{table},
			tableColumns,
			pgx.CopyFromSlice(len(batch), func(i int) ([]interface{}, error) {
				return []interface{}{
					batch[i].Time,
					batch[i].SensorID,
					batch[i].Temperature,
					batch[i].Humidity,
					batch[i].Light,
					batch[i].Voltage,
				}, nil
			}),
		)
		if err != nil {
			s.metrics.RecordDBError(metrics.DBOperationCopy)
			return err
		}

		s.metrics.RecordRowsInserted(table, len(batch))
		return nil
	})
}
