package parser

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/sensorbench/sensoringester/internal/sensoringester/metrics"
	"github.com/sensorbench/sensoringester/internal/sensoringester/model"
)

// timestampLayout combines the date and time-of-day columns of a reading line.
// The trailing .999999 accepts up to microsecond precision.
const timestampLayout = "2006-01-02 15:04:05.999999"

// Positions of the fields within a whitespace-delimited reading line. Field 2 is an
// epoch/sequence column that is not stored.
const (
	fieldDate = iota
	fieldTime
	_
	fieldSensorID
	fieldTemperature
	fieldHumidity
	fieldLight
	fieldVoltage
	fieldCount
)

// Physically plausible measurement bounds. Readings outside these ranges are sensor
// faults and are dropped. Light and voltage carry no bounds and pass through.
const (
	minTemperature = -40
	maxTemperature = 100
	minHumidity    = 0
	maxHumidity    = 100
)

// Parser converts raw reading lines into validated SensorReadings. Lines that fail
// to parse or fail validation are dropped silently; the only externally visible
// signal is a metrics counter.
type Parser struct {
	metrics *metrics.Metrics
}

func NewParser(m *metrics.Metrics) *Parser {
	return &Parser{metrics: m}
}

// Run streams readings from r into yield, preserving input order, until end-of-input.
// It returns the first error returned by yield, or a read error. A fresh call always
// consumes r from its current position; the parser keeps no state between runs.
func (p *Parser) Run(r io.Reader, yield func(model.SensorReading) error) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "date") {
			// header line
			continue
		}
		reading, reason := parseLine(line)
		if reason != "" {
			p.metrics.RecordLineDiscarded(reason)
			continue
		}
		if err := yield(reading); err != nil {
			return err
		}
	}
	return errors.WithStack(scanner.Err())
}

// parseLine converts one line into a reading. On failure it returns a non-empty
// discard reason. Malformed input and out-of-range values are deliberately not
// distinguished beyond the reason tag: both outcomes drop the whole line and no
// partial reading is ever produced.
func parseLine(line string) (model.SensorReading, metrics.DiscardReason) {
	fields := strings.Fields(line)
	if len(fields) < fieldCount {
		return model.SensorReading{}, metrics.DiscardReasonMalformed
	}

	timestamp, err := time.Parse(timestampLayout, fields[fieldDate]+" "+fields[fieldTime])
	if err != nil {
		return model.SensorReading{}, metrics.DiscardReasonMalformed
	}
	sensorID, err := strconv.Atoi(fields[fieldSensorID])
	if err != nil {
		return model.SensorReading{}, metrics.DiscardReasonMalformed
	}
	temperature, err := strconv.ParseFloat(fields[fieldTemperature], 64)
	if err != nil {
		return model.SensorReading{}, metrics.DiscardReasonMalformed
	}
	humidity, err := strconv.ParseFloat(fields[fieldHumidity], 64)
	if err != nil {
		return model.SensorReading{}, metrics.DiscardReasonMalformed
	}
	light, err := strconv.ParseFloat(fields[fieldLight], 64)
	if err != nil {
		return model.SensorReading{}, metrics.DiscardReasonMalformed
	}
	voltage, err := strconv.ParseFloat(fields[fieldVoltage], 64)
	if err != nil {
		return model.SensorReading{}, metrics.DiscardReasonMalformed
	}

	if temperature < minTemperature || temperature > maxTemperature {
		return model.SensorReading{}, metrics.DiscardReasonOutOfRange
	}
	if humidity < minHumidity || humidity > maxHumidity {
		return model.SensorReading{}, metrics.DiscardReasonOutOfRange
	}

	return model.SensorReading{
		Time:        timestamp,
		SensorID:    sensorID,
		Temperature: temperature,
		Humidity:    humidity,
		Light:       light,
		Voltage:     voltage,
	}, ""
}
