package parser

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sensorbench/sensoringester/internal/sensoringester/metrics"
	"github.com/sensorbench/sensoringester/internal/sensoringester/model"
)

const validLine = "2004-03-01 10:00:00.123456 1 3 22.5 40.0 100.0 2.5"

func TestParseLine_Valid(t *testing.T) {
	reading, reason := parseLine(validLine)
	require.Empty(t, reason)

	expectedTime := time.Date(2004, 3, 1, 10, 0, 0, 123456000, time.UTC)
	assert.Equal(t, model.SensorReading{
		Time:        expectedTime,
		SensorID:    3,
		Temperature: 22.5,
		Humidity:    40.0,
		Light:       100.0,
		Voltage:     2.5,
	}, reading)
}

func TestParseLine_Malformed(t *testing.T) {
	tests := map[string]string{
		"empty line":          "",
		"short line":          "2004-03-01 10:00:00.123456 1 3 22.5 40.0 100.0",
		"non-numeric temp":    "2004-03-01 10:00:00.123456 1 3 hot 40.0 100.0 2.5",
		"non-numeric sensor":  "2004-03-01 10:00:00.123456 1 three 22.5 40.0 100.0 2.5",
		"non-numeric hum":     "2004-03-01 10:00:00.123456 1 3 22.5 wet 100.0 2.5",
		"non-numeric light":   "2004-03-01 10:00:00.123456 1 3 22.5 40.0 bright 2.5",
		"non-numeric voltage": "2004-03-01 10:00:00.123456 1 3 22.5 40.0 100.0 high",
		"bad timestamp":       "2004-13-99 10:00:00.123456 1 3 22.5 40.0 100.0 2.5",
		"garbage":             "not a reading at all",
	}
	for name, line := range tests {
		t.Run(name, func(t *testing.T) {
			_, reason := parseLine(line)
			assert.Equal(t, metrics.DiscardReasonMalformed, reason)
		})
	}
}

func TestParseLine_OutOfRange(t *testing.T) {
	tests := map[string]string{
		"temperature too high": "2004-03-01 10:00:00.123456 1 3 150.0 40.0 100.0 2.5",
		"temperature too low":  "2004-03-01 10:00:00.123456 1 3 -40.1 40.0 100.0 2.5",
		"humidity too high":    "2004-03-01 10:00:00.123456 1 3 22.5 100.1 100.0 2.5",
		"humidity negative":    "2004-03-01 10:00:00.123456 1 3 22.5 -0.1 100.0 2.5",
	}
	for name, line := range tests {
		t.Run(name, func(t *testing.T) {
			_, reason := parseLine(line)
			assert.Equal(t, metrics.DiscardReasonOutOfRange, reason)
		})
	}
}

func TestParseLine_BoundaryValuesRetained(t *testing.T) {
	tests := map[string]string{
		"temperature at -40": "2004-03-01 10:00:00.123456 1 3 -40 40.0 100.0 2.5",
		"temperature at 100": "2004-03-01 10:00:00.123456 1 3 100 40.0 100.0 2.5",
		"humidity at 0":      "2004-03-01 10:00:00.123456 1 3 22.5 0 100.0 2.5",
		"humidity at 100":    "2004-03-01 10:00:00.123456 1 3 22.5 100 100.0 2.5",
	}
	for name, line := range tests {
		t.Run(name, func(t *testing.T) {
			_, reason := parseLine(line)
			assert.Empty(t, reason)
		})
	}
}

func TestParseLine_LightAndVoltageUnvalidated(t *testing.T) {
	reading, reason := parseLine("2004-03-01 10:00:00.123456 1 3 22.5 40.0 -99999 99999")
	require.Empty(t, reason)
	assert.Equal(t, -99999.0, reading.Light)
	assert.Equal(t, 99999.0, reading.Voltage)
}

func TestRun_SkipsHeaderAndBadLines(t *testing.T) {
	input := strings.Join([]string{
		"date time epoch moteid temperature humidity light voltage",
		validLine,
		"garbage",
		"2004-03-01 10:00:01.000000 2 4 23.0 41.0 101.0 2.6",
		"2004-03-01 10:00:02.000000 3 5 150.0 41.0 101.0 2.6",
	}, "\n")

	var got []model.SensorReading
	p := NewParser(metrics.Get())
	err := p.Run(strings.NewReader(input), func(r model.SensorReading) error {
		got = append(got, r)
		return nil
	})
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, 3, got[0].SensorID)
	assert.Equal(t, 4, got[1].SensorID)
}

func TestRun_PreservesInputOrder(t *testing.T) {
	lines := []string{
		"2004-03-01 10:00:00.000000 1 1 20.0 40.0 100.0 2.5",
		"2004-03-01 10:00:01.000000 2 2 21.0 41.0 100.0 2.5",
		"2004-03-01 10:00:02.000000 3 3 22.0 42.0 100.0 2.5",
	}

	var got []int
	p := NewParser(metrics.Get())
	err := p.Run(strings.NewReader(strings.Join(lines, "\n")), func(r model.SensorReading) error {
		got = append(got, r.SensorID)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestRun_YieldErrorAborts(t *testing.T) {
	input := strings.Join([]string{validLine, validLine, validLine}, "\n")

	calls := 0
	p := NewParser(metrics.Get())
	err := p.Run(strings.NewReader(input), func(r model.SensorReading) error {
		calls++
		if calls == 2 {
			return assert.AnError
		}
		return nil
	})
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 2, calls)
}
