package model

import "time"

// SensorReading is a single validated measurement from one mote. Field order mirrors
// the destination tables' column order. Readings carry no identity beyond their
// field values; the pipeline assigns no primary key.
type SensorReading struct {
	Time        time.Time
	SensorID    int
	Temperature float64
	Humidity    float64
	Light       float64
	Voltage     float64
}
