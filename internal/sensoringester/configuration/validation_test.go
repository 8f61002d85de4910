package configuration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() SensorIngesterConfiguration {
	return SensorIngesterConfiguration{
		DataFile:     "/data/data.txt",
		BatchSize:    100000,
		PollInterval: 5 * time.Second,
	}
}

func TestValidate_Valid(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_MissingDataFile(t *testing.T) {
	c := validConfig()
	c.DataFile = ""
	assert.Error(t, c.Validate())
}

func TestValidate_BatchSize(t *testing.T) {
	c := validConfig()
	c.BatchSize = 0
	assert.Error(t, c.Validate())

	c.BatchSize = -1
	assert.Error(t, c.Validate())
}

func TestValidate_PollInterval(t *testing.T) {
	c := validConfig()
	c.PollInterval = 0
	assert.Error(t, c.Validate())
}
