package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sensorbench/sensoringester/internal/common"
	"github.com/sensorbench/sensoringester/internal/sensoringester"
	"github.com/sensorbench/sensoringester/internal/sensoringester/configuration"
)

const CustomConfigLocation = "config"

func init() {
	pflag.StringSlice(
		CustomConfigLocation,
		[]string{},
		"Fully qualified path to application configuration file (for multiple config files repeat this arg or separate paths with commas)",
	)
	pflag.Parse()
}

func main() {
	common.ConfigureLogging()
	common.BindCommandlineArguments()

	var config configuration.SensorIngesterConfiguration
	userSpecifiedConfigs := viper.GetStringSlice(CustomConfigLocation)
	common.LoadConfig(&config, "./config/sensoringester", userSpecifiedConfigs)

	if err := config.Validate(); err != nil {
		log.Error(err)
		os.Exit(-1)
	}

	if err := sensoringester.Run(&config); err != nil {
		panic(err)
	}
}
