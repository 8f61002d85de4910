package common

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Environment variables conventionally used to point the ingester at a database,
// mapped onto the corresponding configuration keys. They take precedence over
// anything in the config files.
var databaseEnvBindings = map[string]string{
	"postgres.connection.host":     "DB_HOST",
	"postgres.connection.port":     "DB_PORT",
	"postgres.connection.dbname":   "DB_NAME",
	"postgres.connection.user":     "DB_USER",
	"postgres.connection.password": "DB_PASSWORD",
}

func BindCommandlineArguments() {
	err := viper.BindPFlags(pflag.CommandLine)
	if err != nil {
		log.Error(err)
		os.Exit(-1)
	}
}

// LoadConfig reads the default config file from defaultPath, merges in any
// user-specified override files and unmarshals the result into config.
func LoadConfig(config interface{}, defaultPath string, overrideConfigs []string) {
	viper.SetConfigName("config")
	viper.AddConfigPath(defaultPath)
	if err := viper.ReadInConfig(); err != nil {
		log.Error(err)
		os.Exit(-1)
	}

	for _, overrideConfig := range overrideConfigs {
		viper.SetConfigFile(overrideConfig)
		err := viper.MergeInConfig()
		if err != nil {
			log.Error(err)
			os.Exit(-1)
		}
	}

	for key, envVar := range databaseEnvBindings {
		if err := viper.BindEnv(key, envVar); err != nil {
			log.Error(err)
			os.Exit(-1)
		}
	}

	err := viper.Unmarshal(config)
	if err != nil {
		log.Error(err)
		os.Exit(-1)
	}
}

func ConfigureLogging() {
	log.SetFormatter(&log.TextFormatter{ForceColors: true, FullTimestamp: true})
	log.SetOutput(os.Stdout)
}
