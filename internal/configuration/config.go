package configuration

import (
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/markusressel/pid2go/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Configuration struct {
	DbPath string `json:"dbPath"`

	Simulation SimulationConfig `json:"simulation"`
	Report     ReportConfig     `json:"report"`
	Chart      ChartConfig      `json:"chart"`
	Analysis   AnalysisConfig   `json:"analysis"`
	Sweep      SweepConfig      `json:"sweep"`

	Api        ApiConfig        `json:"api"`
	Statistics StatisticsConfig `json:"statistics"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("pid2go")

	home, err := homedir.Dir()
	if err != nil {
		ui.Warning("Couldn't detect home directory: %v", err)
	}

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		if home != "" {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath("/etc/pid2go/")
	}

	viper.SetEnvPrefix("PID2GO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues(home)
}

func setDefaultValues(home string) {
	dbPath := "/tmp/pid2go/pid2go.db"
	if home != "" {
		dbPath = filepath.Join(home, ".local", "share", "pid2go", "pid2go.db")
	}
	viper.SetDefault("dbPath", dbPath)

	// the drone height example
	viper.SetDefault("simulation.kp", 2.0)
	viper.SetDefault("simulation.ki", 0.1)
	viper.SetDefault("simulation.kd", 0.1)
	viper.SetDefault("simulation.target", 50.0)
	viper.SetDefault("simulation.initialState", 45.0)
	viper.SetDefault("simulation.stepCount", 21)
	viper.SetDefault("simulation.interval", 1.0)

	viper.SetDefault("report.precision", 4)

	viper.SetDefault("chart.enabled", true)
	viper.SetDefault("chart.height", 15)
	viper.SetDefault("chart.width", 100)
	viper.SetDefault("chart.samples", 300)
	viper.SetDefault("chart.png", "")

	viper.SetDefault("analysis.tolerance", 0.5)
	viper.SetDefault("analysis.window", 3)

	viper.SetDefault("sweep.kp", []float64{0.5, 1.0, 1.5, 2.0})
	viper.SetDefault("sweep.ki", []float64{0.0, 0.1})
	viper.SetDefault("sweep.kd", []float64{0.0, 0.1})
	viper.SetDefault("sweep.workers", 4)

	viper.SetDefault("api.enabled", true)
	viper.SetDefault("api.host", "")
	viper.SetDefault("api.port", 8080)
	viper.SetDefault("api.timeout", 5*time.Second)

	viper.SetDefault("statistics.enabled", false)
	viper.SetDefault("statistics.port", 9000)
}

// ReadConfigFile reads the config file, if there is one.
// A missing config file is fine, the defaults are used in that case.
func ReadConfigFile() {
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			ui.Debug("No configuration file found, using defaults")
		} else {
			ui.Fatal("Error reading config file, %s", err)
		}
	} else {
		// this is only populated _after_ ReadInConfig()
		ui.Debug("Using configuration file at: %s", viper.ConfigFileUsed())
	}

	LoadConfig()
}

func LoadConfig() {
	// decode into a fresh struct, mapstructure does not truncate existing slices
	var config Configuration
	err := viper.Unmarshal(&config, viper.DecodeHook(decodeHook()))
	if err != nil {
		ui.Fatal("unable to decode into struct, %v", err)
	}
	CurrentConfig = config
}

func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		FloatListHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}
