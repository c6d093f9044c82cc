package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/cloudradar-monitoring/statusman"
	log "github.com/sirupsen/logrus"
)

var (
	// set on build:
	// go build -o statusman -ldflags="-X main.version=$(git describe --always --long --dirty --tag)" github.com/cloudradar-monitoring/statusman/cmd/statusman
	version string
)

func main() {
	cfgPathPtr := flag.String("c", statusman.DefaultCfgPath, "config file path")
	ordersDirPtr := flag.String("i", "", "orders directory – overrides the one in config file")
	outputDirPtr := flag.String("o", "", "output directory – overrides the one in config file")
	logLevelPtr := flag.String("v", "", "log level – overrides the level in config file (values \"error\",\"info\",\"debug\")")
	colorPtr := flag.String("color", "", "colorize the report – overrides the mode in config file (values \"auto\",\"always\",\"never\")")
	printConfigPtr := flag.Bool("p", false, "print the active config")
	versionPtr := flag.Bool("version", false, "show the statusman version")

	flag.Parse()

	if *versionPtr {
		fmt.Printf("statusman v%s released under MIT license. https://github.com/cloudradar-monitoring/statusman/\n", version)
		return
	}

	tfmt := log.TextFormatter{FullTimestamp: true}
	if runtime.GOOS == "windows" {
		tfmt.DisableColors = true
	}

	log.SetFormatter(&tfmt)

	cfg, err := statusman.HandleAllConfigSetup(*cfgPathPtr)
	if err != nil {
		if strings.Contains(err.Error(), "cannot load TOML value of type int64 into a Go float") {
			log.Fatalf("Config load error: please use numbers with a decimal point for numerical values")
		} else {
			log.Fatalf("Config load error: %s", err.Error())
		}
	}

	if *logLevelPtr != "" {
		if *logLevelPtr == string(statusman.LogLevelError) || *logLevelPtr == string(statusman.LogLevelInfo) || *logLevelPtr == string(statusman.LogLevelDebug) {
			cfg.LogLevel = statusman.LogLevel(*logLevelPtr)
		} else {
			log.Warnf("LogLevel was set to an invalid value: \"%s\". Keeping \"%s\"", *logLevelPtr, cfg.LogLevel)
		}
	}

	if *colorPtr != "" {
		switch *colorPtr {
		case statusman.ColorModeAuto, statusman.ColorModeAlways, statusman.ColorModeNever:
			cfg.ColorMode = *colorPtr
		default:
			log.Warnf("color was set to an invalid value: \"%s\". Keeping \"%s\"", *colorPtr, cfg.ColorMode)
		}
	}

	if *ordersDirPtr != "" {
		cfg.OrdersDir = *ordersDirPtr
	}
	if *outputDirPtr != "" {
		cfg.OutputDir = *outputDirPtr
	}

	sm := statusman.New(cfg)

	if *printConfigPtr {
		fmt.Println(cfg.DumpToml())
		return
	}

	if err := sm.GenerateReport(os.Stdout); err != nil {
		log.Fatalf("Failed to generate the report: %s", err.Error())
	}
}
