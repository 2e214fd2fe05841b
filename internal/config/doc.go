// Package config provides configuration management for the census preparation
// tool. It loads settings from defaults, an optional YAML file and the
// environment, validates them, and resolves the file paths of a run.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. YAML configuration file passed with -config
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern CENSUS_<SECTION>_<FIELD>:
//
//	CENSUS_INPUT_NAMES_FILE=adult.names.txt
//	CENSUS_INPUT_DATA_FILE=adult.data.txt
//	CENSUS_OUTPUT_DIR=reports
//	CENSUS_PREP_WORKERS=4
//	CENSUS_LOGGING_LEVEL=debug
//	CENSUS_TELEMETRY_ENABLE_METRICS=true
//
// # Validation
//
// Every section carries validator tags; Load rejects values such as an
// unknown log level, a worker count outside 1..64 or tracing enabled without
// a trace file.
//
// # Usage
//
//	cfg, err := config.Load(*configFile)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	paths, err := config.NewPaths(cfg)
package config
