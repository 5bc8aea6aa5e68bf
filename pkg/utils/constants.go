package utils

import "time"

const (
	Version             = "v1.2.0"
	CliName             = "GasCheck"
	RoutineFlushTimeout = time.Duration(1 * time.Second)
)
