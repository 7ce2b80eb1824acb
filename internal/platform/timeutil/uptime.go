package timeutil

import "time"

// processStart is captured once when the package is initialized. It carries a
// monotonic reading, so Uptime never goes backwards on wall-clock changes.
var processStart = time.Now()

// ProcessStart returns the instant the process clock started.
func ProcessStart() time.Time {
	return processStart
}

// Uptime returns the seconds elapsed since process start.
func Uptime() float64 {
	return time.Since(processStart).Seconds()
}
