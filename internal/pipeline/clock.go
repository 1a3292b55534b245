package pipeline

import "github.com/jonboulle/clockwork"

// clock times stages and stamps the last successful run.
var clock = clockwork.NewRealClock()

// SetClock swaps the pipeline time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
