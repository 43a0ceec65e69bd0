package apihandlers

import (
	"math/rand"
	"time"
)

// randomWait to blur the runtime of failed login attempts
func randomWait(minTimeSec int, maxTimeSec int) {
	time.Sleep(time.Duration(rand.Intn(maxTimeSec-minTimeSec)+minTimeSec) * time.Second)
}
