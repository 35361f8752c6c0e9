//go:build !js
// +build !js

package monotime

import (
	"time"
)

var (
	epoch     = time.Now()
	epochWall = epoch.UnixNano()
)

func now() time.Duration {
	// time.Since uses the monotonic reading captured in epoch
	return time.Since(epoch)
}
