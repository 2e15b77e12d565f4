package utils

import "time"

// NowMillis returns the current Unix time in milliseconds, the clock the
// creation form draws client-assigned record IDs from.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}
