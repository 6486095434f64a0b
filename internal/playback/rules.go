// Package playback decides when a stream must be reported back to
// Grooveshark and sends those reports.
package playback

import (
	"time"
)

// Grooveshark stream reporting constants
const (
	// Over30SecondsThreshold is how long a stream must play before it is
	// marked as over 30 seconds
	Over30SecondsThreshold = 30 * time.Second

	// CompleteSlack is how close to the end a stream must get to count as
	// complete. Players rarely report the exact final position.
	CompleteSlack = 2 * time.Second
)

// ShouldMarkOver30Seconds reports whether playedDuration passes the 30
// second mark.
func ShouldMarkOver30Seconds(playedDuration time.Duration) bool {
	return playedDuration >= Over30SecondsThreshold
}

// ShouldMarkComplete determines if a song has played to the end:
//  1. The song length must be known
//  2. playedDuration must reach the length, less CompleteSlack
func ShouldMarkComplete(songLength, playedDuration time.Duration) bool {
	if songLength <= 0 {
		return false
	}

	return playedDuration >= CompleteThreshold(songLength)
}

// CompleteThreshold returns the played duration at which a song of the given
// length counts as complete
func CompleteThreshold(songLength time.Duration) time.Duration {
	if songLength <= 0 {
		// Return a value that can never be met
		return time.Duration(-1)
	}

	threshold := songLength - CompleteSlack
	if threshold < 0 {
		threshold = songLength
	}
	return threshold
}
