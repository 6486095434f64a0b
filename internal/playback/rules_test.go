package playback

import (
	"testing"
	"time"
)

func TestShouldMarkOver30Seconds(t *testing.T) {
	tests := []struct {
		name   string
		played time.Duration
		want   bool
	}{
		{name: "not started", played: 0, want: false},
		{name: "29 seconds", played: 29 * time.Second, want: false},
		{name: "exactly 30 seconds", played: 30 * time.Second, want: true},
		{name: "several minutes", played: 5 * time.Minute, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldMarkOver30Seconds(tt.played); got != tt.want {
				t.Errorf("ShouldMarkOver30Seconds(%v) = %v, want %v", tt.played, got, tt.want)
			}
		})
	}
}

func TestShouldMarkComplete(t *testing.T) {
	tests := []struct {
		name       string
		songLength time.Duration
		played     time.Duration
		want       bool
	}{
		{
			name:       "unknown length",
			songLength: 0,
			played:     10 * time.Minute,
			want:       false,
		},
		{
			name:       "3 minute song, played to the end",
			songLength: 3 * time.Minute,
			played:     3 * time.Minute,
			want:       true,
		},
		{
			name:       "3 minute song, within slack of the end",
			songLength: 3 * time.Minute,
			played:     3*time.Minute - CompleteSlack,
			want:       true,
		},
		{
			name:       "3 minute song, stopped early",
			songLength: 3 * time.Minute,
			played:     2 * time.Minute,
			want:       false,
		},
		{
			name:       "song shorter than slack",
			songLength: time.Second,
			played:     500 * time.Millisecond,
			want:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldMarkComplete(tt.songLength, tt.played); got != tt.want {
				t.Errorf("ShouldMarkComplete(%v, %v) = %v, want %v", tt.songLength, tt.played, got, tt.want)
			}
		})
	}
}

func TestCompleteThreshold(t *testing.T) {
	tests := []struct {
		songLength time.Duration
		want       time.Duration
	}{
		{songLength: 0, want: -1},
		{songLength: time.Second, want: time.Second},
		{songLength: 3 * time.Minute, want: 3*time.Minute - CompleteSlack},
	}

	for _, tt := range tests {
		if got := CompleteThreshold(tt.songLength); got != tt.want {
			t.Errorf("CompleteThreshold(%v) = %v, want %v", tt.songLength, got, tt.want)
		}
	}
}
