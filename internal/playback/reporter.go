package playback

import (
	"context"
	"fmt"
	"time"

	"github.com/jfmyers9/grooveshark/pkg/grooveshark"
	"github.com/rs/zerolog"
)

// Streams is the part of the API a Reporter needs
type Streams interface {
	MarkOver30Seconds(ctx context.Context, streamKey string, streamServerID grooveshark.ID) (*grooveshark.Status, error)
	MarkComplete(ctx context.Context, songID grooveshark.ID, streamKey string, streamServerID grooveshark.ID) (*grooveshark.Status, error)
}

// Marks persists which reports were sent for a stream, so a stream that is
// reported from several processes is still reported at most once
type Marks interface {
	LoadStreamMarks(ctx context.Context, streamKey string) (over30, complete bool, err error)
	SaveStreamMarks(ctx context.Context, streamKey string, songID grooveshark.ID, over30, complete bool) error
}

// Stream identifies one playback of a song
type Stream struct {
	SongID         grooveshark.ID
	StreamKey      string
	StreamServerID grooveshark.ID
	Length         time.Duration // 0 if unknown
}

// Reporter sends each stream report at most once. Without Marks the
// guarantee covers only the lifetime of the Reporter.
type Reporter struct {
	streams Streams
	marks   Marks
	stream  Stream
	logger  zerolog.Logger

	loaded       bool
	markedOver30 bool
	markedDone   bool

	// Reports sent by this Reporter, as opposed to loaded from Marks
	sentOver30 bool
	sentDone   bool
}

// NewReporter creates a reporter for a single stream. marks may be nil.
func NewReporter(streams Streams, marks Marks, stream Stream, logger zerolog.Logger) *Reporter {
	return &Reporter{
		streams: streams,
		marks:   marks,
		stream:  stream,
		logger:  logger.With().Str("component", "playback").Str("song_id", stream.SongID.String()).Logger(),
	}
}

// Update reports progress. played is the total time the stream has played so
// far; reports already sent are not repeated.
func (r *Reporter) Update(ctx context.Context, played time.Duration) error {
	if r.stream.StreamKey == "" {
		return fmt.Errorf("stream key is required")
	}

	if err := r.load(ctx); err != nil {
		return err
	}

	if !r.markedOver30 && ShouldMarkOver30Seconds(played) {
		status, err := r.streams.MarkOver30Seconds(ctx, r.stream.StreamKey, r.stream.StreamServerID)
		if err != nil {
			return fmt.Errorf("failed to mark stream over 30 seconds: %w", err)
		}
		r.markedOver30 = true
		r.sentOver30 = true
		r.logger.Info().Bool("success", status.Success).Dur("played", played).Msg("Marked stream over 30 seconds")
		if err := r.save(ctx); err != nil {
			return err
		}
	}

	if !r.markedDone && ShouldMarkComplete(r.stream.Length, played) {
		status, err := r.streams.MarkComplete(ctx, r.stream.SongID, r.stream.StreamKey, r.stream.StreamServerID)
		if err != nil {
			return fmt.Errorf("failed to mark song complete: %w", err)
		}
		r.markedDone = true
		r.sentDone = true
		r.logger.Info().Bool("success", status.Success).Dur("played", played).Msg("Marked song complete")
		if err := r.save(ctx); err != nil {
			return err
		}
	}

	return nil
}

func (r *Reporter) load(ctx context.Context) error {
	if r.loaded || r.marks == nil {
		return nil
	}

	over30, complete, err := r.marks.LoadStreamMarks(ctx, r.stream.StreamKey)
	if err != nil {
		return err
	}
	r.markedOver30 = r.markedOver30 || over30
	r.markedDone = r.markedDone || complete
	r.loaded = true
	return nil
}

func (r *Reporter) save(ctx context.Context) error {
	if r.marks == nil {
		return nil
	}
	return r.marks.SaveStreamMarks(ctx, r.stream.StreamKey, r.stream.SongID, r.markedOver30, r.markedDone)
}

// MarkedOver30Seconds reports whether the 30 second report was sent
func (r *Reporter) MarkedOver30Seconds() bool {
	return r.markedOver30
}

// MarkedComplete reports whether the completion report was sent
func (r *Reporter) MarkedComplete() bool {
	return r.markedDone
}

// Sent reports which reports this Reporter sent itself
func (r *Reporter) Sent() (over30, complete bool) {
	return r.sentOver30, r.sentDone
}
