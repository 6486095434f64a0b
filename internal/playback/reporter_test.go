package playback

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jfmyers9/grooveshark/pkg/grooveshark"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStreams struct {
	over30   []string
	complete []grooveshark.ID
	err      error
}

func (f *fakeStreams) MarkOver30Seconds(ctx context.Context, streamKey string, streamServerID grooveshark.ID) (*grooveshark.Status, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.over30 = append(f.over30, streamKey)
	return &grooveshark.Status{Success: true}, nil
}

func (f *fakeStreams) MarkComplete(ctx context.Context, songID grooveshark.ID, streamKey string, streamServerID grooveshark.ID) (*grooveshark.Status, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.complete = append(f.complete, songID)
	return &grooveshark.Status{Success: true}, nil
}

func testStream() Stream {
	return Stream{
		SongID:         42,
		StreamKey:      "key",
		StreamServerID: 7,
		Length:         3 * time.Minute,
	}
}

func TestReporterSendsEachReportOnce(t *testing.T) {
	streams := &fakeStreams{}
	r := NewReporter(streams, nil, testStream(), zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, r.Update(ctx, 10*time.Second))
	assert.Empty(t, streams.over30)
	assert.False(t, r.MarkedOver30Seconds())

	require.NoError(t, r.Update(ctx, 31*time.Second))
	require.NoError(t, r.Update(ctx, 60*time.Second))
	assert.Equal(t, []string{"key"}, streams.over30)
	assert.True(t, r.MarkedOver30Seconds())
	assert.Empty(t, streams.complete)

	require.NoError(t, r.Update(ctx, 3*time.Minute))
	require.NoError(t, r.Update(ctx, 3*time.Minute))
	assert.Equal(t, []grooveshark.ID{42}, streams.complete)
	assert.True(t, r.MarkedComplete())
}

func TestReporterSingleUpdateSendsBoth(t *testing.T) {
	streams := &fakeStreams{}
	r := NewReporter(streams, nil, testStream(), zerolog.Nop())

	require.NoError(t, r.Update(context.Background(), 3*time.Minute))
	assert.Len(t, streams.over30, 1)
	assert.Len(t, streams.complete, 1)
}

func TestReporterUnknownLengthNeverCompletes(t *testing.T) {
	streams := &fakeStreams{}
	stream := testStream()
	stream.Length = 0
	r := NewReporter(streams, nil, stream, zerolog.Nop())

	require.NoError(t, r.Update(context.Background(), time.Hour))
	assert.Len(t, streams.over30, 1)
	assert.Empty(t, streams.complete)
}

func TestReporterRetriesAfterFailure(t *testing.T) {
	streams := &fakeStreams{err: errors.New("boom")}
	r := NewReporter(streams, nil, testStream(), zerolog.Nop())
	ctx := context.Background()

	err := r.Update(ctx, 45*time.Second)
	require.Error(t, err)
	assert.False(t, r.MarkedOver30Seconds())

	streams.err = nil
	require.NoError(t, r.Update(ctx, 45*time.Second))
	assert.True(t, r.MarkedOver30Seconds())
}

func TestReporterRequiresStreamKey(t *testing.T) {
	stream := testStream()
	stream.StreamKey = ""
	r := NewReporter(&fakeStreams{}, nil, stream, zerolog.Nop())

	assert.Error(t, r.Update(context.Background(), time.Minute))
}

// memoryMarks keeps stream marks between reporters
type memoryMarks struct {
	over30   map[string]bool
	complete map[string]bool
}

func newMemoryMarks() *memoryMarks {
	return &memoryMarks{over30: map[string]bool{}, complete: map[string]bool{}}
}

func (m *memoryMarks) LoadStreamMarks(ctx context.Context, streamKey string) (bool, bool, error) {
	return m.over30[streamKey], m.complete[streamKey], nil
}

func (m *memoryMarks) SaveStreamMarks(ctx context.Context, streamKey string, songID grooveshark.ID, over30, complete bool) error {
	m.over30[streamKey] = m.over30[streamKey] || over30
	m.complete[streamKey] = m.complete[streamKey] || complete
	return nil
}

func TestReporterMarksPersistAcrossReporters(t *testing.T) {
	streams := &fakeStreams{}
	marks := newMemoryMarks()
	ctx := context.Background()

	first := NewReporter(streams, marks, testStream(), zerolog.Nop())
	require.NoError(t, first.Update(ctx, 45*time.Second))
	over30, complete := first.Sent()
	assert.True(t, over30)
	assert.False(t, complete)

	second := NewReporter(streams, marks, testStream(), zerolog.Nop())
	require.NoError(t, second.Update(ctx, 3*time.Minute))
	over30, complete = second.Sent()
	assert.False(t, over30)
	assert.True(t, complete)
	assert.True(t, second.MarkedOver30Seconds())

	third := NewReporter(streams, marks, testStream(), zerolog.Nop())
	require.NoError(t, third.Update(ctx, 3*time.Minute))
	over30, complete = third.Sent()
	assert.False(t, over30)
	assert.False(t, complete)

	assert.Equal(t, []string{"key"}, streams.over30)
	assert.Equal(t, []grooveshark.ID{42}, streams.complete)
}
