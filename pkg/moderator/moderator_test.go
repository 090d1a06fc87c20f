package moderator

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profanity/pkg/censor"
	"profanity/pkg/models"
)

func TestMain(m *testing.M) {
	log.SetLevel(log.PanicLevel)
	os.Exit(m.Run())
}

// sliceReader serves its messages, then reports io.EOF or blocks until the
// context is done.
type sliceReader struct {
	mu    sync.Mutex
	msgs  []kafka.Message
	block bool
}

func (r *sliceReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	if len(r.msgs) > 0 {
		msg := r.msgs[0]
		r.msgs = r.msgs[1:]
		r.mu.Unlock()
		return msg, nil
	}
	r.mu.Unlock()

	if !r.block {
		return kafka.Message{}, io.EOF
	}
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

type sliceWriter struct {
	mu   sync.Mutex
	msgs []kafka.Message
	err  error
}

func (w *sliceWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *sliceWriter) verdicts(t *testing.T) map[uuid.UUID]models.Verdict {
	t.Helper()

	w.mu.Lock()
	defer w.mu.Unlock()
	out := make(map[uuid.UUID]models.Verdict)
	for _, msg := range w.msgs {
		var v models.Verdict
		require.NoError(t, json.Unmarshal(msg.Value, &v))
		assert.Equal(t, v.CommentID.Bytes(), msg.Key)
		out[v.CommentID] = v
	}
	return out
}

func commentMessage(t *testing.T, text string) (uuid.UUID, kafka.Message) {
	t.Helper()

	id := uuid.Must(uuid.NewV4())
	b, err := json.Marshal(models.Comment{ID: id, Author: "John Doe", Text: text})
	require.NoError(t, err)
	return id, kafka.Message{Value: b}
}

func newCensor(t *testing.T) *censor.Censor {
	t.Helper()

	c, err := censor.New(nil, censor.DefaultOptions())
	require.NoError(t, err)
	return c
}

func TestService_Run(t *testing.T) {
	cleanID, clean := commentMessage(t, "what a lovely day")
	rudeID, rude := commentMessage(t, "what a load of crap")

	reader := &sliceReader{msgs: []kafka.Message{clean, {Value: []byte("{broken")}, rude}}
	writer := &sliceWriter{}
	s := &Service{Reader: reader, Writer: writer, Censor: newCensor(t), NumWorkers: 3}

	require.NoError(t, s.Run(context.Background()))

	verdicts := writer.verdicts(t)
	require.Len(t, verdicts, 2)

	assert.False(t, verdicts[cleanID].Inappropriate)
	assert.Equal(t, "what a lovely day", verdicts[cleanID].Censored)

	assert.True(t, verdicts[rudeID].Inappropriate)
	assert.Equal(t, "what a load of c***", verdicts[rudeID].Censored)
	assert.Equal(t, []string{"profane"}, verdicts[rudeID].Labels)
}

func TestService_RunCancelled(t *testing.T) {
	_, msg := commentMessage(t, "crap")
	reader := &sliceReader{msgs: []kafka.Message{msg}, block: true}
	writer := &sliceWriter{}
	s := &Service{Reader: reader, Writer: writer, Censor: newCensor(t)}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool {
		writer.mu.Lock()
		defer writer.mu.Unlock()
		return len(writer.msgs) == 1
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestService_moderateWriteError(t *testing.T) {
	_, msg := commentMessage(t, "hello")
	s := &Service{Writer: &sliceWriter{err: errors.New("broker down")}, Censor: newCensor(t)}

	err := s.moderate(context.Background(), msg)
	assert.ErrorContains(t, err, "broker down")
}

func TestService_RunRequiresDependencies(t *testing.T) {
	s := &Service{}
	assert.Error(t, s.Run(context.Background()))
}
