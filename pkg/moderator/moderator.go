// Package moderator censors comments arriving on a Kafka topic and publishes
// a verdict for each of them.
package moderator

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"

	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"

	"profanity/pkg/censor"
	"profanity/pkg/metrics"
	"profanity/pkg/models"
)

// Reader is the part of *kafka.Reader the service consumes from.
type Reader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// Writer is the part of *kafka.Writer verdicts are published with.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type Service struct {
	Reader     Reader
	Writer     Writer
	Censor     *censor.Censor
	NumWorkers int
	// Metrics is optional.
	Metrics *metrics.Metrics
}

// Run consumes comments until ctx is cancelled or the reader is exhausted.
// Comments already read are processed before Run returns.
func (s *Service) Run(ctx context.Context) error {
	if s.Reader == nil || s.Writer == nil || s.Censor == nil {
		return errors.New("moderator: reader, writer and censor are required")
	}
	workers := max(s.NumWorkers, 1)

	jobs := make(chan kafka.Message, workers*5) // buffer is needed to increase throughput
	var wg sync.WaitGroup
	wg.Add(workers)
	for workerID := 0; workerID < workers; workerID++ {
		go func(id int) {
			defer wg.Done()
			s.worker(ctx, jobs, id)
		}(workerID)
	}

	log.Info("[moderator] accepting comments...")
	var err error
	for {
		msg, rerr := s.Reader.ReadMessage(ctx)
		if rerr != nil {
			if errors.Is(rerr, context.Canceled) || errors.Is(rerr, io.EOF) {
				break
			}
			if ctx.Err() != nil {
				break
			}
			log.Errorf("[moderator] failed to read message from Kafka: %v", rerr)
			continue
		}
		log.Debugf("[moderator] received message at offset %d", msg.Offset)

		select {
		case jobs <- msg:
		case <-ctx.Done():
			err = ctx.Err()
		}
		if err != nil {
			break
		}
	}

	close(jobs)
	wg.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (s *Service) worker(ctx context.Context, jobs <-chan kafka.Message, workerID int) {
	for {
		select {
		case <-ctx.Done():
			log.Infof("[moderator][workerID:%d] context cancelled, exiting worker", workerID)
			return

		case msg, ok := <-jobs:
			if !ok {
				log.Infof("[moderator][workerID:%d] jobs channel closed, exiting worker", workerID)
				return
			}
			if err := s.moderate(ctx, msg); err != nil {
				log.Errorf("[moderator][workerID:%d] offset %d: %v", workerID, msg.Offset, err)
			}
		}
	}
}

func (s *Service) moderate(ctx context.Context, msg kafka.Message) error {
	var comment models.Comment
	if err := json.Unmarshal(msg.Value, &comment); err != nil {
		return errors.Join(errors.New("failed to unmarshal comment"), err)
	}

	result := s.Censor.Detect(comment.Text)
	verdict := models.NewVerdict(comment.ID, result, s.Censor.Options().CensorThreshold)
	if s.Metrics != nil {
		s.Metrics.ObserveAnalysis(result.Analysis, verdict.Inappropriate)
	}

	value, err := json.Marshal(verdict)
	if err != nil {
		return errors.Join(errors.New("failed to marshal verdict"), err)
	}
	err = s.Writer.WriteMessages(ctx, kafka.Message{Key: comment.ID.Bytes(), Value: value})
	if err != nil {
		return errors.Join(errors.New("failed to write verdict to Kafka"), err)
	}

	log.Debugf("[moderator][%s] verdict published: %s", shorten(comment.ID.String()), verdict.Summary)
	return nil
}

func shorten(s string) string {
	if len(s) > 6 {
		return s[:6] + "..."
	}
	return s
}
