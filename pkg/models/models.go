package models

import (
	"time"

	"github.com/gofrs/uuid"

	"profanity/pkg/censor"
)

type Comment struct {
	ID        uuid.UUID `bson:"_id" json:"id"`
	PostID    uuid.UUID `bson:"post_id" json:"post_id"`
	ParentID  uuid.UUID `bson:"parent_id,omitempty" json:"parent_id,omitempty"`
	Author    string    `bson:"author" json:"author"`
	Text      string    `bson:"text" json:"text"`
	Published time.Time `bson:"published" json:"published"`
}

// Verdict is the moderation outcome for one comment.
type Verdict struct {
	CommentID     uuid.UUID `json:"comment_id"`
	Censored      string    `json:"censored"`
	Analysis      uint32    `json:"analysis"`
	Summary       string    `json:"summary"`
	Labels        []string  `json:"labels"`
	Words         []string  `json:"words,omitempty"`
	Inappropriate bool      `json:"inappropriate"`
	Checked       time.Time `json:"checked"`
}

// NewVerdict builds the verdict for a comment from its analysis.
func NewVerdict(id uuid.UUID, r censor.Result, threshold censor.Type) Verdict {
	labels := r.Analysis.Labels()
	if labels == nil {
		labels = []string{}
	}
	return Verdict{
		CommentID:     id,
		Censored:      r.Censored,
		Analysis:      uint32(r.Analysis),
		Summary:       r.Analysis.String(),
		Labels:        labels,
		Words:         r.Words(),
		Inappropriate: r.Analysis.Is(threshold),
		Checked:       time.Now().UTC(),
	}
}
