package api

import (
	"time"

	"profanity/pkg/censor"
)

type LogEntry struct {
	Timestamp  time.Time `json:"timestamp"`
	IP         string    `json:"ip"`
	StatusCode int       `json:"status_code"`
	RequestID  string    `json:"request_id"`
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	Duration   float64   `json:"duration_sec"`
	Service    string    `json:"service"`
}

type CensorRequest struct {
	Text string `json:"text"`
	// Options override the service defaults for this request only.
	Options *censor.Config `json:"options,omitempty"`
}

type CensorResponse struct {
	Censored   string      `json:"censored"`
	Analysis   uint32      `json:"analysis"`
	Summary    string      `json:"summary"`
	Labels     []string    `json:"labels"`
	Detections []Detection `json:"detections"`
}

type AnalyzeRequest struct {
	Text string `json:"text"`
}

type AnalyzeResponse struct {
	Analysis      uint32      `json:"analysis"`
	Summary       string      `json:"summary"`
	Labels        []string    `json:"labels"`
	Inappropriate bool        `json:"inappropriate"`
	Detections    []Detection `json:"detections"`
}

// Detection is one confirmed dictionary match.
type Detection struct {
	Word         string   `json:"word"`
	Summary      string   `json:"summary"`
	Labels       []string `json:"labels"`
	SelfCensored bool     `json:"self_censored,omitempty"`
}

func detections(matches []censor.Match) []Detection {
	out := make([]Detection, 0, len(matches))
	for _, m := range matches {
		out = append(out, Detection{
			Word:         m.Entry.Word,
			Summary:      m.Type().String(),
			Labels:       m.Type().Labels(),
			SelfCensored: m.SelfCensored,
		})
	}
	return out
}

func labels(t censor.Type) []string {
	if l := t.Labels(); l != nil {
		return l
	}
	return []string{}
}
