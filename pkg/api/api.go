package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"profanity/pkg/censor"
	"profanity/pkg/metrics"
	"profanity/pkg/models"
)

// maxBodySize bounds request bodies, and with them the cost of one analysis.
const maxBodySize = 1 << 20

type API struct {
	ServiceName string

	r       *mux.Router
	censor  *censor.Censor
	kw      MessageWriter
	metrics *metrics.Metrics
}

// New creates the API. kafkaWriter may be nil to disable log shipping.
func New(name string, c *censor.Censor, kafkaWriter MessageWriter) (*API, error) {
	if c == nil {
		var err error
		c, err = censor.New(nil, censor.DefaultOptions())
		if err != nil {
			return nil, err
		}
	}

	api := API{
		ServiceName: name,
		r:           mux.NewRouter(),
		censor:      c,
		kw:          kafkaWriter,
		metrics:     metrics.New(name),
	}
	api.endpoints()

	return &api, nil
}

func (api *API) Router() *mux.Router {
	return api.r
}

func (api *API) endpoints() {
	api.r.Use(api.requestIDMiddleware)
	api.r.Use(api.headerMiddleware)
	api.r.Use(api.metrics.Middleware)

	api.r.HandleFunc("/check", api.checkComment).Methods(http.MethodPost)
	api.r.HandleFunc("/censor", api.censorText).Methods(http.MethodPost)
	api.r.HandleFunc("/analyze", api.analyzeText).Methods(http.MethodPost)
	api.r.Handle("/metrics", api.metrics.Handler()).Methods(http.MethodGet)

	if api.kw != nil {
		api.r.Use(api.loggingMiddleware(api.kw))
	}
}

// checkComment answers 200 for an acceptable comment and 422 for one that
// meets the censor threshold. Both carry the verdict.
func (api *API) checkComment(w http.ResponseWriter, r *http.Request) {
	reqID := GetRequestID(r.Context())
	sID := shorten(reqID)

	var comment models.Comment
	if !decode(w, r, &comment) {
		log.Errorf("[checkComment][%s] failed to decode request body", sID)
		return
	}

	result := api.censor.Detect(comment.Text)
	verdict := models.NewVerdict(comment.ID, result, api.censor.Options().CensorThreshold)
	api.metrics.ObserveAnalysis(result.Analysis, verdict.Inappropriate)

	status := http.StatusOK
	if verdict.Inappropriate {
		status = http.StatusUnprocessableEntity
		log.Infof("[checkComment][%s] comment %s rejected: %s", sID, comment.ID, verdict.Summary)
	} else {
		log.Debugf("[checkComment][%s] comment %s accepted", sID, comment.ID)
	}

	respond(w, sID, status, verdict)
}

func (api *API) censorText(w http.ResponseWriter, r *http.Request) {
	sID := shorten(GetRequestID(r.Context()))

	var req CensorRequest
	if !decode(w, r, &req) {
		log.Errorf("[censorText][%s] failed to decode request body", sID)
		return
	}

	c := api.censor
	if req.Options != nil {
		opts, err := req.Options.Options(c.Options())
		if err == nil {
			c, err = c.With(opts)
		}
		if err != nil {
			log.Warnf("[censorText][%s] rejected options: %v", sID, err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	result := c.Detect(req.Text)
	api.metrics.ObserveAnalysis(result.Analysis, result.Analysis.Is(c.Options().CensorThreshold))

	respond(w, sID, http.StatusOK, CensorResponse{
		Censored:   result.Censored,
		Analysis:   uint32(result.Analysis),
		Summary:    result.Analysis.String(),
		Labels:     labels(result.Analysis),
		Detections: detections(result.Matches),
	})
}

func (api *API) analyzeText(w http.ResponseWriter, r *http.Request) {
	sID := shorten(GetRequestID(r.Context()))

	var req AnalyzeRequest
	if !decode(w, r, &req) {
		log.Errorf("[analyzeText][%s] failed to decode request body", sID)
		return
	}

	result := api.censor.Detect(req.Text)
	inappropriate := result.Analysis.Is(api.censor.Options().CensorThreshold)
	api.metrics.ObserveAnalysis(result.Analysis, inappropriate)

	respond(w, sID, http.StatusOK, AnalyzeResponse{
		Analysis:      uint32(result.Analysis),
		Summary:       result.Analysis.String(),
		Labels:        labels(result.Analysis),
		Inappropriate: inappropriate,
		Detections:    detections(result.Matches),
	})
}

// decode reads a JSON body into v, answering 400 itself on failure.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	defer r.Body.Close()

	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(v); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func respond(w http.ResponseWriter, sID string, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("[respond][%s] failed to encode response: %v", sID, err)
	}
}

func GetRequestID(ctx context.Context) string {
	if v, ok := ctx.Value(RequestIDKey).(string); ok {
		return v
	}
	return ""
}

// shorten truncates a string to 6 characters if it is longer than 6, appends '...' at the end,
// otherwise it returns the string unchanged.
func shorten(s string) string {
	if len(s) > 6 {
		return s[:6] + "..."
	}
	return s
}
