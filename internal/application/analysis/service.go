package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	domai "github.com/arqlabs/marketscope/internal/domain/ai"
	domain "github.com/arqlabs/marketscope/internal/domain/analysis"
	"github.com/arqlabs/marketscope/internal/infra/ai/jsonext"
	"github.com/arqlabs/marketscope/internal/infra/ai/prompt"
	"github.com/arqlabs/marketscope/internal/logger"
)

// Clock abstraction so the service is testable with fixed timestamps
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Service implements the analysis pipeline: persist a processing row, build
// the prompt, call the model, extract JSON, and fall back to the synthetic
// analysis on any failure. Every dependency except Clock may be nil; a nil
// dependency disables that step instead of failing the request.
type Service struct {
	Repo    domain.Repository
	AI      domai.Client
	Archive domain.Archive
	Clock   Clock
}

// RunResult carries the response payload plus bookkeeping about how it was
// produced.
type RunResult struct {
	Payload    map[string]any
	AnalysisID *domain.AnalysisID
	Fallback   bool
}

// Run executes one analysis. It never returns an error: all failure paths
// resolve to the deterministic fallback, and persistence problems are logged
// and swallowed.
func (s *Service) Run(ctx context.Context, b domain.Brief) RunResult {
	now := s.Clock.Now()

	var recID *domain.AnalysisID
	if s.Repo != nil {
		id, err := s.Repo.CreateProcessing(ctx, domain.NewProcessing(b, now))
		if err != nil {
			logger.WithError(err).WithField("nicho", b.Nicho).Warn("failed to create processing record")
		} else {
			recID = &id
			logger.WithFields(logrus.Fields{"analysis_id": id, "nicho": b.Nicho}).Info("analysis record created")
		}
	}

	payload, rawReply, usedFallback := s.generate(ctx, b)

	if s.Repo != nil && recID != nil {
		if err := s.Repo.Complete(ctx, *recID, sectionsFrom(payload), s.Clock.Now()); err != nil {
			logger.WithError(err).WithField("analysis_id", *recID).Warn("failed to complete analysis record")
		} else {
			payload["analysis_id"] = int64(*recID)
		}
	}

	s.archive(ctx, rawReply, payload, usedFallback)

	return RunResult{Payload: payload, AnalysisID: recID, Fallback: usedFallback}
}

// generate runs the model path and degrades to the fallback. The returned
// rawReply is the untouched model text, empty when the call never happened.
func (s *Service) generate(ctx context.Context, b domain.Brief) (map[string]any, string, bool) {
	if s.AI == nil {
		logger.WithField("nicho", b.Nicho).Info("model client not configured, using fallback analysis")
		return asMap(Fallback(b)), "", true
	}

	reply, err := s.AI.Complete(ctx, prompt.SystemPrompt(), prompt.BuildAnalysisPrompt(b))
	if err != nil {
		logger.WithError(err).WithField("nicho", b.Nicho).Warn("model call failed, using fallback analysis")
		return asMap(Fallback(b)), "", true
	}

	raw, err := jsonext.ExtractObject(reply)
	if err != nil {
		logger.WithError(err).WithField("nicho", b.Nicho).Warn("model reply had no parsable JSON, using fallback analysis")
		return asMap(Fallback(b)), reply, true
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		logger.WithError(err).WithField("nicho", b.Nicho).Warn("model JSON rejected, using fallback analysis")
		return asMap(Fallback(b)), reply, true
	}
	if !hasRequiredShape(payload) {
		logger.WithField("nicho", b.Nicho).Warn("model JSON missing every schema key, using fallback analysis")
		return asMap(Fallback(b)), reply, true
	}

	logger.WithField("nicho", b.Nicho).Info("model analysis parsed")
	return payload, reply, false
}

func (s *Service) archive(ctx context.Context, rawReply string, payload map[string]any, usedFallback bool) {
	if s.Archive == nil {
		return
	}
	data := []byte(rawReply)
	if usedFallback || rawReply == "" {
		data, _ = json.Marshal(payload)
	}
	key := fmt.Sprintf("analyses/%s.json", uuid.New().String())
	if _, err := s.Archive.Put(ctx, key, data); err != nil {
		logger.WithError(err).WithField("key", key).Warn("failed to archive model reply")
	}
}

// hasRequiredShape reports whether at least one fixed schema key is present.
// Anything beyond this shallow check is deliberately not validated: the model
// reply is trusted as-is, matching the prompt contract.
func hasRequiredShape(payload map[string]any) bool {
	for _, k := range prompt.RequiredKeys {
		if _, ok := payload[k]; ok {
			return true
		}
	}
	return false
}

// sectionsFrom splits the payload into the persisted result blobs.
func sectionsFrom(payload map[string]any) domain.Sections {
	var s domain.Sections
	s.Avatar = marshalKey(payload, "avatar")
	s.Positioning = marshalKey(payload, "positioning")
	s.Competition = marshalKey(payload, "competition")
	s.Marketing = marshalKey(payload, "marketing")
	s.Metrics = marshalKey(payload, "metrics")
	s.Funnel = marshalKey(payload, "funnel")
	s.Comprehensive, _ = json.Marshal(payload)
	return s
}

func marshalKey(payload map[string]any, key string) json.RawMessage {
	v, ok := payload[key]
	if !ok || v == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return raw
}

// asMap converts the typed fallback result into the generic payload shape the
// handlers and persistence layer work with.
func asMap(r Result) map[string]any {
	raw, _ := json.Marshal(r)
	var m map[string]any
	_ = json.Unmarshal(raw, &m)
	return m
}
