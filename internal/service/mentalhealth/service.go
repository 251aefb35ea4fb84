package mentalhealth

import (
	"context"
	"log"
	"sync/atomic"

	"github.com/manasmitra/backend/internal/analysis/crisis"
	chatmodel "github.com/manasmitra/backend/internal/model/chat"
)

// Generator produces model replies. Implementations must be total per the
// gateway contract: transport failures surface as fallback text, not errors.
type Generator interface {
	Generate(ctx context.Context, message string, contextTurns []chatmodel.Turn) string
	Ready() bool
}

// Reply is the annotated outcome for one user message.
type Reply struct {
	Text           string
	Level          crisis.Level
	CrisisDetected bool
}

// Service runs the support pipeline: classify the raw message, obtain the
// model reply, compose the annotated result. Classification never considers
// history and is independent of the generation outcome.
type Service struct {
	classifier *crisis.Classifier
	generator  Generator
	ready      atomic.Bool
}

// NewService wires the pipeline to its classifier and generator.
func NewService(classifier *crisis.Classifier, generator Generator) *Service {
	return &Service{classifier: classifier, generator: generator}
}

// Initialize records readiness, mirroring the generator's startup probe.
func (s *Service) Initialize(_ context.Context) {
	s.ready.Store(s.generator.Ready())
}

// Ready reports whether the pipeline came up with a reachable model.
func (s *Service) Ready() bool { return s.ready.Load() }

// Respond produces the annotated reply for one user message.
func (s *Service) Respond(ctx context.Context, message string, history []chatmodel.Turn) Reply {
	level := s.classifier.Classify(message)
	aiText := s.generator.Generate(ctx, message, history)
	text, detected := Compose(aiText, level, message)

	if detected {
		log.Printf("[mentalhealth] crisis detected, level=%s", level)
	}

	return Reply{Text: text, Level: level, CrisisDetected: detected}
}
