package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/manasmitra/backend/internal/config"
	chatmodel "github.com/manasmitra/backend/internal/model/chat"
)

// systemPrompt fixes the assistant persona, tone constraints and safety
// reminder for every generation request.
const systemPrompt = `You are a compassionate mental health support assistant.
Provide empathetic, supportive responses while always reminding users to seek professional help when needed.
Keep responses under 150 words. Be warm, understanding, and culturally sensitive for Indian users.
If someone mentions serious distress, gently suggest professional resources.`

// Fallback replies returned when the remote model cannot be used. Callers
// never see the underlying transport error.
const (
	fallbackUnavailable = "I'm having trouble connecting right now. Please try again in a moment."
	fallbackErrored     = "I apologize, but I'm experiencing some technical difficulties. How else can I help you today?"
)

// promptHistoryLimit caps how many trailing turns are rendered into the prompt.
const promptHistoryLimit = 3

// stopSequences keep the model from hallucinating multi-turn continuations.
var stopSequences = []string{"User:", "Assistant:"}

// Service calls the remote text-generation endpoint and absorbs every
// transport failure into a fixed fallback reply.
type Service struct {
	client      *http.Client
	token       string
	modelURL    string
	maxTokens   int
	temperature float64
	ready       atomic.Bool
}

// NewService builds the gateway from configuration. The service is usable
// immediately; Initialize only records reachability for health reporting.
func NewService(cfg config.AIConfig) *Service {
	return &Service{
		client:      &http.Client{Timeout: time.Duration(cfg.Timeout) * time.Second},
		token:       cfg.Token,
		modelURL:    cfg.ModelURL,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}
}

// Initialize performs one real probe call and records the outcome. Health
// reporting reads the recorded flag without re-probing.
func (s *Service) Initialize(ctx context.Context) {
	if _, err := s.call(ctx, s.buildPrompt("Hello", nil)); err != nil {
		log.Printf("[ai] initialization probe failed: %v", err)
		s.ready.Store(false)
		return
	}
	log.Printf("[ai] service initialized, model endpoint reachable")
	s.ready.Store(true)
}

// Ready reports whether the startup probe succeeded.
func (s *Service) Ready() bool { return s.ready.Load() }

// Generate returns the model reply for the message plus trailing context.
// It is total: a non-success status maps to a fixed "trouble connecting"
// apology, any other failure to a "technical difficulties" apology.
func (s *Service) Generate(ctx context.Context, message string, contextTurns []chatmodel.Turn) string {
	text, err := s.call(ctx, s.buildPrompt(message, contextTurns))
	if err == nil {
		return text
	}

	log.Printf("[ai] generation failed: %v", err)
	var se *statusError
	if errors.As(err, &se) {
		return fallbackUnavailable
	}
	return fallbackErrored
}

type generateRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters generateParameters `json:"parameters"`
}

type generateParameters struct {
	MaxNewTokens   int      `json:"max_new_tokens"`
	Temperature    float64  `json:"temperature"`
	ReturnFullText bool     `json:"return_full_text"`
	Stop           []string `json:"stop"`
}

type generatedText struct {
	GeneratedText string `json:"generated_text"`
}

type statusError struct {
	status int
	body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("inference endpoint returned %d: %s", e.status, e.body)
}

// call performs the remote request. The error variant is mapped to fallback
// text exactly once, in Generate.
func (s *Service) call(ctx context.Context, prompt string) (string, error) {
	payload := generateRequest{
		Inputs: prompt,
		Parameters: generateParameters{
			MaxNewTokens:   s.maxTokens,
			Temperature:    s.temperature,
			ReturnFullText: false,
			Stop:           stopSequences,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.modelURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call inference endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", &statusError{status: resp.StatusCode, body: strings.TrimSpace(string(detail))}
	}

	var result []generatedText
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(result) == 0 {
		return "", fmt.Errorf("empty generation result")
	}

	return strings.TrimSpace(result[0].GeneratedText), nil
}

// buildPrompt renders the system instruction, up to the last three context
// turns as "Role: content" lines, the new user message and the assistant
// marker the stop sequences key off.
func (s *Service) buildPrompt(message string, contextTurns []chatmodel.Turn) string {
	start := 0
	if len(contextTurns) > promptHistoryLimit {
		start = len(contextTurns) - promptHistoryLimit
	}

	var b strings.Builder
	b.WriteString(systemPrompt)
	b.WriteString("\n\nConversation:\n")
	for _, turn := range contextTurns[start:] {
		b.WriteString(roleLabel(turn.Role))
		b.WriteString(": ")
		b.WriteString(turn.Content)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "User: %s\nAssistant:", message)
	return b.String()
}

func roleLabel(role chatmodel.Role) string {
	if role == chatmodel.RoleAssistant {
		return "Assistant"
	}
	return "User"
}
