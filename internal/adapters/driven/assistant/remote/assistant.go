// Package remote provides the Assistant adapter speaking the hosted
// analysis endpoint's JSON contract.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/dextr-labs/dextr-cli/internal/core/domain"
	"github.com/dextr-labs/dextr-cli/internal/core/ports/driven"
	"github.com/dextr-labs/dextr-cli/internal/logger"
)

// Ensure Assistant implements the interface.
var _ driven.Assistant = (*Assistant)(nil)

// Default configuration values.
const (
	DefaultTimeout           = 120 * time.Second
	DefaultRequestsPerMinute = 20
)

// Config holds configuration for the remote assistant.
type Config struct {
	// Endpoint is the analysis endpoint URL (required).
	Endpoint string

	// APIKey authenticates requests. Optional for self-hosted backends.
	APIKey string

	// Timeout is the request timeout (default: 120s).
	Timeout time.Duration

	// RequestsPerMinute bounds the request rate (default: 20).
	RequestsPerMinute int
}

// Assistant calls one hosted endpoint for every phase; the phase is
// carried in the request's state.phase discriminator. Responses are
// decoded once here, so services only ever see domain values.
type Assistant struct {
	client   *http.Client
	endpoint string
	apiKey   string
	limiter  *rate.Limiter
}

// NewAssistant creates a new remote assistant.
func NewAssistant(cfg Config) (*Assistant, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("remote: endpoint is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerMinute == 0 {
		cfg.RequestsPerMinute = DefaultRequestsPerMinute
	}

	return &Assistant{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		limiter:  rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), 1),
	}, nil
}

// requestEnvelope is the endpoint's request format.
type requestEnvelope struct {
	Input requestInput `json:"input"`
}

// requestInput carries the phase payload. Fields unused by a phase are
// omitted.
type requestInput struct {
	Files            []driven.SampleFile    `json:"files,omitempty"`
	State            requestState           `json:"state"`
	SourceSchema     *domain.SchemaDocument `json:"source_schema,omitempty"`
	TargetSchema     *domain.SchemaDocument `json:"target_schema,omitempty"`
	Mappings         []domain.Link          `json:"mappings,omitempty"`
	UserInstructions string                 `json:"user_instructions,omitempty"`
}

// requestState selects the phase the backend should run.
type requestState struct {
	Phase        string `json:"phase"`
	TargetSystem string `json:"target_system,omitempty"`
}

// responseEnvelope is the endpoint's response format. The response value
// is either a JSON string or an inline object, depending on the backend
// version; both are handled in decodePayload.
type responseEnvelope struct {
	Response json.RawMessage `json:"response"`
	Error    string          `json:"error,omitempty"`
}

// DiscoverTarget derives a target schema from sample files.
func (a *Assistant) DiscoverTarget(ctx context.Context, req driven.DiscoverRequest) (*domain.SchemaDocument, error) {
	raw, err := a.call(ctx, requestInput{
		Files:            req.Files,
		State:            requestState{Phase: driven.PhaseTargetDiscovery, TargetSystem: req.TargetSystem.String()},
		UserInstructions: req.UserContext,
	})
	if err != nil {
		return nil, err
	}

	var schema domain.SchemaDocument
	if err := decodePayload(raw, &schema); err != nil {
		return nil, err
	}
	return &schema, nil
}

// AnalyzeSource extracts typed source fields from one internal sample.
func (a *Assistant) AnalyzeSource(ctx context.Context, file driven.SampleFile) (*domain.SchemaDocument, error) {
	raw, err := a.call(ctx, requestInput{
		Files: []driven.SampleFile{file},
		State: requestState{Phase: driven.PhaseSourceAnalysis},
	})
	if err != nil {
		return nil, err
	}

	var schema domain.SchemaDocument
	if err := decodePayload(raw, &schema); err != nil {
		return nil, err
	}
	return &schema, nil
}

// SuggestMappings proposes source-to-target links.
func (a *Assistant) SuggestMappings(ctx context.Context, req driven.SuggestRequest) ([]domain.Link, error) {
	raw, err := a.call(ctx, requestInput{
		State:            requestState{Phase: driven.PhaseMappingSuggestion},
		SourceSchema:     req.SourceFields,
		TargetSchema:     req.TargetSchema,
		UserInstructions: req.Instructions,
	})
	if err != nil {
		return nil, err
	}

	var payload struct {
		Suggestions []domain.Link `json:"suggestions"`
	}
	if err := decodePayload(raw, &payload); err != nil {
		return nil, err
	}
	if payload.Suggestions == nil {
		return nil, fmt.Errorf("%w: response missing suggestions", domain.ErrService)
	}
	return payload.Suggestions, nil
}

// GenerateCode writes the transformation logic for the target platform.
func (a *Assistant) GenerateCode(ctx context.Context, req driven.GenerateRequest) (string, error) {
	raw, err := a.call(ctx, requestInput{
		State:            requestState{Phase: driven.PhaseCodeGeneration, TargetSystem: req.TargetSystem.String()},
		SourceSchema:     req.SourceFields,
		TargetSchema:     req.TargetSchema,
		Mappings:         req.Mappings,
		UserInstructions: req.Instructions,
	})
	if err != nil {
		return "", err
	}

	var payload struct {
		GeneratedCode *string `json:"generated_code"`
	}
	if err := decodePayload(raw, &payload); err != nil {
		return "", err
	}
	if payload.GeneratedCode == nil {
		return "", fmt.Errorf("%w: response missing generated_code", domain.ErrService)
	}
	return *payload.GeneratedCode, nil
}

// call sends one request and returns the raw response payload. There
// are no retries; every retry is a fresh user-triggered call.
func (a *Assistant) call(ctx context.Context, input requestInput) (json.RawMessage, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrService, err)
	}

	jsonBody, err := json.Marshal(requestEnvelope{Input: input})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	logger.Debug("Assistant call: phase=%s, %d bytes", input.State.Phase, len(jsonBody))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if a.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+a.apiKey)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrService, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", domain.ErrService, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var failure struct {
			Error string `json:"error"`
		}
		if jsonErr := json.Unmarshal(body, &failure); jsonErr == nil && failure.Error != "" {
			return nil, fmt.Errorf("%w (status %d): %s", domain.ErrService, resp.StatusCode, failure.Error)
		}
		return nil, fmt.Errorf("%w (status %d)", domain.ErrService, resp.StatusCode)
	}

	var envelope responseEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: decode response envelope: %v", domain.ErrParse, err)
	}
	if envelope.Error != "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrService, envelope.Error)
	}
	if len(envelope.Response) == 0 {
		return nil, fmt.Errorf("%w: response key missing", domain.ErrService)
	}
	return envelope.Response, nil
}

// decodePayload unmarshals the response value, unwrapping the
// string-encoded variant first when present.
func decodePayload(raw json.RawMessage, v any) error {
	data := []byte(raw)
	if len(data) > 0 && data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return fmt.Errorf("%w: unquote response: %v", domain.ErrParse, err)
		}
		data = []byte(inner)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: decode response payload: %v", domain.ErrParse, err)
	}
	return nil
}
