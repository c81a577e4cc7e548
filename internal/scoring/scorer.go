package scoring

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"

	"github.com/joblify/joblify/internal/llm"
	"github.com/joblify/joblify/internal/logger"
)

//go:embed result_schema.json
var resultSchemaJSON []byte

// Engine is the slice of the LLM client the scorer depends on.
type Engine interface {
	GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
}

// Outcome is the result of one scoring call. Both arms carry a valid
// Result, so the wire shape is identical either way; Fallback and Reason
// keep the degraded path observable without changing the contract.
type Outcome struct {
	Result   *Result
	Fallback bool
	Reason   string
}

// Scorer produces application assessments via a generation engine.
type Scorer struct {
	engine Engine
	schema *gojsonschema.Schema
	log    *zap.Logger
}

// NewScorer creates a Scorer. The engine is the sole external dependency;
// the result schema is compiled once up front.
func NewScorer(engine Engine, log *zap.Logger) (*Scorer, error) {
	if log == nil {
		log = zap.NewNop()
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(resultSchemaJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to compile result schema: %w", err)
	}

	return &Scorer{
		engine: engine,
		schema: schema,
		log:    log,
	}, nil
}

// Score evaluates one application. It makes a single synchronous engine
// call with no local timeout or retry; cancellation is the caller's
// concern via ctx.
//
// A transport-level failure (the call itself erroring) is returned as an
// error. An unparseable or wrong-shaped reply is not an error: the fixed
// fallback result is substituted so the caller always has an assessment
// to persist. The two cases are never conflated.
func (s *Scorer) Score(ctx context.Context, req Request) (*Outcome, error) {
	prompt := BuildPrompt(req)

	text, err := s.engine.GenerateJSON(ctx, prompt, llm.TierScoring)
	if err != nil {
		return nil, fmt.Errorf("scoring call failed: %w", err)
	}

	result, reason := s.parseResult(text)
	if result == nil {
		s.log.Warn("unparseable scoring reply, substituting fallback",
			zap.String("reason", reason),
			zap.String("reply", logger.TruncateForLog(text, 200)),
		)
		return &Outcome{
			Result:   FallbackResult(req.MustHaveSkills),
			Fallback: true,
			Reason:   reason,
		}, nil
	}

	// Engine output is trusted as-is once it parses: no clamping of score
	// ranges and no recommendation/threshold consistency check.
	return &Outcome{Result: result}, nil
}

// parseResult strips code-fence markup, checks the reply against the
// result schema, and unmarshals it. Returns nil plus a reason when the
// reply cannot be used.
func (s *Scorer) parseResult(text string) (*Result, string) {
	text = llm.CleanJSONBlock(text)
	if strings.TrimSpace(text) == "" {
		return nil, "empty reply"
	}

	validation, err := s.schema.Validate(gojsonschema.NewStringLoader(text))
	if err != nil {
		// gojsonschema reports malformed JSON documents as a validate error.
		return nil, fmt.Sprintf("invalid JSON: %v", err)
	}
	if !validation.Valid() {
		reasons := make([]string, 0, len(validation.Errors()))
		for _, desc := range validation.Errors() {
			reasons = append(reasons, desc.String())
		}
		return nil, "shape mismatch: " + strings.Join(reasons, "; ")
	}

	var result Result
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, fmt.Sprintf("unmarshal error: %v", err)
	}

	return &result, ""
}
