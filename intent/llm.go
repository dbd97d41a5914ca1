package intent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/tripwise-project/tripwise-agent/llm"
	"github.com/tripwise-project/tripwise-agent/logger"
	"github.com/tripwise-project/tripwise-agent/resilience"
	"github.com/tripwise-project/tripwise-agent/types"
)

// ErrNoExtraction is returned when the model produced nothing usable.
// Callers treat it as "no fields", never as a hard failure.
var ErrNoExtraction = errors.New("intent: no usable extraction in model output")

// extractionSchema is the closed contract for model output. Unknown
// keys and out-of-vocabulary enum values fail validation and the whole
// candidate object is discarded.
const extractionSchema = `{
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "source":      {"type": ["string", "null"]},
    "destination": {"type": ["string", "null"]},
    "travel_date": {"type": ["string", "null"], "pattern": "^20\\d{2}-\\d{2}-\\d{2}$"},
    "trip_type":   {"type": ["string", "null"], "enum": ["one_way", "round_trip", null]},
    "days":        {"type": ["integer", "null"], "minimum": 1},
    "travelers":   {"type": ["integer", "null"], "minimum": 1},
    "preferences": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "budget":    {"type": ["string", "null"], "enum": ["budget", "mid-range", "luxury", null]},
        "interests": {"type": "array", "items": {"type": "string"}}
      }
    }
  }
}`

// reJSONObject finds brace-delimited candidates in model output, which
// routinely arrives wrapped in prose or markdown fences.
var reJSONObject = regexp.MustCompile(`\{[\s\S]*?\}`)

// extractionWire is the JSON shape the model is asked to produce.
type extractionWire struct {
	Source      *string `json:"source"`
	Destination *string `json:"destination"`
	TravelDate  *string `json:"travel_date"`
	TripType    *string `json:"trip_type"`
	Days        *int    `json:"days"`
	Travelers   *int    `json:"travelers"`
	Preferences *struct {
		Budget    *string  `json:"budget"`
		Interests []string `json:"interests"`
	} `json:"preferences"`
}

// FallbackExtractor asks an LLM for the slots the rule pass missed.
type FallbackExtractor struct {
	client llm.Client
	schema *gojsonschema.Schema
	retry  *resilience.RetryConfig
	log    *logger.Logger
}

// NewFallbackExtractor wires a chat client into the extraction contract.
func NewFallbackExtractor(client llm.Client) (*FallbackExtractor, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(extractionSchema))
	if err != nil {
		return nil, fmt.Errorf("intent: compile extraction schema: %w", err)
	}

	retry := resilience.DefaultRetryConfig()
	retry.MaxAttempts = 2

	return &FallbackExtractor{
		client: client,
		schema: schema,
		retry:  retry,
		log:    logger.GetLogger().WithField("component", "intent-fallback"),
	}, nil
}

const systemPrompt = `You extract travel planning fields from one user message.
Respond with a single JSON object and nothing else. Use null for any
field the message does not clearly state. Never guess, never invent
values, and never copy filler words like "trip" or "vacation" into a
city field.

Fields:
  source       string  departure city
  destination  string  arrival city
  travel_date  string  YYYY-MM-DD
  trip_type    string  "one_way" or "round_trip"
  days         int     trip length in days
  travelers    int     number of travelers
  preferences  object  {"budget": "budget"|"mid-range"|"luxury", "interests": [string]}

Examples:
  "I want to go to Goa from Delhi next month with my wife"
  {"source": "Delhi", "destination": "Goa", "travel_date": null, "trip_type": null, "days": null, "travelers": 2, "preferences": {"budget": null, "interests": []}}

  "something cheap, we love beaches and food"
  {"source": null, "destination": null, "travel_date": null, "trip_type": null, "days": null, "travelers": null, "preferences": {"budget": "budget", "interests": ["beaches", "food"]}}`

// Extract asks the model for missing fields. Every failure path maps to
// an empty extraction so the dialogue can fall through to a question.
func (f *FallbackExtractor) Extract(ctx context.Context, utterance string, state *types.TripState) (types.Extraction, error) {
	stateJSON, err := json.Marshal(state)
	if err != nil {
		return types.Extraction{}, fmt.Errorf("intent: marshal state: %w", err)
	}

	user := fmt.Sprintf("Current known state (do not repeat filled fields):\n%s\n\nUser message:\n%s", stateJSON, utterance)

	var raw string
	err = resilience.RetryWithConfig(ctx, f.retry, func() error {
		var chatErr error
		raw, chatErr = f.client.Chat(ctx, systemPrompt, user)
		return chatErr
	})
	if err != nil {
		return types.Extraction{}, fmt.Errorf("intent: fallback chat: %w", err)
	}

	ex, ok := f.parse(raw)
	if !ok {
		f.log.Debugf("discarded model output: %q", truncate(raw, 200))
		return types.Extraction{}, ErrNoExtraction
	}
	return ex, nil
}

// parse tries each brace-delimited candidate in order and accepts the
// first one that passes the schema gate.
func (f *FallbackExtractor) parse(raw string) (types.Extraction, bool) {
	for _, candidate := range reJSONObject.FindAllString(raw, -1) {
		result, err := f.schema.Validate(gojsonschema.NewStringLoader(candidate))
		if err != nil || !result.Valid() {
			continue
		}

		var wire extractionWire
		if err := json.Unmarshal([]byte(candidate), &wire); err != nil {
			continue
		}
		return sanitize(wire), true
	}
	return types.Extraction{}, false
}

// sanitize flattens the wire shape and drops denylisted or blank
// location values the model slipped past the schema.
func sanitize(wire extractionWire) types.Extraction {
	var out types.Extraction

	out.Source = cleanCityValue(wire.Source)
	out.Destination = cleanCityValue(wire.Destination)
	out.TravelDate = wire.TravelDate
	out.TripType = wire.TripType
	if wire.Days != nil && *wire.Days > 0 {
		out.Days = wire.Days
	}
	if wire.Travelers != nil && *wire.Travelers > 0 {
		out.Travelers = wire.Travelers
	}
	if wire.Preferences != nil {
		out.Budget = wire.Preferences.Budget
		for _, in := range wire.Preferences.Interests {
			if s := strings.TrimSpace(in); s != "" {
				out.Interests = append(out.Interests, s)
			}
		}
	}
	return out
}

func cleanCityValue(v *string) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	if s == "" || IsGenericPhrase(s) {
		return nil
	}
	return types.StrPtr(s)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
