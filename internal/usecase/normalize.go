package usecase

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"finance-chatbot/internal/domain"
)

// candidate holds the answer/sources pair lifted off a parsed reply object,
// before any type checking.
type candidate struct {
	answer  any
	sources any
}

// normalizeAnswer coerces raw model output into the reply contract. Parse
// tiers run in order and short-circuit: a strict JSON object parse, the same
// parse after removing one layer of quoting, and finally the trimmed raw text
// itself as the answer. It never fails and never panics, whatever the input.
func normalizeAnswer(raw string) domain.Answer {
	text := strings.TrimSpace(raw)

	cand, ok := parseCandidate(text)
	if !ok {
		return withFallback(domain.Answer{Answer: text})
	}

	out := domain.Answer{Answer: strings.TrimSpace(coerceString(cand.answer))}
	if items, ok := cand.sources.([]any); ok {
		for _, item := range items {
			if s := strings.TrimSpace(coerceString(item)); s != "" {
				out.Sources = append(out.Sources, s)
			}
		}
	}
	return withFallback(out)
}

func parseCandidate(text string) (candidate, bool) {
	if cand, ok := parseObject(text); ok {
		return cand, true
	}
	return parseObject(unwrapQuoted(text))
}

// parseObject accepts only a top-level JSON object. Arrays, scalars, and
// null all count as parse failures.
func parseObject(text string) (candidate, bool) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(text), &obj); err != nil || obj == nil {
		return candidate{}, false
	}
	return candidate{answer: obj["answer"], sources: obj["sources"]}, true
}

// unwrapQuoted strips at most one layer of surrounding double quotes and
// unescapes embedded ones, for models that return the object as a
// JSON-encoded string. Exactly one layer; deeper nesting stays as is.
func unwrapQuoted(text string) string {
	text = strings.TrimPrefix(text, `"`)
	text = strings.TrimSuffix(text, `"`)
	return strings.ReplaceAll(text, `\"`, `"`)
}

func coerceString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

func withFallback(a domain.Answer) domain.Answer {
	if len(a.Sources) == 0 {
		a.Sources = []string{domain.FallbackSource}
	}
	return a
}
