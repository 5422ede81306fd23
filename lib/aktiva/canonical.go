package aktiva

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"dario.cat/mergo"

	"aktiva-backend/lib/meritdate"
)

// Canonicalize folds a URL's query parameters into the request body and
// serializes the result to the exact bytes used both as the HTTP body and
// as the signing input. The vendor reads parameters from POST bodies only,
// so anything attached as a query string has to move there before signing.
//
// Query keys win over body keys on conflict: they are the parameters the
// caller explicitly attached for this page. Single-valued keys collapse to
// scalars, multi-valued keys stay lists. Canonicalizing a query-free URL
// returns the same body bytes again.
func Canonicalize(rawURL string, body map[string]any) (baseURL string, bodyBytes []byte, err error) {
	merged := make(map[string]any, len(body)+4)
	for k, v := range body {
		merged[k] = v
	}

	base, query, hasQuery := strings.Cut(rawURL, "?")
	if hasQuery && query != "" {
		values, err := url.ParseQuery(query)
		if err != nil {
			return "", nil, fmt.Errorf("parse query of %q: %w", rawURL, err)
		}

		fromQuery := make(map[string]any, len(values))
		for key, vals := range values {
			if len(vals) == 1 {
				fromQuery[key] = vals[0]
			} else {
				fromQuery[key] = vals
			}
		}
		if err := mergo.Merge(&merged, fromQuery, mergo.WithOverride); err != nil {
			return "", nil, err
		}
	}

	bodyBytes, err = EncodeBody(merged)
	if err != nil {
		return "", nil, err
	}
	return base, bodyBytes, nil
}

// EncodeBody serializes a request body, rendering date values in the
// vendor's compact form. Values the encoder cannot represent make the whole
// request fail; a half-serialized body must never reach the signer.
func EncodeBody(body map[string]any) ([]byte, error) {
	out, err := json.Marshal(compactDates(body))
	if err != nil {
		return nil, fmt.Errorf("serialize request body: %w", err)
	}
	return out, nil
}

func compactDates(v any) any {
	switch v := v.(type) {
	case time.Time:
		return meritdate.FormatCompact(v)
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = compactDates(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = compactDates(item)
		}
		return out
	default:
		return v
	}
}
