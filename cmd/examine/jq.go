package main

import (
	"fmt"

	"github.com/itchyny/gojq"

	"github.com/tsawler/examine/internal/json"
)

// applyJQ filters JSON bytes through a jq expression. Multiple results
// come back newline-separated, the way jq prints them.
func applyJQ(data []byte, expression string) ([]byte, error) {
	query, err := gojq.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid jq expression %q: %w", expression, err)
	}

	var input any
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("parsing JSON for jq: %w", err)
	}

	var out []byte
	iter := query.Run(input)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := v.(error); isErr {
			return nil, fmt.Errorf("jq: %w", err)
		}
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		if len(out) > 0 {
			out = append(out, '\n')
		}
		out = append(out, b...)
	}
	return out, nil
}
