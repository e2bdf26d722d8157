package formatting_test

import (
	"errors"
	"testing"

	"github.com/jslate/intake/pkg/formatting"
)

type sample struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

func TestParse(t *testing.T) {
	t.Run("direct JSON", func(t *testing.T) {
		got, err := formatting.Parse[sample](`{"category":"payslip","count":2}`)
		if err != nil {
			t.Fatalf("Parse error: %v", err)
		}
		if got.Category != "payslip" || got.Count != 2 {
			t.Errorf("Parse = %+v, want {Category:payslip Count:2}", got)
		}
	})

	t.Run("direct JSON with whitespace", func(t *testing.T) {
		got, err := formatting.Parse[sample](`  {"category":"padded","count":1}  `)
		if err != nil {
			t.Fatalf("Parse error: %v", err)
		}
		if got.Category != "padded" {
			t.Errorf("Category = %q, want padded", got.Category)
		}
	})

	t.Run("markdown fenced JSON", func(t *testing.T) {
		input := "```json\n{\"category\":\"fenced\",\"count\":7}\n```"
		got, err := formatting.Parse[sample](input)
		if err != nil {
			t.Fatalf("Parse error: %v", err)
		}
		if got.Category != "fenced" || got.Count != 7 {
			t.Errorf("Parse = %+v, want {Category:fenced Count:7}", got)
		}
	})

	t.Run("markdown fenced without language tag", func(t *testing.T) {
		input := "```\n{\"category\":\"bare\",\"count\":3}\n```"
		got, err := formatting.Parse[sample](input)
		if err != nil {
			t.Fatalf("Parse error: %v", err)
		}
		if got.Category != "bare" || got.Count != 3 {
			t.Errorf("Parse = %+v, want {Category:bare Count:3}", got)
		}
	})

	t.Run("markdown fenced with surrounding text", func(t *testing.T) {
		input := "Here is the result:\n```json\n{\"category\":\"wrapped\",\"count\":5}\n```\nDone."
		got, err := formatting.Parse[sample](input)
		if err != nil {
			t.Fatalf("Parse error: %v", err)
		}
		if got.Category != "wrapped" || got.Count != 5 {
			t.Errorf("Parse = %+v, want {Category:wrapped Count:5}", got)
		}
	})

	t.Run("invalid content returns ErrParseFailed", func(t *testing.T) {
		_, err := formatting.Parse[sample]("not json at all")
		if !errors.Is(err, formatting.ErrParseFailed) {
			t.Errorf("error = %v, want ErrParseFailed", err)
		}
	})

	t.Run("empty string returns ErrParseFailed", func(t *testing.T) {
		_, err := formatting.Parse[sample]("")
		if !errors.Is(err, formatting.ErrParseFailed) {
			t.Errorf("error = %v, want ErrParseFailed", err)
		}
	})

	t.Run("invalid JSON in code fence returns ErrParseFailed", func(t *testing.T) {
		input := "```json\n{broken\n```"
		_, err := formatting.Parse[sample](input)
		if !errors.Is(err, formatting.ErrParseFailed) {
			t.Errorf("error = %v, want ErrParseFailed", err)
		}
	})

	t.Run("parses into map type", func(t *testing.T) {
		got, err := formatting.Parse[map[string]any](`{"key":"value"}`)
		if err != nil {
			t.Fatalf("Parse error: %v", err)
		}
		if got["key"] != "value" {
			t.Errorf("got[key] = %v, want value", got["key"])
		}
	})
}
