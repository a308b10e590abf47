package convert

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/HartBrook/toonify/internal/tokens"
)

func TestEngine_ConvertEmpty(t *testing.T) {
	e := NewEngine()

	for _, f := range append(Formats(), FormatAuto) {
		for _, input := range []string{"", "   \n\t "} {
			got := e.Convert(input, f)
			assert.Equal(t, Result{Format: FormatText}, got, "format %s input %q", f, input)
		}
	}
}

func TestEngine_Detect(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Format
	}{
		{"json object", `{"order":{"id":1}}`, FormatJSON},
		{"json array", `[1, 2]`, FormatJSON},
		{"yaml", "name: x\nage: 3", FormatYAML},
		{"html", "<p>hello</p>", FormatHTML},
		{"component", "function App() { return <div/>; }", FormatReact},
		{"list text", "- a\n- b", FormatText},
		{"prose", "just some words", FormatText},
		{"malformed json falls back", `{"a":}`, FormatText},
		{"blank", "  ", FormatText},
		{"json containing a component", `{"code": "function App() { return null }"}`, FormatReact},
	}

	e := NewEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Detect(tt.input))
		})
	}
}

func TestEngine_Convert(t *testing.T) {
	e := NewEngine()
	input := `{"order":{"id":1,"status":"paid"}}`

	got := e.Convert(input, FormatJSON)

	assert.Equal(t, FormatJSON, got.Format)
	assert.Equal(t, "ORDER OBJECT\n  ID 1\n  STATUS paid", got.Tokens)
	assert.Equal(t, tokens.Estimate(got.Tokens), got.TokenCount)
	assert.Equal(t, tokens.Estimate(input), got.InputTokenEstimate)
	assert.False(t, got.IsError())
	assert.Equal(t, tokens.Stats{Before: got.InputTokenEstimate, After: got.TokenCount}, got.Stats())
}

func TestEngine_ConvertAutoAndUnknown(t *testing.T) {
	e := NewEngine()

	for _, f := range []Format{FormatAuto, "", "csv"} {
		got := e.Convert("- first\n- second", f)
		assert.Equal(t, FormatText, got.Format)
		assert.Equal(t, "ITEM first\nITEM second", got.Tokens)
	}
}

func TestEngine_ConvertExplicitFormatSkipsDetection(t *testing.T) {
	e := NewEngine()

	got := e.Convert(`{"a":}`, FormatJSON)

	assert.Equal(t, FormatJSON, got.Format)
	assert.True(t, strings.HasPrefix(got.Tokens, "ERROR Invalid JSON:"), got.Tokens)
	assert.True(t, got.IsError())
}

func TestEngine_ConvertIsDeterministicAcrossGoroutines(t *testing.T) {
	e := NewEngine()
	inputs := []struct {
		input  string
		format Format
	}{
		{`{"a":[1,2,{"b":null}]}`, FormatJSON},
		{"a:\n  b: [1, 2]\n", FormatYAML},
		{`<div class="x"><div>y</div></div>`, FormatHTML},
		{`const App = () => <main>{title}</main>;`, FormatReact},
		{"TITLE\n\n- one\n- two", FormatText},
	}

	want := map[string]Result{}
	for _, in := range inputs {
		want[in.input] = e.Convert(in.input, FormatAuto)
	}

	var wg sync.WaitGroup
	for range 4 {
		for _, in := range inputs {
			wg.Add(1)
			go func() {
				defer wg.Done()
				got := e.Convert(in.input, FormatAuto)
				assert.Equal(t, want[in.input], got)
				assert.Equal(t, in.format, got.Format)
			}()
		}
	}
	wg.Wait()
}
