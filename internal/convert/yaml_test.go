package convert

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestYAMLConverter_MatchesJSON(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		json string
	}{
		{
			name: "nested mapping",
			yaml: "order:\n  id: 1\n  status: paid\n",
			json: `{"order":{"id":1,"status":"paid"}}`,
		},
		{
			name: "sequences and scalars",
			yaml: "tags:\n  - a\n  - b\nprice: 1.50\nactive: true\nnothing: null\n",
			json: `{"tags":["a","b"],"price":1.50,"active":true,"nothing":null}`,
		},
		{
			name: "document marker and quoted strings",
			yaml: "---\nname: \"Ada\"\nrelease: '2024-01-01'\n",
			json: `{"name":"Ada","release":"2024-01-01"}`,
		},
		{
			name: "sequence of mappings",
			yaml: "- id: 1\n  firstName: Ada\n- id: 2\n  firstName: Grace\n",
			json: `[{"id":1,"firstName":"Ada"},{"id":2,"firstName":"Grace"}]`,
		},
		{
			name: "key order is preserved",
			yaml: "zeta: 1\nalpha: 2\nmid: 3\n",
			json: `{"zeta":1,"alpha":2,"mid":3}`,
		},
		{
			name: "duplicate keys keep the last value",
			yaml: "a: 1\nb: 2\na: 3\n",
			json: `{"a":1,"b":2,"a":3}`,
		},
		{
			name: "html characters survive the round trip",
			yaml: "tag: <b>&</b>\n",
			json: `{"tag":"<b>&</b>"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := JSONConverter{}.Convert(tt.json)
			assert.NotContains(t, want, "ERROR")
			assert.Equal(t, want, YAMLConverter{}.Convert(tt.yaml))
		})
	}
}

func TestYAMLConverter_NonJSONNumbers(t *testing.T) {
	out := YAMLConverter{}.Convert("hex: 0x1F\nfrac: .5\ninf: .inf\n")
	assert.Equal(t, "HEX 31\nFRAC 0.5\nINF NULL", out)
}

func TestYAMLConverter_MergeKeys(t *testing.T) {
	input := `base: &base
  x: 1
  y: 1
child:
  <<: *base
  y: 2
`
	want := "BASE OBJECT\n  X 1\n  Y 1\nCHILD OBJECT\n  Y 2\n  X 1"
	assert.Equal(t, want, YAMLConverter{}.Convert(input))
}

func TestYAMLConverter_Invalid(t *testing.T) {
	inputs := []string{
		"key: [unclosed",
		"a: b: c",
	}

	for _, input := range inputs {
		out := YAMLConverter{}.Convert(input)
		assert.True(t, strings.HasPrefix(out, "ERROR Invalid YAML: "), "input %q gave %q", input, out)
		assert.NotContains(t, out, "\n")
	}
}

func TestYAMLConverter_Detect(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"document marker", "---\na: 1", true},
		{"key line", "name: x", true},
		{"nested key", "server:\n  port: 80", true},
		{"plain text", "just some words", false},
		{"list only", "- a\n- b", false},
		{"unparseable", "key: [unclosed", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, YAMLConverter{}.Detect(tt.input))
		})
	}
}
