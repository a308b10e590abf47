package convert

import (
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/tidwall/gjson"

	"github.com/HartBrook/toonify/internal/notation"
)

// rootKeyword labels scalars that have no key of their own (document root, array items).
const rootKeyword = "VALUE"

// JSONConverter flattens JSON documents into keyed notation lines.
type JSONConverter struct{}

// Detect reports whether input starts like a JSON container and parses fully.
func (JSONConverter) Detect(input string) bool {
	trimmed := strings.TrimSpace(input)
	if !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "[") {
		return false
	}
	return validateJSON(trimmed) == nil
}

// Convert flattens input, or returns an ERROR line if it is not valid JSON.
func (JSONConverter) Convert(input string) string {
	if err := validateJSON(input); err != nil {
		return notation.ErrorLine("JSON", err)
	}

	var b notation.Builder
	flattenJSON(&b, gjson.Parse(input), "", 0)
	return b.String()
}

// validateJSON runs a strict decode so malformed input yields a positioned error.
// gjson itself is lenient and reports no reason for a failure.
func validateJSON(input string) error {
	var v any
	return json.Unmarshal([]byte(input), &v)
}

// flattenJSON emits lines for v. Object entries keep document order.
func flattenJSON(b *notation.Builder, v gjson.Result, key string, indent int) {
	keyword := jsonKeyword(key)

	switch {
	case v.IsArray():
		if key != "" {
			b.Add(keyword, "ARRAY", indent)
		}
		i := 0
		v.ForEach(func(_, item gjson.Result) bool {
			b.Add("ITEM", strconv.Itoa(i), indent+1)
			flattenJSON(b, item, "", indent+2)
			i++
			return true
		})

	case v.IsObject():
		child := indent
		if key != "" {
			b.Add(keyword, "OBJECT", indent)
			child++
		}
		for _, e := range objectEntries(v) {
			flattenJSON(b, e.value, e.key, child)
		}

	default:
		switch v.Type {
		case gjson.Null:
			b.Add(keyword, "NULL", indent)
		case gjson.True:
			b.Add(keyword, "TRUE", indent)
		case gjson.False:
			b.Add(keyword, "FALSE", indent)
		case gjson.Number:
			b.Add(keyword, v.Raw, indent)
		case gjson.String:
			b.Add(keyword, v.String(), indent)
		}
	}
}

type jsonEntry struct {
	key   string
	value gjson.Result
}

// objectEntries lists the members of an object. A repeated key keeps the
// position of its first occurrence and the value of its last.
func objectEntries(v gjson.Result) []jsonEntry {
	var entries []jsonEntry
	seen := make(map[string]int)
	v.ForEach(func(k, item gjson.Result) bool {
		key := k.String()
		if i, ok := seen[key]; ok {
			entries[i].value = item
			return true
		}
		seen[key] = len(entries)
		entries = append(entries, jsonEntry{key: key, value: item})
		return true
	})
	return entries
}

func jsonKeyword(key string) string {
	if kw := notation.UpperSnake(key); kw != "" {
		return kw
	}
	return rootKeyword
}
