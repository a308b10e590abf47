package convert

// Converter is implemented once per input format.
//
// Detect must never panic and must not fail: any parse attempt it makes is
// reported as false. Convert never returns an error either; failures are
// rendered as a single ERROR notation line.
// Implementations keep no state between calls and are safe for concurrent use.
type Converter interface {
	Detect(input string) bool
	Convert(input string) string
}

var (
	_ Converter = JSONConverter{}
	_ Converter = YAMLConverter{}
	_ Converter = MarkupConverter{}
	_ Converter = ComponentConverter{}
	_ Converter = TextConverter{}
)
