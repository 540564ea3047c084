package domain

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

const (
	FormatPlainText = "plain_text"
	FormatBasicHTML = "basic_html"
	FormatFullHTML  = "full_html"

	DefaultTextFormat = FormatBasicHTML
)

// A nil policy stores the value as submitted. plain_text is never markup, so
// whoever renders it as HTML escapes it; full_html is trusted.
var textFormats = map[string]*bluemonday.Policy{
	FormatPlainText: nil,
	FormatBasicHTML: bluemonday.UGCPolicy(),
	FormatFullHTML:  nil,
}

// IsKnownTextFormat reports whether format names a configured text format.
func IsKnownTextFormat(format string) bool {
	_, ok := textFormats[format]
	return ok
}

// FilterText applies the format's filter to value. An empty format falls back
// to DefaultTextFormat.
func FilterText(value, format string) (TextField, error) {
	if format == "" {
		format = DefaultTextFormat
	}
	policy, ok := textFormats[format]
	if !ok {
		return TextField{}, ErrInvalidTextFormat
	}
	if policy != nil {
		value = policy.Sanitize(value)
	}
	return TextField{Value: strings.TrimSpace(value), Format: format}, nil
}
