package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterText(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		format string
		want   TextField
	}{
		{
			name:   "plain text is stored verbatim",
			value:  "Tom & Jerry <3",
			format: FormatPlainText,
			want:   TextField{Value: "Tom & Jerry <3", Format: FormatPlainText},
		},
		{
			name:   "plain text keeps angle brackets literally",
			value:  "  <b>bold</b> move ",
			format: FormatPlainText,
			want:   TextField{Value: "<b>bold</b> move", Format: FormatPlainText},
		},
		{
			name:   "basic html drops scripts",
			value:  `<p>hi</p><script>alert(1)</script>`,
			format: FormatBasicHTML,
			want:   TextField{Value: "<p>hi</p>", Format: FormatBasicHTML},
		},
		{
			name:   "full html is untouched",
			value:  `<div onclick="x()">raw</div>`,
			format: FormatFullHTML,
			want:   TextField{Value: `<div onclick="x()">raw</div>`, Format: FormatFullHTML},
		},
		{
			name:   "empty format uses default",
			value:  "<em>ok</em>",
			format: "",
			want:   TextField{Value: "<em>ok</em>", Format: DefaultTextFormat},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FilterText(tt.value, tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterText_UnknownFormat(t *testing.T) {
	_, err := FilterText("x", "markdown")
	assert.ErrorIs(t, err, ErrInvalidTextFormat)
	assert.False(t, IsKnownTextFormat("markdown"))
	assert.True(t, IsKnownTextFormat(FormatFullHTML))
}
