package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayTitle(t *testing.T) {
	tests := []struct {
		name         string
		title        string
		translations map[string]string
		lang         string
		want         string
	}{
		{
			name:         "requested language wins",
			title:        "Book venue",
			translations: map[string]string{"de": "Ort buchen", "fr": "Réserver le lieu"},
			lang:         "de",
			want:         "Ort buchen",
		},
		{
			name:         "falls back to generic title",
			title:        "Book venue",
			translations: map[string]string{"de": "Ort buchen"},
			lang:         "fr",
			want:         "Book venue",
		},
		{
			name:         "empty variant is skipped",
			title:        "Book venue",
			translations: map[string]string{"de": ""},
			lang:         "de",
			want:         "Book venue",
		},
		{
			name:         "no generic title picks first variant by key",
			title:        "",
			translations: map[string]string{"fr": "Réserver", "de": "Buchen"},
			lang:         "it",
			want:         "Buchen",
		},
		{
			name:  "everything empty",
			title: "",
			lang:  "en",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := Task{Title: tt.title, Translations: tt.translations}
			assert.Equal(t, tt.want, task.DisplayTitle(tt.lang))
		})
	}
}

func TestTaskStatusIsValid(t *testing.T) {
	assert.True(t, TaskStatusPending.IsValid())
	assert.True(t, TaskStatusInProgress.IsValid())
	assert.True(t, TaskStatusCompleted.IsValid())
	assert.False(t, TaskStatus("done").IsValid())
	assert.False(t, TaskStatus("").IsValid())
}

func TestParseHexColorRejectsMalformedInput(t *testing.T) {
	for _, input := range []string{"", "#fff", "123", "#gggggg", "#1234567"} {
		_, err := ParseHexColor(input)
		assert.ErrorIs(t, err, ErrInvalidColor, "input %q", input)
	}
}

func TestParseHexColorKnownValues(t *testing.T) {
	tests := []struct {
		hex  string
		want HSL
	}{
		{"#ffffff", HSL{H: 0, S: 0, L: 100}},
		{"#000000", HSL{H: 0, S: 0, L: 0}},
		{"#ff0000", HSL{H: 0, S: 100, L: 50}},
		{"#00ff00", HSL{H: 120, S: 100, L: 50}},
		{"#0000ff", HSL{H: 240, S: 100, L: 50}},
	}

	for _, tt := range tests {
		got, err := ParseHexColor(tt.hex)
		require.NoError(t, err, tt.hex)
		assert.InDelta(t, tt.want.H, got.H, 0.5, "hue of %s", tt.hex)
		assert.InDelta(t, tt.want.S, got.S, 0.5, "saturation of %s", tt.hex)
		assert.InDelta(t, tt.want.L, got.L, 0.5, "lightness of %s", tt.hex)
	}
}

func TestHexColorRoundTrip(t *testing.T) {
	for _, hex := range []string{"#336699", "#ff8800", "#a1b2c3", "#4caf50"} {
		hsl, err := ParseHexColor(hex)
		require.NoError(t, err)
		assert.Equal(t, hex, hsl.Hex(), "round trip of %s", hex)
	}
}
