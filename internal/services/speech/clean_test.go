// Package speech_test provides unit tests for the speech text cleanup.
package speech_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Chaitanya-OverDev/AgriAssist/internal/services/speech"
)

func TestCleanForSpeech(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "strips bold markers",
			in:   "Use **neem oil** spray",
			want: "Use neem oil spray",
		},
		{
			name: "newlines become sentence breaks",
			in:   "First line\nSecond line",
			want: "First line. Second line",
		},
		{
			name: "windows newlines",
			in:   "First\r\nSecond",
			want: "First. Second",
		},
		{
			name: "links keep only the label",
			in:   "See [Agmarknet](https://agmarknet.gov.in) for details",
			want: "See Agmarknet for details",
		},
		{
			name: "headers and bullets",
			in:   "# Advice\n* spray in the evening\n* avoid rain days",
			want: "Advice. spray in the evening. avoid rain days",
		},
		{
			name: "collapses repeated dots",
			in:   "Done.\n\nNext step",
			want: "Done. Next step",
		},
		{
			name: "trims whitespace",
			in:   "  hello  ",
			want: "hello",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, speech.CleanForSpeech(tt.in))
		})
	}
}
