// Package conversation_test provides unit tests for the conversation package.
package conversation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Chaitanya-OverDev/AgriAssist/internal/services/conversation"
)

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"numbered prefix", "1. Tomato Blight Advice", "Tomato Blight Advice"},
		{"dash prefix", "- Wheat Prices Today", "Wheat Prices Today"},
		{"asterisk prefix", "* Onion Market Update", "Onion Market Update"},
		{"double quotes", `"Wheat Prices"`, "Wheat Prices"},
		{"single quotes", "'Cotton Harvest'", "Cotton Harvest"},
		{"surrounding whitespace", "  Paddy Sowing Tips  ", "Paddy Sowing Tips"},
		{"markup only", "- ", ""},
		{"empty", "", ""},
		{"plain", "Soil Preparation", "Soil Preparation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, conversation.CleanTitle(tt.raw))
		})
	}
}

func TestIsPlaceholderTitle(t *testing.T) {
	assert.True(t, conversation.IsPlaceholderTitle(""))
	assert.True(t, conversation.IsPlaceholderTitle("   "))
	assert.True(t, conversation.IsPlaceholderTitle("New Consultation"))
	assert.True(t, conversation.IsPlaceholderTitle("New Chat"))
	assert.True(t, conversation.IsPlaceholderTitle("string"))
	assert.False(t, conversation.IsPlaceholderTitle("Tomato Blight Advice"))
}
