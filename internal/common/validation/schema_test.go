package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateChatRequest(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantValid bool
		badField  string
	}{
		{"single message", `{"message":"aaj ki khabar"}`, true, ""},
		{"content alias", `{"content":"weather in Jaipur"}`, true, ""},
		{"turns", `{"messages":[{"role":"user","content":"hi"},{"role":"assistant","content":"hello"}]}`, true, ""},
		{"empty object", `{}`, true, ""},
		{"message not string", `{"message":42}`, false, "message"},
		{"messages not array", `{"messages":"hi"}`, false, "messages"},
		{"turn content not string", `{"messages":[{"role":"user","content":{}}]}`, false, "messages"},
		{"too long", `{"message":"` + strings.Repeat("a", 4001) + `"}`, false, "message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ValidateChatRequest([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.wantValid, result.Valid, result.GetErrorMessages())
			if tt.badField != "" {
				assert.True(t, result.HasErrors(tt.badField), result.GetErrorMessages())
			}
		})
	}
}

func TestValidateChatRequest_NotJSON(t *testing.T) {
	_, err := ValidateChatRequest([]byte(`{"message":`))
	assert.Error(t, err)
}
