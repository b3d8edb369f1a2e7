package anthropic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageResponseText(t *testing.T) {
	resp := &MessageResponse{
		Content: []ContentBlock{
			{Type: "text", Text: "hello "},
			{Type: "tool_use", Text: "ignored"},
			{Type: "text", Text: "world"},
		},
	}
	assert.Equal(t, "hello world", resp.Text())
}

func TestMessageResponseText_Empty(t *testing.T) {
	resp := &MessageResponse{}
	assert.Equal(t, "", resp.Text())
}

func TestToSDKMessages_Roles(t *testing.T) {
	msgs := toSDKMessages([]Message{
		{Role: "user", Content: "question"},
		{Role: "assistant", Content: "answer"},
	})
	assert.Len(t, msgs, 2)
}
