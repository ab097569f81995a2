package greetings

import (
	"encoding/json"
	"testing"

	"github.com/listenrightmeow/mcps/mcpservice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderEveryCombination(t *testing.T) {
	want := map[[2]string]string{
		{Greeting, Formal}:  "Dear Ada, I hope this message finds you well",
		{Greeting, Casual}:  "Hi Ada! How are you?",
		{Greeting, Playful}: "Hey hey Ada! 🎉 What's shakin'?",
		{Farewell, Formal}:  "Best regards, Ada. Until we meet again.",
		{Farewell, Casual}:  "Goodbye Ada, take care!",
		{Farewell, Playful}: "Catch you later, Ada! 👋 Stay awesome!",
		{ThankYou, Formal}:  "Dear Ada, I sincerely appreciate your assistance.",
		{ThankYou, Casual}:  "Thanks so much, Ada! Really appreciate it!",
		{ThankYou, Playful}: "You're the absolute best, Ada! 🌟 Thanks a million!",
	}
	for _, mt := range MessageTypes {
		for _, tone := range Tones {
			got, err := Render(Args{MessageType: mt, Recipient: "Ada", Tone: tone})
			require.NoError(t, err)
			assert.Equal(t, want[[2]string{mt, tone}], got, "%s/%s", mt, tone)
		}
	}
}

func TestRenderDefaultsToCasual(t *testing.T) {
	got, err := Render(Args{MessageType: Farewell, Recipient: "Bo"})
	require.NoError(t, err)
	assert.Equal(t, "Goodbye Bo, take care!", got)
}

func TestRenderValidation(t *testing.T) {
	tests := []struct {
		name      string
		args      Args
		field     string
		reasonHas string
	}{
		{"missing type", Args{Recipient: "Ada"}, "messageType", "required"},
		{"missing recipient", Args{MessageType: Greeting}, "recipient", "required"},
		{"bad type", Args{MessageType: "welcome", Recipient: "Ada"}, "messageType", "greeting, farewell, thank-you"},
		{"bad tone", Args{MessageType: Greeting, Recipient: "Ada", Tone: "sarcastic"}, "tone", "formal, casual, playful"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Render(tt.args)
			var ip *mcpservice.InvalidParamsError
			require.ErrorAs(t, err, &ip)
			assert.Equal(t, tt.field, ip.Field)
			assert.Contains(t, ip.Reason, tt.reasonHas)
		})
	}
}

func TestToolHandler(t *testing.T) {
	h := Tool().Handler

	res, err := h(t.Context(), &mcpservice.ToolCall{
		Name:      ToolName,
		Arguments: json.RawMessage(`{"messageType":"thank-you","recipient":"Grace","tone":"formal"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, "Dear Grace, I sincerely appreciate your assistance.", res.Content[0].Text)

	_, err = h(t.Context(), &mcpservice.ToolCall{Name: ToolName, Arguments: json.RawMessage(`{}`)})
	require.Error(t, err)
}

func TestToolDescriptor(t *testing.T) {
	d := Tool().Descriptor
	assert.Equal(t, "create-greeting", d.Name)
	assert.ElementsMatch(t, []string{"messageType", "recipient"}, d.InputSchema.Required)

	mt := d.InputSchema.Properties["messageType"]
	assert.Equal(t, []any{"greeting", "farewell", "thank-you"}, mt.Enum)

	tone := d.InputSchema.Properties["tone"]
	assert.Equal(t, []any{"formal", "casual", "playful"}, tone.Enum)
	assert.Equal(t, "casual", tone.Default)
}
