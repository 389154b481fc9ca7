package parser

import "testing"

func TestIsTripPost(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"plain trip id", "Trip ID 4821\nRate: $972.50", true},
		{"lowercase", "trip id 4821", true},
		{"styled bold trip id", "𝗧𝗿𝗶𝗽 𝗜𝗗 4821", true},
		{"map emoji marker", "🗺 4821\n💰 $972.50", true},
		{"plain chatter", "morning everyone", false},
		{"trip word alone is not a marker", "nice trip to Denver", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTripPost(tt.text); got != tt.want {
				t.Errorf("IsTripPost(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestIsLoadAlert(t *testing.T) {
	if !IsLoadAlert("⚠️ New Load Alert") {
		t.Error("expected load alert to be detected")
	}
	if !IsLoadAlert("new load alert for all") {
		t.Error("expected case-insensitive detection")
	}
	if IsLoadAlert("load posted") {
		t.Error("did not expect detection without the full phrase")
	}
}

func TestGuidancePromptsOrder(t *testing.T) {
	prompts := GuidancePrompts()
	if prompts[0] != GuidancePrompt1 || prompts[1] != GuidancePrompt2 {
		t.Error("prompts must come back in send order")
	}
}
