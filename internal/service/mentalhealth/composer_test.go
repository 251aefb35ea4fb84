package mentalhealth

import (
	"strings"
	"testing"

	"github.com/manasmitra/backend/internal/analysis/crisis"
)

func TestComposeProfessionalReminder(t *testing.T) {
	text, detected := Compose("take care of yourself", crisis.Low, "I feel so depressed lately")
	if detected {
		t.Fatal("low risk must not flag a crisis")
	}
	if !strings.Contains(text, professionalReminder) {
		t.Fatalf("expected the professional reminder, got %q", text)
	}
	if !strings.HasPrefix(text, "take care of yourself\n\n") {
		t.Fatalf("reminder must follow the AI text with a blank line, got %q", text)
	}
}

func TestComposeCrisisResources(t *testing.T) {
	for _, level := range []crisis.Level{crisis.High, crisis.Emergency} {
		text, detected := Compose("reply", level, "nothing matters anymore")
		if !detected {
			t.Fatalf("level %s must flag a crisis", level)
		}
		if !strings.Contains(text, crisisResources) {
			t.Fatalf("level %s: expected hotline block, got %q", level, text)
		}
		if !strings.Contains(text, "022-25521111") || !strings.Contains(text, "1800-599-0019") {
			t.Fatalf("hotline numbers missing from %q", text)
		}
	}
}

func TestComposeBothBlocksInOrder(t *testing.T) {
	text, detected := Compose("reply", crisis.High, "I'm depressed and hopeless")
	if !detected {
		t.Fatal("expected crisis detection")
	}

	reminderIdx := strings.Index(text, professionalReminder)
	resourcesIdx := strings.Index(text, crisisResources)
	if reminderIdx < 0 || resourcesIdx < 0 {
		t.Fatalf("expected both blocks, got %q", text)
	}
	if reminderIdx > resourcesIdx {
		t.Fatal("reminder must precede the crisis resources")
	}
	if !strings.HasPrefix(text, "reply") {
		t.Fatal("AI text must come first")
	}
}

func TestComposeNoTriggers(t *testing.T) {
	text, detected := Compose("hello there", crisis.Low, "tell me about the weather")
	if detected {
		t.Fatal("unexpected crisis flag")
	}
	if text != "hello there" {
		t.Fatalf("expected untouched AI text, got %q", text)
	}
}

func TestComposeMediumLevelNoResources(t *testing.T) {
	text, detected := Compose("reply", crisis.Medium, "all good")
	if detected {
		t.Fatal("medium must not flag a crisis")
	}
	if strings.Contains(text, crisisResources) {
		t.Fatal("medium must not append the hotline block")
	}
}
