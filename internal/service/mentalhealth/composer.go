package mentalhealth

import (
	"strings"

	"github.com/manasmitra/backend/internal/analysis/crisis"
)

// supportKeywords trigger the professional-help reminder. This set is
// deliberately distinct from the crisis keyword table.
var supportKeywords = []string{"help", "depressed", "sad", "anxiety"}

const professionalReminder = "Remember, I'm here to listen, but please consider speaking with a mental health professional if you're struggling."

const crisisResources = "🆘 Crisis Resources:\n• Suicide Prevention: 022-25521111\n• KIRAN Helpline: 1800-599-0019"

// Compose annotates the model reply. When the raw message asks for support
// the reminder is appended first; when the risk level is high or emergency
// the hotline block follows and the crisis flag is set. Blocks are separated
// by blank lines and the order is fixed.
func Compose(aiText string, level crisis.Level, rawMessage string) (string, bool) {
	var b strings.Builder
	b.WriteString(aiText)

	lower := strings.ToLower(rawMessage)
	for _, word := range supportKeywords {
		if strings.Contains(lower, word) {
			b.WriteString("\n\n")
			b.WriteString(professionalReminder)
			break
		}
	}

	crisisDetected := level.Crisis()
	if crisisDetected {
		b.WriteString("\n\n")
		b.WriteString(crisisResources)
	}

	return b.String(), crisisDetected
}
