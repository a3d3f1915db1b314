package domain

import (
	"strings"
	"unicode/utf8"
)

var takeaways = []string{
	"Consistent practice builds lasting knowledge.",
	"Understanding concepts deeply beats surface-level memorization.",
	"Connecting new ideas to existing knowledge strengthens recall.",
	"Active reflection transforms information into understanding.",
}

const emptySummary = "Great focus session! You stayed engaged with the material and made progress."

// Synthesize builds the summary and takeaway for a reflection from fixed
// templates. pick chooses one of n stock takeaways and is only consulted
// when the reflection is blank.
func Synthesize(r Reflection, pick func(n int) int) Synthesis {
	understood := strings.TrimSpace(r.Understood)
	important := strings.TrimSpace(r.Important)
	remember := strings.TrimSpace(r.Remember)

	var parts []string
	if understood != "" {
		parts = append(parts, "You explored "+truncate(strings.ToLower(understood), 50)+"...")
	}
	if important != "" {
		parts = append(parts, "Key focus: "+truncate(strings.ToLower(important), 40)+".")
	}
	if remember != "" {
		parts = append(parts, "Note: "+truncate(strings.ToLower(remember), 40)+".")
	}

	if len(parts) == 0 {
		idx := 0
		if pick != nil {
			idx = pick(len(takeaways))
		}
		if idx < 0 || idx >= len(takeaways) {
			idx = 0
		}
		return Synthesis{Summary: emptySummary, KeyTakeaway: takeaways[idx]}
	}

	focus := important
	if focus == "" {
		focus = understood
	}
	if focus == "" {
		focus = remember
	}
	return Synthesis{
		Summary:     strings.Join(parts, " "),
		KeyTakeaway: truncate("Focus on what felt important: "+focus, 100),
	}
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
