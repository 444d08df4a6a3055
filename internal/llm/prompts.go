package llm

import (
	"fmt"
	"strings"
)

func summarizePrompt(text, template, tone string, wordLimit int) string {
	var sb strings.Builder
	sb.WriteString("Summarize the following transcript")
	if template != "" && !strings.EqualFold(template, "standard") {
		fmt.Fprintf(&sb, " as %s", template)
	}
	if tone != "" {
		fmt.Fprintf(&sb, " in a %s tone", strings.ToLower(tone))
	}
	if wordLimit > 0 {
		fmt.Fprintf(&sb, ", at most %d words", wordLimit)
	}
	sb.WriteString(".\n\nTranscript:\n")
	sb.WriteString(text)
	return sb.String()
}

func translatePrompt(text, language, style string, preserveFormatting bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Translate the following transcript to %s", language)
	if style != "" {
		fmt.Fprintf(&sb, " using a %s style", strings.ToLower(style))
	}
	sb.WriteString(".")
	if preserveFormatting {
		sb.WriteString(" Preserve the original formatting.")
	}
	sb.WriteString(" Return only the translation.\n\nTranscript:\n")
	sb.WriteString(text)
	return sb.String()
}

func analyzePrompt(text, prompt string) string {
	var sb strings.Builder
	sb.WriteString(prompt)
	sb.WriteString("\n\nTranscript:\n")
	sb.WriteString(text)
	return sb.String()
}

func cleanPrompt(text string) string {
	var sb strings.Builder
	sb.WriteString("Clean up the following transcript: remove filler words, false starts and ")
	sb.WriteString("recognition artifacts, fix obvious transcription mistakes, keep the meaning ")
	sb.WriteString("and wording otherwise intact. Return only the cleaned text.\n\nTranscript:\n")
	sb.WriteString(text)
	return sb.String()
}
