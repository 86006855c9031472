package format

import (
	"strings"
)

// is thread safe/goroutine safe
var markdownReplacer = strings.NewReplacer(
	"\\", "\\\\",
	"`", "\\`",
	"*", "\\*",
	"_", "\\_",
	"~", "\\~",
	"|", "\\|",
	"[", "\\[",
	"]", "\\]",
	"(", "\\(",
	")", "\\)",
	"#", "\\#",
	">", "\\>",
)

// Escape user input that is echoed back outside of code blocks.
func Escape(userInput string) string {
	return markdownReplacer.Replace(userInput)
}

// CodeBlock renders text as a multiline code block with an optional language.
func CodeBlock(language, text string) string {
	text = strings.TrimSuffix(strings.TrimPrefix(text, "\n"), "\n")
	return fence(language+"\n"+text+"\n", "```")
}

func Bold(text string) string {
	return fence(text, "**")
}

// fence wraps text in enough markers that markers inside of text cannot
// terminate the block early.
func fence(text, marker string) string {
	if text == "" {
		return ""
	}
	n := strings.Count(text, marker) + 1
	wrap := strings.Repeat(marker, n)
	return wrap + text + wrap
}
