package escalation

import (
	"fmt"
	"strings"
)

// PromptBuilder constructs the natural-language prompts sent to the
// generative service when local extraction comes up short. Each prompt
// embeds the original source and demands strict JSON so the response can be
// parsed back into the local model shapes.
type PromptBuilder struct{}

func (pb *PromptBuilder) BuildDeclarationPrompt(source, reason string) string {
	var sb strings.Builder
	sb.WriteString("You are a Swift tooling assistant. Local pattern matching could not analyze the source below")
	if reason != "" {
		fmt.Fprintf(&sb, " (%s)", reason)
	}
	sb.WriteString(".\n\n")
	sb.WriteString("Extract all function and property declarations and respond with STRICT JSON only, no prose, in this shape:\n")
	sb.WriteString(`{"subject": "<container type name>", "units": [{"name": "...", "kind": "function|property", "type": "<return or declared type, empty if none>", "isStatic": false}]}`)
	sb.WriteString("\n\nSOURCE:\n```swift\n")
	sb.WriteString(source)
	sb.WriteString("\n```\n")
	return sb.String()
}

func (pb *PromptBuilder) BuildViewPrompt(source, reason string) string {
	var sb strings.Builder
	sb.WriteString("You are a Swift tooling assistant. Local pattern matching could not analyze the SwiftUI view below")
	if reason != "" {
		fmt.Fprintf(&sb, " (%s)", reason)
	}
	sb.WriteString(".\n\n")
	sb.WriteString("Analyze the view and respond with STRICT JSON only, no prose, in this shape:\n")
	sb.WriteString(`{"name": "<view name>", "elements": [{"label": "...", "kind": "button|textField|secureField|staticText|toggle|picker|slider|navigationLink|list", "identifier": "", "modifiers": [], "hasAction": false}], "stateVariables": [{"name": "...", "type": "..."}], "environmentObjects": {}, "isNavigationView": false, "hasTabBar": false, "hasAlert": false, "hasContextMenu": false}`)
	sb.WriteString("\n\nSOURCE:\n```swift\n")
	sb.WriteString(source)
	sb.WriteString("\n```\n")
	return sb.String()
}
