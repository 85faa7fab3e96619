package prompt

import (
	"fmt"
	"strings"

	"github.com/reagent-ai/reagent/providers/tool"
)

// System renders the system prompt for a run over the given tool specs.
// Tool names and descriptions are included verbatim so the oracle emits
// exactly the names the registry can resolve.
func System(specs []tool.Spec) string {
	names := make([]string, len(specs))
	var toolLines strings.Builder
	for i, spec := range specs {
		names[i] = spec.Name
		fmt.Fprintf(&toolLines, "%s: %s\n", spec.Name, spec.Description)
	}

	var b strings.Builder
	b.WriteString("Answer the following questions as best you can. You have access to the following tools:\n\n")
	b.WriteString(toolLines.String())

	b.WriteString("\nDECISION RULES (FOLLOW STRICTLY):\n")
	rule := 1
	for _, spec := range specs {
		switch spec.Name {
		case "calculator":
			fmt.Fprintf(&b, "%d. IF the question involves math or numbers -> USE [%s].\n", rule, spec.Name)
			rule++
		case "tavily_search":
			fmt.Fprintf(&b, "%d. IF the question involves real-time information, prices or news -> USE [%s].\n", rule, spec.Name)
			rule++
		}
	}
	fmt.Fprintf(&b, "%d. IF the question is general chat, a greeting, or knowledge you already have -> DO NOT USE TOOLS. Go straight to \"Final Answer\".\n", rule)

	b.WriteString("\nUse the following format:\n\n")
	b.WriteString("Question: the input question you must answer\n")
	b.WriteString("Thought: you should always think about what to do\n")
	fmt.Fprintf(&b, "Action: the action to take, should be one of [%s]\n", strings.Join(names, ", "))
	b.WriteString("Action Input: the input to the action\n")
	b.WriteString("Observation: the result of the action\n")
	b.WriteString("... (this Thought/Action/Action Input/Observation can repeat N times)\n")
	b.WriteString("Thought: I now know the final answer\n")
	b.WriteString("Final Answer: the final answer to the original input question\n")

	b.WriteString("\nIMPORTANT:\n")
	b.WriteString("- If you do not need a tool, DO NOT write \"Action: None\".\n")
	b.WriteString("- Instead, write \"Thought: I can answer this directly.\" followed immediately by \"Final Answer: [your response]\".\n")
	b.WriteString("- Never write an \"Observation:\" line yourself. Observations are provided to you.\n")

	b.WriteString("\nBegin!\n")
	return b.String()
}
