package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"planpilot/internal/orchestrator"
	"planpilot/internal/tools"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("8"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	bulletStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
)

// renderResponse formats a pipeline response for the terminal.
func renderResponse(resp orchestrator.Response) string {
	var b strings.Builder

	status := successStyle.Render("OK")
	if !resp.Success {
		status = errorStyle.Render("FAILED")
	}
	fmt.Fprintf(&b, "%s %s  %s\n",
		titleStyle.Render("Result:"), status,
		dimStyle.Render(fmt.Sprintf("intent=%s conf=%.2f in %s",
			resp.Intent.Name, resp.Intent.Confidence, resp.ExecutionTime.Round(time.Millisecond))))

	if resp.ErrorExplanation != "" {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Error:"), errorStyle.Render(resp.ErrorExplanation))
	}

	if resp.Plan != nil {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Plan:"), resp.Plan.Name)
	}

	for _, r := range resp.Results {
		b.WriteString(renderResult(r))
	}
	// Surface the feedback hint from the most recent execution once.
	for i := len(resp.Results) - 1; i >= 0; i-- {
		if hint := resp.Results[i].FeedbackHint; hint != "" {
			fmt.Fprintf(&b, "  %s\n", dimStyle.Render(hint))
			break
		}
	}

	if resp.Synthesis != "" {
		fmt.Fprintf(&b, "\n%s\n%s\n", labelStyle.Render("Summary"), resp.Synthesis)
	}

	if len(resp.Recommendations) > 0 {
		fmt.Fprintf(&b, "\n%s\n", labelStyle.Render("Next steps"))
		for _, rec := range resp.Recommendations {
			fmt.Fprintf(&b, "%s %s\n", bulletStyle.Render("•"), rec)
		}
	}
	return b.String()
}

func renderResult(r tools.Result) string {
	if !r.IsSuccess() {
		return fmt.Sprintf("  %s %s: %s\n", errorStyle.Render("✗"), r.ToolName, r.Error)
	}

	var kv []string
	for _, key := range []string{"account", "entity", "years", "period", "scenario", "value"} {
		if v, ok := r.Data[key]; ok {
			kv = append(kv, fmt.Sprintf("%s=%v", key, v))
		}
	}
	detail := ""
	if len(kv) > 0 {
		detail = dimStyle.Render(" " + strings.Join(kv, " "))
	}
	return fmt.Sprintf("  %s %s%s\n", successStyle.Render("✓"), r.ToolName, detail)
}
