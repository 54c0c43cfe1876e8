package advisor

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// Advice is the assembled result of the two-stage flow. SanitySkipped marks
// the degraded case where stage two failed but the picks are still usable;
// presentation is a pure function over this struct.
type Advice struct {
	Picks         []string // non-empty response lines, original order
	Symbols       []string // leading symbol of each pick line
	TopPick       string   // symbol of the first line
	SanityNotes   []string // at most five lines from the validation pass
	SanitySkipped bool
}

const maxSanityLines = 5

// Advise runs the two-stage recommendation flow.
//
// Stage 1 asks for five liquid NSE/BSE picks and fails the whole flow on
// error. Stage 2 asks the model to sanity-check its own symbols against the
// target percent; any stage-2 failure degrades to SanitySkipped instead of
// aborting.
func Advise(ctx context.Context, c Completer, plan Plan) (*Advice, error) {
	prompt := fmt.Sprintf(
		"Recommend 5 highly liquid NSE/BSE stocks for investing ₹%d "+
			"with a goal of %s%% intraday profit. Provide a brief rationale for each.",
		plan.Amount, plan.Percent)

	raw, err := c.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("recommendation call: %w", err)
	}

	picks := splitLines(raw)
	if len(picks) == 0 {
		return nil, fmt.Errorf("model returned no picks")
	}

	advice := &Advice{Picks: picks}
	for _, line := range picks {
		advice.Symbols = append(advice.Symbols, leadingSymbol(line))
	}
	advice.TopPick = advice.Symbols[0]

	validationPrompt := fmt.Sprintf(
		"Symbols: %s. Can each plausibly hit %s%% intraday profit? Yes or No.",
		strings.Join(advice.Symbols, ", "), plan.Percent)

	validation, err := c.Complete(ctx, validationPrompt)
	if err != nil {
		log.Printf("Warning: validation pass skipped: %v", err)
		advice.SanitySkipped = true
		return advice, nil
	}

	notes := splitLines(validation)
	if len(notes) > maxSanityLines {
		notes = notes[:maxSanityLines]
	}
	advice.SanityNotes = notes
	return advice, nil
}

// FormatAdvice renders the final chat message: numbered picks, sanity-check
// bullets (or the skip notice), then the top-pick highlight.
func FormatAdvice(plan Plan, advice *Advice) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "📈 5 picks for ₹%d @ %s%%:\n", plan.Amount, plan.Percent)
	for i, pick := range advice.Picks {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, pick)
	}
	sb.WriteString("\n")

	if advice.SanitySkipped {
		sb.WriteString("🔍 Sanity check: skipped (service limit)\n\n")
	} else {
		sb.WriteString("🔍 Sanity check:\n")
		for _, note := range advice.SanityNotes {
			fmt.Fprintf(&sb, "• %s\n", note)
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "⭐️ Top suggestion: %s", advice.TopPick)
	return sb.String()
}

// splitLines returns the non-empty trimmed lines of a model response.
func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

// pickSeparators lists the dash variants models actually emit between a
// symbol and its rationale, longest first so " - " wins over a bare "-".
var pickSeparators = []string{"–", " - ", "-"}

// leadingSymbol extracts the text before the first separating dash of a
// pick line. Model output carries no schema, so a line without any
// separator falls back to the whole line rather than failing.
func leadingSymbol(line string) string {
	for _, sep := range pickSeparators {
		if idx := strings.Index(line, sep); idx >= 0 {
			if head := strings.TrimSpace(line[:idx]); head != "" {
				return head
			}
		}
	}
	return strings.TrimSpace(line)
}
