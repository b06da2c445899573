// Package directive implements the embedded trade-directive text protocol.
//
// A generated narrative carries at most one directive tag of the form
// [TRADE: ACTION SYMBOL] or [TRADE: ACTION SYMBOL QUANTITY] as its final
// line. The generator is untrusted: a tag may be missing or malformed, and
// both cases mean "no actionable recommendation" rather than an error.
package directive

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/nivesha/advisor/internal/models"
)

// actionable matches BUY/SELL tags only. HOLD implies no order execution and
// is deliberately excluded from the decoder.
var actionable = regexp.MustCompile(`\[TRADE:\s+(BUY|SELL)\s+([A-Z]+)\s*(\d+)?\]`)

// anyTag matches every directive tag, HOLD included, for display stripping.
var anyTag = regexp.MustCompile(`\[TRADE:[^\]]*\]`)

// Format renders a directive tag for prompt instructions and templates.
// The quantity is omitted when it is the default of 1.
func Format(action models.TradeAction, symbol string, quantity int) string {
	if quantity > 1 {
		return fmt.Sprintf("[TRADE: %s %s %d]", action, symbol, quantity)
	}
	return fmt.Sprintf("[TRADE: %s %s]", action, symbol)
}

// Parse scans text for an actionable directive. It returns (nil, false) when
// no BUY/SELL tag is present. An absent quantity defaults to 1.
func Parse(text string) (*models.TradeDirective, bool) {
	m := actionable.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}

	qty := 1
	if m[3] != "" {
		if n, err := strconv.Atoi(m[3]); err == nil && n >= 1 {
			qty = n
		}
	}

	return &models.TradeDirective{
		Action:   models.TradeAction(m[1]),
		Symbol:   m[2],
		Quantity: qty,
	}, true
}

// Strip removes every directive tag from text for human display. Stripping is
// idempotent: the result never re-parses to a directive.
func Strip(text string) string {
	return strings.TrimSpace(anyTag.ReplaceAllString(text, ""))
}
