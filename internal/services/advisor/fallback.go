package advisor

import (
	"fmt"
	"strings"

	"github.com/nivesha/advisor/internal/directive"
	"github.com/nivesha/advisor/internal/models"
)

// Offsets applied to the current price in the templated fallback document.
const (
	supportOffset = 0.95
	entryOffset   = 0.98
	stopOffset    = 0.90
)

// mockNarrative is the no-credential tier. It is pure: repeated calls for the
// same prediction yield identical text, and no network call is made.
func mockNarrative(p *models.Prediction) string {
	return fmt.Sprintf(
		"Real-time analysis for %s: The stock shows %s momentum at $%.2f with a model target of $%.2f. Fundamentals remain steady. Recommended stance: %s. (Set GEMINI_API_KEY to enable live AI analysis.)",
		p.Symbol, p.Forecast.Signal, p.CurrentPrice, p.Forecast.TargetPrice, p.Forecast.Signal,
	)
}

// fallbackNarrative is the fixed-structure document served when the live tier
// hits a credential, quota, or server fault. Numeric levels derive from the
// current price by fixed offsets, and the document always closes with a HOLD
// tag for the requested symbol.
func fallbackNarrative(p *models.Prediction) string {
	signal := p.Forecast.Signal
	if signal == "" {
		signal = models.SignalNeutral
	}

	return fmt.Sprintf(`### **Nivesha Executive Summary**
**%s** is currently trading at **$%.2f**, showing a **%s** signal. The stock is positioned for potential stability despite market volatility.

### **Bull Case**
*   **Strong Fundamentals**: Consistent revenue growth in the last quarter (simulated).
*   **Market Position**: Dominant market share in its sector.
*   **Technical Support**: Holding strong above the $%.2f support level.

### **Bear Case**
*   **Macro Headwinds**: Rate sensitivity remains a concern.
*   **Valuation**: Currently trading at a premium P/E ratio.

### **Nivesha's Verdict**
**HOLD (Confidence: 7/10)**. While fundamentals are strong, technical indicators suggest waiting for a better entry point.

### **Strategic Action**
*   **Entry**: Look to accumulate if price dips near **$%.2f**.
*   **Stop Loss**: Set at **$%.2f**.

%s`,
		p.Symbol, p.CurrentPrice, signal,
		p.CurrentPrice*supportOffset,
		p.CurrentPrice*entryOffset,
		p.CurrentPrice*stopOffset,
		directive.Format(models.ActionHold, p.Symbol, 1),
	)
}

// providerFaultMarkers identify credential, quota, and server-class faults in
// generator errors. Gemini transports do not expose a stable typed error, so
// classification matches status text the way the upstream reports it.
var providerFaultMarkers = []string{
	"API key",
	"401",
	"403",
	"429",
	"500",
	"503",
	"quota",
	"RESOURCE_EXHAUSTED",
	"UNAVAILABLE",
}

// isProviderFault reports whether a live-tier error is recoverable by the
// fallback tier. Anything else propagates to the caller as a generic service
// error.
func isProviderFault(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, marker := range providerFaultMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
