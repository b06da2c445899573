package directive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nivesha/advisor/internal/models"
)

func TestParse_BuyWithQuantity(t *testing.T) {
	d, ok := Parse("The outlook is strong.\n\n[TRADE: BUY AAPL 5]")
	require.True(t, ok)
	assert.Equal(t, models.ActionBuy, d.Action)
	assert.Equal(t, "AAPL", d.Symbol)
	assert.Equal(t, 5, d.Quantity)
}

func TestParse_SellDefaultsQuantity(t *testing.T) {
	d, ok := Parse("Take profits here. [TRADE: SELL MSFT]")
	require.True(t, ok)
	assert.Equal(t, models.ActionSell, d.Action)
	assert.Equal(t, "MSFT", d.Symbol)
	assert.Equal(t, 1, d.Quantity)
}

func TestParse_HoldIsNotActionable(t *testing.T) {
	d, ok := Parse("Wait for a better entry.\n\n[TRADE: HOLD MSFT]")
	assert.False(t, ok)
	assert.Nil(t, d)
}

func TestParse_NoTag(t *testing.T) {
	d, ok := Parse("Just a market commentary with no recommendation.")
	assert.False(t, ok)
	assert.Nil(t, d)
}

func TestParse_MalformedTag(t *testing.T) {
	// Lowercase symbol and unknown action are both rejected by the grammar.
	for _, text := range []string{
		"[TRADE: BUY aapl]",
		"[TRADE: SHORT AAPL]",
		"[TRADE BUY AAPL]",
	} {
		_, ok := Parse(text)
		assert.False(t, ok, "expected no directive in %q", text)
	}
}

func TestStrip_RemovesTagIdempotently(t *testing.T) {
	text := "Buy the dip.\n\n[TRADE: BUY AAPL 5]"

	stripped := Strip(text)
	assert.Equal(t, "Buy the dip.", stripped)

	// Re-scanning stripped text yields no directive.
	_, ok := Parse(stripped)
	assert.False(t, ok)

	// Stripping again is a no-op.
	assert.Equal(t, stripped, Strip(stripped))
}

func TestStrip_RemovesHoldTag(t *testing.T) {
	stripped := Strip("Sit tight.\n\n[TRADE: HOLD TCS]")
	assert.Equal(t, "Sit tight.", stripped)
}

func TestFormat_RoundTrip(t *testing.T) {
	tag := Format(models.ActionBuy, "INFY", 3)
	assert.Equal(t, "[TRADE: BUY INFY 3]", tag)

	d, ok := Parse(tag)
	require.True(t, ok)
	assert.Equal(t, &models.TradeDirective{Action: models.ActionBuy, Symbol: "INFY", Quantity: 3}, d)
}

func TestFormat_OmitsDefaultQuantity(t *testing.T) {
	assert.Equal(t, "[TRADE: HOLD TCS]", Format(models.ActionHold, "TCS", 1))
	assert.Equal(t, "[TRADE: SELL TCS]", Format(models.ActionSell, "TCS", 0))
}
