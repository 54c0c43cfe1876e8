package advisor

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Plan is a parsed investment request: how much to deploy and the intraday
// profit target.
type Plan struct {
	Amount  int64
	Percent decimal.Decimal
}

// planPattern matches "₹<amount> @ <percent>%", where amount allows
// thousands separators and percent allows a decimal part.
// Examples: "₹20000 @ 3%", "₹20,000 @ 3.5%".
var planPattern = regexp.MustCompile(`₹\s*([\d,]+)\s*@\s*(\d+(?:\.\d+)?)%`)

// ParsePlan extracts amount and target percent from free text.
// The second return is false when the text does not match the format.
func ParsePlan(text string) (Plan, bool) {
	m := planPattern.FindStringSubmatch(text)
	if m == nil {
		return Plan{}, false
	}

	amount, err := strconv.ParseInt(strings.ReplaceAll(m[1], ",", ""), 10, 64)
	if err != nil {
		return Plan{}, false
	}

	percent, err := decimal.NewFromString(m[2])
	if err != nil {
		return Plan{}, false
	}

	return Plan{Amount: amount, Percent: percent}, true
}
