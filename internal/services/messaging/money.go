package messaging

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	penceInPound     = decimal.NewFromInt(240)
	penceInShilling  = decimal.NewFromInt(12)
	farthingsInPenny = decimal.NewFromInt(4)
)

// FormatMoney renders an amount of pence in pounds, shillings, pence and
// farthings, e.g. 250.5 is "£1 0s 10d 2/4 f".
func FormatMoney(pence float64) string {
	p := decimal.NewFromFloat(pence)

	pounds := p.Div(penceInPound).Floor()
	shillings := p.Mod(penceInPound).Div(penceInShilling).Floor()
	pennies := p.Mod(penceInShilling).Floor()
	farthings := p.Sub(p.Floor()).Mul(farthingsInPenny).Floor()

	return fmt.Sprintf("£%s %ss %sd %s/4 f", pounds, shillings, pennies, farthings)
}
