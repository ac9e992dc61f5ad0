package importer

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parsePrice reads a Brazilian-formatted amount: "1.234,56", "R$ 10,00",
// "4,5". A value with a single dot and no comma ("10.50") is read as a
// decimal point.
func parsePrice(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(clean, "R$")
	clean = strings.ReplaceAll(clean, " ", "")

	if strings.Contains(clean, ",") {
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	} else if strings.Count(clean, ".") > 1 {
		clean = strings.ReplaceAll(clean, ".", "")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, err
	}

	return d.Round(2), nil
}
