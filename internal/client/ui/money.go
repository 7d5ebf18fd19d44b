package ui

import "fmt"

// FormatMXN renders an amount of centavos as Mexican pesos, e.g. 123450 ->
// "$1,234.50".
func FormatMXN(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	whole := cents / 100
	frac := cents % 100

	digits := fmt.Sprintf("%d", whole)
	var grouped []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped = append(grouped, ',')
		}
		grouped = append(grouped, d)
	}

	return fmt.Sprintf("%s$%s.%02d", sign, grouped, frac)
}
