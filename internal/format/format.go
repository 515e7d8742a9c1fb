// Package format renders prices and areas in Korean conventions.
package format

import (
	"fmt"
	"strconv"
	"strings"
)

// priceUnits are the base-10000 magnitude labels, least significant first.
var priceUnits = []string{"", "만", "억", "조"}

// pyeongPerSquareMeter converts m² to 평.
const pyeongPerSquareMeter = 0.3025

// FormatPrice renders a won amount with 만/억/조 unit grouping.
// 예: 120000000 -> "1억 2000만원"
func FormatPrice(price int64) string {
	if price == 0 {
		return "0원"
	}

	var groups []string
	remaining := price
	for i := 0; remaining > 0 && i < len(priceUnits); i++ {
		value := remaining % 10000
		if value > 0 {
			groups = append(groups, strconv.FormatInt(value, 10)+priceUnits[i])
		}
		remaining /= 10000
	}

	if len(groups) == 0 {
		return ""
	}

	// Most significant group first.
	for i, j := 0, len(groups)-1; i < j; i, j = i+1, j-1 {
		groups[i], groups[j] = groups[j], groups[i]
	}
	return strings.Join(groups, " ") + "원"
}

// FormatArea converts m² to an approximate 평 string with two decimals.
// 예: 84.5 -> "약 25.56평"
func FormatArea(m2 float64) string {
	if m2 <= 0 {
		return ""
	}
	return fmt.Sprintf("약 %.2f평", m2*pyeongPerSquareMeter)
}
