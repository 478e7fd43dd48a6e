package payment

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// formatRupees renders amount with Indian digit grouping (1,23,456.5),
// at most two fraction digits and no trailing zeros.
func formatRupees(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	paise := int64(math.Round(amount * 100))
	whole, frac := paise/100, paise%100

	digits := strconv.FormatInt(whole, 10)
	var b strings.Builder
	if len(digits) > 3 {
		head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
		lead := len(head) % 2
		if lead > 0 {
			b.WriteString(head[:lead])
		}
		for i := lead; i < len(head); i += 2 {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(head[i : i+2])
		}
		b.WriteByte(',')
		b.WriteString(tail)
	} else {
		b.WriteString(digits)
	}

	out := sign + b.String()
	if frac > 0 {
		out += "." + strings.TrimRight(fmt.Sprintf("%02d", frac), "0")
	}
	return out
}

// formatDate renders t as M/D/YYYY.
func formatDate(t time.Time) string {
	return t.Format("1/2/2006")
}
