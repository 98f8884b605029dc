package ledger

import (
	"fmt"
	"strconv"
	"strings"
)

// NextChallanNumber returns the next sequential challan number for a
// prefix: one past the highest numeric suffix already issued under it,
// zero-padded to three digits. Numbers under other prefixes and numbers
// without a numeric suffix are ignored.
func NextChallanNumber(prefix string, existing []string) string {
	max := int64(0)
	for _, number := range existing {
		suffix, ok := strings.CutPrefix(number, prefix)
		if !ok {
			continue
		}
		suffix = strings.TrimPrefix(suffix, "-")
		n, err := strconv.ParseInt(suffix, 10, 64)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s-%03d", prefix, max+1)
}

// ChallanNumbers collects the numbers already recorded in a snapshot.
func ChallanNumbers(s State) []string {
	numbers := make([]string, 0, len(s.Challans))
	for _, c := range s.Challans {
		numbers = append(numbers, c.Number)
	}
	return numbers
}
