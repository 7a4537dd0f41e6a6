package rating

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Rank returns the human-readable grade for a rating, "15k" to "9d".
// Every finite rating has a label: extreme values clamp to MaxKyu and
// MaxDan.
func (s System) Rank(r float64) string {
	if r >= s.DanThreshold {
		dan := int(math.Floor((r-s.DanThreshold)/s.Step)) + 1
		if dan > s.MaxDan {
			dan = s.MaxDan
		}
		return strconv.Itoa(dan) + "d"
	}

	kyu := int(math.Ceil((s.DanThreshold - r) / s.Step))
	if kyu < 1 {
		kyu = 1
	}
	if kyu > s.MaxKyu {
		kyu = s.MaxKyu
	}

	return strconv.Itoa(kyu) + "k"
}

// ParseRank returns the rating at the middle of a rank band. It is the
// approximate inverse of Rank, meant for display and import, not for
// ordering players.
func (s System) ParseRank(label string) (float64, error) {
	var suffix string
	switch {
	case strings.HasSuffix(label, "k"), strings.HasSuffix(label, "d"):
		suffix = label[len(label)-1:]
	default:
		return 0, fmt.Errorf("invalid rank %q", label)
	}

	n, err := strconv.Atoi(label[:len(label)-1])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid rank %q", label)
	}

	if suffix == "d" {
		return s.DanThreshold + (float64(n)-0.5)*s.Step, nil
	}

	return s.DanThreshold - (float64(n)-0.5)*s.Step, nil
}
