package stats

import (
	"fmt"
	"math"
	"strings"
)

// Statistic computes a value from the cells of a 2×2 contingency table.
type Statistic func(a, b, c, d uint64) float64

// FisherT returns the hypergeometric point probability of observing exactly
// the table (a, b, c, d) given its margins:
//
//	(a+b)! (c+d)! (a+c)! (b+d)! / (a! b! c! d! n!)
//
// The factorials are never formed. The product is accumulated one index at a
// time over i = 1..n: every step divides by i and multiplies by i once for
// each factor range (a, a+b], (b, b+d], (c, a+c], (d, c+d] containing i. The
// accumulation runs in log space so tables over large universes neither
// overflow nor underflow part way through.
//
// The result lies in [0, 1] and is invariant under swapping the rows or the
// columns of the table.
func FisherT(a, b, c, d uint64) float64 {
	n := a + b + c + d
	logP := 0.0
	for i := uint64(1); i <= n; i++ {
		k := 0
		if i > a && i <= a+b {
			k++
		}
		if i > b && i <= b+d {
			k++
		}
		if i > c && i <= a+c {
			k++
		}
		if i > d && i <= c+d {
			k++
		}
		if k != 1 {
			logP += float64(k-1) * math.Log(float64(i))
		}
	}
	p := math.Exp(logP)
	if p > 1 {
		return 1
	}
	return p
}

// FoldChange returns (a/(a+c)) / (b/(b+d)).
//
// It returns the neutral value 1.0 when either row is empty or the
// background proportion is zero.
func FoldChange(a, b, c, d uint64) float64 {
	if a+c == 0 || b+d == 0 {
		return 1.0
	}
	r1 := float64(a) / float64(a+c)
	r2 := float64(b) / float64(b+d)
	if r2 == 0 {
		return 1.0
	}
	return r1 / r2
}

// Kind identifies a built-in statistic.
type Kind int

const (
	// KindFisher selects FisherT.
	KindFisher Kind = iota
	// KindFoldChange selects FoldChange.
	KindFoldChange
)

// String returns the name ParseKind accepts for k.
func (k Kind) String() string {
	switch k {
	case KindFisher:
		return "fisher"
	case KindFoldChange:
		return "fold"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// ParseKind parses "fisher" or "fold" (case-insensitive).
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fisher":
		return KindFisher, nil
	case "fold", "foldchange", "fold-change":
		return KindFoldChange, nil
	default:
		return 0, fmt.Errorf("unknown statistic: %q", s)
	}
}

// Provider returns the statistic function for k.
func Provider(k Kind) (Statistic, error) {
	switch k {
	case KindFisher:
		return FisherT, nil
	case KindFoldChange:
		return FoldChange, nil
	default:
		return nil, fmt.Errorf("unsupported statistic: %v", k)
	}
}
