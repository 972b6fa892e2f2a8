package model

import (
	"math/big"
	"strings"
)

const (
	// EtherDecimals is the number of decimals between wei and ether.
	EtherDecimals = 18
	// GweiDecimals is the number of decimals between wei and gwei.
	GweiDecimals = 9
)

var ten = big.NewInt(10)

// FormatUnits renders an amount in the chain's smallest unit as a decimal
// string shifted left by the given number of decimals. The conversion is
// exact: no floating point is involved, and trailing fractional zeros are
// trimmed. A nil amount renders as "0".
func FormatUnits(amount *big.Int, decimals int) string {
	if amount == nil || amount.Sign() == 0 {
		return "0"
	}

	sign := ""
	abs := new(big.Int).Abs(amount)
	if amount.Sign() < 0 {
		sign = "-"
	}

	divisor := new(big.Int).Exp(ten, big.NewInt(int64(decimals)), nil)
	quo, rem := new(big.Int).QuoRem(abs, divisor, new(big.Int))

	if rem.Sign() == 0 {
		return sign + quo.String()
	}

	frac := rem.String()
	for len(frac) < decimals {
		frac = "0" + frac
	}
	frac = strings.TrimRight(frac, "0")

	return sign + quo.String() + "." + frac
}

// WeiToEther renders a wei amount as an ether decimal string.
func WeiToEther(wei *big.Int) string {
	return FormatUnits(wei, EtherDecimals)
}

// WeiToGwei renders a wei amount as a gwei decimal string.
func WeiToGwei(wei *big.Int) string {
	return FormatUnits(wei, GweiDecimals)
}
