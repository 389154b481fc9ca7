// Package textfold maps Unicode "mathematical alphanumeric" styled letters
// back to plain ASCII so that marker matching works on posts decorated with
// bold lookalikes (𝗧𝗿𝗶𝗽 𝗜𝗗 → Trip ID).
package textfold

import "strings"

// Style ranges from the Mathematical Alphanumeric Symbols block. Each range
// holds A-Z followed by a-z at a fixed offset from 'A'.
var letterRangeStarts = []rune{
	0x1D400, // bold
	0x1D434, // italic
	0x1D468, // bold italic
	0x1D5A0, // sans-serif
	0x1D5D4, // sans-serif bold
	0x1D608, // sans-serif italic
	0x1D63C, // sans-serif bold italic
	0x1D670, // monospace
}

// Digit ranges, 0-9 each.
var digitRangeStarts = []rune{
	0x1D7CE, // bold
	0x1D7E2, // sans-serif
	0x1D7EC, // sans-serif bold
	0x1D7F6, // monospace
}

var foldTable = buildFoldTable()

func buildFoldTable() map[rune]rune {
	table := make(map[rune]rune, len(letterRangeStarts)*52+len(digitRangeStarts)*10)
	for _, start := range letterRangeStarts {
		for i := rune(0); i < 26; i++ {
			table[start+i] = 'A' + i
			table[start+26+i] = 'a' + i
		}
	}
	for _, start := range digitRangeStarts {
		for i := rune(0); i < 10; i++ {
			table[start+i] = '0' + i
		}
	}
	return table
}

// Fold replaces styled letters and digits with their ASCII equivalents.
// Runes outside the table pass through unchanged.
func Fold(s string) string {
	styled := false
	for _, r := range s {
		if r >= 0x1D400 {
			styled = true
			break
		}
	}
	if !styled {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if plain, ok := foldTable[r]; ok {
			b.WriteRune(plain)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
