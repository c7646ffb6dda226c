package textproc

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"
)

// Normalize приводит текст к канонической форме: остаются только буквы и
// цифры в нижнем регистре, все остальные символы становятся пробелами,
// последовательности пробельных символов схлопываются в один пробел.
// Две работы считаются дубликатами тогда и только тогда, когда их
// нормализованные тексты совпадают.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))

	for _, r := range raw {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// Fingerprint считает SHA-256 от UTF-8 представления нормализованного
// текста и возвращает его в нижнем регистре в hex.
func Fingerprint(normalized string) string {
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}
