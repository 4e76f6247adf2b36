// Package storage contiene las reglas puras de los códigos de ubicación en bodega.
//
// Formato canónico: EST<Letra>-F<Número>-P<Posición>[-<Desambiguador>], ej. ESTA-F1-P3.
// La letra y el número salen de la etiqueta de la caja (A1 → A, 1); la posición es el
// siguiente hueco libre dentro de la caja.
package storage

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// FallbackLetter se usa cuando la etiqueta de la caja llega vacía.
const FallbackLetter = "X"

var (
	boxLabelPattern    = regexp.MustCompile(`^[A-Z]+(\d+)$`)
	strictBoxPattern   = regexp.MustCompile(`^[A-Z]\d+$`)
	locationCodeFormat = regexp.MustCompile(`^EST[A-Z]-F\d+-P\d+(-\d+)?$`)
)

// exampleCodes se devuelven como sugerencia cuando un código no cumple el formato.
var exampleCodes = []string{"ESTA-F1-P1", "ESTB-F2-P3", "ESTC-F1-P12"}

// ParseBoxLabel extrae la letra y el número de una etiqueta de caja.
// "a12" → ("A", "12"); "AB7" → ("A", "7"); cualquier otra cosa → (primer carácter, "1").
// Nunca falla: una etiqueta vacía produce ("X", "1").
func ParseBoxLabel(input string) (letter, number string) {
	label := strings.ToUpper(strings.TrimSpace(input))
	if m := boxLabelPattern.FindStringSubmatch(label); m != nil {
		return label[:1], m[1]
	}
	if label == "" {
		return FallbackLetter, "1"
	}
	r, _ := utf8.DecodeRuneInString(label)
	return string(r), "1"
}

// IsStrictBoxLabel indica si la etiqueta es exactamente una letra seguida de dígitos (A1, b12).
// Solo estas cajas se envían al generador automático de la base de datos.
func IsStrictBoxLabel(input string) bool {
	return strictBoxPattern.MatchString(strings.ToUpper(strings.TrimSpace(input)))
}

// NormalizeCode recorta y pasa a mayúsculas un código de ubicación.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsValidFormat valida el formato canónico (sin distinguir mayúsculas).
func IsValidFormat(code string) bool {
	c := NormalizeCode(code)
	return c != "" && locationCodeFormat.MatchString(c)
}

// BuildCode arma EST{letra}-F{número}-P{posición}.
func BuildCode(letter, number string, position int) string {
	return fmt.Sprintf("EST%s-F%s-P%d", letter, number, position)
}

// BoxPrefix es la parte EST{L}-F{N} que comparten todos los códigos generados para la caja.
// Etiquetas distintas que se interpretan igual (A1, a1) devuelven el mismo prefijo.
func BoxPrefix(box string) string {
	letter, number := ParseBoxLabel(box)
	return "EST" + letter + "-F" + number
}

// Disambiguate agrega los últimos 3 dígitos del timestamp (ms) a un código que ya existe.
func Disambiguate(code string, now time.Time) string {
	return code + "-" + lastDigits(now, 3)
}

// FallbackCode es el código de último recurso cuando la generación manual falla.
func FallbackCode(now time.Time) string {
	return "EST-AUTO-" + lastDigits(now, 6)
}

// ExampleCodes devuelve ejemplos de códigos válidos para mensajes de error.
func ExampleCodes() []string {
	out := make([]string, len(exampleCodes))
	copy(out, exampleCodes)
	return out
}

func lastDigits(now time.Time, n int) string {
	s := strconv.FormatInt(now.UnixMilli(), 10)
	if len(s) <= n {
		return strings.Repeat("0", n-len(s)) + s
	}
	return s[len(s)-n:]
}
