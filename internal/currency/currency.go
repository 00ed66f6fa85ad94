// Package currency форматирует и разбирает суммы в рупиях с индийской
// группировкой разрядов (12,34,567.89).
package currency

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/cloud-ru/mba-roi-go/pkg/utils"
	"github.com/shopspring/decimal"
)

// Symbol символ валюты, которым префиксуются все суммы
const Symbol = "₹"

// ErrInvalidNumeral возвращается, когда после удаления символа валюты и
// разделителей остается не десятичное число
var ErrInvalidNumeral = errors.New("not a valid decimal numeral")

var numeral = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)

// ParseError описывает строку, которую не удалось разобрать как сумму
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("currency: cannot parse %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Format возвращает сумму с символом рупии, индийской группировкой и двумя
// знаками после запятой: 2150000 -> "₹21,50,000.00".
// Отрицательные суммы выводятся как "-₹1,500.00".
func Format(value float64) string {
	if !utils.IsFinite(value) {
		return Symbol + strconv.FormatFloat(value, 'f', -1, 64)
	}

	d := decimal.NewFromFloat(value).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}

	intPart, fracPart, _ := strings.Cut(d.StringFixed(2), ".")
	return sign + Symbol + groupIndian(intPart) + "." + fracPart
}

// FormatPercent возвращает процент с двумя знаками: 12.345 -> "12.35%"
func FormatPercent(value float64) string {
	if !utils.IsFinite(value) {
		return strconv.FormatFloat(value, 'f', -1, 64) + "%"
	}
	return decimal.NewFromFloat(value).StringFixed(2) + "%"
}

// Parse разбирает сумму, введенную пользователем: символ валюты, пробелы по
// краям и запятые-разделители игнорируются, остаток должен быть десятичным числом.
func Parse(text string) (float64, error) {
	s := strings.ReplaceAll(text, Symbol, "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	if !numeral.MatchString(s) {
		return 0, &ParseError{Input: text, Err: ErrInvalidNumeral}
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, &ParseError{Input: text, Err: fmt.Errorf("%w: %v", ErrInvalidNumeral, err)}
	}

	value, _ := d.Float64()
	return value, nil
}

// groupIndian расставляет запятые: последние три цифры, затем группы по две
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	groups := make([]string, 0, len(head)/2+2)
	for len(head) > 2 {
		groups = append(groups, head[len(head)-2:])
		head = head[:len(head)-2]
	}
	groups = append(groups, head)

	// группы собраны справа налево
	for i, j := 0, len(groups)-1; i < j; i, j = i+1, j-1 {
		groups[i], groups[j] = groups[j], groups[i]
	}
	return strings.Join(append(groups, tail), ",")
}
