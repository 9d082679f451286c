package utils

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

// ErrBadAmount marks a monetary string that could not be parsed under the
// configured locale. Distinguishable from an empty value, which converts to
// zero.
var ErrBadAmount = errors.New("unparseable amount")

// separators holds the digit-grouping and decimal characters of a locale.
type separators struct {
	group   rune
	decimal rune
}

var localeSeparators = map[string]separators{
	"en": {group: ',', decimal: '.'},
	"de": {group: '.', decimal: ','},
	"fr": {group: ' ', decimal: ','},
	"pt": {group: '.', decimal: ','},
	"es": {group: '.', decimal: ','},
}

var supportedLocales = []language.Tag{
	language.AmericanEnglish, // en-US is the default and the first match
	language.German,
	language.French,
	language.Portuguese,
	language.EuropeanSpanish,
}

var localeMatcher = language.NewMatcher(supportedLocales)

// AmountConverter parses monetary strings from the CSV according to an
// explicit locale. PayPal exports amounts formatted for the account's
// locale, so the decimal and grouping characters are configuration, not an
// ambient process setting.
type AmountConverter struct {
	tag  language.Tag
	seps separators
}

// NewAmountConverter builds a converter for the given BCP-47 tag, e.g.
// "en-US" or "de-DE". Unknown or unsupported locales are an error rather
// than a silent fallback.
func NewAmountConverter(locale string) (*AmountConverter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid numeric locale %q: %w", locale, err)
	}

	matched, _, confidence := localeMatcher.Match(tag)
	if confidence == language.No {
		return nil, fmt.Errorf("unsupported numeric locale %q", locale)
	}

	base, _ := matched.Base()
	seps, ok := localeSeparators[base.String()]
	if !ok {
		return nil, fmt.Errorf("unsupported numeric locale %q", locale)
	}

	return &AmountConverter{tag: tag, seps: seps}, nil
}

// Float converts s to its absolute value. The empty string converts to 0.0;
// amounts are stored non-negative because the debit/credit sign is encoded
// by which table the amount lands in.
func (c *AmountConverter) Float(s string) (float64, error) {
	v, err := c.SignedFloat(s)
	if err != nil {
		return 0, err
	}
	return math.Abs(v), nil
}

// SignedFloat converts s keeping its sign.
func (c *AmountConverter) SignedFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	normalized := c.normalize(s)
	v, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q (locale %s)", ErrBadAmount, s, c.tag)
	}
	return v, nil
}

// Int converts s to its absolute integer value, truncating any fraction.
func (c *AmountConverter) Int(s string) (int64, error) {
	v, err := c.Float(s)
	if err != nil {
		return 0, err
	}
	return int64(v), nil
}

// normalize strips the locale's grouping character and rewrites the locale
// decimal mark to '.'. Only the configured grouping character is stripped; a
// space inside an en-US amount is malformed input, not grouping.
func (c *AmountConverter) normalize(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == c.seps.group:
			continue
		case c.seps.group == ' ' && (r == ' ' || r == ' '):
			// Space-grouping locales show up with NBSP or narrow NBSP in
			// real exports.
			continue
		case r == c.seps.decimal:
			b.WriteRune('.')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
