package io

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	cerrors "github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/ticks"
)

// LabelFormat formats axis values.
type LabelFormat struct {
	Prefix string `json:"prefix,omitempty" toml:"prefix"`
	Suffix string `json:"suffix,omitempty" toml:"suffix"`

	// Decimals fixes the number of fraction digits. Nil prints the
	// shortest representation.
	Decimals *int `json:"decimals,omitempty" toml:"decimals"`

	// Grouping inserts thousands separators for Locale.
	Grouping bool `json:"grouping,omitempty" toml:"grouping"`

	// Locale is a BCP 47 tag; empty means English.
	Locale string `json:"locale,omitempty" toml:"locale"`
}

// IsZero reports whether the format changes nothing.
func (f LabelFormat) IsZero() bool {
	return f.Prefix == "" && f.Suffix == "" && f.Decimals == nil && !f.Grouping
}

// Validate checks the decimals and the locale tag.
func (f LabelFormat) Validate() error {
	if f.Decimals != nil && (*f.Decimals < 0 || *f.Decimals > 12) {
		return cerrors.New(cerrors.ErrCodeInvalidChart, "decimals must be between 0 and 12 (got %d)", *f.Decimals)
	}
	if f.Locale != "" {
		if _, err := language.Parse(f.Locale); err != nil {
			return cerrors.Wrap(cerrors.ErrCodeInvalidChart, err, "invalid locale %q", f.Locale)
		}
	}
	return nil
}

// Format renders v.
func (f LabelFormat) Format(v float64) string {
	return f.Prefix + f.number(v) + f.Suffix
}

func (f LabelFormat) number(v float64) string {
	if !f.Grouping {
		prec := -1
		if f.Decimals != nil {
			prec = *f.Decimals
		}
		return strconv.FormatFloat(v, 'f', prec, 64)
	}

	p := message.NewPrinter(f.tag())
	if f.Decimals != nil {
		return p.Sprint(number.Decimal(v, number.Scale(*f.Decimals)))
	}
	return p.Sprint(number.Decimal(v, number.MaxFractionDigits(6)))
}

func (f LabelFormat) tag() language.Tag {
	if f.Locale == "" {
		return language.English
	}
	t, err := language.Parse(f.Locale)
	if err != nil {
		return language.English
	}
	return t
}

// Formatter returns the format as a tick formatter, or nil when the format
// is zero.
func (f LabelFormat) Formatter() ticks.Formatter {
	if f.IsZero() {
		return nil
	}
	return f.Format
}

// LabelFormatter returns a formatter for category labels. Labels that
// parse as numbers are formatted as numbers; others only get the prefix
// and suffix.
func (f LabelFormat) LabelFormatter() func(string) string {
	if f.IsZero() {
		return nil
	}
	return func(label string) string {
		if v, err := strconv.ParseFloat(label, 64); err == nil {
			return f.Format(v)
		}
		return f.Prefix + label + f.Suffix
	}
}
