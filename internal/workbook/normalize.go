package workbook

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/garyjia/lodging-sap/internal/domain/entity"
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"02/01/2006",
	"02.01.2006",
	"02-01-2006",
}

// normalizeDate renders a cell as dd.mm.yyyy. Serial numbers are Excel dates.
func normalizeDate(raw string) (string, error) {
	if raw == "" {
		return "", nil
	}

	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return "", err
		}
		return t.Format(entity.HostDateLayout), nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(entity.HostDateLayout), nil
		}
	}
	return "", fmt.Errorf("unrecognized date %q", raw)
}

func normalizeEmployeeID(raw string) string {
	return strings.NewReplacer(".", "", "-", "").Replace(raw)
}

// amountNoise is the float residue tolerated when an amount is cut to cents,
// e.g. "123.45000000000001" from a formula cell
var amountNoise = decimal.New(1, -9)

// normalizeAmount renders a money cell with two decimals and a decimal comma.
// The last separator is the decimal mark: "350.75", "350,75", "1.234,56" and
// "1,234.56" are all accepted. A single separator followed by exactly three
// digits ("1.234") is ambiguous and rejected, as is any amount with cents
// beyond the second decimal.
func normalizeAmount(raw string) (string, error) {
	if raw == "" {
		return "", nil
	}

	s, err := canonicalAmount(raw)
	if err != nil {
		return "", err
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return "", fmt.Errorf("invalid amount %q", raw)
	}

	cents := d.Round(2)
	if d.Sub(cents).Abs().GreaterThan(amountNoise) {
		return "", fmt.Errorf("amount %q has more than two decimals", raw)
	}
	return strings.Replace(cents.StringFixed(2), ".", ",", 1), nil
}

// canonicalAmount rewrites raw with '.' as the decimal mark and no grouping
func canonicalAmount(raw string) (string, error) {
	dot := strings.LastIndex(raw, ".")
	comma := strings.LastIndex(raw, ",")

	switch {
	case dot < 0 && comma < 0:
		return raw, nil

	case dot >= 0 && comma >= 0:
		mark, group := dot, ","
		if comma > dot {
			mark, group = comma, "."
		}
		whole, err := ungroup(raw[:mark], group)
		if err != nil {
			return "", fmt.Errorf("invalid amount %q: %w", raw, err)
		}
		return whole + "." + raw[mark+1:], nil

	default:
		sep, mark := ".", dot
		if comma >= 0 {
			sep, mark = ",", comma
		}
		if strings.Count(raw, sep) > 1 {
			whole, err := ungroup(raw, sep)
			if err != nil {
				return "", fmt.Errorf("invalid amount %q: %w", raw, err)
			}
			return whole, nil
		}
		if len(raw)-mark-1 == 3 {
			return "", fmt.Errorf("ambiguous amount %q: %q may be a thousands separator", raw, sep)
		}
		return raw[:mark] + "." + raw[mark+1:], nil
	}
}

// ungroup drops thousands separators, which must split groups of three digits
func ungroup(s, sep string) (string, error) {
	parts := strings.Split(s, sep)
	lead := strings.TrimPrefix(parts[0], "-")
	if lead == "" || len(lead) > 3 {
		return "", fmt.Errorf("misplaced separator %q", sep)
	}
	for _, p := range parts[1:] {
		if len(p) != 3 {
			return "", fmt.Errorf("misplaced separator %q", sep)
		}
	}

	whole := strings.Join(parts, "")
	if strings.ContainsAny(whole, ".,") {
		return "", fmt.Errorf("mixed separators")
	}
	return whole, nil
}
