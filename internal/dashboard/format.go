// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

package dashboard

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tomtom215/taxiboard/internal/catalog"
	"github.com/tomtom215/taxiboard/internal/query"
)

// NotAvailable is shown for NULL values.
const NotAvailable = "n/a"

// Formatter renders values for display. The zero value is not usable; use
// NewFormatter.
type Formatter struct {
	printer *message.Printer
}

// NewFormatter returns a formatter for the given language tag. Grouping
// separators follow the language's conventions.
func NewFormatter(tag language.Tag) *Formatter {
	return &Formatter{printer: message.NewPrinter(tag)}
}

// Metric formats a metric-row value.
//
//	count     1,234,567
//	currency  1,234,567.50
//	decimal   11.67
func (f *Formatter) Metric(v any, format catalog.Format) (string, error) {
	if v == nil {
		return NotAvailable, nil
	}
	n, ok := query.ToFloat64(v)
	if !ok {
		return "", fmt.Errorf("value %v (%T) is not numeric", v, v)
	}

	switch format {
	case catalog.FormatCount:
		return f.printer.Sprintf("%d", int64(math.Round(n))), nil
	case catalog.FormatCurrency:
		return f.printer.Sprintf("%.2f", n), nil
	case catalog.FormatDecimal:
		return strconv.FormatFloat(n, 'f', 2, 64), nil
	default:
		return "", fmt.Errorf("unknown metric format %q", format)
	}
}

// Cell formats a raw table value.
func (f *Formatter) Cell(v any) string {
	switch x := v.(type) {
	case nil:
		return NotAvailable
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return x.Format(time.DateOnly)
		}
		return x.Format(time.DateTime)
	case int64:
		return f.printer.Sprintf("%d", x)
	case float64:
		return f.printer.Sprintf("%.2f", x)
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}
