package variant

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/fekuna/omnipos-mall-service/internal/pkg/i18n"
	"github.com/shopspring/decimal"
)

var priceFormat = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

// Validate checks every record against fields. Each field reports at most one message: the first
// failing check wins. The returned slice always has one (possibly empty) map per record.
func Validate(records []Record, fields []Field) (bool, []ErrorMap) {
	valid := true
	errs := make([]ErrorMap, len(records))

	for i, rec := range records {
		errs[i] = ErrorMap{}
		for _, f := range fields {
			if msg, ok := checkField(f, rec.Data); !ok {
				errs[i][f.ID] = msg
				valid = false
			}
		}
	}
	return valid, errs
}

func checkField(f Field, data map[string]any) (string, bool) {
	value := data[f.ID]
	empty := isEmpty(value)

	if f.Required && empty {
		return i18n.T("variant.required", map[string]any{"Title": f.Title}), false
	}

	if f.MaxLength != nil {
		if s, ok := value.(string); ok && utf8.RuneCountInString(s) > *f.MaxLength {
			return i18n.T("variant.max_length", map[string]any{"Title": f.Title, "MaxLength": *f.MaxLength}), false
		}
	}

	if f.Min != nil {
		if n, ok := asDecimal(value); ok && n.LessThan(decimal.NewFromFloat(*f.Min)) {
			return i18n.T("variant.min", map[string]any{"Title": f.Title, "Min": formatFloat(*f.Min)}), false
		}
	}

	if f.Type == TypeNumber && !empty {
		n, ok := asDecimal(value)
		if !ok {
			return i18n.T("variant.not_number", map[string]any{"Title": f.Title}), false
		}
		if n.IsNegative() {
			return i18n.T("variant.negative", map[string]any{"Title": f.Title}), false
		}
	}

	if f.ValueInDecimal && !empty {
		if _, ok := asDecimal(value); !ok {
			return i18n.T("variant.not_decimal", map[string]any{"Title": f.Title}), false
		}
	}

	if f.ID == FieldPrice && !empty && !priceFormat.MatchString(asText(value)) {
		return i18n.T("variant.price_format", nil), false
	}

	if f.ID == FieldPurchasePrice && !empty {
		if !priceFormat.MatchString(asText(value)) {
			return i18n.T("variant.purchase_price_format", nil), false
		}
		selling, okSelling := asDecimal(value)
		mrp, okMRP := asDecimal(data[FieldPrice])
		if okSelling && okMRP && selling.GreaterThan(mrp) {
			return i18n.T("variant.purchase_above_price", nil), false
		}
	}

	return "", true
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case []string:
		return len(t) == 0
	}
	return false
}

// asDecimal accepts JSON numbers and numeric strings. Blank strings are not numbers.
func asDecimal(v any) (decimal.Decimal, bool) {
	switch t := v.(type) {
	case float64:
		return decimal.NewFromFloat(t), true
	case float32:
		return decimal.NewFromFloat32(t), true
	case int:
		return decimal.NewFromInt(int64(t)), true
	case int64:
		return decimal.NewFromInt(t), true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return decimal.Decimal{}, false
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Decimal{}, false
		}
		return d, true
	}
	return decimal.Decimal{}, false
}

func asText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	}
	return fmt.Sprint(v)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
