package tabular

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Formatos aceitos para colunas de data, na ordem de tentativa
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999 -0700 MST",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999-07",
	"2006-01-02T15:04:05.999999999-07",
	"2006-01-02 15:04:05.999999999 MST",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04",
	time.DateOnly,
	"2006/01/02",
	"02/01/2006",
	"02-01-2006",
}

// ParseID converte ids inteiros, aceitando floats integrais como "10.0"
func ParseID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return id, nil
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) ||
		f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, errors.Errorf("id inválido: %q", raw)
	}

	return int64(f), nil
}

// ParseOptionalID trata nulo como ausência
func ParseOptionalID(raw *string) (*int64, error) {
	if raw == nil {
		return nil, nil
	}

	id, err := ParseID(*raw)
	if err != nil {
		return nil, err
	}

	return &id, nil
}

// ParseOptionalFloat converte valores numéricos, tratando nulo e inválido como ausência.
// Vírgula só é aceita como separador de milhar ("1,234.5"); "1,5" é ambíguo e vira nulo.
func ParseOptionalFloat(raw *string) *float64 {
	if raw == nil {
		return nil
	}

	v := strings.TrimSpace(*raw)
	if strings.Contains(v, ",") {
		if !strings.Contains(v, ".") {
			return nil
		}
		v = strings.ReplaceAll(v, ",", "")
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}

	return &f
}

// ParseOptionalTime se comporta como pd.to_datetime(errors='coerce'): falha vira nulo
func ParseOptionalTime(raw *string) *time.Time {
	if raw == nil {
		return nil
	}

	v := strings.TrimSpace(*raw)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return &t
		}
	}

	return nil
}

// ParseOptionalText normaliza ids textuais como transactionid ("123.0" vira "123")
func ParseOptionalText(raw *string) *string {
	if raw == nil {
		return nil
	}

	v := *raw
	if f, err := strconv.ParseFloat(v, 64); err == nil && !math.IsInf(f, 0) && f == math.Trunc(f) && strings.Contains(v, ".") {
		v = strconv.FormatInt(int64(f), 10)
	}

	return &v
}

func textOrEmpty(raw *string) string {
	if raw == nil {
		return ""
	}
	return *raw
}
