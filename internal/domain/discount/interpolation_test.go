package discount_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/DropZone-api/internal/domain"
	"github.com/jhoicas/DropZone-api/internal/domain/discount"
)

// ──────────────────────────────────────────────────────────────────────────────
// Calibración de referencia: 5% → 25% entre 5.000 y 30.000 reservados.
// ──────────────────────────────────────────────────────────────────────────────

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func refBounds() discount.Bounds {
	return discount.Bounds{
		MinDiscount:         d("5"),
		MaxDiscount:         d("25"),
		MinReservationValue: d("5000"),
		MaxReservationValue: d("30000"),
	}
}

func interpolate(t *testing.T, value string, b discount.Bounds) decimal.Decimal {
	t.Helper()
	out, err := discount.Interpolate(d(value), b)
	require.NoError(t, err)
	return out
}

func TestInterpolate_Ejemplos(t *testing.T) {
	cases := []struct {
		value string
		want  string
	}{
		{"17500", "15"}, // punto medio
		{"5000", "5"},
		{"30000", "25"},
		{"0", "5"},
		{"4900", "5"},
		{"30100", "25"},
		{"10000", "9"},
	}
	for _, tc := range cases {
		got := interpolate(t, tc.value, refBounds())
		assert.Truef(t, got.Equal(d(tc.want)), "f(%s) = %s, esperado %s", tc.value, got, tc.want)
	}
}

func TestInterpolate_Redondeo(t *testing.T) {
	b := discount.Bounds{
		MinDiscount:         d("0"),
		MaxDiscount:         d("20"),
		MinReservationValue: d("0"),
		MaxReservationValue: d("30"),
	}
	// 20 * 22/30 = 14.666…
	got := interpolate(t, "22", b)
	assert.Equal(t, "14.67", got.StringFixed(2))
	assert.True(t, got.Equal(d("14.67")))
}

func TestInterpolate_LimitesExactos(t *testing.T) {
	bounds := []discount.Bounds{
		refBounds(),
		{MinDiscount: d("1.5"), MaxDiscount: d("12.25"), MinReservationValue: d("100"), MaxReservationValue: d("101")},
		{MinDiscount: d("0"), MaxDiscount: d("100"), MinReservationValue: d("0"), MaxReservationValue: d("1000000")},
	}
	for _, b := range bounds {
		lo, err := discount.Interpolate(b.MinReservationValue, b)
		require.NoError(t, err)
		hi, err := discount.Interpolate(b.MaxReservationValue, b)
		require.NoError(t, err)
		assert.True(t, lo.Equal(b.MinDiscount), "f(minRV) debe ser minD")
		assert.True(t, hi.Equal(b.MaxDiscount), "f(maxRV) debe ser maxD")

		below, _ := discount.Interpolate(b.MinReservationValue.Sub(d("100")), b)
		above, _ := discount.Interpolate(b.MaxReservationValue.Add(d("100")), b)
		assert.True(t, below.Equal(b.MinDiscount), "debe recortar por debajo")
		assert.True(t, above.Equal(b.MaxDiscount), "debe recortar por encima")
	}
}

func TestInterpolate_Monotona(t *testing.T) {
	b := refBounds()
	prev := decimal.Zero
	for v := int64(5000); v <= 30000; v += 137 {
		got, err := discount.Interpolate(decimal.NewFromInt(v), b)
		require.NoError(t, err)
		assert.Truef(t, got.GreaterThanOrEqual(prev), "f(%d)=%s < %s", v, got, prev)
		prev = got
	}
}

func TestInterpolate_LimitesInvalidos(t *testing.T) {
	cases := map[string]discount.Bounds{
		"valores iguales": {MinDiscount: d("5"), MaxDiscount: d("25"), MinReservationValue: d("1000"), MaxReservationValue: d("1000")},
		"valores invertidos": {MinDiscount: d("5"), MaxDiscount: d("25"), MinReservationValue: d("2000"), MaxReservationValue: d("1000")},
		"descuentos invertidos": {MinDiscount: d("30"), MaxDiscount: d("25"), MinReservationValue: d("0"), MaxReservationValue: d("1000")},
		"descuento > 100": {MinDiscount: d("5"), MaxDiscount: d("101"), MinReservationValue: d("0"), MaxReservationValue: d("1000")},
		"valor mínimo negativo": {MinDiscount: d("5"), MaxDiscount: d("25"), MinReservationValue: d("-1"), MaxReservationValue: d("1000")},
	}
	for name, b := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := discount.Interpolate(d("500"), b)
			assert.ErrorIs(t, err, domain.ErrInvalidBounds)
		})
	}
}

func TestApplyDiscount(t *testing.T) {
	assert.Equal(t, "85.00", discount.ApplyDiscount(d("100"), d("15")).StringFixed(2))
	assert.Equal(t, "29.33", discount.ApplyDiscount(d("33.33"), d("12")).StringFixed(2))
	assert.Equal(t, "0.00", discount.ApplyDiscount(d("250"), d("100")).StringFixed(2))
}

func TestProgress(t *testing.T) {
	b := refBounds()
	assert.True(t, discount.Progress(d("0"), b).IsZero())
	assert.True(t, discount.Progress(d("17500"), b).Equal(d("0.5")))
	assert.True(t, discount.Progress(d("99999"), b).Equal(d("1")))
}

func TestValueForDiscount_EsInversa(t *testing.T) {
	b := refBounds()
	v, err := discount.ValueForDiscount(d("15"), b)
	require.NoError(t, err)
	assert.True(t, v.Equal(d("17500")))

	back := interpolate(t, v.String(), b)
	assert.True(t, back.Equal(d("15")))

	lo, _ := discount.ValueForDiscount(d("1"), b)
	assert.True(t, lo.Equal(b.MinReservationValue))
}

func TestValueForDiscount_RedondeaHaciaArriba(t *testing.T) {
	// pendiente fuerte: 3 puntos por unidad de valor
	b := discount.Bounds{
		MinDiscount:         d("0"),
		MaxDiscount:         d("3"),
		MinReservationValue: d("100"),
		MaxReservationValue: d("101"),
	}
	for _, pct := range []string{"1", "2"} {
		v, err := discount.ValueForDiscount(d(pct), b)
		require.NoError(t, err)
		got := interpolate(t, v.String(), b)
		assert.True(t, got.GreaterThanOrEqual(d(pct)), "valor %s da %s, se esperaba al menos %s", v, got, pct)
	}
	v, _ := discount.ValueForDiscount(d("1"), b)
	assert.True(t, v.Equal(d("100.34")), "got %s", v)
}
