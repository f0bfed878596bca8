package pdf

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// MoneyFormatter formatea montos según el locale del comprobante (separadores de miles y decimales).
type MoneyFormatter struct {
	printer  *message.Printer
	currency string
}

// NewMoneyFormatter construye el formateador. Un locale inválido cae a es-CO.
func NewMoneyFormatter(locale, currency string) *MoneyFormatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.MustParse("es-CO")
	}
	return &MoneyFormatter{printer: message.NewPrinter(tag), currency: currency}
}

// Amount formatea un monto con dos decimales, ej. "$10.625,00 COP".
func (f *MoneyFormatter) Amount(d decimal.Decimal) string {
	s := f.printer.Sprint(number.Decimal(d.Round(2).InexactFloat64(), number.Scale(2)))
	if f.currency == "" {
		return "$" + s
	}
	return "$" + s + " " + f.currency
}

// Percent formatea un porcentaje, ej. "15,00%".
func (f *MoneyFormatter) Percent(d decimal.Decimal) string {
	return f.printer.Sprint(number.Decimal(d.Round(2).InexactFloat64(), number.Scale(2))) + "%"
}
