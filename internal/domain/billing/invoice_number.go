package billing

import (
	"fmt"
	"strings"
	"time"
)

// DefaultInvoicePrefix prefijo por defecto del número de factura.
const DefaultInvoicePrefix = "INV"

// FormatInvoiceNumber construye el número de factura: <prefijo>-<año>-<consecutivo de 6 dígitos>.
// El consecutivo es anual y estrictamente creciente, por lo que el número es único.
func FormatInvoiceNumber(prefix string, year int, seq int64) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = DefaultInvoicePrefix
	}
	return fmt.Sprintf("%s-%d-%06d", prefix, year, seq)
}

// ReceiptNumber número de comprobante impreso en el PDF: <día><mes><aa>-<consecutivo de 4 dígitos>.
// Día y mes sin relleno de ceros, ej. 5 de marzo de 2024, consecutivo 12 => "5324-0012".
func ReceiptNumber(issued time.Time, seq int64) string {
	return fmt.Sprintf("%d%d%02d-%04d", issued.Day(), int(issued.Month()), issued.Year()%100, seq)
}
