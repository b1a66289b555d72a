package model

import (
	"fmt"
	"strings"
)

// InvoicePrefix is the literal prefix carried by every generated invoice
// number.
const InvoicePrefix = "INV-"

// NextEstimateNumber computes the next estimate number: the maximum of all
// existing numbers parsed as integers (non-numeric numbers are ignored) plus
// one, zero-padded to 4 digits unless the value needs more.
//
// Collisions are not checked here; the save path handles them.
func NextEstimateNumber(docs []Document) string {
	maxNumber := 0
	for _, d := range docs {
		if n, ok := leadingInt(d.Number); ok && n > maxNumber {
			maxNumber = n
		}
	}

	next := maxNumber + 1
	width := 4
	if digits := len(fmt.Sprint(next)); digits > width {
		width = digits
	}
	return fmt.Sprintf("%0*d", width, next)
}

// NextInvoiceNumber computes the next invoice number from the LAST record in
// storage order only: parse the numeric suffix after the fixed prefix,
// increment, zero-pad to 4 digits and re-apply the prefix.
//
// Unlike estimate numbering this ignores higher-numbered invoices earlier
// in the sequence. Existing books depend on both schemes staying as they
// are.
func NextInvoiceNumber(docs []Document) string {
	last := 0
	if len(docs) > 0 {
		suffix := strings.TrimPrefix(docs[len(docs)-1].Number, InvoicePrefix)
		if n, ok := leadingInt(suffix); ok {
			last = n
		}
	}
	return fmt.Sprintf("%s%04d", InvoicePrefix, last+1)
}

// NextNumber dispatches to the numbering scheme for the given kind.
func NextNumber(kind Kind, docs []Document) string {
	if kind == KindInvoice {
		return NextInvoiceNumber(docs)
	}
	return NextEstimateNumber(docs)
}

// leadingInt parses the leading run of ASCII digits in s. It reports false
// when s does not start with a digit.
func leadingInt(s string) (int, bool) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, false
	}
	n := 0
	for _, c := range s[:i] {
		n = n*10 + int(c-'0')
	}
	return n, true
}
