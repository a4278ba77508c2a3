package ident

import "encoding/binary"

// Barcode builds an EAN-13 compatible barcode from a country code, a
// manufacturer code, a five-digit product code drawn from the factory's
// entropy source, and the trailing check digit.
func (f *Factory) Barcode(countryCode, manufacturerCode string) string {
	u := f.entropy()
	product := binary.BigEndian.Uint32(u[:4]) % 10000
	base := countryCode + manufacturerCode + pad5(product)
	return base + string(rune('0'+ean13CheckDigit(base)))
}

// ValidateBarcode reports whether the barcode is thirteen digits with a
// correct EAN-13 check digit.
func ValidateBarcode(code string) bool {
	if len(code) != 13 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return ean13CheckDigit(code[:12]) == int(code[12]-'0')
}

// ean13CheckDigit weights the digits 1,3,1,3,... left to right and returns
// the digit that brings the sum to a multiple of ten.
func ean13CheckDigit(ds string) int {
	sum := 0
	for i := 0; i < len(ds); i++ {
		d := int(ds[i] - '0')
		if i%2 == 1 {
			d *= 3
		}
		sum += d
	}
	return (10 - sum%10) % 10
}

func pad5(n uint32) string {
	buf := []byte{'0', '0', '0', '0', '0'}
	for i := 4; i >= 0 && n > 0; i-- {
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf)
}
