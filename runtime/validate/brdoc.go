package validate

import "strings"

// digits strips everything but ASCII digits.
func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// allSame reports whether every byte equals the first. Sequences like
// 111.111.111-11 pass the check-digit math but are reserved as invalid.
func allSame(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

// checkDigit computes a mod-11 verification digit over ds with descending
// weights starting at w.
func checkDigit(ds string, w int) int {
	sum := 0
	for i := 0; i < len(ds); i++ {
		sum += int(ds[i]-'0') * (w - i)
	}
	if r := sum % 11; r >= 2 {
		return 11 - r
	}
	return 0
}

// weightedDigit computes a mod-11 verification digit over ds with an
// explicit weight vector, as CNPJ requires.
func weightedDigit(ds string, weights []int) int {
	sum := 0
	for i := 0; i < len(ds); i++ {
		sum += int(ds[i]-'0') * weights[i]
	}
	if r := sum % 11; r >= 2 {
		return 11 - r
	}
	return 0
}

var (
	cnpjWeights1 = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjWeights2 = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// IsCPF validates a Brazilian individual taxpayer id (CPF) including both
// verification digits. Formatting characters are ignored.
func IsCPF(cpf string) bool {
	ds := digits(cpf)
	if len(ds) != 11 || allSame(ds) {
		return false
	}
	if checkDigit(ds[:9], 10) != int(ds[9]-'0') {
		return false
	}
	return checkDigit(ds[:10], 11) == int(ds[10]-'0')
}

// IsCNPJ validates a Brazilian business taxpayer id (CNPJ) including both
// verification digits. Formatting characters are ignored.
func IsCNPJ(cnpj string) bool {
	ds := digits(cnpj)
	if len(ds) != 14 || allSame(ds) {
		return false
	}
	if weightedDigit(ds[:12], cnpjWeights1) != int(ds[12]-'0') {
		return false
	}
	return weightedDigit(ds[:13], cnpjWeights2) == int(ds[13]-'0')
}

// IsCEP validates a Brazilian postal code: eight digits, not all zero.
func IsCEP(cep string) bool {
	ds := digits(cep)
	return len(ds) == 8 && !allSame(ds)
}

// IsPhone validates a Brazilian phone number: ten digits for landlines,
// eleven for mobiles (third digit 6-9), thirteen with the +55 country code.
func IsPhone(phone string) bool {
	ds := digits(phone)
	switch len(ds) {
	case 10:
		return true
	case 11:
		return ds[2] >= '6'
	case 13:
		return strings.HasPrefix(ds, "55")
	default:
		return false
	}
}

// IsEmail performs a structural email check: one @, a dot in the domain,
// non-empty local and domain parts.
func IsEmail(email string) bool {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at != strings.LastIndexByte(email, '@') {
		return false
	}
	local, domain := email[:at], email[at+1:]
	if local == "" || domain == "" || strings.ContainsAny(email, " \t") {
		return false
	}
	dot := strings.IndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1
}

// ufs is the set of the 26 state codes plus the federal district.
var ufs = map[string]bool{
	"AC": true, "AL": true, "AP": true, "AM": true, "BA": true, "CE": true,
	"DF": true, "ES": true, "GO": true, "MA": true, "MT": true, "MS": true,
	"MG": true, "PA": true, "PB": true, "PR": true, "PE": true, "PI": true,
	"RJ": true, "RN": true, "RS": true, "RO": true, "RR": true, "SC": true,
	"SP": true, "SE": true, "TO": true,
}

// IsUF validates a Brazilian federative-unit code.
func IsUF(uf string) bool {
	return ufs[strings.ToUpper(strings.TrimSpace(uf))]
}
