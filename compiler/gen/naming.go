package gen

import (
	"strings"

	"github.com/go-openapi/inflect"
)

// Import paths for the packages generated code delegates to.
const (
	pkgRoot         = "github.com/entforge/entforge"
	pkgRules        = "github.com/entforge/entforge/rules"
	pkgStateMachine = "github.com/entforge/entforge/runtime/statemachine"
	pkgTax          = "github.com/entforge/entforge/runtime/tax"
	pkgShipping     = "github.com/entforge/entforge/runtime/shipping"
	pkgValidate     = "github.com/entforge/entforge/runtime/validate"
	pkgIdent        = "github.com/entforge/entforge/runtime/ident"
	pkgDecimal      = "github.com/shopspring/decimal"
)

// acronyms are spelled in full caps in exported names.
var acronyms = map[string]string{
	"id":   "ID",
	"cpf":  "CPF",
	"cnpj": "CNPJ",
	"cep":  "CEP",
	"nfe":  "NFE",
	"sku":  "SKU",
	"ttl":  "TTL",
	"uf":   "UF",
	"url":  "URL",
}

// exportedName turns a snake_case descriptor name into an exported Go
// identifier, keeping common acronyms in full caps.
func exportedName(name string) string {
	parts := strings.Split(strings.TrimSpace(name), "_")
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		if a, ok := acronyms[strings.ToLower(p)]; ok {
			b.WriteString(a)
			continue
		}
		b.WriteString(inflect.Capitalize(p))
	}
	return b.String()
}

// unexportedName is exportedName with a lowered first letter.
func unexportedName(name string) string {
	n := exportedName(name)
	if n == "" {
		return n
	}
	return strings.ToLower(n[:1]) + n[1:]
}

// receiverName returns the conventional one-letter receiver for a type.
func receiverName(typeName string) string {
	if typeName == "" {
		return "x"
	}
	return strings.ToLower(typeName[:1])
}

// tableName returns the default persistence table for a type: the
// pluralized snake_case of its name.
func tableName(typeName string) string {
	return inflect.Tableize(typeName)
}
