package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrazilianDocuments(t *testing.T) {
	t.Run("CPF check digits", func(t *testing.T) {
		assert.True(t, IsCPF("529.982.247-25"))
		assert.True(t, IsCPF("52998224725"))
		assert.False(t, IsCPF("529.982.247-26"))
		assert.False(t, IsCPF("111.111.111-11"))
		assert.False(t, IsCPF("1234567890"))
	})

	t.Run("CNPJ check digits", func(t *testing.T) {
		assert.True(t, IsCNPJ("11.222.333/0001-81"))
		assert.True(t, IsCNPJ("11222333000181"))
		assert.False(t, IsCNPJ("11.222.333/0001-82"))
		assert.False(t, IsCNPJ("11111111111111"))
	})

	t.Run("CEP format", func(t *testing.T) {
		assert.True(t, IsCEP("01310-100"))
		assert.True(t, IsCEP("01310100"))
		assert.False(t, IsCEP("0131010"))
		assert.False(t, IsCEP("00000000"))
	})

	t.Run("phone formats", func(t *testing.T) {
		assert.True(t, IsPhone("(11) 3456-7890"), "landline")
		assert.True(t, IsPhone("(11) 98765-4321"), "mobile")
		assert.True(t, IsPhone("+55 11 98765-4321"), "with country code")
		assert.False(t, IsPhone("(11) 18765-4321"), "mobile must start 6-9")
		assert.False(t, IsPhone("123"))
	})

	t.Run("email structure", func(t *testing.T) {
		assert.True(t, IsEmail("ana@example.com.br"))
		assert.False(t, IsEmail("ana@example"))
		assert.False(t, IsEmail("@example.com"))
		assert.False(t, IsEmail("ana@@example.com"))
		assert.False(t, IsEmail("ana silva@example.com"))
	})

	t.Run("state codes", func(t *testing.T) {
		assert.True(t, IsUF("SP"))
		assert.True(t, IsUF(" df "))
		assert.False(t, IsUF("XX"))
	})
}

func TestCheck(t *testing.T) {
	t.Run("empty values pass format rules", func(t *testing.T) {
		for _, k := range []Kind{Email, Phone, NationalTaxID, PostalCode, RegionCode} {
			assert.NoError(t, Check("", k), k.String())
		}
	})

	t.Run("required rejects empty", func(t *testing.T) {
		assert.Error(t, Check("  ", Required))
		assert.NoError(t, Check("x", Required))
	})

	t.Run("national tax id accepts either document", func(t *testing.T) {
		assert.NoError(t, Check("529.982.247-25", NationalTaxID))
		assert.NoError(t, Check("11.222.333/0001-81", NationalTaxID))
		assert.Error(t, Check("12345", NationalTaxID))
	})

	t.Run("no resolvable rule is success", func(t *testing.T) {
		assert.NoError(t, Check("anything", None))
	})
}

func TestValidatorAccumulates(t *testing.T) {
	v := New().
		Field("email", "not-an-email", Email).
		Field("cpf", "111.111.111-11", NationalTaxID).
		Field("cep", "01310-100", PostalCode).
		Field("name", "", Required)

	err := v.Err()
	require.Error(t, err)

	var errs *Errors
	require.ErrorAs(t, err, &errs)

	t.Run("every failure is reported at once", func(t *testing.T) {
		assert.Equal(t, 3, errs.Len())
		fields := errs.Fields()
		assert.Contains(t, fields, "email")
		assert.Contains(t, fields, "cpf")
		assert.Contains(t, fields, "name")
		assert.NotContains(t, fields, "cep")
	})

	t.Run("messages keep evaluation order", func(t *testing.T) {
		msgs := errs.Messages()
		require.Len(t, msgs, 3)
		assert.Contains(t, msgs[0], "email")
		assert.Contains(t, msgs[1], "cpf")
		assert.Contains(t, msgs[2], "name")
	})

	t.Run("context covers passing fields too", func(t *testing.T) {
		ctx := v.Context()
		require.Contains(t, ctx, "cep")
		assert.True(t, ctx["cep"].OK)
		assert.False(t, ctx["email"].OK)
		assert.Equal(t, Email, ctx["email"].Rule)
	})
}

func TestValidatorPasses(t *testing.T) {
	v := New().
		Field("email", "ana@example.com", Email).
		Custom("sku", "ABC", func(s string) error { return nil })
	assert.NoError(t, v.Err())
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, Email, KindOf("email"))
	assert.Equal(t, NationalTaxID, KindOf("national_tax_id"))
	assert.Equal(t, None, KindOf("astrology"))
}
