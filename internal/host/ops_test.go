package host_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jsl-lang/jsl/internal/host"
	"github.com/jsl-lang/jsl/internal/value"
)

func TestCryptoHash_IsDeterministicSHA256Hex(t *testing.T) {
	host.SetCapabilities(nil)
	defer host.SetCapabilities(nil)

	r1, err := host.Dispatch("crypto/hash", []value.Value{value.String("hello")})
	require.NoError(t, err)
	m1, ok := r1.(*value.Map)
	require.True(t, ok)
	h1, ok := m1.Get("hash")
	require.True(t, ok)
	require.Len(t, string(h1.(value.String)), 64)

	r2, err := host.Dispatch("crypto/hash", []value.Value{value.String("hello")})
	require.NoError(t, err)
	m2 := r2.(*value.Map)
	h2, _ := m2.Get("hash")
	require.Equal(t, h1, h2)

	r3, err := host.Dispatch("crypto/hash", []value.Value{value.String("goodbye")})
	require.NoError(t, err)
	m3 := r3.(*value.Map)
	h3, _ := m3.Get("hash")
	require.NotEqual(t, h1, h3)
}

func TestCryptoHash_RejectsNonString(t *testing.T) {
	host.SetCapabilities(nil)
	defer host.SetCapabilities(nil)
	_, err := host.Dispatch("crypto/hash", []value.Value{value.Number(1)})
	require.Error(t, err)
}

func TestCryptoRandom_ProducesV4ShapedUUID(t *testing.T) {
	host.SetCapabilities(nil)
	defer host.SetCapabilities(nil)
	r, err := host.Dispatch("crypto/random", nil)
	require.NoError(t, err)
	m := r.(*value.Map)
	uuidVal, ok := m.Get("uuid")
	require.True(t, ok)
	uuid := string(uuidVal.(value.String))
	require.Len(t, uuid, 36)
	require.Equal(t, byte('4'), uuid[14], "version nibble must be 4")
}

func TestMathRandom_WithinInclusiveRange(t *testing.T) {
	host.SetCapabilities(nil)
	defer host.SetCapabilities(nil)
	for i := 0; i < 20; i++ {
		r, err := host.Dispatch("math/random", []value.Value{value.Number(5), value.Number(10)})
		require.NoError(t, err)
		m := r.(*value.Map)
		n, ok := m.Get("random_int")
		require.True(t, ok)
		f := float64(n.(value.Number))
		require.GreaterOrEqual(t, f, 5.0)
		require.LessOrEqual(t, f, 10.0)
	}
}

func TestMathRandom_RejectsWrongArity(t *testing.T) {
	host.SetCapabilities(nil)
	defer host.SetCapabilities(nil)
	_, err := host.Dispatch("math/random", []value.Value{value.Number(1)})
	require.Error(t, err)
}

func TestJSONRoundtrip_StringifyThenParse(t *testing.T) {
	host.SetCapabilities(nil)
	defer host.SetCapabilities(nil)

	original := value.NewMap().Set("a", value.Number(1)).Set("b", value.List{value.Number(2), value.Number(3)})
	text, err := host.Dispatch("json/stringify", []value.Value{original})
	require.NoError(t, err)

	parsed, err := host.Dispatch("json/parse", []value.Value{text})
	require.NoError(t, err)
	require.True(t, value.Equal(original, parsed))
}

func TestJSONParse_RejectsMalformedInput(t *testing.T) {
	host.SetCapabilities(nil)
	defer host.SetCapabilities(nil)
	_, err := host.Dispatch("json/parse", []value.Value{value.String("{not json")})
	require.Error(t, err)
}

func TestTimeNow_ReturnsRFC3339Timestamp(t *testing.T) {
	host.SetCapabilities(nil)
	defer host.SetCapabilities(nil)
	r, err := host.Dispatch("time/now", nil)
	require.NoError(t, err)
	m := r.(*value.Map)
	ts, ok := m.Get("timestamp")
	require.True(t, ok)
	require.Contains(t, string(ts.(value.String)), "T")
}

func TestTimeFormat_UsesGoReferenceLayout(t *testing.T) {
	host.SetCapabilities(nil)
	defer host.SetCapabilities(nil)
	r, err := host.Dispatch("time/format", []value.Value{value.Number(0), value.String("2006-01-02")})
	require.NoError(t, err)
	require.Equal(t, value.String("1970-01-01"), r)
}

func TestIOPrintAndPrintln_SucceedAndReturnNull(t *testing.T) {
	host.SetCapabilities(nil)
	defer host.SetCapabilities(nil)
	r, err := host.Dispatch("io/print", []value.Value{value.String("")})
	require.NoError(t, err)
	require.Equal(t, value.NullValue, r)

	r, err = host.Dispatch("io/println", []value.Value{value.String("")})
	require.NoError(t, err)
	require.Equal(t, value.NullValue, r)
}

func TestIOPrint_RejectsNonString(t *testing.T) {
	host.SetCapabilities(nil)
	defer host.SetCapabilities(nil)
	_, err := host.Dispatch("io/print", []value.Value{value.Number(1)})
	require.Error(t, err)
}
