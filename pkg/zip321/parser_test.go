package zip321

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suffix-labs/zcash-codec/pkg/address"
)

func transparentAddr(t *testing.T, net address.Network, seed byte) string {
	t.Helper()
	r, err := address.NewTransparentP2PKHReceiver(bytes.Repeat([]byte{seed}, 20))
	require.NoError(t, err)
	return address.NewTransparentAddress(net, r).String()
}

func saplingAddr(t *testing.T, net address.Network, seed byte) string {
	t.Helper()
	r, err := address.NewSaplingReceiver(bytes.Repeat([]byte{seed}, 43))
	require.NoError(t, err)
	a, err := address.NewSaplingAddress(net, r)
	require.NoError(t, err)
	return a.String()
}

func unifiedAddr(t *testing.T, net address.Network) string {
	t.Helper()
	o, err := address.NewOrchardReceiver(bytes.Repeat([]byte{0x07}, 43))
	require.NoError(t, err)
	p, err := address.NewTransparentP2PKHReceiver(bytes.Repeat([]byte{0x08}, 20))
	require.NoError(t, err)
	ua, err := address.NewUnifiedAddress(net, o, p)
	require.NoError(t, err)
	return ua.String()
}

func TestParseSingle(t *testing.T) {
	addr := saplingAddr(t, address.MainNet, 1)
	req, err := Parse("zcash:" + addr + "?amount=1.5&message=Thank%20you&label=coffee")
	require.NoError(t, err)
	require.Len(t, req.Payments, 1)

	p := req.Payments[0]
	assert.Equal(t, addr, p.Address.String())
	require.NotNil(t, p.Amount)
	assert.Equal(t, Zatoshis(150_000_000), *p.Amount)
	assert.Equal(t, "Thank you", p.Message)
	assert.Equal(t, "coffee", p.Label)
	assert.Nil(t, p.Memo)
}

func TestParseKeepsLiteralPlus(t *testing.T) {
	addr := saplingAddr(t, address.MainNet, 1)
	req, err := Parse("zcash:" + addr + "?message=1+1%3D2&label=a+b%2Bc%20d")
	require.NoError(t, err)
	require.Len(t, req.Payments, 1)

	p := req.Payments[0]
	assert.Equal(t, "1+1=2", p.Message)
	assert.Equal(t, "a+b+c d", p.Label)

	again, err := Parse(req.Encode())
	require.NoError(t, err)
	assert.Equal(t, req, again)
}

func TestParseSchemeCaseInsensitive(t *testing.T) {
	addr := transparentAddr(t, address.MainNet, 2)
	req, err := Parse("ZCash:" + addr)
	require.NoError(t, err)
	require.Len(t, req.Payments, 1)
	assert.Nil(t, req.Payments[0].Amount)
}

func TestParseMultiple(t *testing.T) {
	t0 := transparentAddr(t, address.TestNet, 3)
	z1 := saplingAddr(t, address.TestNet, 4)
	ua := unifiedAddr(t, address.TestNet)

	uri := "zcash:?address=" + t0 + "&amount=0.0001" +
		"&address.1=" + z1 + "&amount.1=2&memo.1=VGhpcyBpcyBhIG1lbW8" +
		"&address.42=" + ua + "&foo.42=bar"
	req, err := Parse(uri)
	require.NoError(t, err)
	require.Len(t, req.Payments, 3)

	assert.Equal(t, t0, req.Payments[0].Address.String())
	assert.Equal(t, Zatoshis(10_000), *req.Payments[0].Amount)

	assert.Equal(t, z1, req.Payments[1].Address.String())
	assert.Equal(t, []byte("This is a memo"), req.Payments[1].Memo)

	assert.Equal(t, ua, req.Payments[2].Address.String())
	assert.Nil(t, req.Payments[2].Amount)
	assert.Equal(t, map[string]string{"foo": "bar"}, req.Payments[2].Other)
}

func TestParseErrors(t *testing.T) {
	taddr := transparentAddr(t, address.MainNet, 5)
	zaddr := saplingAddr(t, address.MainNet, 6)
	ztest := saplingAddr(t, address.TestNet, 6)
	longMemo := strings.Repeat("A", 684) // 513 bytes

	tests := []struct {
		name string
		uri  string
	}{
		{"missing scheme", taddr},
		{"wrong scheme", "bitcoin:" + taddr},
		{"empty", "zcash:"},
		{"missing address", "zcash:?amount=1"},
		{"indexed payment missing address", "zcash:" + taddr + "?amount.1=1"},
		{"bad address", "zcash:notanaddress"},
		{"duplicate address", "zcash:" + taddr + "?address=" + taddr},
		{"duplicate amount", "zcash:" + taddr + "?amount=1&amount=2"},
		{"negative amount", "zcash:" + taddr + "?amount=-1"},
		{"too many decimals", "zcash:" + taddr + "?amount=0.000000001"},
		{"above max money", "zcash:" + taddr + "?amount=21000000.00000001"},
		{"amount exponent", "zcash:" + taddr + "?amount=1e3"},
		{"memo to transparent", "zcash:" + taddr + "?memo=aGk"},
		{"memo not base64url", "zcash:" + zaddr + "?memo=a+b/"},
		{"memo padded", "zcash:" + zaddr + "?memo=aGk%3D"},
		{"memo too long", "zcash:" + zaddr + "?memo=" + longMemo},
		{"unknown required param", "zcash:" + zaddr + "?req-futurefeature=1"},
		{"index zero suffix", "zcash:?address.0=" + zaddr},
		{"leading zero index", "zcash:?address.01=" + zaddr},
		{"index too large", "zcash:?address.10000=" + zaddr},
		{"non numeric index", "zcash:?address.x=" + zaddr},
		{"bad param name", "zcash:" + zaddr + "?1abc=2"},
		{"missing value", "zcash:" + zaddr + "?amount"},
		{"empty param", "zcash:" + zaddr + "?amount=1&&label=x"},
		{"mixed networks", "zcash:?address=" + zaddr + "&address.1=" + ztest},
		{"bad escape", "zcash:" + zaddr + "?label=%zz"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.uri)
			require.Error(t, err)
		})
	}
}

func TestParseErrorKinds(t *testing.T) {
	zaddr := saplingAddr(t, address.MainNet, 9)
	_, err := Parse("zcash:" + zaddr + "?req-x=1")
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 0, pe.Index)
	assert.Equal(t, "req-x", pe.Param)

	_, err = Parse("zcash:tmBadAddress")
	var ee *address.EncodingError
	require.ErrorAs(t, err, &ee)
}

func TestMemoAtLimit(t *testing.T) {
	zaddr := saplingAddr(t, address.MainNet, 10)
	memo := bytes.Repeat([]byte{0xfb}, MaxMemoLen)
	req := &PaymentRequest{Payments: []Payment{{Memo: memo}}}
	a, err := address.Parse(zaddr)
	require.NoError(t, err)
	req.Payments[0].Address = a

	parsed, err := Parse(req.Encode())
	require.NoError(t, err)
	assert.Equal(t, memo, parsed.Payments[0].Memo)
}

func TestEncodeRoundTrip(t *testing.T) {
	parse := func(s string) address.Address {
		a, err := address.Parse(s)
		require.NoError(t, err)
		return a
	}
	amount := Zatoshis(123_456_789)
	one := Zatoshis(ZatoshisPerZEC)

	tests := []struct {
		name string
		req  *PaymentRequest
		want string
	}{
		{
			name: "single",
			req: &PaymentRequest{Payments: []Payment{{
				Address: parse(transparentAddr(t, address.MainNet, 11)),
				Amount:  &amount,
				Message: "for the pizza & drinks",
			}}},
		},
		{
			name: "multiple",
			req: &PaymentRequest{Payments: []Payment{
				{Address: parse(saplingAddr(t, address.MainNet, 12)), Amount: &one, Memo: []byte{0xf6}},
				{Address: parse(unifiedAddr(t, address.MainNet)), Label: "a+b", Other: map[string]string{"x-tag": "1"}},
			}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uri := tt.req.Encode()
			assert.True(t, strings.HasPrefix(uri, "zcash:"))
			assert.NotContains(t, uri, "+")

			parsed, err := Parse(uri)
			require.NoError(t, err)
			assert.Equal(t, tt.req, parsed)
			assert.Equal(t, uri, parsed.Encode())
		})
	}
}

func TestEncodeSingleUsesPath(t *testing.T) {
	addr := transparentAddr(t, address.MainNet, 13)
	a, err := address.Parse(addr)
	require.NoError(t, err)
	amount := Zatoshis(50_000_000)

	req := &PaymentRequest{Payments: []Payment{{Address: a, Amount: &amount}}}
	assert.Equal(t, "zcash:"+addr+"?amount=0.5", req.Encode())
}

func TestAmounts(t *testing.T) {
	valid := map[string]Zatoshis{
		"0":                 0,
		"1":                 ZatoshisPerZEC,
		"0.00000001":        1,
		"1.5":               150_000_000,
		"12.345":            1_234_500_000,
		"21000000":          MaxMoney,
		"20999999.99999999": MaxMoney - 1,
	}
	for s, want := range valid {
		got, err := ParseAmount(s)
		require.NoError(t, err, s)
		assert.Equal(t, want, got, s)
	}

	for _, s := range []string{"", ".", "1.", ".5", "-1", "+1", "1e8", "1,5", "0x10", "100000000", "0.123456789"} {
		_, err := ParseAmount(s)
		assert.Error(t, err, s)
	}

	assert.Equal(t, "0", Zatoshis(0).String())
	assert.Equal(t, "1.5", Zatoshis(150_000_000).String())
	assert.Equal(t, "0.00000001", Zatoshis(1).String())
	assert.Equal(t, "21000000", MaxMoney.String())
}
