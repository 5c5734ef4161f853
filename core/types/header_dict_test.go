package types

import (
	"strings"
	"testing"
)

func TestToDict(t *testing.T) {
	h, _ := loadFixtureHeader(t, "testdata/synthetic_london.json")
	d := h.ToDict()
	if len(d) != int(numHeaderFields) {
		t.Fatalf("ToDict has %d keys, want %d", len(d), numHeaderFields)
	}
	want := map[string]string{
		"parent_hash":      "0x29cb6c670923edc254557679b24c6658ce6dd81643ca6aced4d2a003660b7605",
		"uncles_hash":      "0x1dcc4de8dec75d7aab85b567b6ccd41ad312451b948a7413f0a142fd40d49347",
		"coinbase":         "0x00000000000000000000000000000000000000aa",
		"state_root":       "0x69e39af32bd0cc2d5f8ad822a3afcd7fe8d7211e4ca7c42654cdbda7a9b74516",
		"transaction_root": "0x306ee5f79df3868527ca0e28dabeabb1269f92497c02721a269672b6ee362b2c",
		"receipts_root":    "0x837399e622967f92f2ba0d0ab8b41d1b497ed52a31354c945bd675f2657d6dcf",
		"difficulty":       "0",
		"number":           "1193046",
		"gas_limit":        "30000000",
		"gas_used":         "12345678",
		"timestamp":        "1663224179",
		"extra_data":       "0x73796e74686574696320626c6f636b",
		"mix_hash":         "0x539602d7b90bcdb7612317b169cffe07672241325cd4fb388b7ab9d134e1669e",
		"nonce":            "0x0000000000000000",
		"base_fee_per_gas": "765625000",
	}
	for k, v := range want {
		if d[k] != v {
			t.Errorf("%s = %q, want %q", k, d[k], v)
		}
	}
	bloom := d["bloom"]
	if len(bloom) != 2+2*BloomLength || !strings.HasPrefix(bloom, "0x") {
		t.Fatalf("bloom is %d chars, want %d", len(bloom), 2+2*BloomLength)
	}
	if bloom != h.Bloom().Hex() {
		t.Fatal("bloom entry differs from Bloom().Hex()")
	}
}

func TestToDictEmptyValues(t *testing.T) {
	d := mustHeader(t, DefaultRawHeader(nil)).ToDict()
	if d["extra_data"] != "0x" || d["nonce"] != "0x" {
		t.Fatalf("empty byte strings: extra %q, nonce %q", d["extra_data"], d["nonce"])
	}
	if d["number"] != "0" || d["difficulty"] != "131072" || d["gas_limit"] != "3141592" {
		t.Fatalf("integers: %q %q %q", d["number"], d["difficulty"], d["gas_limit"])
	}
	if d["bloom"] != "0x"+strings.Repeat("00", BloomLength) {
		t.Fatal("empty bloom is not zero-padded")
	}
}
