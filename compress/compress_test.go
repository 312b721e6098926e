package compress

import (
	"bytes"
	"testing"
)

func roundTrip(t *testing.T, typ Type) {
	t.Helper()
	codec, err := Lookup(typ)
	if err != nil {
		t.Fatalf("Lookup(%v): %v", typ, err)
	}
	src := bytes.Repeat([]byte("columnar-storage-engine-payload "), 200)

	encoded, err := codec.Encode(nil, src)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	decoded := make([]byte, len(src))
	n, err := codec.Decode(decoded, encoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if n != len(src) {
		t.Fatalf("Decode wrote %d bytes, want %d", n, len(src))
	}
	if !bytes.Equal(decoded, src) {
		t.Fatal("round trip did not reproduce the original bytes")
	}
}

func TestLZ4RoundTrip(t *testing.T)   { roundTrip(t, TypeLZ4) }
func TestLZ4HCRoundTrip(t *testing.T) { roundTrip(t, TypeLZ4HC) }
func TestZSTDRoundTrip(t *testing.T)  { roundTrip(t, TypeZSTD) }

func TestLookupRejectsNoneAndUnknown(t *testing.T) {
	if _, err := Lookup(TypeNone); err != ErrUnknownType {
		t.Fatalf("Lookup(TypeNone) err = %v, want ErrUnknownType", err)
	}
	if _, err := Lookup(Type(99)); err != ErrUnknownType {
		t.Fatalf("Lookup(99) err = %v, want ErrUnknownType", err)
	}
}

func TestTypeStringNames(t *testing.T) {
	cases := map[Type]string{
		TypeNone:  "none",
		TypeLZ4:   "lz4",
		TypeLZ4HC: "lz4hc",
		TypeZSTD:  "zstd",
	}
	for typ, want := range cases {
		if got := typ.String(); got != want {
			t.Fatalf("%d.String() = %q, want %q", typ, got, want)
		}
	}
}
