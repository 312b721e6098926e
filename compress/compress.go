// Package compress provides the opaque byte-block codecs the file format
// references by CompressionType: block-level Encode/Decode only, with no
// opinion on column semantics or when compression is worth applying.
package compress

import "errors"

// Type is the closed set of compression schemes a column block may be
// stored under, matching the file format's compression descriptor field.
type Type uint32

const (
	TypeNone Type = iota
	TypeLZ4
	TypeLZ4HC
	TypeZSTD
)

func (t Type) String() string {
	switch t {
	case TypeNone:
		return "none"
	case TypeLZ4:
		return "lz4"
	case TypeLZ4HC:
		return "lz4hc"
	case TypeZSTD:
		return "zstd"
	default:
		return "unknown"
	}
}

// ErrUnknownType is returned by Lookup for a Type outside the closed set.
var ErrUnknownType = errors.New("compress: unknown compression type")

// Codec compresses and decompresses opaque byte blocks. It has no knowledge
// of column types or row counts; a row group's decompressed_size field
// (recorded alongside the compressed block) is the caller's contract for
// sizing the decode target.
type Codec interface {
	// Encode appends the compressed form of src to dst and returns the
	// result, growing dst as needed, in the style of append.
	Encode(dst, src []byte) ([]byte, error)
	// Decode writes the decompressed form of src into dst, which must be
	// exactly decompressed_size bytes, and returns the number of bytes
	// written (always len(dst) on success).
	Decode(dst, src []byte) (int, error)
}

// Lookup returns the Codec for t, or ErrUnknownType if t is not a member of
// the closed Type set. TypeNone has no codec; callers should special-case it
// before calling Lookup, since a no-op Encode/Decode would only add an
// indirection.
func Lookup(t Type) (Codec, error) {
	switch t {
	case TypeLZ4:
		return lz4Codec{}, nil
	case TypeLZ4HC:
		return lz4hcCodec{}, nil
	case TypeZSTD:
		return zstdCodec{}, nil
	default:
		return nil, ErrUnknownType
	}
}
