package compress

import "github.com/klauspost/compress/zstd"

// zstdCodec wraps klauspost/compress/zstd's stateless block helpers. A new
// encoder/decoder pair is created per call rather than pooled, trading some
// allocation for a codec with no shared mutable state between columns
// compressed concurrently.
type zstdCodec struct{}

func (zstdCodec) Encode(dst, src []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return dst, err
	}
	defer enc.Close()
	return enc.EncodeAll(src, dst), nil
}

func (zstdCodec) Decode(dst, src []byte) (int, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return 0, err
	}
	defer dec.Close()
	out, err := dec.DecodeAll(src, dst[:0])
	if err != nil {
		return 0, err
	}
	return copy(dst, out), nil
}
