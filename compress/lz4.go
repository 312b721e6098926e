package compress

import "github.com/pierrec/lz4/v4"

// lz4Codec is the fast/default LZ4 compression level.
type lz4Codec struct{}

func (lz4Codec) Encode(dst, src []byte) ([]byte, error) {
	return lz4Encode(dst, src, lz4.Fast)
}

func (lz4Codec) Decode(dst, src []byte) (int, error) {
	return lz4Decode(dst, src)
}

// lz4hcCodec maps the file format's LZ4HC compression type onto the same
// LZ4 block format at its highest compression level, rather than a distinct
// algorithm; LZ4HC and LZ4 share a decoder, differing only in how hard the
// encoder searches for matches.
type lz4hcCodec struct{}

func (lz4hcCodec) Encode(dst, src []byte) ([]byte, error) {
	return lz4Encode(dst, src, lz4.Level9)
}

func (lz4hcCodec) Decode(dst, src []byte) (int, error) {
	return lz4Decode(dst, src)
}

func lz4Encode(dst, src []byte, level lz4.CompressionLevel) ([]byte, error) {
	var c lz4.Compressor
	c.Level = level
	bound := lz4.CompressBlockBound(len(src))
	start := len(dst)
	dst = append(dst, make([]byte, bound)...)
	n, err := c.CompressBlock(src, dst[start:])
	if err != nil {
		return dst[:start], err
	}
	return dst[:start+n], nil
}

func lz4Decode(dst, src []byte) (int, error) {
	return lz4.UncompressBlock(src, dst)
}
