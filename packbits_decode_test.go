package psdwriter

import (
	"bufio"
	"bytes"
	"io"
)

// packBitsDecode reproduces the standard PackBits algorithm (adapted from
// the reference TIFF decoder's unpackBits in compress.go) so the encoder's
// property tests can assert round-trip reversibility without depending on
// an external PSD/TIFF reader.
func packBitsDecode(src []byte) ([]byte, error) {
	r := bufio.NewReader(bytes.NewReader(src))
	var n int
	buf := make([]byte, 128)
	dst := make([]byte, 0, 1024)

	for {
		b, err := r.ReadByte()
		if err != nil {
			if err == io.EOF {
				return dst, nil
			}
			return nil, err
		}
		code := int(int8(b))
		switch {
		case code >= 0:
			n, err = io.ReadFull(r, buf[:code+1])
			if err != nil {
				return nil, err
			}
			dst = append(dst, buf[:n]...)
		case code == -128:
			// No-op.
		default:
			if b, err = r.ReadByte(); err != nil {
				return nil, err
			}
			for j := 0; j < 1-code; j++ {
				buf[j] = b
			}
			dst = append(dst, buf[:1-code]...)
		}
	}
}
