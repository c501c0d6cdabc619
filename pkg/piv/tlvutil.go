package piv

import "github.com/arekinath/humboldt-go/pkg/tlv"

// tlvReader binds a tlv.Reader over the whole of data, matching the
// reader-init conventions of GET DATA / GEN AUTH response bodies
// throughout this package.
func tlvReader(data []byte) *tlv.Reader {
	return tlv.NewReader(data, 0, len(data))
}

// tagBuilder returns a fresh tlv.Writer for building command bodies.
func tagBuilder() *tlv.Writer {
	return tlv.NewWriter()
}
