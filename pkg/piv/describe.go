package piv

import (
	"fmt"
	"strings"

	"github.com/arekinath/humboldt-go/pkg/tlv"
)

// chuidFields mirrors the byte-slice/tlv-tag convention
// tlv.WriteStructFields expects.
type chuidFields struct {
	GUID []byte `tlv:"34"`
}

// DescribeCHUID renders the token's cached GUID as a human-readable report.
func DescribeCHUID(t *Token) string {
	var sb strings.Builder
	sb.WriteString("=== CHUID ===\n")
	if !t.HasGUID {
		sb.WriteString("    - GUID: (none)\n")
		return sb.String()
	}
	tlv.WriteStructFields(&sb, "CHUID", &chuidFields{GUID: t.GUID[:]})
	sb.WriteString("\n")
	return sb.String()
}

type certFields struct {
	DER    []byte `tlv:"70"`
	SSHPub []byte `fmt:"ascii"`
}

// DescribeCert renders a cached slot's certificate metadata.
func DescribeCert(s *Slot) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("=== SLOT %02X ===\n", byte(s.ID)))
	if s.Cert == nil {
		sb.WriteString("    - Cert: (none)\n")
		return sb.String()
	}
	sb.WriteString(fmt.Sprintf("    - Algorithm: %02X\n", byte(s.Alg)))
	sb.WriteString(fmt.Sprintf("    - Subject:   %s\n", s.Subject))
	sb.WriteString(fmt.Sprintf("    - Serial:    %s\n", s.Cert.SerialNumber.String()))
	tlv.WriteStructFields(&sb, "Slot", &certFields{DER: s.Cert.Raw, SSHPub: s.SSHPub})
	sb.WriteString("\n")
	return sb.String()
}

// DescribeToken renders a full token summary: reader name, Yubico
// status and version, GUID, and every cached slot. The protocol and the
// advertised algorithms are not included.
func DescribeToken(t *Token) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("=== TOKEN %q ===\n", t.ReaderName))
	sb.WriteString(fmt.Sprintf("    - Yubico:    %v\n", t.Yubico))
	if t.Yubico {
		sb.WriteString(fmt.Sprintf("    - Version:   %d.%d.%d\n", t.YubicoVer[0], t.YubicoVer[1], t.YubicoVer[2]))
	}
	sb.WriteString(DescribeCHUID(t))
	for _, id := range readOrder {
		if s := t.GetSlot(id); s != nil {
			sb.WriteString(DescribeCert(s))
		}
	}
	return sb.String()
}
