package handshake

import (
	"github.com/yourusername/shocktls/pkg/shocktls/status"
	"github.com/yourusername/shocktls/pkg/shocktls/wire"
)

// Extension type codes (RFC 8446 §4.2 and its referenced RFCs).
const (
	extServerName           uint16 = 0x0000
	extSupportedGroups      uint16 = 0x000a
	extECPointFormats       uint16 = 0x000b
	extSignatureAlgorithms  uint16 = 0x000d
	extEncryptThenMac       uint16 = 0x0016
	extExtendedMasterSecret uint16 = 0x0017
	extSessionTicket        uint16 = 0x0023
	extSupportedVersions    uint16 = 0x002b
	extPSKKeyExchangeModes  uint16 = 0x002d
	extKeyShare             uint16 = 0x0033
)

// Named groups (RFC 8446 §4.2.7 and the legacy FFDHE/EC registry).
const (
	groupX25519    uint16 = 0x001d
	groupSecp256r1 uint16 = 0x0017
	groupX448      uint16 = 0x001e
	groupSecp521r1 uint16 = 0x0019
	groupSecp384r1 uint16 = 0x0018
	groupFFDHE2048 uint16 = 0x0100
	groupFFDHE3072 uint16 = 0x0101
	groupFFDHE4096 uint16 = 0x0102
	groupFFDHE6144 uint16 = 0x0103
	groupFFDHE8192 uint16 = 0x0104
)

// Cipher suite codes (RFC 8446 §B.4).
const (
	cipherChaCha20Poly1305Sha256 uint16 = 0x1303
	cipherAes128GcmSha256        uint16 = 0x1301
	cipherAes256GcmSha384        uint16 = 0x1302
	cipherEmptyRenegotiationSCSV uint16 = 0x00ff
)

// Signature scheme codes (RFC 8446 §4.2.3), advertised for compatibility
// even though this client never verifies a signature with them.
var signatureSchemes = []uint16{
	0x0807, // ed25519
	0x0403, // ecdsa_secp256r1_sha256
	0x0503, // ecdsa_secp384r1_sha384
	0x0603, // ecdsa_secp521r1_sha512
	0x0808, // ed448
	0x0809, // rsa_pss_pss_sha256
	0x080a, // rsa_pss_pss_sha384
	0x080b, // rsa_pss_pss_sha512
	0x0804, // rsa_pss_rsae_sha256
	0x0805, // rsa_pss_rsae_sha384
	0x0806, // rsa_pss_rsae_sha512
	0x0401, // rsa_pkcs1_sha256
	0x0501, // rsa_pkcs1_sha384
	0x0601, // rsa_pkcs1_sha512
}

var supportedGroupList = []uint16{
	groupX25519, groupSecp256r1, groupX448, groupSecp521r1, groupSecp384r1,
	groupFFDHE2048, groupFFDHE3072, groupFFDHE4096, groupFFDHE6144, groupFFDHE8192,
}

// appendExtension writes an extension's type, length, and body to buf.
func appendExtension(buf *wire.Buffer, extType uint16, body []byte) {
	buf.AppendU16BE(extType)
	buf.AppendU16BE(uint16(len(body)))
	buf.Append(body)
}

// buildExtensions encodes the ClientHello extensions block, in the exact
// order this client always sends them, and returns the encoded bytes
// without the outer u16 length prefix (the caller back-fills that).
func buildExtensions(serverName string, clientPublic [32]byte) []byte {
	buf := wire.NewBuffer()
	defer buf.Release()

	if serverName != "" {
		appendExtension(&buf, extServerName, buildServerNameBody(serverName))
	}

	appendExtension(&buf, extECPointFormats, []byte{0x03, 0x00, 0x01, 0x02})

	groups := wire.NewBuffer()
	defer groups.Release()
	groups.AppendU16BE(uint16(len(supportedGroupList) * 2))
	for _, g := range supportedGroupList {
		groups.AppendU16BE(g)
	}
	appendExtension(&buf, extSupportedGroups, groups.Bytes())

	appendExtension(&buf, extSessionTicket, nil)
	appendExtension(&buf, extEncryptThenMac, nil)
	appendExtension(&buf, extExtendedMasterSecret, nil)

	sigAlgs := wire.NewBuffer()
	defer sigAlgs.Release()
	sigAlgs.AppendU16BE(uint16(len(signatureSchemes) * 2))
	for _, s := range signatureSchemes {
		sigAlgs.AppendU16BE(s)
	}
	appendExtension(&buf, extSignatureAlgorithms, sigAlgs.Bytes())

	appendExtension(&buf, extSupportedVersions, []byte{0x02, 0x03, 0x04})
	appendExtension(&buf, extPSKKeyExchangeModes, []byte{0x01, 0x01})

	keyShare := wire.NewBuffer()
	defer keyShare.Release()
	keyShare.AppendU16BE(2 + 2 + 32) // client_shares length: group + length + key
	keyShare.AppendU16BE(groupX25519)
	keyShare.AppendU16BE(32)
	keyShare.Append(clientPublic[:])
	appendExtension(&buf, extKeyShare, keyShare.Bytes())

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out
}

func buildServerNameBody(name string) []byte {
	buf := wire.NewBuffer()
	defer buf.Release()
	entry := wire.NewBuffer()
	defer entry.Release()
	entry.AppendByte(0x00) // name_type = host_name
	entry.AppendU16BE(uint16(len(name)))
	entry.Append([]byte(name))

	buf.AppendU16BE(uint16(entry.Len()))
	buf.Append(entry.Bytes())

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out
}

// serverHelloExtensions holds the fields this client cares about out of
// the ServerHello extensions block.
type serverHelloExtensions struct {
	selectedVersionMajor byte
	selectedVersionMinor byte
	serverPublic         [32]byte
	haveKeyShare         bool
}

// parseServerHelloExtensions reads extType/length/data pairs from v until
// it is exhausted. Unknown extensions are skipped; supported_versions is
// recorded for the caller to check, and key_share is validated against the
// single group (x25519) this client speaks.
func parseServerHelloExtensions(v wire.View) (serverHelloExtensions, *status.Frame) {
	ext := serverHelloExtensions{selectedVersionMajor: 3, selectedVersionMinor: 4}
	for len(v) > 0 {
		if len(v) < 4 {
			return ext, status.New(status.ProtocolDecode, "truncated extension header")
		}
		extType := wire.ConsumeU16(&v)
		length := wire.ConsumeU16(&v)
		if int(length) > len(v) {
			return ext, status.New(status.ProtocolDecode, "extension length exceeds remaining bytes")
		}
		data := wire.ConsumeBytes(&v, int(length))

		switch extType {
		case extSupportedVersions:
			if len(data) >= 2 {
				ext.selectedVersionMajor = data[0]
				ext.selectedVersionMinor = data[1]
			}
		case extKeyShare:
			var dv wire.View = data
			group := wire.ConsumeU16(&dv)
			klen := wire.ConsumeU16(&dv)
			if group != groupX25519 {
				return ext, status.New(status.UnsupportedParameter, "server selected key share group 0x%04x, want x25519", group)
			}
			if klen != 32 {
				return ext, status.New(status.ProtocolDecode, "x25519 key share length %d, want 32", klen)
			}
			key := wire.ConsumeBytes(&dv, 32)
			copy(ext.serverPublic[:], key)
			ext.haveKeyShare = true
		}
	}
	return ext, nil
}
