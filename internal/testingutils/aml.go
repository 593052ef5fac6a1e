package testingutils

import (
	"strings"
)

// SdtHeaderLength is the size of the header preceding the AML of every system description table.
const SdtHeaderLength = 36

// CreateTable wraps aml in a zeroed system description table header.
func CreateTable(aml ...[]byte) []byte {
	table := make([]byte, SdtHeaderLength)
	for _, part := range aml {
		table = append(table, part...)
	}
	return table
}

// NameString encodes an ASL name path like `\_SB.PCI0.EC0` or `^^EC0.GFSD`.
func NameString(path string) []byte {
	var result []byte
	for len(path) > 0 && (path[0] == '\\' || path[0] == '^') {
		result = append(result, path[0])
		path = path[1:]
	}
	if len(path) == 0 {
		return append(result, 0x00)
	}

	segments := strings.Split(path, ".")
	switch len(segments) {
	case 1:
	case 2:
		result = append(result, 0x2E)
	default:
		result = append(result, 0x2F, byte(len(segments)))
	}
	for _, segment := range segments {
		result = append(result, segment+strings.Repeat("_", 4-len(segment))...)
	}
	return result
}

// PkgLength encodes the package length of a package with a content of contentLength bytes.
func PkgLength(contentLength int) []byte {
	switch {
	case contentLength+1 <= 0x3F:
		return []byte{byte(contentLength + 1)}
	case contentLength+2 < 1<<12:
		total := contentLength + 2
		return []byte{0x40 | byte(total&0x0F), byte(total >> 4)}
	default:
		total := contentLength + 3
		return []byte{0x80 | byte(total&0x0F), byte(total >> 4), byte(total >> 12)}
	}
}

func pkg(op []byte, content ...[]byte) []byte {
	var body []byte
	for _, part := range content {
		body = append(body, part...)
	}
	result := append([]byte{}, op...)
	result = append(result, PkgLength(len(body))...)
	return append(result, body...)
}

func concat(head []byte, tail [][]byte) [][]byte {
	return append([][]byte{head}, tail...)
}

// Scope encodes Scope (path) { terms }.
func Scope(path string, terms ...[]byte) []byte {
	return pkg([]byte{0x10}, concat(NameString(path), terms)...)
}

// Device encodes Device (path) { terms }.
func Device(path string, terms ...[]byte) []byte {
	return pkg([]byte{0x5B, 0x82}, concat(NameString(path), terms)...)
}

// ThermalZone encodes ThermalZone (path) { terms }.
func ThermalZone(path string, terms ...[]byte) []byte {
	return pkg([]byte{0x5B, 0x85}, concat(NameString(path), terms)...)
}

// Method encodes Method (path, argCount) { body }.
func Method(path string, argCount int, body ...[]byte) []byte {
	head := append(NameString(path), byte(argCount&0x07))
	return pkg([]byte{0x14}, concat(head, body)...)
}

// Name encodes Name (path, data), data must be an encoded data object.
func Name(path string, data []byte) []byte {
	return append(append([]byte{0x08}, NameString(path)...), data...)
}

// External encodes External (path, MethodObj).
func External(path string) []byte {
	return append(append([]byte{0x15}, NameString(path)...), 0x08, 0x00)
}

// Field encodes Field (region, AnyAcc, NoLock, Preserve) with 8 bit wide named fields.
func Field(region string, names ...string) []byte {
	head := append(NameString(region), 0x00)
	var fields [][]byte
	for _, name := range names {
		fields = append(fields, append([]byte(name+strings.Repeat("_", 4-len(name))), 0x08))
	}
	return pkg([]byte{0x5B, 0x81}, concat(head, fields)...)
}

// Byte encodes an 8 bit integer constant.
func Byte(value byte) []byte {
	return []byte{0x0A, value}
}

// Return encodes Return (data).
func Return(data []byte) []byte {
	return append([]byte{0xA4}, data...)
}
