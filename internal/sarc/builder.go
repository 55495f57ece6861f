package sarc

import (
	"bytes"
	"encoding/binary"
)

// Build assembles a minimal, valid, little-endian SARC archive from an
// ordered set of name/data pairs. It exists so tests can construct archive
// fixtures without depending on a real game asset.
func Build(files []struct {
	Name string
	Data []byte
}) []byte {
	order := binary.LittleEndian

	var stringTable bytes.Buffer
	nameOffsets := make([]uint32, len(files))
	for i, f := range files {
		nameOffsets[i] = uint32(stringTable.Len()) / 4
		stringTable.WriteString(f.Name)
		stringTable.WriteByte(0)
		for stringTable.Len()%4 != 0 {
			stringTable.WriteByte(0)
		}
	}

	sfntOffset := sarcHeaderSize + 4 + 8 + len(files)*sfatEntrySize
	dataOffsetUnaligned := sfntOffset + 8 + stringTable.Len()
	dataOffset := align(dataOffsetUnaligned, 4)

	var dataSection bytes.Buffer
	dataBegins := make([]uint32, len(files))
	dataEnds := make([]uint32, len(files))
	for i, f := range files {
		for dataSection.Len()%4 != 0 {
			dataSection.WriteByte(0)
		}
		dataBegins[i] = uint32(dataSection.Len())
		dataSection.Write(f.Data)
		dataEnds[i] = uint32(dataSection.Len())
	}

	var out bytes.Buffer
	out.WriteString("SARC")
	writeU16(&out, order, sarcHeaderSize)
	out.Write([]byte{0xFF, 0xFE}) // byte-order mark, little-endian
	writeU32(&out, order, uint32(dataOffset+dataSection.Len()))
	writeU32(&out, order, uint32(dataOffset))
	writeU16(&out, order, 0x0100)
	writeU16(&out, order, 0)

	out.WriteString("SFAT")
	writeU16(&out, order, 0x0C)
	writeU16(&out, order, uint16(len(files)))
	writeU32(&out, order, sfatHashKey)

	for i, f := range files {
		writeU32(&out, order, nameHash(f.Name))
		writeU32(&out, order, 0x01000000|nameOffsets[i])
		writeU32(&out, order, dataBegins[i])
		writeU32(&out, order, dataEnds[i])
	}

	out.WriteString("SFNT")
	writeU16(&out, order, 0x08)
	writeU16(&out, order, 0)
	out.Write(stringTable.Bytes())

	for out.Len() < dataOffset {
		out.WriteByte(0)
	}
	out.Write(dataSection.Bytes())
	return out.Bytes()
}

func align(n, to int) int {
	if n%to == 0 {
		return n
	}
	return n + (to - n%to)
}

func nameHash(name string) uint32 {
	var h uint32
	for i := 0; i < len(name); i++ {
		h = h*sfatHashKey + uint32(name[i])
	}
	return h
}

func writeU16(buf *bytes.Buffer, order binary.ByteOrder, v uint16) {
	var b [2]byte
	order.PutUint16(b[:], v)
	buf.Write(b[:])
}

func writeU32(buf *bytes.Buffer, order binary.ByteOrder, v uint32) {
	var b [4]byte
	order.PutUint32(b[:], v)
	buf.Write(b[:])
}
