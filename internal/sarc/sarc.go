// Package sarc parses the SARC container format (and its Yaz0-compressed
// variant) used to bundle the files inside an archive-named path. There is
// no general-purpose Go library for this format, so this package implements
// the reader from the documented layout.
package sarc

import (
	"bytes"
	"encoding/binary"
	"errors"
	"strings"
)

// ErrInvalidArchive indicates that data is not a recognized SARC container.
var ErrInvalidArchive = errors.New("sarc: invalid archive")

// Archive is a parsed, read-only SARC container: a flat set of named byte
// ranges. Names are stored exactly as the archive spells them, including the
// leading slash some BOTW archives embed; lookups accept a name with or
// without that slash.
type Archive interface {
	// ListFiles returns every member name, in archive order.
	ListFiles() []string
	// GetFileData returns the bytes stored for name, or ok=false if absent.
	GetFileData(name string) ([]byte, bool)
	// GetFileSize returns the byte length stored for name without a copy.
	GetFileSize(name string) (int64, bool)
}

type entry struct {
	name string
	data []byte
}

type archive struct {
	order []string
	files map[string]entry
}

func (a *archive) ListFiles() []string { return a.order }

func (a *archive) lookup(name string) (entry, bool) {
	if e, ok := a.files[name]; ok {
		return e, true
	}
	if strings.HasPrefix(name, "/") {
		e, ok := a.files[name[1:]]
		return e, ok
	}
	e, ok := a.files["/"+name]
	return e, ok
}

func (a *archive) GetFileData(name string) ([]byte, bool) {
	e, ok := a.lookup(name)
	if !ok {
		return nil, false
	}
	return e.data, true
}

func (a *archive) GetFileSize(name string) (int64, bool) {
	e, ok := a.lookup(name)
	if !ok {
		return 0, false
	}
	return int64(len(e.data)), true
}

const (
	sarcHeaderSize = 0x14
	sfatEntrySize  = 0x10
	sfatHashKey    = 0x00000065
)

type sarcHeader struct {
	HeaderSize uint16
	ByteOrder  uint16
	FileSize   uint32
	DataOffset uint32
	Version    uint16
	_          uint16
}

type sfatHeader struct {
	HeaderSize uint16
	NodeCount  uint16
	HashKey    uint32
}

type sfatNode struct {
	NameHash   uint32
	Attributes uint32
	DataBegin  uint32
	DataEnd    uint32
}

type sfntHeader struct {
	HeaderSize uint16
	_          uint16
}

// Open parses data as a SARC archive, transparently decompressing it first
// if it is Yaz0-compressed.
func Open(data []byte) (Archive, error) {
	if IsYaz0(data) {
		decompressed, err := Decompress(data)
		if err != nil {
			return nil, err
		}
		data = decompressed
	}
	return parseSARC(data)
}

func parseSARC(data []byte) (Archive, error) {
	if len(data) < sarcHeaderSize || string(data[0:4]) != "SARC" {
		return nil, ErrInvalidArchive
	}

	order, err := detectByteOrder(data[6:8])
	if err != nil {
		return nil, err
	}

	r := bytes.NewReader(data[4:])
	var hdr sarcHeader
	if err := binary.Read(r, order, &hdr); err != nil {
		return nil, ErrInvalidArchive
	}
	if int(hdr.DataOffset) > len(data) {
		return nil, ErrInvalidArchive
	}

	if len(data) < sarcHeaderSize+4 || string(data[sarcHeaderSize:sarcHeaderSize+4]) != "SFAT" {
		return nil, ErrInvalidArchive
	}
	sfatReader := bytes.NewReader(data[sarcHeaderSize+4:])
	var sfat sfatHeader
	if err := binary.Read(sfatReader, order, &sfat); err != nil {
		return nil, ErrInvalidArchive
	}

	nodes := make([]sfatNode, sfat.NodeCount)
	if err := binary.Read(sfatReader, order, &nodes); err != nil {
		return nil, ErrInvalidArchive
	}

	sfntOffset := sarcHeaderSize + int(sfat.HeaderSize) + int(sfat.NodeCount)*sfatEntrySize
	if len(data) < sfntOffset+4 || string(data[sfntOffset:sfntOffset+4]) != "SFNT" {
		return nil, ErrInvalidArchive
	}
	sfntReader := bytes.NewReader(data[sfntOffset+4:])
	var sfnt sfntHeader
	if err := binary.Read(sfntReader, order, &sfnt); err != nil {
		return nil, ErrInvalidArchive
	}
	stringTable := data[sfntOffset+int(sfnt.HeaderSize):]

	a := &archive{files: make(map[string]entry, len(nodes))}
	for _, n := range nodes {
		if int(n.DataBegin) > len(data)-int(hdr.DataOffset) || int(n.DataEnd) > len(data)-int(hdr.DataOffset) {
			return nil, ErrInvalidArchive
		}
		name := ""
		if n.Attributes&0xFF000000 != 0 {
			nameOffset := int(n.Attributes&0x00FFFFFF) * 4
			name = readNullTerminated(stringTable, nameOffset)
		}
		if name == "" {
			continue
		}
		fileData := data[int(hdr.DataOffset)+int(n.DataBegin) : int(hdr.DataOffset)+int(n.DataEnd)]
		a.order = append(a.order, name)
		a.files[name] = entry{name: name, data: fileData}
	}
	return a, nil
}

func detectByteOrder(bom []byte) (binary.ByteOrder, error) {
	switch {
	case bom[0] == 0xFE && bom[1] == 0xFF:
		return binary.BigEndian, nil
	case bom[0] == 0xFF && bom[1] == 0xFE:
		return binary.LittleEndian, nil
	default:
		return nil, ErrInvalidArchive
	}
}

func readNullTerminated(table []byte, offset int) string {
	if offset < 0 || offset >= len(table) {
		return ""
	}
	end := offset
	for end < len(table) && table[end] != 0 {
		end++
	}
	return string(table[offset:end])
}
