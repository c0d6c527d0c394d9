package equation

import (
	"encoding/binary"
	"fmt"
	"unicode/utf16"
)

// Embedded equation objects arrive as OLE compound-file containers
// (oleObject*.bin). The MTEF payload lives in a stream named
// "Equation Native", prefixed with a small OLE equation header. The
// walker below implements just enough of the compound-file format to
// locate and read that stream: header, FAT from the in-header DIFAT,
// directory chain, and the mini stream for payloads under the cutoff.

const (
	cfbHeaderSize = 512
	endOfChain    = 0xFFFFFFFE
	freeSector    = 0xFFFFFFFF

	equationStreamName = "Equation Native"
)

var cfbSignature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

type dirEntry struct {
	name        string
	objectType  byte
	startSector uint32
	size        uint32
}

type compoundFile struct {
	data       []byte
	sectorSize uint32
	miniSize   uint32
	miniCutoff uint32
	fat        []uint32
	miniFAT    []uint32
	entries    []dirEntry
	miniStream []byte
}

// EquationStream extracts the MTEF payload from an embedded equation
// object part, stripping the OLE equation header that precedes it.
func EquationStream(blob []byte) ([]byte, error) {
	cf, err := parseCompoundFile(blob)
	if err != nil {
		return nil, err
	}

	for _, e := range cf.entries {
		if e.objectType == 2 && e.name == equationStreamName {
			stream, err := cf.streamBytes(e)
			if err != nil {
				return nil, err
			}
			return stripEquationHeader(stream)
		}
	}
	return nil, fmt.Errorf("no %q stream in object", equationStreamName)
}

// stripEquationHeader removes the EQNOLEFILEHDR (its first field is its
// own length, normally 28 bytes) so callers get raw MTEF.
func stripEquationHeader(stream []byte) ([]byte, error) {
	if len(stream) < 2 {
		return nil, fmt.Errorf("equation stream too short")
	}
	hdrLen := int(binary.LittleEndian.Uint16(stream[0:2]))
	if hdrLen <= 0 || hdrLen > len(stream) {
		return nil, fmt.Errorf("bad equation header length %d", hdrLen)
	}
	return stream[hdrLen:], nil
}

func parseCompoundFile(data []byte) (*compoundFile, error) {
	if len(data) < cfbHeaderSize {
		return nil, fmt.Errorf("object too short for compound file header")
	}
	for i, b := range cfbSignature {
		if data[i] != b {
			return nil, fmt.Errorf("not a compound file")
		}
	}

	cf := &compoundFile{
		data:       data,
		sectorSize: 1 << binary.LittleEndian.Uint16(data[30:32]),
		miniSize:   1 << binary.LittleEndian.Uint16(data[32:34]),
		miniCutoff: binary.LittleEndian.Uint32(data[56:60]),
	}
	if cf.sectorSize != 512 && cf.sectorSize != 4096 {
		return nil, fmt.Errorf("unsupported sector size %d", cf.sectorSize)
	}

	numFAT := binary.LittleEndian.Uint32(data[44:48])
	firstDir := binary.LittleEndian.Uint32(data[48:52])
	firstMiniFAT := binary.LittleEndian.Uint32(data[60:64])

	// FAT sectors listed in the header DIFAT. Equation objects are tiny,
	// so the 109 in-header entries always suffice.
	for i := uint32(0); i < numFAT && i < 109; i++ {
		sect := binary.LittleEndian.Uint32(data[76+4*i : 80+4*i])
		if sect == freeSector {
			continue
		}
		raw, err := cf.sector(sect)
		if err != nil {
			return nil, err
		}
		for off := uint32(0); off+4 <= cf.sectorSize; off += 4 {
			cf.fat = append(cf.fat, binary.LittleEndian.Uint32(raw[off:off+4]))
		}
	}

	dir, err := cf.readChain(firstDir)
	if err != nil {
		return nil, fmt.Errorf("reading directory: %w", err)
	}
	for off := 0; off+128 <= len(dir); off += 128 {
		e := parseDirEntry(dir[off : off+128])
		if e.objectType != 0 {
			cf.entries = append(cf.entries, e)
		}
	}
	if len(cf.entries) == 0 {
		return nil, fmt.Errorf("empty compound file directory")
	}

	if firstMiniFAT != endOfChain && firstMiniFAT != freeSector {
		raw, err := cf.readChain(firstMiniFAT)
		if err != nil {
			return nil, fmt.Errorf("reading mini FAT: %w", err)
		}
		for off := 0; off+4 <= len(raw); off += 4 {
			cf.miniFAT = append(cf.miniFAT, binary.LittleEndian.Uint32(raw[off:off+4]))
		}
	}

	// The mini stream is the root entry's stream, read through the
	// regular FAT.
	root := cf.entries[0]
	if root.objectType == 5 && root.size > 0 {
		ms, err := cf.readChain(root.startSector)
		if err != nil {
			return nil, fmt.Errorf("reading mini stream: %w", err)
		}
		if uint32(len(ms)) > root.size {
			ms = ms[:root.size]
		}
		cf.miniStream = ms
	}

	return cf, nil
}

func parseDirEntry(raw []byte) dirEntry {
	nameLen := int(binary.LittleEndian.Uint16(raw[64:66]))
	if nameLen > 64 {
		nameLen = 64
	}
	var units []uint16
	for off := 0; off+2 <= nameLen-2; off += 2 { // drop trailing NUL
		units = append(units, binary.LittleEndian.Uint16(raw[off:off+2]))
	}
	return dirEntry{
		name:        string(utf16.Decode(units)),
		objectType:  raw[66],
		startSector: binary.LittleEndian.Uint32(raw[116:120]),
		size:        binary.LittleEndian.Uint32(raw[120:124]),
	}
}

// sector returns the raw bytes of one regular sector.
func (cf *compoundFile) sector(n uint32) ([]byte, error) {
	start := uint64(n+1) * uint64(cf.sectorSize)
	end := start + uint64(cf.sectorSize)
	if end > uint64(len(cf.data)) {
		return nil, fmt.Errorf("sector %d out of range", n)
	}
	return cf.data[start:end], nil
}

// readChain follows a FAT chain from start, concatenating sectors. The
// iteration count is bounded by the FAT size to survive cyclic chains.
func (cf *compoundFile) readChain(start uint32) ([]byte, error) {
	var out []byte
	sect := start
	for steps := 0; sect != endOfChain && sect != freeSector; steps++ {
		if steps > len(cf.fat)+1 {
			return nil, fmt.Errorf("cyclic sector chain at %d", start)
		}
		raw, err := cf.sector(sect)
		if err != nil {
			return nil, err
		}
		out = append(out, raw...)
		if int(sect) >= len(cf.fat) {
			break
		}
		sect = cf.fat[sect]
	}
	return out, nil
}

// streamBytes reads a directory entry's stream, using the mini stream
// for payloads below the cutoff.
func (cf *compoundFile) streamBytes(e dirEntry) ([]byte, error) {
	if e.size >= cf.miniCutoff {
		data, err := cf.readChain(e.startSector)
		if err != nil {
			return nil, err
		}
		if uint32(len(data)) < e.size {
			return nil, fmt.Errorf("stream %q truncated", e.name)
		}
		return data[:e.size], nil
	}

	var out []byte
	sect := e.startSector
	for steps := 0; sect != endOfChain && sect != freeSector; steps++ {
		if steps > len(cf.miniFAT)+1 {
			return nil, fmt.Errorf("cyclic mini chain at %d", e.startSector)
		}
		start := uint64(sect) * uint64(cf.miniSize)
		end := start + uint64(cf.miniSize)
		if end > uint64(len(cf.miniStream)) {
			return nil, fmt.Errorf("mini sector %d out of range", sect)
		}
		out = append(out, cf.miniStream[start:end]...)
		if int(sect) >= len(cf.miniFAT) {
			break
		}
		sect = cf.miniFAT[sect]
	}
	if uint32(len(out)) < e.size {
		return nil, fmt.Errorf("stream %q truncated", e.name)
	}
	return out[:e.size], nil
}
