package equation

import (
	"bytes"
	"encoding/binary"
	"testing"
	"unicode/utf16"
)

// buildOLEObject assembles a minimal compound file holding the given
// equation stream bytes (OLE equation header included) in the mini
// stream, the way Word embeds MathType objects.
//
// Sector layout: 0 = FAT, 1 = directory, 2 = mini FAT, 3.. = mini stream.
func buildOLEObject(t *testing.T, stream []byte) []byte {
	t.Helper()

	const sectorSize = 512
	miniSectors := (len(stream) + 63) / 64
	if miniSectors == 0 {
		miniSectors = 1
	}
	streamSectors := (miniSectors*64 + sectorSize - 1) / sectorSize

	header := make([]byte, sectorSize)
	copy(header, cfbSignature)
	binary.LittleEndian.PutUint16(header[26:], 3)      // minor version
	binary.LittleEndian.PutUint16(header[28:], 0x003E) // major version
	binary.LittleEndian.PutUint16(header[30:], 9)      // sector shift: 512
	binary.LittleEndian.PutUint16(header[32:], 6)      // mini shift: 64
	binary.LittleEndian.PutUint32(header[44:], 1)      // one FAT sector
	binary.LittleEndian.PutUint32(header[48:], 1)      // first directory sector
	binary.LittleEndian.PutUint32(header[56:], 4096)   // mini stream cutoff
	binary.LittleEndian.PutUint32(header[60:], 2)      // first mini FAT sector
	binary.LittleEndian.PutUint32(header[64:], 1)      // one mini FAT sector
	binary.LittleEndian.PutUint32(header[76:], 0)      // DIFAT[0] -> FAT in sector 0
	for i := 1; i < 109; i++ {
		binary.LittleEndian.PutUint32(header[76+4*i:], freeSector)
	}

	fat := make([]byte, sectorSize)
	for i := 0; i < sectorSize/4; i++ {
		binary.LittleEndian.PutUint32(fat[4*i:], freeSector)
	}
	binary.LittleEndian.PutUint32(fat[0:], 0xFFFFFFFD) // FAT sector marker
	binary.LittleEndian.PutUint32(fat[4:], endOfChain) // directory chain
	binary.LittleEndian.PutUint32(fat[8:], endOfChain) // mini FAT chain
	for i := 0; i < streamSectors; i++ {
		next := uint32(endOfChain)
		if i+1 < streamSectors {
			next = uint32(3 + i + 1)
		}
		binary.LittleEndian.PutUint32(fat[4*(3+i):], next)
	}

	dir := make([]byte, sectorSize)
	writeDirEntry(dir[0:128], "Root Entry", 5, 3, uint32(miniSectors*64))
	writeDirEntry(dir[128:256], equationStreamName, 2, 0, uint32(len(stream)))

	miniFAT := make([]byte, sectorSize)
	for i := 0; i < sectorSize/4; i++ {
		binary.LittleEndian.PutUint32(miniFAT[4*i:], freeSector)
	}
	for i := 0; i < miniSectors; i++ {
		next := uint32(endOfChain)
		if i+1 < miniSectors {
			next = uint32(i + 1)
		}
		binary.LittleEndian.PutUint32(miniFAT[4*i:], next)
	}

	miniStream := make([]byte, streamSectors*sectorSize)
	copy(miniStream, stream)

	var out bytes.Buffer
	out.Write(header)
	out.Write(fat)
	out.Write(dir)
	out.Write(miniFAT)
	out.Write(miniStream)
	return out.Bytes()
}

func writeDirEntry(dst []byte, name string, objectType byte, start, size uint32) {
	units := utf16.Encode([]rune(name))
	for i, u := range units {
		binary.LittleEndian.PutUint16(dst[2*i:], u)
	}
	binary.LittleEndian.PutUint16(dst[64:], uint16(2*len(units)+2))
	dst[66] = objectType
	binary.LittleEndian.PutUint32(dst[116:], start)
	binary.LittleEndian.PutUint32(dst[120:], size)
}

// equationHeader is a 28-byte EQNOLEFILEHDR with only the length field set.
func equationHeader() []byte {
	hdr := make([]byte, 28)
	binary.LittleEndian.PutUint16(hdr[0:], 28)
	return hdr
}

func TestEquationStream(t *testing.T) {
	mtefBytes := mtef3(recChar, faceVariable, 'x')
	blob := buildOLEObject(t, append(equationHeader(), mtefBytes...))

	got, err := EquationStream(blob)
	if err != nil {
		t.Fatalf("EquationStream: %v", err)
	}
	if !bytes.Equal(got, mtefBytes) {
		t.Errorf("EquationStream = % x, want % x", got, mtefBytes)
	}
}

func TestConvertCompoundFile(t *testing.T) {
	mtefBytes := mtef3(
		recChar, faceVariable, 'E',
		recChar, faceText, '=',
		recChar, faceVariable, 'm',
	)
	blob := buildOLEObject(t, append(equationHeader(), mtefBytes...))

	got, err := MTEF{}.Convert(blob)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	want := "<math><mi>E</mi><mo>=</mo><mi>m</mi></math>"
	if got != want {
		t.Errorf("Convert = %q, want %q", got, want)
	}
}

func TestEquationStreamErrors(t *testing.T) {
	if _, err := EquationStream([]byte("not a compound file at all")); err == nil {
		t.Error("plain bytes should not parse as a compound file")
	}
	if _, err := EquationStream(nil); err == nil {
		t.Error("nil blob should fail")
	}

	// A valid container without the equation stream must fail cleanly.
	blob := buildOLEObject(t, append(equationHeader(), mtef3()...))
	// Rename the stream entry: directory starts at sector 2 of the file
	// layout (header + FAT), second entry at offset 128.
	dirOff := 512 * 2
	copy(blob[dirOff+128:], make([]byte, 64))
	writeDirEntry(blob[dirOff+128:dirOff+256], "Contents", 2, 0, 4)
	if _, err := EquationStream(blob); err == nil {
		t.Error("container without Equation Native stream should fail")
	}
}
