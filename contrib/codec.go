package contrib

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"unsafe"

	"github.com/hupe1980/pixgo/internal/conv"
)

const (
	// bundleVersion is the current bundle format version.
	bundleVersion = 1

	// maxMapSize bounds the per-axis resolution accepted from
	// serialized data.
	maxMapSize = 1 << 12
)

// bundleMagic identifies serialized map bundles (ASCII: "PCMP").
var bundleMagic = [4]byte{'P', 'C', 'M', 'P'}

var (
	ErrInvalidMagic    = errors.New("invalid magic number")
	ErrInvalidVersion  = errors.New("unsupported version")
	ErrUnalignedAccess = errors.New("unaligned memory access detected")
)

// The value payload is written with raw little-endian byte copies.
func init() {
	var test uint16 = 0x0001
	if *(*byte)(unsafe.Pointer(&test)) != 1 {
		panic("pixgo/contrib: big-endian systems are not supported")
	}
}

// bundleHeader is the 12-byte header at the start of every bundle.
type bundleHeader struct {
	Magic   [4]byte
	Version uint32
	NumMaps uint32
}

// mapHeader precedes the values of each serialized map.
type mapHeader struct {
	MapSize     uint32
	CameraAngle float32
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

// WriteTo writes the bundle to a writer in binary format: the bundle
// header followed by each map's header and raw values, all
// little-endian.
//
// It matches the io.WriterTo interface for toolchain friendliness.
func (b *Maps) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}

	numMaps, err := conv.IntToUint32(len(b.maps))
	if err != nil {
		return cw.n, err
	}

	header := bundleHeader{
		Magic:   bundleMagic,
		Version: bundleVersion,
		NumMaps: numMaps,
	}
	if err := binary.Write(cw, binary.LittleEndian, &header); err != nil {
		return cw.n, err
	}

	for _, m := range b.maps {
		if err := m.validate(); err != nil {
			return cw.n, err
		}

		mapSize, err := conv.IntToUint32(m.Descriptor.MapSize)
		if err != nil {
			return cw.n, err
		}

		mh := mapHeader{
			MapSize:     mapSize,
			CameraAngle: m.Descriptor.CameraAngle,
		}
		if err := binary.Write(cw, binary.LittleEndian, &mh); err != nil {
			return cw.n, err
		}

		if err := writeFloat32Slice(cw, m.Values); err != nil {
			return cw.n, err
		}
	}

	return cw.n, nil
}

// ReadMaps reads a bundle written by WriteTo. The maps come back
// sorted by ascending camera angle regardless of their stored order.
func ReadMaps(r io.Reader) (*Maps, error) {
	var header bundleHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, err
	}
	if header.Magic != bundleMagic {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidMagic, header.Magic[:])
	}
	if header.Version != bundleVersion {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidVersion, header.Version)
	}

	numMaps, err := conv.Uint32ToInt(header.NumMaps)
	if err != nil {
		return nil, err
	}

	maps := make([]*Map, 0, numMaps)
	for i := 0; i < numMaps; i++ {
		var mh mapHeader
		if err := binary.Read(r, binary.LittleEndian, &mh); err != nil {
			return nil, err
		}
		if mh.MapSize == 0 || mh.MapSize > maxMapSize {
			return nil, fmt.Errorf("map size %d exceeds limit", mh.MapSize)
		}

		m := NewMap(Descriptor{
			MapSize:     int(mh.MapSize),
			CameraAngle: mh.CameraAngle,
		})
		if err := readFloat32SliceInto(r, m.Values); err != nil {
			return nil, err
		}

		maps = append(maps, m)
	}

	return NewMaps(maps...), nil
}

// writeFloat32Slice writes a float32 slice as raw bytes (zero-copy).
// Safety: validates alignment before the unsafe conversion.
func writeFloat32Slice(w io.Writer, vec []float32) error {
	if len(vec) == 0 {
		return nil
	}

	ptr := uintptr(unsafe.Pointer(&vec[0]))
	if ptr%4 != 0 {
		return fmt.Errorf("%w: float32 slice at address 0x%x", ErrUnalignedAccess, ptr)
	}

	byteSlice := unsafe.Slice((*byte)(unsafe.Pointer(&vec[0])), len(vec)*4)
	_, err := w.Write(byteSlice)
	return err
}

// readFloat32SliceInto reads raw bytes into the provided float32 slice.
func readFloat32SliceInto(r io.Reader, vec []float32) error {
	if len(vec) == 0 {
		return nil
	}

	byteSlice := unsafe.Slice((*byte)(unsafe.Pointer(&vec[0])), len(vec)*4)
	if _, err := io.ReadFull(r, byteSlice); err != nil {
		return err
	}
	return nil
}
