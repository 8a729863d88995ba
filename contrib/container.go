package contrib

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/pixgo/internal/fs"
)

// Compression selects the codec of the compressed container format.
type Compression uint8

const (
	// CompressionNone writes the plain binary format.
	CompressionNone Compression = 0
	// CompressionLZ4 selects LZ4 block compression (fast).
	CompressionLZ4 Compression = 1
	// CompressionZSTD selects ZSTD block compression (better ratio).
	CompressionZSTD Compression = 2
)

// ErrUnknownCompression is returned for a compression byte no codec is
// registered for.
var ErrUnknownCompression = errors.New("unknown compression type")

const (
	// containerVersion is the current container format version.
	containerVersion = 1

	blockHeaderSize  = 8
	defaultBlockSize = 256 * 1024
	maxBlockSize     = 16 << 20
)

// containerMagic identifies compressed bundle containers (ASCII: "PCMZ").
var containerMagic = [4]byte{'P', 'C', 'M', 'Z'}

// containerHeader is the 12-byte header of the compressed container. It
// is followed by block-compressed plain bundle bytes.
type containerHeader struct {
	Magic       [4]byte
	Version     uint32
	Compression uint8
	Padding     [3]byte
}

// blockHeader precedes every compressed block. A compressed size of
// zero marks a block stored raw.
type blockHeader struct {
	UncompressedSize uint32
	CompressedSize   uint32
}

// ZSTD encoder/decoder pools for efficiency
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

// Encode writes the bundle with the given compression. CompressionNone
// writes the plain binary format of WriteTo; the other codecs wrap the
// payload in a block-compressed container.
func (b *Maps) Encode(w io.Writer, compression Compression) error {
	if compression == CompressionNone {
		_, err := b.WriteTo(w)
		return err
	}

	header := containerHeader{
		Magic:       containerMagic,
		Version:     containerVersion,
		Compression: uint8(compression),
	}
	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return err
	}

	bw := newBlockWriter(w, compression, defaultBlockSize)
	if _, err := b.WriteTo(bw); err != nil {
		return err
	}

	return bw.flush()
}

// Decode reads a bundle in either the plain or the compressed container
// format, detected from the leading magic bytes.
func Decode(r io.Reader) (*Maps, error) {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}

	magic, err := br.Peek(4)
	if err != nil {
		return nil, err
	}

	if bytes.Equal(magic, bundleMagic[:]) {
		return ReadMaps(br)
	}
	if !bytes.Equal(magic, containerMagic[:]) {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidMagic, magic)
	}

	var header containerHeader
	if err := binary.Read(br, binary.LittleEndian, &header); err != nil {
		return nil, err
	}
	if header.Version != containerVersion {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidVersion, header.Version)
	}

	compression := Compression(header.Compression)

	var payload bytes.Buffer
	for {
		block, err := readBlock(br, compression)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		payload.Write(block)
	}

	return ReadMaps(&payload)
}

// SaveToFile writes the bundle to a file, atomically replacing any
// existing one.
func (b *Maps) SaveToFile(filename string, compression Compression) error {
	return fs.SaveToFile(fs.Default, filename, func(w io.Writer) error {
		return b.Encode(w, compression)
	})
}

// LoadFromFile reads a bundle from a file in either format.
func LoadFromFile(filename string) (*Maps, error) {
	var maps *Maps
	err := fs.LoadFromFile(fs.Default, filename, func(r io.Reader) error {
		var err error
		maps, err = Decode(r)
		return err
	})
	if err != nil {
		return nil, err
	}
	return maps, nil
}

// blockWriter chunks its input into fixed-size blocks and writes them
// compressed to the underlying writer.
type blockWriter struct {
	w           io.Writer
	compression Compression
	blockSize   int
	buffer      *bytes.Buffer
}

func newBlockWriter(w io.Writer, compression Compression, blockSize int) *blockWriter {
	if blockSize <= 0 {
		blockSize = defaultBlockSize
	}
	return &blockWriter{
		w:           w,
		compression: compression,
		blockSize:   blockSize,
		buffer:      bytes.NewBuffer(make([]byte, 0, blockSize)),
	}
}

func (bw *blockWriter) Write(p []byte) (int, error) {
	total := 0
	for len(p) > 0 {
		space := bw.blockSize - bw.buffer.Len()
		if space <= 0 {
			if err := bw.flushBlock(); err != nil {
				return total, err
			}
			space = bw.blockSize
		}

		toWrite := len(p)
		if toWrite > space {
			toWrite = space
		}

		n, err := bw.buffer.Write(p[:toWrite])
		if err != nil {
			return total, err
		}
		total += n
		p = p[n:]
	}
	return total, nil
}

func (bw *blockWriter) flushBlock() error {
	if bw.buffer.Len() == 0 {
		return nil
	}

	block, err := compressBlock(bw.buffer.Bytes(), bw.compression)
	if err != nil {
		return err
	}

	if _, err := bw.w.Write(block); err != nil {
		return err
	}

	bw.buffer.Reset()
	return nil
}

func (bw *blockWriter) flush() error {
	return bw.flushBlock()
}

// compressBlock frames data as a block header followed by the payload.
// The block is stored raw when compression does not pay off (ratio
// above 0.9) or the data is incompressible.
func compressBlock(data []byte, compression Compression) ([]byte, error) {
	var compressed []byte
	var err error

	switch compression {
	case CompressionLZ4:
		compressed, err = compressLZ4(data)
	case CompressionZSTD:
		compressed, err = compressZSTD(data)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, compression)
	}
	if err != nil {
		return nil, err
	}

	if len(compressed) == 0 || float64(len(compressed)) > float64(len(data))*0.9 {
		result := make([]byte, blockHeaderSize+len(data))
		binary.LittleEndian.PutUint32(result[0:], uint32(len(data)))
		binary.LittleEndian.PutUint32(result[4:], 0)
		copy(result[blockHeaderSize:], data)
		return result, nil
	}

	result := make([]byte, blockHeaderSize+len(compressed))
	binary.LittleEndian.PutUint32(result[0:], uint32(len(data)))
	binary.LittleEndian.PutUint32(result[4:], uint32(len(compressed)))
	copy(result[blockHeaderSize:], compressed)
	return result, nil
}

func compressLZ4(data []byte) ([]byte, error) {
	compressed := make([]byte, lz4.CompressBlockBound(len(data)))

	n, err := lz4.CompressBlock(data, compressed, nil)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		// Incompressible.
		return nil, nil
	}

	return compressed[:n], nil
}

func compressZSTD(data []byte) ([]byte, error) {
	enc := getZstdEncoder()
	defer putZstdEncoder(enc)

	return enc.EncodeAll(data, nil), nil
}

// readBlock reads and decompresses the next block. It returns io.EOF
// at a clean block boundary.
func readBlock(r io.Reader, compression Compression) ([]byte, error) {
	var bh blockHeader
	if err := binary.Read(r, binary.LittleEndian, &bh); err != nil {
		return nil, err
	}
	if bh.UncompressedSize > maxBlockSize {
		return nil, fmt.Errorf("block size %d exceeds limit", bh.UncompressedSize)
	}

	if bh.CompressedSize == 0 {
		data := make([]byte, bh.UncompressedSize)
		if _, err := io.ReadFull(r, data); err != nil {
			return nil, err
		}
		return data, nil
	}
	if bh.CompressedSize > maxBlockSize {
		return nil, fmt.Errorf("block size %d exceeds limit", bh.CompressedSize)
	}

	compressed := make([]byte, bh.CompressedSize)
	if _, err := io.ReadFull(r, compressed); err != nil {
		return nil, err
	}

	result := make([]byte, bh.UncompressedSize)

	switch compression {
	case CompressionLZ4:
		n, err := lz4.UncompressBlock(compressed, result)
		if err != nil {
			return nil, err
		}
		if uint32(n) != bh.UncompressedSize {
			return nil, errors.New("decompressed size mismatch")
		}
		return result, nil

	case CompressionZSTD:
		dec := getZstdDecoder()
		defer putZstdDecoder(dec)

		decoded, err := dec.DecodeAll(compressed, result[:0])
		if err != nil {
			return nil, err
		}
		if uint32(len(decoded)) != bh.UncompressedSize {
			return nil, errors.New("decompressed size mismatch")
		}
		return decoded, nil

	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, compression)
	}
}
