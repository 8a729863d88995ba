package benchmark_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/hupe1980/pixgo/contrib"
	"github.com/hupe1980/pixgo/internal/math32"
	"github.com/hupe1980/pixgo/testutil"
)

// randomBundle builds a bundle with realistic value noise so the
// compressors see representative entropy.
func randomBundle(mapSize, numMaps int) *contrib.Maps {
	rng := testutil.NewRNG(1)

	maps := contrib.NewMaps()
	for i := 0; i < numMaps; i++ {
		m := contrib.NewMap(contrib.Descriptor{
			MapSize:     mapSize,
			CameraAngle: float32(i) * math32.Pi / float32(numMaps),
		})
		rng.FillUniform(m.Values)
		maps.Add(m)
	}
	return maps
}

var compressions = []struct {
	name string
	c    contrib.Compression
}{
	{"none", contrib.CompressionNone},
	{"lz4", contrib.CompressionLZ4},
	{"zstd", contrib.CompressionZSTD},
}

func BenchmarkEncode(b *testing.B) {
	maps := randomBundle(256, 3)

	var size bytes.Buffer
	if err := maps.Encode(&size, contrib.CompressionNone); err != nil {
		b.Fatal(err)
	}

	for _, cc := range compressions {
		b.Run(cc.name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(size.Len()))

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := maps.Encode(io.Discard, cc.c); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkDecode(b *testing.B) {
	maps := randomBundle(256, 3)

	for _, cc := range compressions {
		b.Run(cc.name, func(b *testing.B) {
			var buf bytes.Buffer
			if err := maps.Encode(&buf, cc.c); err != nil {
				b.Fatal(err)
			}
			payload := buf.Bytes()

			b.ReportAllocs()
			b.SetBytes(int64(len(payload)))

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := contrib.Decode(bytes.NewReader(payload)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
