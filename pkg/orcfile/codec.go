package orcfile

import (
	"fmt"
	"slices"

	"github.com/patrickhuang888/goorc/pb/pb"
)

// Codecs returns the compression codec names in canonical order. The wire
// protocol declares all six, but the library only implements a subset, see
// WritableCodecs.
func Codecs() []string {
	return []string{"none", "snappy", "zlib", "lzo", "zstd", "lz4"}
}

// WritableCodecs returns the codecs the library can actually write. Anything
// else fails on the first compressed chunk.
func WritableCodecs() []string {
	return []string{"none", "zlib"}
}

// Writable reports whether the writer implements the named codec.
func Writable(name string) bool {
	return slices.Contains(WritableCodecs(), name)
}

var codecKinds = map[string]pb.CompressionKind{
	"none":   pb.CompressionKind_NONE,
	"snappy": pb.CompressionKind_SNAPPY,
	"zlib":   pb.CompressionKind_ZLIB,
	"lzo":    pb.CompressionKind_LZO,
	"zstd":   pb.CompressionKind_ZSTD,
	"lz4":    pb.CompressionKind_LZ4,
}

// Codec maps a codec name onto the library's compression kind.
func Codec(name string) (pb.CompressionKind, error) {
	kind, ok := codecKinds[name]
	if !ok {
		return pb.CompressionKind_NONE, fmt.Errorf("unknown compression codec: %s", name)
	}

	return kind, nil
}
