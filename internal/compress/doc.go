// Package compress decodes compressed record blobs.
//
// Supported codecs are gzip and zstd (github.com/klauspost/compress) and
// LZ4 frames (github.com/pierrec/lz4/v4). A codec is chosen from the blob
// name's extension, or by sniffing the leading magic bytes.
package compress
