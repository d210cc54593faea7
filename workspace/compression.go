package workspace

import (
	"compress/bzip2"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// CompressionType identifies the compression applied to a workspace entry.
type CompressionType int

const (
	CompressionNone CompressionType = iota
	CompressionGZ
	CompressionBZ2
	CompressionXZ
	CompressionZSTD
)

const (
	extGZ   = ".gz"
	extBZ2  = ".bz2"
	extXZ   = ".xz"
	extZSTD = ".zst"
)

// Extension returns the file extension for this compression type (e.g., ".gz")
func (c CompressionType) Extension() string {
	switch c {
	case CompressionGZ:
		return extGZ
	case CompressionBZ2:
		return extBZ2
	case CompressionXZ:
		return extXZ
	case CompressionZSTD:
		return extZSTD
	}
	return ""
}

// DetectCompression detects the compression type from an entry name.
func DetectCompression(name string) CompressionType {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, extGZ):
		return CompressionGZ
	case strings.HasSuffix(lower, extBZ2):
		return CompressionBZ2
	case strings.HasSuffix(lower, extXZ):
		return CompressionXZ
	case strings.HasSuffix(lower, extZSTD):
		return CompressionZSTD
	}
	return CompressionNone
}

// SplitCompression peels a compression suffix off name.
// "orders.csv.gz" yields ("orders.csv", CompressionGZ).
func SplitCompression(name string) (string, CompressionType) {
	c := DetectCompression(name)
	return name[:len(name)-len(c.Extension())], c
}

// readCloser couples a decompressing reader with the cleanup of both layers.
type readCloser struct {
	io.Reader
	close func() error
}

func (r *readCloser) Close() error { return r.close() }

// writeCloser flushes the compressor before closing the underlying writer.
type writeCloser struct {
	io.Writer
	close func() error
}

func (w *writeCloser) Close() error { return w.close() }

// wrapReader decompresses rc according to name. Closing the result closes rc.
func wrapReader(name string, rc io.ReadCloser) (io.ReadCloser, error) {
	var (
		r       io.Reader
		cleanup = func() error { return nil }
	)

	switch DetectCompression(name) {
	case CompressionNone:
		return rc, nil

	case CompressionGZ:
		gzReader, err := gzip.NewReader(rc)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		r, cleanup = gzReader, gzReader.Close

	case CompressionBZ2:
		// bzip2.NewReader doesn't need closing
		r = bzip2.NewReader(rc)

	case CompressionXZ:
		xzReader, err := xz.NewReader(rc)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		r = xzReader

	case CompressionZSTD:
		decoder, err := zstd.NewReader(rc)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd reader: %w", err)
		}
		r = decoder
		cleanup = func() error {
			decoder.Close()
			return nil
		}
	}

	return &readCloser{Reader: r, close: func() error {
		return errors.Join(cleanup(), rc.Close())
	}}, nil
}

// wrapWriter compresses into wc according to name. Closing the result flushes
// the compressor and then closes wc.
func wrapWriter(name string, wc io.WriteCloser) (io.WriteCloser, error) {
	var (
		w       io.Writer
		cleanup func() error
	)

	switch DetectCompression(name) {
	case CompressionNone:
		return wc, nil

	case CompressionGZ:
		gzWriter := gzip.NewWriter(wc)
		w, cleanup = gzWriter, gzWriter.Close

	case CompressionBZ2:
		return nil, errors.New("bzip2 compression is not supported for writing")

	case CompressionXZ:
		xzWriter, err := xz.NewWriter(wc)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz writer: %w", err)
		}
		w, cleanup = xzWriter, xzWriter.Close

	case CompressionZSTD:
		zstdWriter, err := zstd.NewWriter(wc)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd writer: %w", err)
		}
		w, cleanup = zstdWriter, zstdWriter.Close
	}

	return &writeCloser{Writer: w, close: func() error {
		return errors.Join(cleanup(), wc.Close())
	}}, nil
}
