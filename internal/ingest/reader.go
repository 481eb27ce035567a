// Package ingest is the asynchronous boundary: reading upload bytes with
// progress callbacks, parsing them into rows, and committing the result
// against the session's upload generation.
package ingest

import (
	"bytes"
	"context"
	"io"
)

// ProgressFunc receives the fraction of bytes read so far, in [0,1].
type ProgressFunc func(fraction float64)

// Reader reads an upload in chunks, reporting byte progress. Parsing happens
// after the read completes, synchronously.
type Reader struct {
	chunk int
}

func NewReader(chunkBytes int) *Reader {
	if chunkBytes <= 0 {
		chunkBytes = 64 << 10
	}
	return &Reader{chunk: chunkBytes}
}

// ReadAll drains src, calling onProgress per chunk when the total size is
// known, and once with 1 at the end. The context cancels between chunks.
func (rd *Reader) ReadAll(ctx context.Context, src io.Reader, size int64, onProgress ProgressFunc) ([]byte, error) {
	buf := make([]byte, rd.chunk)
	var out bytes.Buffer
	var read int64
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n, err := src.Read(buf)
		if n > 0 {
			out.Write(buf[:n])
			read += int64(n)
			if onProgress != nil && size > 0 && read < size {
				onProgress(float64(read) / float64(size))
			}
		}
		if err == io.EOF {
			if onProgress != nil {
				onProgress(1)
			}
			return out.Bytes(), nil
		}
		if err != nil {
			return nil, err
		}
	}
}
