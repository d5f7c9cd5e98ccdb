package core

import (
	"encoding/hex"
	"hash"
	"io"
)

// DigestReader hashes and counts everything read through it.
type DigestReader struct {
	io.Reader
	hash  hash.Hash
	count int64
}

func NewDigestReader(source io.Reader, target hash.Hash) *DigestReader {
	return &DigestReader{Reader: source, hash: target}
}

func (this *DigestReader) Read(buffer []byte) (int, error) {
	count, err := this.Reader.Read(buffer)
	_, _ = this.hash.Write(buffer[0:count])
	this.count += int64(count)
	return count, err
}

func (this *DigestReader) Digest() string { return hex.EncodeToString(this.hash.Sum(nil)) }
func (this *DigestReader) Count() int64   { return this.count }
