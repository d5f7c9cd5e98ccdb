package core

import (
	"io"
	"math"
	"strconv"
	"sync/atomic"
	"time"
)

var sizeSuffixes = [5]string{"B", "KB", "MB", "GB", "TB"}

func round(val float64, roundOn float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	digit := pow * val
	_, fraction := math.Modf(digit)
	if fraction >= roundOn {
		return math.Ceil(digit) / pow
	}
	return math.Floor(digit) / pow
}

// humanFileSize renders a byte count with a binary unit, e.g. "238.42 MB".
func humanFileSize(size float64) string {
	if size < 1 {
		return "0 B"
	}
	base := math.Log(size) / math.Log(1024)
	exponent := int(math.Min(math.Floor(base), float64(len(sizeSuffixes)-1)))
	scaled := round(size/math.Pow(1024, float64(exponent)), .5, 2)
	return strconv.FormatFloat(scaled, 'f', -1, 64) + " " + sizeSuffixes[exponent]
}

// downloadProgress counts bytes written through it and reports the running
// total on every tick until closed, and once more on Close.
type downloadProgress struct {
	written    atomic.Int64
	onProgress func(written string)
	ticker     *time.Ticker
	done       chan struct{}
}

func newDownloadProgress(interval time.Duration, onProgress func(written string)) io.WriteCloser {
	this := &downloadProgress{
		onProgress: onProgress,
		ticker:     time.NewTicker(interval),
		done:       make(chan struct{}),
	}
	go this.report()
	return this
}

func (this *downloadProgress) report() {
	for {
		select {
		case <-this.ticker.C:
			this.reportProgress()
		case <-this.done:
			return
		}
	}
}

func (this *downloadProgress) Write(p []byte) (int, error) {
	this.written.Add(int64(len(p)))
	return len(p), nil
}

func (this *downloadProgress) Close() error {
	this.ticker.Stop()
	close(this.done)
	this.reportProgress()
	return nil
}

func (this *downloadProgress) reportProgress() {
	this.onProgress(humanFileSize(float64(this.written.Load())))
}
