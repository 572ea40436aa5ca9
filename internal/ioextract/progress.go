package ioextract

import (
	"github.com/cheggaaa/pb/v3"
)

// newProgressBar creates a byte counting progress bar.
func newProgressBar(total uint64, prefix string) *pb.ProgressBar {
	bar := pb.Full.Start64(int64(total))
	bar.Set(pb.Bytes, true)
	bar.Set("prefix", prefix)
	bar.Set(pb.CleanOnFinish, true)
	return bar
}
