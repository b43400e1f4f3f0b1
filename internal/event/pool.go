package event

import (
	"sync"
)

// framePool provides sync.Pool for high-frequency frame allocation.
// Use this to reduce GC pressure in the hotpath.
//
// Usage:
//
//	f := AcquireFrame()
//	f.Payload = append(f.Payload[:0], raw...)
//	// ... route frame ...
//	ReleaseFrame(f)  // Return to pool after processing
var framePool = sync.Pool{
	New: func() interface{} {
		return &Frame{}
	},
}

// AcquireFrame gets a Frame from the pool.
// The returned frame has zero values (Payload keeps its capacity) and must be
// initialized by the caller.
func AcquireFrame() *Frame {
	return framePool.Get().(*Frame)
}

// ReleaseFrame returns a Frame to the pool.
// The frame is reset before being pooled; the payload buffer is retained for
// reuse.
func ReleaseFrame(f *Frame) {
	if f == nil {
		return
	}
	f.Seq = 0
	f.Gen = 0
	f.Channel = ""
	f.Code = ""
	f.Payload = f.Payload[:0]

	framePool.Put(f)
}

// Warmup pre-allocates frames to reduce GC pressure at startup.
func Warmup() {
	const batchSize = 1000

	frames := make([]*Frame, 0, batchSize)
	for i := 0; i < batchSize; i++ {
		frames = append(frames, AcquireFrame())
	}
	for _, f := range frames {
		ReleaseFrame(f)
	}
}
