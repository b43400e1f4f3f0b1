package event

// Channel identifies which feed delivered a frame.
type Channel string

const (
	// ChannelDetail is the per-symbol connection (/ws/stock/{code}/).
	ChannelDetail Channel = "detail"
	// ChannelHeatmap is the shared connection carrying theme fan-out envelopes.
	ChannelHeatmap Channel = "heatmap"
)

// Frame is one raw payload delivered by a feed session, before
// classification. Gen is the session generation that produced it: the engine
// drops frames whose generation no longer matches the live session, since the
// transport may still deliver queued messages after a replacement was
// requested.
type Frame struct {
	Seq     uint64
	Gen     uint64
	Channel Channel
	Code    string // subscribed code of the producing session ("" on heatmap)
	Payload []byte
}
