package bus

// SampleTopic and ResponseTopic are the plant monitor's own bus topics,
// layered on top of the generic pub/sub fabric above. The link adapter
// (C8) publishes each composite sample it writes to the latest-sample
// characteristic on SampleTopic, and each encoded response frame it
// writes to the response characteristic on ResponseTopic (§4.7
// "Notifications"). Nothing in this module subscribes to either topic.
var (
	SampleTopic   = Topic{S("link"), S("sample")}
	ResponseTopic = Topic{S("link"), S("response")}
)
