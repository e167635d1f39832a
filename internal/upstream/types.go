package upstream

// Raw object shapes returned by the upstream video-platform API. Fields are
// loosely typed and frequently absent; the translator layer owns turning
// these into the gateway's wire schema.

// Thumbnail is a single image variant.
type Thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// SearchHit is one result from a search or trending listing. Type selects
// which fields are meaningful.
type SearchHit struct {
	Type        string      `json:"type"` // video, channel, playlist
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Author      string      `json:"author"`
	AuthorID    string      `json:"authorId"`
	Description string      `json:"description"`
	Duration    string      `json:"duration"`  // "12:34"
	Published   string      `json:"published"` // "3 years ago"
	Views       string      `json:"views"`     // "1.2M views"
	Thumbnails  []Thumbnail `json:"thumbnails"`
	// Channel hits
	Subscribers string `json:"subscribers"`
	// Playlist hits
	VideoCount string `json:"videoCount"`
}

// RelatedItem is a related-video entry. Two sub-shapes exist in the wild:
// the modern flat shape carries author/views/published directly, while the
// legacy shape packs them into ordered metadata rows (author, views,
// published).
type RelatedItem struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	Author     string      `json:"author"`
	AuthorID   string      `json:"authorId"`
	Duration   string      `json:"duration"`
	Views      string      `json:"views"`
	Published  string      `json:"published"`
	Metadata   []string    `json:"metadata"`
	Thumbnails []Thumbnail `json:"thumbnails"`
}

// StreamFormat describes one muxed or adaptive stream variant.
type StreamFormat struct {
	ITag          int    `json:"itag"`
	URL           string `json:"url"`
	MimeType      string `json:"mimeType"`
	Bitrate       int    `json:"bitrate"`
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	ContentLength string `json:"contentLength"`
	QualityLabel  string `json:"qualityLabel"`
	AudioQuality  string `json:"audioQuality"`
	FPS           int    `json:"fps"`
}

// VideoInfo is the full video-detail record including stream manifests.
type VideoInfo struct {
	ID              string         `json:"id"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Author          string         `json:"author"`
	AuthorID        string         `json:"authorId"`
	LengthSeconds   int            `json:"lengthSeconds"`
	Views           string         `json:"views"`
	Published       string         `json:"published"`
	Keywords        []string       `json:"keywords"`
	LikeCount       string         `json:"likeCount"`
	Subscribers     string         `json:"subscribers"`
	IsLive          bool           `json:"isLive"`
	Thumbnails      []Thumbnail    `json:"thumbnails"`
	AuthorAvatars   []Thumbnail    `json:"authorAvatars"`
	Formats         []StreamFormat `json:"formats"`
	AdaptiveFormats []StreamFormat `json:"adaptiveFormats"`
	Related         []RelatedItem  `json:"related"`
}

// ChannelInfo is a channel record.
type ChannelInfo struct {
	ID          string      `json:"id"`
	Author      string      `json:"author"`
	Description string      `json:"description"`
	Subscribers string      `json:"subscribers"`
	VideoCount  string      `json:"videoCount"`
	Avatars     []Thumbnail `json:"avatars"`
	Banners     []Thumbnail `json:"banners"`
	Videos      []SearchHit `json:"videos"`
}

// LyricsInfo is a timed or plain lyrics record for a video.
type LyricsInfo struct {
	VideoID string `json:"videoId"`
	Lyrics  string `json:"lyrics"`
	Source  string `json:"source"`
}
