package translator

// Wire schema published by the gateway, modeled on a public video-index API.
// Every field is always present in the serialized form; absent upstream data
// degrades to typed zero values, never to missing keys.

// ThumbnailItem is one proxied image variant.
type ThumbnailItem struct {
	Quality string `json:"quality"`
	URL     string `json:"url"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

// VideoItem is the search-result-shaped video object.
type VideoItem struct {
	Type            string          `json:"type"`
	Title           string          `json:"title"`
	VideoID         string          `json:"videoId"`
	Author          string          `json:"author"`
	AuthorID        string          `json:"authorId"`
	AuthorURL       string          `json:"authorUrl"`
	VideoThumbnails []ThumbnailItem `json:"videoThumbnails"`
	Description     string          `json:"description"`
	ViewCount       int64           `json:"viewCount"`
	ViewCountText   string          `json:"viewCountText"`
	PublishedText   string          `json:"publishedText"`
	LengthSeconds   int             `json:"lengthSeconds"`
	LiveNow         bool            `json:"liveNow"`
}

// ChannelItem is the search-result-shaped channel object.
type ChannelItem struct {
	Type             string          `json:"type"`
	Author           string          `json:"author"`
	AuthorID         string          `json:"authorId"`
	AuthorURL        string          `json:"authorUrl"`
	AuthorThumbnails []ThumbnailItem `json:"authorThumbnails"`
	SubCount         int64           `json:"subCount"`
	SubCountText     string          `json:"subCountText"`
	VideoCount       int64           `json:"videoCount"`
	Description      string          `json:"description"`
}

// PlaylistItem is the search-result-shaped playlist object.
type PlaylistItem struct {
	Type       string `json:"type"`
	Title      string `json:"title"`
	PlaylistID string `json:"playlistId"`
	Author     string `json:"author"`
	AuthorID   string `json:"authorId"`
	VideoCount int64  `json:"videoCount"`
}

// StreamItem is one entry of formatStreams or adaptiveFormats. URLs point at
// the gateway's own playback proxy, never at the upstream origin.
type StreamItem struct {
	URL           string `json:"url"`
	ITag          string `json:"itag"`
	Type          string `json:"type"`
	Bitrate       string `json:"bitrate"`
	Resolution    string `json:"resolution"`
	QualityLabel  string `json:"qualityLabel"`
	AudioQuality  string `json:"audioQuality"`
	ContentLength string `json:"clen"`
	FPS           int    `json:"fps"`
}

// RecommendedVideo is one related-video entry on a video-detail object.
type RecommendedVideo struct {
	VideoID         string          `json:"videoId"`
	Title           string          `json:"title"`
	Author          string          `json:"author"`
	AuthorID        string          `json:"authorId"`
	ViewCount       int64           `json:"viewCount"`
	ViewCountText   string          `json:"viewCountText"`
	LengthSeconds   int             `json:"lengthSeconds"`
	VideoThumbnails []ThumbnailItem `json:"videoThumbnails"`
}

// VideoDetails is the full translated video-detail object.
type VideoDetails struct {
	Type              string             `json:"type"`
	Title             string             `json:"title"`
	VideoID           string             `json:"videoId"`
	VideoThumbnails   []ThumbnailItem    `json:"videoThumbnails"`
	Description       string             `json:"description"`
	PublishedText     string             `json:"publishedText"`
	Keywords          []string           `json:"keywords"`
	ViewCount         int64              `json:"viewCount"`
	LikeCount         int64              `json:"likeCount"`
	Author            string             `json:"author"`
	AuthorID          string             `json:"authorId"`
	AuthorURL         string             `json:"authorUrl"`
	AuthorThumbnails  []ThumbnailItem    `json:"authorThumbnails"`
	SubCountText      string             `json:"subCountText"`
	LengthSeconds     int                `json:"lengthSeconds"`
	LiveNow           bool               `json:"liveNow"`
	FormatStreams     []StreamItem       `json:"formatStreams"`
	AdaptiveFormats   []StreamItem       `json:"adaptiveFormats"`
	RecommendedVideos []RecommendedVideo `json:"recommendedVideos"`
}

// ChannelDetails is the translated channel-detail object.
type ChannelDetails struct {
	Type             string          `json:"type"`
	Author           string          `json:"author"`
	AuthorID         string          `json:"authorId"`
	AuthorURL        string          `json:"authorUrl"`
	AuthorThumbnails []ThumbnailItem `json:"authorThumbnails"`
	AuthorBanners    []ThumbnailItem `json:"authorBanners"`
	SubCount         int64           `json:"subCount"`
	SubCountText     string          `json:"subCountText"`
	TotalVideos      int64           `json:"totalVideos"`
	Description      string          `json:"description"`
	LatestVideos     []VideoItem     `json:"latestVideos"`
}

// Lyrics is the translated lyrics object.
type Lyrics struct {
	VideoID string `json:"videoId"`
	Lyrics  string `json:"lyrics"`
	Source  string `json:"source"`
}

// Suggestions is the search-completion response shape.
type Suggestions struct {
	Query       string   `json:"query"`
	Suggestions []string `json:"suggestions"`
}
