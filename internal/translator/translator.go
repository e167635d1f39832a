// Package translator converts raw upstream video-platform objects into the
// gateway's published wire schema. Every function is pure and total: any
// partial or malformed input produces a schema-valid object with typed zero
// defaults, and embedded media URLs are rewritten to the gateway's own proxy
// endpoints.
package translator

import (
	"strconv"

	"github.com/vidgate/vidgate/internal/upstream"
)

// SearchResults translates a listing of search hits into the heterogeneous
// wire array of video/channel/playlist objects. Hits with an unknown type
// are rendered as videos, the dominant shape.
func SearchResults(hits []upstream.SearchHit) []any {
	out := make([]any, 0, len(hits))
	for _, hit := range hits {
		switch hit.Type {
		case "channel":
			out = append(out, channelItem(hit))
		case "playlist":
			out = append(out, playlistItem(hit))
		default:
			out = append(out, videoItem(hit))
		}
	}
	return out
}

// TrendingVideos translates a trending listing, which is always
// video-shaped.
func TrendingVideos(hits []upstream.SearchHit) []VideoItem {
	out := make([]VideoItem, 0, len(hits))
	for _, hit := range hits {
		out = append(out, videoItem(hit))
	}
	return out
}

func videoItem(hit upstream.SearchHit) VideoItem {
	views := ParseCount(hit.Views)
	return VideoItem{
		Type:            "video",
		Title:           hit.Title,
		VideoID:         hit.ID,
		Author:          hit.Author,
		AuthorID:        hit.AuthorID,
		AuthorURL:       authorURL(hit.AuthorID),
		VideoThumbnails: thumbnails(hit.ID, hit.Thumbnails),
		Description:     hit.Description,
		ViewCount:       views,
		ViewCountText:   hit.Views,
		PublishedText:   hit.Published,
		LengthSeconds:   ParseDuration(hit.Duration),
		LiveNow:         false,
	}
}

func channelItem(hit upstream.SearchHit) ChannelItem {
	return ChannelItem{
		Type:             "channel",
		Author:           firstNonEmpty(hit.Author, hit.Title),
		AuthorID:         hit.ID,
		AuthorURL:        authorURL(hit.ID),
		AuthorThumbnails: avatarThumbnails(hit.Thumbnails),
		SubCount:         ParseCount(hit.Subscribers),
		SubCountText:     hit.Subscribers,
		VideoCount:       ParseCount(hit.VideoCount),
		Description:      hit.Description,
	}
}

func playlistItem(hit upstream.SearchHit) PlaylistItem {
	return PlaylistItem{
		Type:       "playlist",
		Title:      hit.Title,
		PlaylistID: hit.ID,
		Author:     hit.Author,
		AuthorID:   hit.AuthorID,
		VideoCount: ParseCount(hit.VideoCount),
	}
}

// RelatedVideo normalizes a related-video entry into a recommended-video
// object. The legacy sub-shape delivers author, views and published as
// ordered metadata rows instead of named fields.
func RelatedVideo(item upstream.RelatedItem) RecommendedVideo {
	author := item.Author
	views := item.Views
	if author == "" && len(item.Metadata) > 0 {
		author = item.Metadata[0]
	}
	if views == "" && len(item.Metadata) > 1 {
		views = item.Metadata[1]
	}
	return RecommendedVideo{
		VideoID:         item.ID,
		Title:           item.Title,
		Author:          author,
		AuthorID:        item.AuthorID,
		ViewCount:       ParseCount(views),
		ViewCountText:   views,
		LengthSeconds:   ParseDuration(item.Duration),
		VideoThumbnails: thumbnails(item.ID, item.Thumbnails),
	}
}

// Video translates the full video-detail record, including stream manifests
// and recommendations.
func Video(info *upstream.VideoInfo) VideoDetails {
	if info == nil {
		info = &upstream.VideoInfo{}
	}

	formats := make([]StreamItem, 0, len(info.Formats))
	for _, f := range info.Formats {
		formats = append(formats, streamItem(f))
	}
	adaptive := make([]StreamItem, 0, len(info.AdaptiveFormats))
	for _, f := range info.AdaptiveFormats {
		adaptive = append(adaptive, streamItem(f))
	}
	recommended := make([]RecommendedVideo, 0, len(info.Related))
	for _, item := range info.Related {
		recommended = append(recommended, RelatedVideo(item))
	}

	keywords := info.Keywords
	if keywords == nil {
		keywords = []string{}
	}

	return VideoDetails{
		Type:              "video",
		Title:             info.Title,
		VideoID:           info.ID,
		VideoThumbnails:   thumbnails(info.ID, info.Thumbnails),
		Description:       info.Description,
		PublishedText:     info.Published,
		Keywords:          keywords,
		ViewCount:         ParseCount(info.Views),
		LikeCount:         ParseCount(info.LikeCount),
		Author:            info.Author,
		AuthorID:          info.AuthorID,
		AuthorURL:         authorURL(info.AuthorID),
		AuthorThumbnails:  avatarThumbnails(info.AuthorAvatars),
		SubCountText:      info.Subscribers,
		LengthSeconds:     info.LengthSeconds,
		LiveNow:           info.IsLive,
		FormatStreams:     formats,
		AdaptiveFormats:   adaptive,
		RecommendedVideos: recommended,
	}
}

// Channel translates a channel record.
func Channel(info *upstream.ChannelInfo) ChannelDetails {
	if info == nil {
		info = &upstream.ChannelInfo{}
	}

	latest := make([]VideoItem, 0, len(info.Videos))
	for _, hit := range info.Videos {
		item := videoItem(hit)
		if item.Author == "" {
			item.Author = info.Author
			item.AuthorID = info.ID
			item.AuthorURL = authorURL(info.ID)
		}
		latest = append(latest, item)
	}

	return ChannelDetails{
		Type:             "channel",
		Author:           info.Author,
		AuthorID:         info.ID,
		AuthorURL:        authorURL(info.ID),
		AuthorThumbnails: avatarThumbnails(info.Avatars),
		AuthorBanners:    avatarThumbnails(info.Banners),
		SubCount:         ParseCount(info.Subscribers),
		SubCountText:     info.Subscribers,
		TotalVideos:      ParseCount(info.VideoCount),
		Description:      info.Description,
		LatestVideos:     latest,
	}
}

// LyricsRecord translates a lyrics record.
func LyricsRecord(info *upstream.LyricsInfo) Lyrics {
	if info == nil {
		info = &upstream.LyricsInfo{}
	}
	return Lyrics{
		VideoID: info.VideoID,
		Lyrics:  info.Lyrics,
		Source:  info.Source,
	}
}

func streamItem(f upstream.StreamFormat) StreamItem {
	item := StreamItem{
		URL:           RewritePlaybackURL(f.URL),
		ITag:          strconv.Itoa(f.ITag),
		Type:          f.MimeType,
		Bitrate:       strconv.Itoa(f.Bitrate),
		QualityLabel:  f.QualityLabel,
		AudioQuality:  f.AudioQuality,
		ContentLength: f.ContentLength,
		FPS:           f.FPS,
	}
	if f.Width > 0 && f.Height > 0 {
		item.Resolution = strconv.Itoa(f.Width) + "x" + strconv.Itoa(f.Height)
	}
	return item
}

// thumbnails maps upstream thumbnail variants onto proxied wire thumbnails.
// A video with no upstream variants still gets the default-name set, built
// from its id, so the field is never empty for a known video.
func thumbnails(videoID string, in []upstream.Thumbnail) []ThumbnailItem {
	if len(in) == 0 {
		if videoID == "" {
			return []ThumbnailItem{}
		}
		return []ThumbnailItem{
			{Quality: "medium", URL: "/vi/" + videoID + "/mqdefault.jpg", Width: 320, Height: 180},
			{Quality: "high", URL: "/vi/" + videoID + "/hqdefault.jpg", Width: 480, Height: 360},
		}
	}
	out := make([]ThumbnailItem, 0, len(in))
	for _, t := range in {
		out = append(out, ThumbnailItem{
			Quality: qualityFor(t.Width),
			URL:     RewriteImageURL(t.URL),
			Width:   t.Width,
			Height:  t.Height,
		})
	}
	return out
}

func avatarThumbnails(in []upstream.Thumbnail) []ThumbnailItem {
	out := make([]ThumbnailItem, 0, len(in))
	for _, t := range in {
		out = append(out, ThumbnailItem{
			Quality: qualityFor(t.Width),
			URL:     RewriteImageURL(t.URL),
			Width:   t.Width,
			Height:  t.Height,
		})
	}
	return out
}

func qualityFor(width int) string {
	switch {
	case width >= 1280:
		return "maxres"
	case width >= 640:
		return "sddefault"
	case width >= 480:
		return "high"
	case width >= 320:
		return "medium"
	default:
		return "default"
	}
}

func authorURL(authorID string) string {
	if authorID == "" {
		return ""
	}
	return "/channel/" + authorID
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
