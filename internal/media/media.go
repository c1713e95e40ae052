package media

import (
	"net/url"
	"strings"

	"memenews/internal/model"
)

// BestImageURL picks the best available image for a post: the preview
// source (entity-decoded) wins over a direct .jpg/.png URL, which wins
// over the thumbnail. Returns "" when nothing parses as a usable URL.
// Listing feeds put sentinel values like "self" or "default" into the
// thumbnail field, which the URL check rejects.
func BestImageURL(p model.Post) string {
	if p.PreviewURL != "" {
		decoded := strings.ReplaceAll(p.PreviewURL, "&amp;", "&")
		if isImageURL(decoded) {
			return decoded
		}
	}

	lower := strings.ToLower(p.URL)
	if strings.HasSuffix(lower, ".jpg") || strings.HasSuffix(lower, ".png") {
		if isImageURL(p.URL) {
			return p.URL
		}
	}

	if isImageURL(p.Thumbnail) {
		return p.Thumbnail
	}

	return ""
}

// MemeCandidate is the stricter gate applied to meme posts only: no
// adult content, no videos, and the source must declare the post an
// image.
func MemeCandidate(p model.Post) bool {
	return !p.Over18 && !p.IsVideo && p.PostHint == "image"
}

func isImageURL(s string) bool {
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
