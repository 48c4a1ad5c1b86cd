package service

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
)

var (
	ErrInvalidYoutubeID = errors.New("youtube_id tidak valid")

	reYoutubeID = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
)

// ExtractYoutubeID menerima id 11 karakter atau URL youtube.com/watch?v=,
// youtube.com/shorts/, youtube.com/embed/, youtu.be/.
func ExtractYoutubeID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if reYoutubeID.MatchString(raw) {
		return raw, nil
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", ErrInvalidYoutubeID
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")
	segs := strings.Split(strings.Trim(u.Path, "/"), "/")

	var id string
	switch host {
	case "youtu.be":
		id = segs[0]
	case "youtube.com", "youtube-nocookie.com", "music.youtube.com":
		switch {
		case segs[0] == "watch":
			id = u.Query().Get("v")
		case len(segs) >= 2 && (segs[0] == "shorts" || segs[0] == "embed" || segs[0] == "live" || segs[0] == "v"):
			id = segs[1]
		}
	}
	if !reYoutubeID.MatchString(id) {
		return "", ErrInvalidYoutubeID
	}
	return id, nil
}
