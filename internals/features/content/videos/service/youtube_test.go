package service

import (
	"errors"
	"testing"
)

func TestExtractYoutubeID(t *testing.T) {
	const id = "dQw4w9WgXcQ"
	valid := []string{
		id,
		"  " + id + " ",
		"https://www.youtube.com/watch?v=" + id,
		"https://youtube.com/watch?feature=share&v=" + id,
		"youtube.com/watch?v=" + id,
		"https://m.youtube.com/watch?v=" + id,
		"https://youtu.be/" + id + "?t=42",
		"https://www.youtube.com/shorts/" + id,
		"https://www.youtube.com/embed/" + id,
		"https://www.youtube-nocookie.com/embed/" + id,
		"https://www.youtube.com/live/" + id,
	}
	for _, in := range valid {
		got, err := ExtractYoutubeID(in)
		if err != nil || got != id {
			t.Errorf("ExtractYoutubeID(%q) = %q, %v", in, got, err)
		}
	}

	invalid := []string{
		"",
		"short",
		"https://vimeo.com/" + id,
		"https://www.youtube.com/watch",
		"https://www.youtube.com/channel/UC123",
		"https://youtu.be/",
	}
	for _, in := range invalid {
		if _, err := ExtractYoutubeID(in); !errors.Is(err, ErrInvalidYoutubeID) {
			t.Errorf("ExtractYoutubeID(%q) err = %v, want ErrInvalidYoutubeID", in, err)
		}
	}
}
