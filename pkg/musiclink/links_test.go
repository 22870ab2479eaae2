package musiclink

import "testing"

func TestExtractYouTubeVideoID(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		wantID string
		wantOK bool
	}{
		{"watch", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"short link", "https://youtu.be/dQw4w9WgXcQ?si=abc", "dQw4w9WgXcQ", true},
		{"embed", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"v path", "https://www.youtube.com/v/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"shorts", "https://youtube.com/shorts/abcdefghijk", "abcdefghijk", true},
		{"music", "https://music.youtube.com/watch?v=dQw4w9WgXcQ&feature=share", "dQw4w9WgXcQ", true},
		{"v not first", "https://www.youtube.com/watch?feature=share&v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"watch with list", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PLabc", "dQw4w9WgXcQ", true},
		{"too short", "https://youtu.be/abc", "", false},
		{"playlist", "https://www.youtube.com/playlist?list=PLabc", "", false},
		{"other host", "https://example.com/watch?v=dQw4w9WgXcQ", "", false},
		{"youtube link in query", "https://evil.example/?u=youtube.com/watch?v=dQw4w9WgXcQ", "", false},
		{"youtube link in path", "https://evil.example/youtu.be/dQw4w9WgXcQ", "", false},
		{"id too long", "https://www.youtube.com/watch?v=dQw4w9WgXcQx", "", false},
		{"short link id too long", "https://youtu.be/dQw4w9WgXcQx", "", false},
		{"embed id too long", "https://www.youtube.com/embed/dQw4w9WgXcQx", "", false},
		{"no scheme", "youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"trailing slash", "https://www.youtube.com/shorts/abcdefghijk/", "abcdefghijk", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ExtractYouTubeVideoID(tt.url)
			if id != tt.wantID || ok != tt.wantOK {
				t.Errorf("ExtractYouTubeVideoID() = %q, %v, want %q, %v", id, ok, tt.wantID, tt.wantOK)
			}
		})
	}
}

func TestExtractYouTubePlaylistID(t *testing.T) {
	tests := []struct {
		url    string
		wantID string
		wantOK bool
	}{
		{"https://www.youtube.com/playlist?list=PL590L5WQmH8fJ54F369BLDSqIwcs-TCfs", "PL590L5WQmH8fJ54F369BLDSqIwcs-TCfs", true},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PLxyz", "PLxyz", true},
		{"https://music.youtube.com/playlist?list=OLAK5uy_abc", "OLAK5uy_abc", true},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "", false},
		{"https://evil.example/?u=youtube.com/playlist?list=PLabc", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			id, ok := ExtractYouTubePlaylistID(tt.url)
			if id != tt.wantID || ok != tt.wantOK {
				t.Errorf("ExtractYouTubePlaylistID() = %q, %v, want %q, %v", id, ok, tt.wantID, tt.wantOK)
			}
		})
	}
}

func TestClassifyYouTubeURL(t *testing.T) {
	tests := []struct {
		url      string
		wantKind Kind
		wantOK   bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", KindVideo, true},
		{"https://music.youtube.com/watch?v=dQw4w9WgXcQ", KindMusic, true},
		{"https://www.youtube.com/playlist?list=PLabc", KindPlaylist, true},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PLabc", KindVideo, true},
		{"https://www.youtube.com/channel/UC123", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			kind, ok := ClassifyYouTubeURL(tt.url)
			if kind != tt.wantKind || ok != tt.wantOK {
				t.Errorf("ClassifyYouTubeURL() = %q, %v, want %q, %v", kind, ok, tt.wantKind, tt.wantOK)
			}
			if IsValidYouTubeURL(tt.url) != tt.wantOK {
				t.Errorf("IsValidYouTubeURL() = %v, want %v", !tt.wantOK, tt.wantOK)
			}
		})
	}
}

func TestYouTubeURLBuilders(t *testing.T) {
	if got, ok := NormalizeYouTubeURL("https://youtu.be/dQw4w9WgXcQ?t=10"); !ok || got != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
		t.Errorf("NormalizeYouTubeURL(video) = %q, %v", got, ok)
	}
	if got, ok := NormalizeYouTubeURL("https://youtube.com/playlist?list=PLabc"); !ok || got != "https://www.youtube.com/playlist?list=PLabc" {
		t.Errorf("NormalizeYouTubeURL(playlist) = %q, %v", got, ok)
	}
	if _, ok := NormalizeYouTubeURL("https://example.com"); ok {
		t.Error("NormalizeYouTubeURL(example.com) ok = true, want false")
	}
	if got, ok := YouTubeEmbedURL("https://www.youtube.com/watch?v=dQw4w9WgXcQ"); !ok || got != "https://www.youtube.com/embed/dQw4w9WgXcQ" {
		t.Errorf("YouTubeEmbedURL() = %q, %v", got, ok)
	}
	if got := YouTubeThumbnailURL("dQw4w9WgXcQ", "maxres"); got != "https://img.youtube.com/vi/dQw4w9WgXcQ/maxresdefault.jpg" {
		t.Errorf("YouTubeThumbnailURL(maxres) = %q", got)
	}
	if got := YouTubeThumbnailURL("dQw4w9WgXcQ", "bogus"); got != "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg" {
		t.Errorf("YouTubeThumbnailURL(bogus) = %q", got)
	}
	if got, ok := ShortsToWatchURL("https://www.youtube.com/shorts/abcdefghijk"); !ok || got != "https://www.youtube.com/watch?v=abcdefghijk" {
		t.Errorf("ShortsToWatchURL() = %q, %v", got, ok)
	}
	if !IsYouTubeShortsURL("https://youtube.com/shorts/abcdefghijk") {
		t.Error("IsYouTubeShortsURL() = false, want true")
	}
}

func TestYouTubeTimestamp(t *testing.T) {
	tests := []struct {
		url    string
		want   int
		wantOK bool
	}{
		{"https://youtu.be/dQw4w9WgXcQ?t=43", 43, true},
		{"https://youtu.be/dQw4w9WgXcQ?t=43s", 43, true},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=1m30s", 90, true},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=2m", 120, true},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=1h2m3s", 3723, true},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", 0, false},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=abc", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, ok := YouTubeTimestamp(tt.url)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("YouTubeTimestamp() = %d, %v, want %d, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestWithYouTubeTimestamp(t *testing.T) {
	tests := []struct {
		url     string
		seconds int
		want    string
	}{
		{"https://youtu.be/dQw4w9WgXcQ", 90, "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=1m30s"},
		{"https://youtu.be/dQw4w9WgXcQ", 45, "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=45s"},
		{"https://example.com/x", 45, "https://example.com/x"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := WithYouTubeTimestamp(tt.url, tt.seconds); got != tt.want {
				t.Errorf("WithYouTubeTimestamp() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSpotifyURIHelpers(t *testing.T) {
	tests := []struct {
		uri      string
		valid    bool
		wantKind Kind
		wantID   string
		wantWeb  string
	}{
		{"spotify:track:4uLU6hMCjMI75M1A2tKUQC", true, KindTrack, "4uLU6hMCjMI75M1A2tKUQC", "https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC"},
		{"spotify:playlist:37i9dQZF1DXcBWIGoYBM5M", true, KindPlaylist, "37i9dQZF1DXcBWIGoYBM5M", "https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M"},
		{"spotify:episode:abc", false, "", "", ""},
		{"spotify:track:", false, "", "", ""},
		{"https://open.spotify.com/track/abc", false, "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			if got := IsValidSpotifyURI(tt.uri); got != tt.valid {
				t.Errorf("IsValidSpotifyURI() = %v, want %v", got, tt.valid)
			}
			if kind, _ := SpotifyURIType(tt.uri); kind != tt.wantKind {
				t.Errorf("SpotifyURIType() = %q, want %q", kind, tt.wantKind)
			}
			if id, _ := SpotifyURIID(tt.uri); id != tt.wantID {
				t.Errorf("SpotifyURIID() = %q, want %q", id, tt.wantID)
			}
			if web, _ := SpotifyURIToWebURL(tt.uri); web != tt.wantWeb {
				t.Errorf("SpotifyURIToWebURL() = %q, want %q", web, tt.wantWeb)
			}
		})
	}
}

func TestSpotifyWebURLToURI(t *testing.T) {
	tests := []struct {
		url    string
		want   string
		wantOK bool
	}{
		{"https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC", "spotify:track:4uLU6hMCjMI75M1A2tKUQC", true},
		{"https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC?si=abcdef", "spotify:track:4uLU6hMCjMI75M1A2tKUQC", true},
		{"https://open.spotify.com/intl-ko/album/1DFixLWuPkv3KT3TnV35m3", "spotify:album:1DFixLWuPkv3KT3TnV35m3", true},
		{"https://open.spotify.com/episode/abc", "", false},
		{"https://example.com/track/abc", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, ok := SpotifyWebURLToURI(tt.url)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("SpotifyWebURLToURI() = %q, %v, want %q, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestExtractSpotifyTrackID(t *testing.T) {
	tests := []struct {
		link   string
		want   string
		wantOK bool
	}{
		{"spotify:track:4uLU6hMCjMI75M1A2tKUQC", "4uLU6hMCjMI75M1A2tKUQC", true},
		{" https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC?si=x ", "4uLU6hMCjMI75M1A2tKUQC", true},
		{"spotify:album:1DFixLWuPkv3KT3TnV35m3", "", false},
		{"https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.link, func(t *testing.T) {
			got, ok := ExtractSpotifyTrackID(tt.link)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ExtractSpotifyTrackID() = %q, %v, want %q, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
