package musiclink

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestYouTubeResolver_CanResolve(t *testing.T) {
	resolver := NewYouTubeResolver()

	tests := []struct {
		name     string
		url      string
		expected bool
	}{
		{"Standard YouTube URL", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", true},
		{"YouTube short URL", "https://youtu.be/dQw4w9WgXcQ", true},
		{"YouTube Music URL", "https://music.youtube.com/watch?v=dQw4w9WgXcQ", true},
		{"Mobile YouTube URL", "https://m.youtube.com/watch?v=dQw4w9WgXcQ", true},
		{"Shorts URL", "https://www.youtube.com/shorts/dQw4w9WgXcQ", true},
		{"Playlist only", "https://www.youtube.com/playlist?list=PL1234567890", false},
		{"Non-YouTube URL", "https://example.com", false},
		{"Spotify URL", "https://open.spotify.com/track/123", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := resolver.CanResolve(tt.url); result != tt.expected {
				t.Errorf("CanResolve() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestYouTubeResolver_cleanTitle(t *testing.T) {
	resolver := NewYouTubeResolver()

	tests := []struct {
		input    string
		expected string
	}{
		{"Never Gonna Give You Up (Official Video)", "Never Gonna Give You Up"},
		{"Track [Official Music Video] [4K]", "Track"},
		{"Song (Lyrics)", "Song"},
		{"Next Level (MV)", "Next Level"},
		{"Song (Live)", "Song (Live)"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if result := resolver.cleanTitle(tt.input); result != tt.expected {
				t.Errorf("cleanTitle() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestYouTubeResolver_extractArtist(t *testing.T) {
	resolver := NewYouTubeResolver()

	tests := []struct {
		name       string
		title      string
		authorName string
		expected   string
	}{
		{"VEVO channel", "Never Gonna Give You Up", "RickAstleyVEVO", "Rick Astley"},
		{"Topic channel", "Some Song", "Artist Name - Topic", "Artist Name"},
		{"Title with separator from non-VEVO channel", "Artist Name - Track Title", "Random Channel", "Artist Name"},
		{"No separator returns authorName", "Just a song title", "Channel Name", "Channel Name"},
		{"Multiple separators takes first", "Artist - Song - Extended Mix", "Music Channel", "Artist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := resolver.extractArtist(tt.title, tt.authorName); result != tt.expected {
				t.Errorf("extractArtist() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestYouTubeResolver_splitCamelCase(t *testing.T) {
	resolver := NewYouTubeResolver()

	tests := []struct {
		input    string
		expected string
	}{
		{"RickAstley", "Rick Astley"},
		{"JohnDoeSmith", "John Doe Smith"},
		{"Rick Astley", "Rick Astley"},
		{"rickastley", "rickastley"},
		{"ABCTest", "ABCTest"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if result := resolver.splitCamelCase(tt.input); result != tt.expected {
				t.Errorf("splitCamelCase() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestYouTubeResolver_Resolve(t *testing.T) {
	var gotURL string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.Query().Get("url")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"title":"Rick Astley - Never Gonna Give You Up (Official Video)",` +
			`"author_name":"RickAstleyVEVO","thumbnail_url":"https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg"}`))
	}))
	defer server.Close()

	resolver := NewYouTubeResolver(WithOEmbedEndpoint(server.URL), WithHTTPClient(server.Client()))

	info, err := resolver.Resolve(context.Background(), "https://youtu.be/dQw4w9WgXcQ?t=43")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if gotURL != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
		t.Errorf("oEmbed url parameter = %q, want canonical watch URL", gotURL)
	}
	if info.Title != "Rick Astley - Never Gonna Give You Up" {
		t.Errorf("Title = %q, want %q", info.Title, "Rick Astley - Never Gonna Give You Up")
	}
	if info.Artist != "Rick Astley" {
		t.Errorf("Artist = %q, want %q", info.Artist, "Rick Astley")
	}
	if info.ThumbnailURL != "https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg" {
		t.Errorf("ThumbnailURL = %q", info.ThumbnailURL)
	}
}

func TestYouTubeResolver_Resolve_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	resolver := NewYouTubeResolver(WithOEmbedEndpoint(server.URL))

	_, err := resolver.Resolve(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Resolve() error = %v, want ErrNotFound", err)
	}
}

func TestYouTubeResolver_Resolve_Unsupported(t *testing.T) {
	resolver := NewYouTubeResolver()

	_, err := resolver.Resolve(context.Background(), "https://example.com/watch")
	if !errors.Is(err, ErrUnsupportedLink) {
		t.Errorf("Resolve() error = %v, want ErrUnsupportedLink", err)
	}
}
