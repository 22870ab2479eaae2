package core

import (
	"fmt"
	"testing"
)

func spotifyTrack(id, title, artist, duration string, popularity *int) SearchResult {
	url := "https://open.spotify.com/track/" + id
	return SearchResult{
		ID:              id,
		Title:           title,
		Artist:          artist,
		DurationText:    duration,
		SourceURL:       url,
		Platform:        PlatformSpotify,
		Kind:            KindTrack,
		PopularityScore: popularity,
		ExternalLinks:   ExternalLinks{Spotify: url},
	}
}

func youtubeVideo(id, title, channel string) SearchResult {
	url := "https://www.youtube.com/watch?v=" + id
	return SearchResult{
		ID:            id,
		Title:         title,
		Artist:        channel,
		SourceURL:     url,
		Platform:      PlatformYouTube,
		Kind:          KindVideo,
		ExternalLinks: ExternalLinks{YouTube: url},
	}
}

func TestMerge_LinksMatchedPair(t *testing.T) {
	primary := []SearchResult{spotifyTrack("s1", "Bohemian Rhapsody", "Queen", "5:55", IntPtr(90))}
	secondary := []SearchResult{youtubeVideo("y1", "Queen - Bohemian Rhapsody (Official Video)", "Queen Official")}

	merged := Merge(primary, secondary, ContainmentScorer{})

	if len(merged) != 1 {
		t.Fatalf("Merge() returned %d items, want 1", len(merged))
	}
	got := merged[0]
	if got.Platform != PlatformSpotify || got.ID != "s1" {
		t.Errorf("Merge() primary metadata = %s/%s, want spotify/s1", got.Platform, got.ID)
	}
	if got.ExternalLinks.Spotify != primary[0].SourceURL {
		t.Errorf("ExternalLinks.Spotify = %q, want %q", got.ExternalLinks.Spotify, primary[0].SourceURL)
	}
	if got.ExternalLinks.YouTube != secondary[0].SourceURL {
		t.Errorf("ExternalLinks.YouTube = %q, want %q", got.ExternalLinks.YouTube, secondary[0].SourceURL)
	}
	if primary[0].ExternalLinks.YouTube != "" {
		t.Error("Merge() modified its primary input")
	}
}

func TestMerge_NoMatchKeepsBoth(t *testing.T) {
	primary := []SearchResult{spotifyTrack("s1", "Yellow", "Coldplay", "4:26", nil)}
	secondary := []SearchResult{youtubeVideo("y1", "Purple Rain", "Prince")}

	merged := Merge(primary, secondary, ContainmentScorer{})

	if len(merged) != 2 {
		t.Fatalf("Merge() returned %d items, want 2", len(merged))
	}
	if merged[0].ID != "s1" || merged[1].ID != "y1" {
		t.Errorf("Merge() order = %s,%s, want s1,y1", merged[0].ID, merged[1].ID)
	}
	if merged[0].ExternalLinks.YouTube != "" {
		t.Errorf("unmatched primary got YouTube link %q", merged[0].ExternalLinks.YouTube)
	}
}

func TestMerge_TieGoesToEarliestSecondary(t *testing.T) {
	primary := []SearchResult{spotifyTrack("s1", "Yellow", "Coldplay", "", nil)}
	secondary := []SearchResult{
		youtubeVideo("y1", "Yellow", "Coldplay"),
		youtubeVideo("y2", "Yellow", "Coldplay"),
	}

	merged := Merge(primary, secondary, ContainmentScorer{})

	if len(merged) != 2 {
		t.Fatalf("Merge() returned %d items, want 2", len(merged))
	}
	if merged[0].ExternalLinks.YouTube != secondary[0].SourceURL {
		t.Errorf("merged YouTube link = %q, want first candidate %q", merged[0].ExternalLinks.YouTube, secondary[0].SourceURL)
	}
	if merged[1].ID != "y2" {
		t.Errorf("leftover secondary = %s, want y2", merged[1].ID)
	}
}

func TestMerge_SecondaryConsumedOnce(t *testing.T) {
	primary := []SearchResult{
		spotifyTrack("s1", "Yellow", "Coldplay", "", nil),
		spotifyTrack("s2", "Yellow", "Coldplay", "", nil),
	}
	secondary := []SearchResult{youtubeVideo("y1", "Yellow", "Coldplay")}

	merged := Merge(primary, secondary, ContainmentScorer{})

	if len(merged) != 2 {
		t.Fatalf("Merge() returned %d items, want 2", len(merged))
	}
	if merged[0].ExternalLinks.YouTube == "" {
		t.Error("first primary should claim the video")
	}
	if merged[1].ExternalLinks.YouTube != "" {
		t.Error("second primary claimed an already consumed video")
	}
}

func TestMerge_BestScoreWins(t *testing.T) {
	primary := []SearchResult{spotifyTrack("s1", "Yellow", "Coldplay", "", nil)}
	secondary := []SearchResult{
		youtubeVideo("y1", "Yellow (Live)", "Coldplay"),
		youtubeVideo("y2", "Yellow", "Coldplay"),
	}

	merged := Merge(primary, secondary, ContainmentScorer{})

	if merged[0].ExternalLinks.YouTube != secondary[1].SourceURL {
		t.Errorf("merged YouTube link = %q, want exact match %q", merged[0].ExternalLinks.YouTube, secondary[1].SourceURL)
	}
	if len(merged) != 2 || merged[1].ID != "y1" {
		t.Errorf("Merge() = %v, want leftover y1", merged)
	}
}

func TestMerge_Completeness(t *testing.T) {
	titles := []string{"Yellow", "Fix You", "Clocks", "Viva la Vida", "Paradise"}

	for p := 0; p <= len(titles); p++ {
		for s := 0; s <= len(titles); s++ {
			t.Run(fmt.Sprintf("P%d_S%d", p, s), func(t *testing.T) {
				var primary, secondary []SearchResult
				for i := 0; i < p; i++ {
					primary = append(primary, spotifyTrack(fmt.Sprintf("s%d", i), titles[i], "Coldplay", "", nil))
				}
				// secondaries in reverse so only some titles overlap
				for i := 0; i < s; i++ {
					title := titles[len(titles)-1-i]
					secondary = append(secondary, youtubeVideo(fmt.Sprintf("y%d", i), title, "Coldplay"))
				}

				merged := Merge(primary, secondary, ContainmentScorer{})

				if len(merged) < max(p, s) || len(merged) > p+s {
					t.Fatalf("len(Merge()) = %d, want within [%d, %d]", len(merged), max(p, s), p+s)
				}

				seen := map[string]int{}
				for _, r := range merged {
					seen[r.ID]++
					if r.ExternalLinks.YouTube != "" && r.Platform == PlatformSpotify {
						seen["link:"+r.ExternalLinks.YouTube]++
					}
				}
				for _, r := range primary {
					if seen[r.ID] != 1 {
						t.Errorf("primary %s appears %d times", r.ID, seen[r.ID])
					}
				}
				for _, r := range secondary {
					if n := seen[r.ID] + seen["link:"+r.SourceURL]; n != 1 {
						t.Errorf("secondary %s traced %d times", r.ID, n)
					}
				}
			})
		}
	}
}
