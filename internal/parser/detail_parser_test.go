package parser

import (
	"strings"
	"testing"
	"time"

	"github.com/Belphemur/AkwamProvider/internal/models"
	"github.com/Belphemur/AkwamProvider/internal/testutil"
)

func TestDetailParser_Movie(t *testing.T) {
	t.Parallel()
	htmlContent := testutil.GenerateDetailHTML(testutil.DetailPageOptions{
		Title:        "الممر",
		PosterURL:    "https://img.ak.sv/corridor.jpg",
		Movie:        true,
		YearText:     "السنة : 2019",
		DurationText: "مدة الفيلم : 118 دقيقة",
		Plot:         "قصة الفيلم",
		RatingText:   "10 / 7.5",
		Tags:         []string{"حرب", "دراما"},
		Actors: []testutil.ActorOptions{
			{Name: "أحمد عز", ImageURL: "https://img.ak.sv/ezz.jpg"},
			{Name: "هند صبري", ImageURL: "/uploads/hend.jpg"},
		},
		Recommendations: []testutil.CardOptions{
			{URL: "https://ak.sv/movie/2/other", Title: "فيلم آخر", PosterURL: "/uploads/other.jpg"},
		},
	})

	resp, err := NewDetailParser("https://ak.sv").ParseHtml(strings.NewReader(htmlContent))
	if err != nil {
		t.Fatalf("ParseHtml failed: %v", err)
	}

	if !resp.IsMovie() {
		t.Fatalf("Expected movie, got %s", resp.Type)
	}
	if resp.Name != "الممر" {
		t.Errorf("Expected name %q, got %q", "الممر", resp.Name)
	}
	if resp.PosterURL != "https://img.ak.sv/corridor.jpg" {
		t.Errorf("Unexpected poster %q", resp.PosterURL)
	}
	if resp.Year != 2019 {
		t.Errorf("Expected year 2019, got %d", resp.Year)
	}
	if resp.Duration != 118 {
		t.Errorf("Expected duration 118, got %d", resp.Duration)
	}
	if resp.Plot != "قصة الفيلم" {
		t.Errorf("Unexpected plot %q", resp.Plot)
	}
	if resp.Rating != 7500 {
		t.Errorf("Expected rating 7500, got %d", resp.Rating)
	}
	if len(resp.Tags) != 2 || resp.Tags[0] != "حرب" || resp.Tags[1] != "دراما" {
		t.Errorf("Unexpected tags %v", resp.Tags)
	}

	expectedActors := []models.Actor{
		{Name: "أحمد عز", ImageURL: "https://img.ak.sv/ezz.jpg"},
		{Name: "هند صبري", ImageURL: "https://ak.sv/uploads/hend.jpg"},
	}
	if len(resp.Actors) != len(expectedActors) {
		t.Fatalf("Expected %d actors, got %d", len(expectedActors), len(resp.Actors))
	}
	for i, want := range expectedActors {
		if resp.Actors[i] != want {
			t.Errorf("Actor %d: expected %+v, got %+v", i, want, resp.Actors[i])
		}
	}

	if len(resp.Recommendations) != 1 {
		t.Fatalf("Expected 1 recommendation, got %d", len(resp.Recommendations))
	}
	rec := resp.Recommendations[0]
	want := models.SearchResponse{Name: "فيلم آخر", URL: "https://ak.sv/movie/2/other", APIName: "Akwam", Type: models.TvTypeMovie, PosterURL: "https://ak.sv/uploads/other.jpg"}
	if rec != want {
		t.Errorf("Expected recommendation %+v, got %+v", want, rec)
	}
	if resp.Episodes != nil {
		t.Errorf("Expected no episodes for a movie, got %d", len(resp.Episodes))
	}
}

func TestDetailParser_SeriesReversesEpisodes(t *testing.T) {
	t.Parallel()
	htmlContent := testutil.GenerateDetailHTML(testutil.DetailPageOptions{
		Title:     "جراند أوتيل",
		PosterURL: "https://img.ak.sv/hotel.jpg",
		YearText:  "السنة : ٢٠١٦",
		Episodes: []testutil.EpisodeOptions{
			{URL: "https://ak.sv/episode/3/ep3", Title: "الحلقة 3", ThumbURL: "https://img.ak.sv/3.jpg", Date: "الأربعاء 15 02 2023"},
			{URL: "https://ak.sv/episode/2/ep2", Title: "الحلقة 2", ThumbURL: "https://img.ak.sv/2.jpg"},
			{URL: "https://ak.sv/episode/1/ep1", Title: "الحلقة 1", ThumbURL: "https://img.ak.sv/1.jpg"},
		},
	})

	resp, err := NewDetailParser("https://ak.sv").ParseHtml(strings.NewReader(htmlContent))
	if err != nil {
		t.Fatalf("ParseHtml failed: %v", err)
	}
	if resp.IsMovie() {
		t.Fatal("Expected series, got movie")
	}
	if resp.Year != 2016 {
		t.Errorf("Expected year 2016, got %d", resp.Year)
	}
	if len(resp.Episodes) != 3 {
		t.Fatalf("Expected 3 episodes, got %d", len(resp.Episodes))
	}
	for i, ep := range resp.Episodes {
		if ep.Episode != i+1 {
			t.Errorf("Episode %d: expected number %d, got %d", i, i+1, ep.Episode)
		}
	}
	last := resp.Episodes[2]
	if last.Data != "https://ak.sv/episode/3/ep3" || last.PosterURL != "https://img.ak.sv/3.jpg" {
		t.Errorf("Unexpected last episode %+v", last)
	}
	if !last.Date.Equal(time.Date(2023, time.February, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Unexpected episode date %v", last.Date)
	}
	if !resp.Episodes[0].Date.IsZero() {
		t.Errorf("Expected zero date for episode without date, got %v", resp.Episodes[0].Date)
	}
}

func TestDetailParser_SeriesKeepsOrder(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		titles   []string
		expected []string
	}{
		{"ascending", []string{"الحلقة 1", "الحلقة 2"}, []string{"الحلقة 1", "الحلقة 2"}},
		{"unnumbered", []string{"خاص", "الختام"}, []string{"خاص", "الختام"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var eps []testutil.EpisodeOptions
			for i, title := range tt.titles {
				eps = append(eps, testutil.EpisodeOptions{URL: "https://ak.sv/episode/" + string(rune('a'+i)), Title: title})
			}
			htmlContent := testutil.GenerateDetailHTML(testutil.DetailPageOptions{Title: "x", Episodes: eps})

			resp, err := NewDetailParser("https://ak.sv").ParseHtml(strings.NewReader(htmlContent))
			if err != nil {
				t.Fatalf("ParseHtml failed: %v", err)
			}
			if len(resp.Episodes) != len(tt.expected) {
				t.Fatalf("Expected %d episodes, got %d", len(tt.expected), len(resp.Episodes))
			}
			for i, want := range tt.expected {
				if resp.Episodes[i].Name != want {
					t.Errorf("Episode %d: expected %q, got %q", i, want, resp.Episodes[i].Name)
				}
			}
		})
	}
}

func TestDetailParser_EmptyPage(t *testing.T) {
	t.Parallel()
	resp, err := NewDetailParser("https://ak.sv").ParseHtml(strings.NewReader("<html><body></body></html>"))
	if err != nil {
		t.Fatalf("ParseHtml failed: %v", err)
	}
	if resp.Name != "" || resp.Year != 0 || resp.Rating != 0 || len(resp.Episodes) != 0 {
		t.Errorf("Expected empty response, got %+v", resp)
	}
	if resp.Type != models.TvTypeTvSeries {
		t.Errorf("Expected pages without a download section to be series, got %s", resp.Type)
	}
}
