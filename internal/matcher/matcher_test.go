package matcher

import (
	"fmt"
	"testing"
	"time"

	"github.com/handiism/prompt-album-builder/internal/model"
)

func photo(filename, folder string, date time.Time) *model.Photo {
	return &model.Photo{
		Path:        "/src/" + folder + "/" + filename,
		Filename:    filename,
		FolderName:  folder,
		CaptureDate: date,
	}
}

func spec(name string, keywords []string, filter model.DateFilter) model.AlbumSpec {
	return model.NewAlbumSpec(name, keywords, filter, "")
}

func TestMatcher_FirstMatchWins(t *testing.T) {
	specs := []model.AlbumSpec{
		spec("Fest", []string{"fest"}, model.DateFilter{}),
		spec("College Fest", []string{"college fest", "college"}, model.DateFilter{}),
	}
	p := photo("college_fest_001.jpg", "misc", time.Time{})

	result := New().Match([]*model.Photo{p}, specs)

	if len(result.Matched["Fest"]) != 1 {
		t.Errorf("Fest bucket = %d photos, want 1", len(result.Matched["Fest"]))
	}
	if len(result.Matched["College Fest"]) != 0 {
		t.Errorf("College Fest bucket = %d photos, want 0", len(result.Matched["College Fest"]))
	}

	// Reversing the order moves the photo.
	specs[0], specs[1] = specs[1], specs[0]
	result = New().Match([]*model.Photo{p}, specs)
	if len(result.Matched["College Fest"]) != 1 {
		t.Errorf("after reorder, College Fest bucket = %d photos, want 1", len(result.Matched["College Fest"]))
	}
}

func TestMatcher_DateNeverDecides(t *testing.T) {
	specs := []model.AlbumSpec{
		spec("Vacation", []string{"vacation"}, model.DateFilter{Year: 2024}),
	}
	keywordOnly := photo("vacation.jpg", "misc", time.Date(2023, 8, 1, 0, 0, 0, 0, time.UTC))
	dateOnly := photo("random.jpg", "misc", time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC))

	result := New().Match([]*model.Photo{keywordOnly, dateOnly}, specs)

	if got := result.Matched["Vacation"]; len(got) != 1 || got[0] != keywordOnly {
		t.Errorf("Vacation bucket = %v, want only vacation.jpg", got)
	}
	if len(result.Unmatched) != 1 || result.Unmatched[0] != dateOnly {
		t.Errorf("Unmatched = %v, want only random.jpg", result.Unmatched)
	}
}

func TestMatcher_Wildcard(t *testing.T) {
	specs := []model.AlbumSpec{spec("Ncc", []string{"NCC*"}, model.DateFilter{})}
	anchored := photo("NCC_parade_001.jpg", "misc", time.Time{})
	inner := photo("my_NCC_photo.jpg", "misc", time.Time{})

	result := New().Match([]*model.Photo{anchored, inner}, specs)

	if got := result.Matched["Ncc"]; len(got) != 1 || got[0] != anchored {
		t.Errorf("Ncc bucket = %v, want only NCC_parade_001.jpg", got)
	}
	if len(result.Unmatched) != 1 || result.Unmatched[0] != inner {
		t.Errorf("Unmatched = %v, want only my_NCC_photo.jpg", result.Unmatched)
	}
}

func TestMatcher_FolderName(t *testing.T) {
	specs := []model.AlbumSpec{spec("Family Trips", []string{"family trips", "family", "trips"}, model.DateFilter{})}
	p := photo("IMG_0001.jpg", "Family Reunion", time.Time{})

	if !New().MatchesSpec(p, specs[0]) {
		t.Error("MatchesSpec should match on folder name")
	}
}

func TestMatcher_Partition(t *testing.T) {
	specs := []model.AlbumSpec{
		spec("Ncc Events", []string{"ncc events", "ncc", "events"}, model.DateFilter{Year: 2024, Month: 3}),
		spec("College Fests", []string{"college fests", "college", "fests"}, model.DateFilter{Year: 2024, Month: 3}),
		spec("Family Trips", []string{"family trips", "family", "trips"}, model.DateFilter{}),
	}

	var photos []*model.Photo
	names := []string{"ncc_event_1.jpg", "fests_day.jpg", "family_trip.jpg", "cat.jpg", "college_ncc.jpg", "dog.png"}
	for i, name := range names {
		photos = append(photos, photo(name, fmt.Sprintf("dir%d", i), time.Time{}))
	}

	result := New().Match(photos, specs)

	if result.Total() != len(photos) {
		t.Fatalf("Total() = %d, want %d", result.Total(), len(photos))
	}

	seen := make(map[*model.Photo]int)
	for _, bucket := range result.Matched {
		for _, p := range bucket {
			seen[p]++
		}
	}
	for _, p := range result.Unmatched {
		seen[p]++
	}
	for _, p := range photos {
		if seen[p] != 1 {
			t.Errorf("%s appears in %d buckets, want 1", p.Filename, seen[p])
		}
	}

	ncc := result.Matched["Ncc Events"]
	if len(ncc) != 2 || ncc[0].Filename != "ncc_event_1.jpg" || ncc[1].Filename != "college_ncc.jpg" {
		t.Errorf("Ncc Events bucket out of encounter order: %v", ncc)
	}

	stats := result.Stats()
	want := map[string]int{"Ncc Events": 2, "College Fests": 1, "Family Trips": 1}
	for name, n := range want {
		if stats[name] != n {
			t.Errorf("Stats()[%q] = %d, want %d", name, stats[name], n)
		}
	}
	if len(result.Unmatched) != 2 {
		t.Errorf("len(Unmatched) = %d, want 2", len(result.Unmatched))
	}
}

func TestMatcher_EmptyInputs(t *testing.T) {
	m := New()

	result := m.Match(nil, []model.AlbumSpec{spec("Work", []string{"work"}, model.DateFilter{})})
	if bucket, ok := result.Matched["Work"]; !ok || len(bucket) != 0 {
		t.Errorf("Matched[Work] = %v, %v; want empty bucket", bucket, ok)
	}

	photos := []*model.Photo{photo("a.jpg", "x", time.Time{})}
	result = m.Match(photos, nil)
	if len(result.Unmatched) != 1 {
		t.Errorf("len(Unmatched) = %d, want 1", len(result.Unmatched))
	}
}

func TestMatcher_MatchesDate(t *testing.T) {
	m := New()
	filter := model.DateFilter{Year: 2024, Month: 3}

	tests := []struct {
		name  string
		photo *model.Photo
		want  bool
	}{
		{"capture date inside", &model.Photo{CaptureDate: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)}, true},
		{"capture date outside", &model.Photo{CaptureDate: time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC)}, false},
		{
			"capture date preferred over file time",
			&model.Photo{
				CaptureDate: time.Date(2023, 3, 5, 0, 0, 0, 0, time.UTC),
				FileCreated: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
			},
			false,
		},
		{"file time fallback", &model.Photo{FileCreated: time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)}, true},
		{"no date", &model.Photo{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.MatchesDate(tt.photo, filter); got != tt.want {
				t.Errorf("MatchesDate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatcher_SpecsWithoutConstructor(t *testing.T) {
	specs := []model.AlbumSpec{{Name: "Work", Keywords: []string{"office*"}}}
	p := photo("Office_party.jpg", "misc", time.Time{})

	result := New().Match([]*model.Photo{p}, specs)
	if len(result.Matched["Work"]) != 1 {
		t.Errorf("Work bucket = %d photos, want 1", len(result.Matched["Work"]))
	}
}
