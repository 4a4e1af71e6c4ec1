package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestCategoryValid(t *testing.T) {
	for _, c := range Categories() {
		if !c.Valid() {
			t.Errorf("expected %q valid", c)
		}
	}
	if Category("Opinión").Valid() {
		t.Error("unknown category must be invalid")
	}
	if Category("").Valid() {
		t.Error("empty category must be invalid")
	}
}

func TestWindowNames(t *testing.T) {
	if WindowRecent.String() != "Última Hora" {
		t.Errorf("unexpected recent label: %q", WindowRecent.String())
	}
	if WindowArchived.String() != "Anteriores" {
		t.Errorf("unexpected archive label: %q", WindowArchived.String())
	}
}

func TestDraftComplete(t *testing.T) {
	d := Draft{
		Title: "T", Summary: "S", Category: CategoryWorld,
		Source: "F", PublishedTime: "Ahora", ImageKeyword: "k",
	}
	if !d.Complete() {
		t.Error("expected complete draft")
	}

	// URL is the only optional field.
	d.URL = ""
	if !d.Complete() {
		t.Error("draft without url must still be complete")
	}

	missing := d
	missing.ImageKeyword = ""
	if missing.Complete() {
		t.Error("draft without imageKeyword must be incomplete")
	}
}

func TestInWindow(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	fresh := Article{FetchedAt: now.Add(-30 * time.Minute)}
	old := Article{FetchedAt: now.Add(-90 * time.Minute)}

	if !fresh.InWindow(WindowRecent, now) || fresh.InWindow(WindowArchived, now) {
		t.Error("30m-old article belongs to the recent window only")
	}
	if old.InWindow(WindowRecent, now) || !old.InWindow(WindowArchived, now) {
		t.Error("90m-old article belongs to the archive only")
	}

	edge := Article{FetchedAt: now.Add(-RecentWindow)}
	if edge.InWindow(WindowRecent, now) {
		t.Error("article exactly at the window boundary is archived")
	}
}

func TestArticleJSONFieldNames(t *testing.T) {
	a := Article{
		ID: "x", Title: "T", FetchedAt: time.Now(),
		DeepDive: "d", Image: &GeneratedImage{MimeType: "image/png", Data: []byte{1}},
	}
	b, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]json.RawMessage
	json.Unmarshal(b, &m)
	for _, key := range []string{"fetchedAt", "deepDive", "generatedImage"} {
		if _, ok := m[key]; !ok {
			t.Errorf("expected %q field in serialized article", key)
		}
	}
}
