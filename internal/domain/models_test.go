package domain

import (
	"encoding/json"
	"testing"
)

func TestTableNames(t *testing.T) {
	cases := map[string]string{
		User{}.TableName():             "users",
		Dog{}.TableName():              "dogs",
		AdoptionRequest{}.TableName():  "adoption_requests",
		Report{}.TableName():           "reports",
		ModerationAction{}.TableName(): "moderation_actions",
		PersonalityTag{}.TableName():   "personality_tags",
	}
	for got, want := range cases {
		if got != want {
			t.Fatalf("TableName = %q, want %q", got, want)
		}
	}
}

func TestAdoptionRequest_Terminal(t *testing.T) {
	for status, want := range map[string]bool{
		RequestPending:   false,
		RequestApproved:  true,
		RequestDeclined:  true,
		RequestCancelled: true,
	} {
		r := AdoptionRequest{Status: status}
		if r.Terminal() != want {
			t.Fatalf("Terminal(%q) = %v, want %v", status, r.Terminal(), want)
		}
	}
}

func TestDog_JSONShape(t *testing.T) {
	name := "Hera"
	d := Dog{
		ID:     "d1",
		Name:   &name,
		Area:   "Exarchia",
		Images: []string{"https://cdn.example.com/a.jpg"},
		Status: DogAvailable,
	}
	raw, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m["name"] != "Hera" || m["area"] != "Exarchia" || m["status"] != "available" {
		t.Fatalf("unexpected JSON: %v", m)
	}
	imgs, _ := m["images"].([]any)
	if len(imgs) != 1 {
		t.Fatalf("images should serialize as a JSON array: %v", m["images"])
	}
	if v, present := m["deleted_at"]; present && v != nil {
		t.Fatalf("zero deleted_at should serialize as null: %v", m)
	}
	// Owner is an internal association, never serialized.
	if _, present := m["Owner"]; present {
		t.Fatalf("owner association leaked into JSON: %v", m)
	}
}
