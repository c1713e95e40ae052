package botkit

import "testing"

func TestParseJSON(t *testing.T) {
	type args struct {
		Title    string `json:"title"`
		Category string `json:"category"`
	}

	got, err := ParseJSON[args](`{"title": "Cup final tonight", "category": "sports"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Title != "Cup final tonight" || got.Category != "sports" {
		t.Errorf("unexpected result: %+v", got)
	}
}

func TestParseJSONInvalid(t *testing.T) {
	type args struct {
		Title string `json:"title"`
	}

	if _, err := ParseJSON[args](`{"title": `); err == nil {
		t.Error("expected a decode error")
	}
}
