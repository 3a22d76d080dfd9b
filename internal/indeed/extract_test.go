package indeed

import "testing"

func TestExtractCount(t *testing.T) {
	tests := []struct {
		name      string
		markup    string
		wantKnown bool
		wantValue int
	}{
		{
			name:      "phrase with thousands separator",
			markup:    `<html><body><div id="searchCount">Page 1 of 1,234 jobs</div></body></html>`,
			wantKnown: true,
			wantValue: 1234,
		},
		{
			name:      "phrase without separator",
			markup:    `<div>Page 1 of 87 jobs</div>`,
			wantKnown: true,
			wantValue: 87,
		},
		{
			name:      "phrase case insensitive",
			markup:    `<div>Page 1 OF 42 Jobs</div>`,
			wantKnown: true,
			wantValue: 42,
		},
		{
			name:      "bare number in count element",
			markup:    `<html><body><div class="jobsearch-JobCountAndSortPane-jobCount"><span>5,210 jobs</span></div></body></html>`,
			wantKnown: true,
			wantValue: 5210,
		},
		{
			name:      "no recognizable phrasing",
			markup:    `<html><body><p>Welcome to the site</p></body></html>`,
			wantKnown: false,
		},
		{
			name:      "empty markup",
			markup:    "",
			wantKnown: false,
		},
		{
			name:      "malformed markup degrades gracefully",
			markup:    `<div><span class="unclosed`,
			wantKnown: false,
		},
		{
			name:      "overflowing numeric literal is no match",
			markup:    `<div>Page 1 of 99999999999999999999999 jobs</div>`,
			wantKnown: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractCount(tt.markup)
			if got.Known != tt.wantKnown {
				t.Fatalf("ExtractCount() known = %v, want %v", got.Known, tt.wantKnown)
			}
			if tt.wantKnown && got.Value != tt.wantValue {
				t.Errorf("ExtractCount() = %d, want %d", got.Value, tt.wantValue)
			}
		})
	}
}

func TestExtractCountPhraseWinsOverElement(t *testing.T) {
	// Both strategies could match; the phrase strategy is first in order.
	markup := `<html><body>
		<p>Page 1 of 300 jobs</p>
		<div class="jobsearch-JobCountAndSortPane-jobCount">999</div>
	</body></html>`

	got := ExtractCount(markup)
	if !got.Known || got.Value != 300 {
		t.Errorf("ExtractCount() = %+v, want known 300", got)
	}
}

func TestExtractCountIdempotent(t *testing.T) {
	markup := `<html><body><div id="searchCount">Page 1 of 1,234 jobs</div></body></html>`

	first := ExtractCount(markup)
	second := ExtractCount(markup)
	if first != second {
		t.Errorf("ExtractCount not deterministic: %+v vs %+v", first, second)
	}
}
