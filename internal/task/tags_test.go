package task

import (
	"reflect"
	"testing"
)

func TestExtractTags(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "no tags",
			text: "Buy milk",
			want: nil,
		},
		{
			name: "single tag",
			text: "Buy milk #grocery",
			want: []string{"#grocery"},
		},
		{
			name: "case folded",
			text: "Buy milk #grocery #Home",
			want: []string{"#grocery", "#home"},
		},
		{
			name: "duplicates collapse",
			text: "#work meeting #Work notes #WORK",
			want: []string{"#work"},
		},
		{
			name: "digits and underscore",
			text: "prep #q3_review slides",
			want: []string{"#q3_review"},
		},
		{
			name: "unicode letters",
			text: "Einkaufen #lebensmittel und #später",
			want: []string{"#lebensmittel", "#später"},
		},
		{
			name: "bare hash ignored",
			text: "issue # 42 and #42",
			want: []string{"#42"},
		},
		{
			name: "tag mid-word",
			text: "email joe#work about it",
			want: []string{"#work"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractTags(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractTags(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestAllTags(t *testing.T) {
	tasks := []Task{
		{Text: "Review PR #work"},
		{Text: "Buy milk #grocery #home"},
		{Text: "Plan sprint #Work"},
		{Text: "No tags here"},
	}

	got := AllTags(tasks)
	want := []string{"#grocery", "#home", "#work"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AllTags() = %v, want %v", got, want)
	}
}

func TestAllTags_Empty(t *testing.T) {
	if got := AllTags(nil); len(got) != 0 {
		t.Errorf("AllTags(nil) = %v, want empty", got)
	}
}
