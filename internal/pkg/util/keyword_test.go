package util

import (
	"reflect"
	"testing"
)

func TestExtractKeywords(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  []string
	}{
		{"ascii", "How to Tune Go GC, in 2024!", []string{"tune", "go", "gc", "2024"}},
		{"cjk and latin", "Go语言并发编程:channel详解", []string{"go", "语言", "言并", "并发", "发编", "编程", "channel", "详解"}},
		{"stop words and single runes", "A guide for the 我 和 我们", []string{"guide"}},
		{"duplicates", "redis Redis REDIS cache", []string{"redis", "cache"}},
		{"empty", "  ---  ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractKeywords(tt.title)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractKeywords(%q) = %v, want %v", tt.title, got, tt.want)
			}
		})
	}
}

func TestSharedKeywords(t *testing.T) {
	a := ExtractKeywords("Kafka consumer group rebalance")
	b := ExtractKeywords("Tuning kafka rebalance timeouts")

	if got := SharedKeywords(a, b); got != 2 {
		t.Fatalf("SharedKeywords = %d, want 2", got)
	}
	if got := SharedKeywords(ExtractKeywords("深入理解并发编程"), ExtractKeywords("Go并发编程实战")); got != 3 {
		t.Fatalf("SharedKeywords(cjk) = %d, want 3", got)
	}
	if got := SharedKeywords(nil, b); got != 0 {
		t.Fatalf("SharedKeywords(nil) = %d, want 0", got)
	}
}
