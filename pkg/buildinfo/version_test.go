package buildinfo

import (
	"strings"
	"testing"
)

func TestCacheScope(t *testing.T) {
	tests := []struct {
		version, commit string
		want            string
	}{
		{"dev", "none", "dev"},
		{"dev", "0123456789abcdef", "dev-0123456"},
		{"dev", "abc", "dev-abc"},
		{"v1.2.0", "0123456789abcdef", "v1.2.0"},
	}
	for _, tt := range tests {
		t.Run(tt.version+"/"+tt.commit, func(t *testing.T) {
			defer func(v, c string) { Version, Commit = v, c }(Version, Commit)
			Version, Commit = tt.version, tt.commit
			if got := CacheScope(); got != tt.want {
				t.Errorf("CacheScope() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTemplate(t *testing.T) {
	if !strings.HasPrefix(Template(), "{{.Name}} version "+Version) {
		t.Errorf("Template() = %q", Template())
	}
}
