package page

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestFindAll(t *testing.T) {
	tests := []struct {
		name string
		buf  string
		item string
		want []int
	}{
		{name: "none", buf: "abc", item: "x", want: []int{}},
		{name: "empty item", buf: "abc", item: "", want: []int{}},
		{name: "several", buf: "a{#t}b{#t}", item: "{#t}", want: []int{1, 6}},
		{name: "non overlapping", buf: "aaaa", item: "aa", want: []int{0, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FindAll([]byte(tt.buf), tt.item); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FindAll() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name    string
		tmpl    string
		content string
		vars    map[string]string
		want    string
		wantErr error
	}{
		{
			name:    "content and title",
			tmpl:    "<title>{#title}</title>\n<body>\nHERE_GOES_THE_CONTENT</body>\n<footer>{#title}</footer>",
			content: "<h1>Hi</h1>\n",
			vars:    map[string]string{"title": "Notes"},
			want:    "<title>Notes</title>\n<body>\n<h1>Hi</h1>\n</body>\n<footer>Notes</footer>",
		},
		{
			name:    "placeholders inside content are left alone",
			tmpl:    "<body>HERE_GOES_THE_CONTENT</body>",
			content: "{#title} HERE_GOES_THE_CONTENT",
			vars:    map[string]string{"title": "Notes"},
			want:    "<body>{#title} HERE_GOES_THE_CONTENT</body>",
		},
		{
			name:    "unknown variables are kept",
			tmpl:    "{#author}HERE_GOES_THE_CONTENT",
			content: "x",
			want:    "{#author}x",
		},
		{
			name:    "missing placeholder",
			tmpl:    "<body></body>",
			wantErr: ErrNoPlaceholder,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Wrap([]byte(tt.tmpl), []byte(tt.content), tt.vars)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Wrap() error = %v, want %v", err, tt.wantErr)
			}
			if string(got) != tt.want {
				t.Errorf("Wrap() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapFile(t *testing.T) {
	templateName := filepath.Join(t.TempDir(), "page.html")
	if err := os.WriteFile(templateName, []byte("<main>HERE_GOES_THE_CONTENT</main>"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := WrapFile(templateName, []byte("<p>\nx\n</p>\n"), nil)
	if err != nil {
		t.Fatalf("WrapFile() error = %v", err)
	}
	if want := "<main><p>\nx\n</p>\n</main>"; string(got) != want {
		t.Errorf("WrapFile() = %q, want %q", got, want)
	}

	if _, err := WrapFile(filepath.Join(t.TempDir(), "none.html"), nil, nil); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("WrapFile() missing template error = %v", err)
	}
}
