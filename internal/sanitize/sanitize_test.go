package sanitize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SergeyParamoshkin/blogful/internal/sanitize"
)

func TestText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text", "Lorem ipsum dolor", "Lorem ipsum dolor"},
		{"script tag", `<script>alert('x')</script>`, `&lt;script&gt;alert('x')&lt;/script&gt;`},
		{
			"event handler attribute",
			`Bad image <img src="https://url.to.file.which/does-not.exist" onerror="alert(document.cookie);">`,
			`Bad image &lt;img src="https://url.to.file.which/does-not.exist" onerror="alert(document.cookie);"&gt;`,
		},
		{"already escaped", "&lt;b&gt;bold&lt;/b&gt;", "&lt;b&gt;bold&lt;/b&gt;"},
		{"ampersand", "Tom & Jerry", "Tom & Jerry"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitize.Text(tt.in)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, sanitize.Text(got), "escaping must be idempotent")
			assert.NotContains(t, got, "<")
			assert.NotContains(t, got, ">")
		})
	}
}

func TestPtr(t *testing.T) {
	s := "<i>nick</i>"

	assert.Equal(t, "", sanitize.Ptr(nil))
	assert.Equal(t, "&lt;i&gt;nick&lt;/i&gt;", sanitize.Ptr(&s))
}
