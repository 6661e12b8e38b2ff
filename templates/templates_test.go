package templates

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	tmpl := Load()
	for _, name := range []string{"index.tmpl", "group_list.tmpl", "profile.tmpl", "post_detail.tmpl",
		"create_post.tmpl", "login.tmpl", "signup.tmpl", "404.tmpl", "error.tmpl"} {
		if tmpl.Lookup(name) == nil {
			t.Errorf("%s not loaded", name)
		}
	}
}

func TestDate(t *testing.T) {
	date := funcs["date"].(func(time.Time) string)
	if got := date(time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)); got != "5 Mar 2024" {
		t.Errorf("date() = %q", got)
	}
}

func TestNotFoundPage(t *testing.T) {
	var out bytes.Buffer
	err := Load().ExecuteTemplate(&out, "404.tmpl", map[string]any{"path": "/missing/", "year": 2024})
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"/missing/", "Log in", "2024"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output doesn't contain %q", want)
		}
	}
}
