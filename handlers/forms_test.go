package handlers

import (
	"reflect"
	"strings"
	"testing"
)

func TestValidateForm(t *testing.T) {
	tests := []struct {
		name string
		form any
		want FormErrors
	}{
		{"comment ok", &CommentForm{Text: "Nice"}, FormErrors{}},
		{"comment empty", &CommentForm{}, FormErrors{"text": {msgRequired}}},
		{"comment too long", &CommentForm{Text: strings.Repeat("ё", 201)},
			FormErrors{"text": {"Ensure this value has at most 200 characters."}}},
		{"comment 200 runes", &CommentForm{Text: strings.Repeat("ё", 200)}, FormErrors{}},
		{"group ok", &GroupForm{Title: "Cats", Slug: "cats_2-x"}, FormErrors{}},
		{"group bad slug", &GroupForm{Title: "Cats", Slug: "cats!"},
			FormErrors{"slug": {"Enter a valid slug consisting of letters, numbers, underscores or hyphens."}}},
		{"login empty", &LoginForm{}, FormErrors{"username": {msgRequired}, "password": {msgRequired}}},
		{"signup mismatch", &SignupForm{Username: "bob", Password1: "password1", Password2: "password2"},
			FormErrors{"password2": {"The two password fields didn't match."}}},
		{"signup bad email", &SignupForm{Username: "bob", Email: "bob", Password1: "password1", Password2: "password1"},
			FormErrors{"email": {"Enter a valid email address."}}},
		{"signup bad username", &SignupForm{Username: "bob smith", Password1: "password1", Password2: "password1"},
			FormErrors{"username": {"Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validateForm(tt.form); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("validateForm() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPostForm_Clean(t *testing.T) {
	form := PostForm{Text: "  hello \n", Group: " 3 "}
	form.Clean()
	if form.Text != "hello" || form.Group != "3" {
		t.Errorf("Clean() = %+v", form)
	}
	if got := form.Values(); got["text"] != "hello" || got["group"] != "3" {
		t.Errorf("Values() = %v", got)
	}
}
