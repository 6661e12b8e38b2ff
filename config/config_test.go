package config

import "testing"

func Test_readEnv(t *testing.T) {
	tests := []struct {
		name     string
		env      string
		wantBool bool
		wantInt  int
	}{
		{"empty keeps default", "", true, 10},
		{"yes", "yes", true, 10},
		{"off", "off", false, 10},
		{"number", "0", false, 0},
		{"garbage", "abc", true, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_READ_ENV", tt.env)
			b := true
			i := 10
			readEnvBool("TEST_READ_ENV", &b)
			readEnvInt("TEST_READ_ENV", &i)
			if b != tt.wantBool {
				t.Errorf("readEnvBool() = %v, want %v", b, tt.wantBool)
			}
			if i != tt.wantInt {
				t.Errorf("readEnvInt() = %v, want %v", i, tt.wantInt)
			}
		})
	}
}

func Test_readEnvString(t *testing.T) {
	s := "default"
	t.Setenv("TEST_READ_ENV_STRING", "")
	readEnvString("TEST_READ_ENV_STRING", &s)
	if s != "default" {
		t.Errorf("readEnvString() = %q, want default", s)
	}
	t.Setenv("TEST_READ_ENV_STRING", "custom")
	readEnvString("TEST_READ_ENV_STRING", &s)
	if s != "custom" {
		t.Errorf("readEnvString() = %q, want custom", s)
	}
}
