package debug

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseCategories(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  map[string]bool
	}{
		{"empty", "", map[string]bool{}},
		{"single", "provider", map[string]bool{"provider": true}},
		{"multiple", "keyvault,provider", map[string]bool{"provider": true, "keyvault": true}},
		{"all", "all", map[string]bool{"all": true}},
		{"with spaces", " provider , keyvault ", map[string]bool{"provider": true, "keyvault": true}},
		{"uppercase normalized", "PROVIDER,KeyVault", map[string]bool{"provider": true, "keyvault": true}},
		{"empty segments", "provider,,keyvault", map[string]bool{"provider": true, "keyvault": true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseCategories(tt.input)
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("got[%q] = %v, want %v", k, got[k], v)
				}
			}
			if len(got) != len(tt.want) {
				t.Errorf("len(got) = %d, want %d", len(got), len(tt.want))
			}
		})
	}
}

func TestEnabled(t *testing.T) {
	// Save and restore.
	orig := categories
	defer func() { categories = orig }()

	categories = parseCategories("keyvault,provider")

	if !Enabled("provider") {
		t.Error("provider should be enabled")
	}
	if !Enabled("keyvault") {
		t.Error("keyvault should be enabled")
	}
	if Enabled("identity") {
		t.Error("identity should not be enabled")
	}
	if Enabled("all") {
		t.Error("all should not be enabled (not in categories)")
	}
}

func TestEnabled_All(t *testing.T) {
	orig := categories
	defer func() { categories = orig }()

	categories = parseCategories("all")

	if !Enabled("provider") {
		t.Error("provider should be enabled via 'all'")
	}
	if !Enabled("keyvault") {
		t.Error("keyvault should be enabled via 'all'")
	}
	if !Enabled("anything") {
		t.Error("anything should be enabled via 'all'")
	}
}

func TestEnabled_Empty(t *testing.T) {
	orig := categories
	defer func() { categories = orig }()

	categories = parseCategories("")

	if Enabled("provider") {
		t.Error("nothing should be enabled when no categories set")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"TRACE", LevelTrace},
		{"trace", LevelTrace},
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"unknown", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseLevel(tt.input)
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("Truncate short = %q, want %q", got, "short")
	}
	if got := Truncate("this is a long string", 10); got != "this is a ..." {
		t.Errorf("Truncate long = %q, want %q", got, "this is a ...")
	}
}

func TestLog_DisabledCategory(t *testing.T) {
	orig := categories
	defer func() { categories = orig }()

	categories = parseCategories("")

	// Should not panic or produce output.
	Log("provider", "test message", "key", "value")
	Trace("provider", "trace message", "key", "value")
}

func TestValidLevel(t *testing.T) {
	for _, in := range []string{"TRACE", "debug", "Info", "", "warning", "ERROR"} {
		if !ValidLevel(in) {
			t.Errorf("ValidLevel(%q) = false, want true", in)
		}
	}
	if ValidLevel("verbose") {
		t.Error("ValidLevel(\"verbose\") = true, want false")
	}
}

func TestNewHandlerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, "json", slog.LevelInfo))
	logger.Info("hello", "k", "v")

	if !strings.HasPrefix(buf.String(), "{") {
		t.Errorf("json handler output = %q, want a JSON object", buf.String())
	}

	buf.Reset()
	logger = slog.New(NewHandler(&buf, "text", slog.LevelInfo))
	logger.Debug("hidden")
	logger.Info("hello", "k", "v")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug message emitted at info level")
	}
	if !strings.Contains(out, "k=v") {
		t.Errorf("text handler output = %q, want k=v", out)
	}
}
