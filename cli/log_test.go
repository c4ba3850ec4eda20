package cli

import (
	"os"
	"testing"

	"github.com/ardnew/namedlogs/log"
)

func restoreLogger(t *testing.T) {
	t.Helper()
	t.Cleanup(func() { log.Config(log.WithDefaults(os.Stderr)) })
}

func TestLogConfig_Scan(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		level  log.Level
		format log.Format
		pretty bool
		caller bool
	}{
		{
			name:   "defaults",
			args:   []string{"match", "app:db"},
			level:  log.DefaultLevel,
			format: log.DefaultFormat,
			pretty: log.DefaultPretty,
			caller: log.DefaultCaller,
		},
		{
			name:   "assigned",
			args:   []string{"--log-level=debug", "--log-format=json", "--no-log-pretty", "--log-caller=true"},
			level:  log.LevelDebug,
			format: log.FormatJSON,
			pretty: false,
			caller: true,
		},
		{
			name:   "separate values after command",
			args:   []string{"match", "--log-level", "trace", "--log-format", "json"},
			level:  log.LevelTrace,
			format: log.FormatJSON,
			pretty: log.DefaultPretty,
		},
		{
			name:   "negated assignment",
			args:   []string{"--no-log-pretty=false", "--log-caller=bogus"},
			level:  log.DefaultLevel,
			format: log.DefaultFormat,
			pretty: true,
			caller: log.DefaultCaller,
		},
		{
			name:   "stops at terminator",
			args:   []string{"--", "--log-level=error"},
			level:  log.DefaultLevel,
			format: log.DefaultFormat,
			pretty: log.DefaultPretty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			restoreLogger(t)
			log.Config(log.WithDefaults(os.Stderr))

			cfg := logConfig{Pretty: log.DefaultPretty}
			cfg.scan(tt.args)

			if got := log.Default().Level(); got != tt.level {
				t.Errorf("level = %v, want %v", got, tt.level)
			}

			if got := log.Default().Format(); got != tt.format {
				t.Errorf("format = %v, want %v", got, tt.format)
			}

			if cfg.Pretty != tt.pretty {
				t.Errorf("pretty = %v, want %v", cfg.Pretty, tt.pretty)
			}

			if cfg.Caller != tt.caller {
				t.Errorf("caller = %v, want %v", cfg.Caller, tt.caller)
			}
		})
	}
}

func TestLogConfig_ScanMissingValue(t *testing.T) {
	restoreLogger(t)
	log.Config(log.WithDefaults(os.Stderr))

	var cfg logConfig

	// A following flag is not consumed as the level.
	cfg.scan([]string{"--log-level", "--log-format=json"})

	if got := log.Default().Format(); got != log.FormatJSON {
		t.Errorf("format = %v, want %v", got, log.FormatJSON)
	}

	if cfg.Level != "" {
		t.Errorf("level = %q, want empty", cfg.Level)
	}
}

func TestBoolFlag(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		assigned bool
		want     bool
		ok       bool
	}{
		{"--log-pretty", "", false, true, true},
		{"--no-log-pretty", "", false, false, true},
		{"--log-pretty", "false", true, false, true},
		{"--no-log-pretty", "false", true, true, true},
		{"--log-caller", "1", true, true, true},
		{"--log-caller", "maybe", true, false, false},
	}

	for _, tt := range tests {
		got, ok := boolFlag(tt.name, tt.value, tt.assigned)
		if got != tt.want || ok != tt.ok {
			t.Errorf("boolFlag(%q, %q, %v) = %v, %v; want %v, %v",
				tt.name, tt.value, tt.assigned, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLogConfig_Vars(t *testing.T) {
	var cfg logConfig

	vars := cfg.vars()

	if vars["logLevelDefault"] != log.DefaultLevel.String() {
		t.Errorf("logLevelDefault = %q", vars["logLevelDefault"])
	}

	if vars["logFormatEnum"] == "" || vars["logLevelEnum"] == "" {
		t.Errorf("enums should not be empty: %v", vars)
	}

	if g := cfg.group(); g.Key != "log" {
		t.Errorf("group key = %q, want log", g.Key)
	}
}
