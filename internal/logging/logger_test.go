package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

var (
	_ Logger = (*ZerologAdapter)(nil)
	_ Logger = (*StdLoggerAdapter)(nil)
)

// decodeLine parses the single JSON line a zerolog-backed logger wrote into
// buf. Numbers come back as json.Number so 64-bit values survive the decode.
func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	raw := buf.String()
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var entry map[string]any
	if err := dec.Decode(&entry); err != nil {
		t.Fatalf("log line is not valid JSON: %v\n%s", err, raw)
	}
	return entry
}

func TestFieldConstructors(t *testing.T) {
	cause := errors.New("boom")
	cases := []struct {
		name      string
		field     Field
		wantKey   string
		wantValue any
	}{
		{"String", String("strategy", "BottomUp"), "strategy", "BottomUp"},
		{"Int", Int("slots", 42), "slots", 42},
		{"Uint64", Uint64("heap_alloc", 12345678901234567890), "heap_alloc", uint64(12345678901234567890)},
		{"Float64", Float64("elapsed_s", 3.14159), "elapsed_s", 3.14159},
		{"Err", Err(cause), "error", cause},
		{"Err with nil", Err(nil), "error", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.field.Key != tc.wantKey {
				t.Errorf("Key = %q, want %q", tc.field.Key, tc.wantKey)
			}
			if tc.field.Value != tc.wantValue {
				t.Errorf("Value = %v (%T), want %v (%T)", tc.field.Value, tc.field.Value, tc.wantValue, tc.wantValue)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "orchestration")

	logger.Info("run finished", String("strategy", "BottomUp"), Int("n", 30))

	entry := decodeLine(t, &buf)
	if entry["level"] != "info" {
		t.Errorf("level = %v, want info", entry["level"])
	}
	if entry["component"] != "orchestration" {
		t.Errorf("component = %v, want orchestration", entry["component"])
	}
	if entry["message"] != "run finished" {
		t.Errorf("message = %v, want %q", entry["message"], "run finished")
	}
	if entry["strategy"] != "BottomUp" {
		t.Errorf("strategy = %v, want BottomUp", entry["strategy"])
	}
	if entry["n"] != json.Number("30") {
		t.Errorf("n = %v, want 30", entry["n"])
	}
	if _, ok := entry["time"]; !ok {
		t.Error("expected a timestamp field")
	}
}

func TestNewDefaultLogger(t *testing.T) {
	if NewDefaultLogger() == nil {
		t.Fatal("NewDefaultLogger returned nil")
	}
}

func TestZerologAdapter_Error(t *testing.T) {
	t.Run("embeds the cause", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf, "app")

		logger.Error("strategy failed", errors.New("context canceled"), String("strategy", "NaiveRecursive"))

		entry := decodeLine(t, &buf)
		if entry["level"] != "error" {
			t.Errorf("level = %v, want error", entry["level"])
		}
		if entry["error"] != "context canceled" {
			t.Errorf("error = %v, want %q", entry["error"], "context canceled")
		}
		if entry["strategy"] != "NaiveRecursive" {
			t.Errorf("strategy = %v, want NaiveRecursive", entry["strategy"])
		}
	})

	t.Run("nil cause still logs at error level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf, "app")

		logger.Error("run aborted", nil)

		entry := decodeLine(t, &buf)
		if entry["level"] != "error" {
			t.Errorf("level = %v, want error", entry["level"])
		}
		if _, ok := entry["error"]; ok {
			t.Errorf("nil cause should not emit an error field, got %v", entry["error"])
		}
	})
}

func TestZerologAdapter_Debug(t *testing.T) {
	t.Run("filtered below the configured level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewZerologAdapter(zerolog.New(&buf).Level(zerolog.InfoLevel))

		logger.Debug("memo slot filled", Int("slot", 7))

		if buf.Len() != 0 {
			t.Errorf("debug output should be filtered at info level, got %s", buf.String())
		}
	})

	t.Run("emitted at debug level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewZerologAdapter(zerolog.New(&buf).Level(zerolog.DebugLevel))

		logger.Debug("memo slot filled", Int("slot", 7))

		entry := decodeLine(t, &buf)
		if entry["level"] != "debug" {
			t.Errorf("level = %v, want debug", entry["level"])
		}
		if entry["slot"] != json.Number("7") {
			t.Errorf("slot = %v, want 7", entry["slot"])
		}
	})
}

func TestZerologAdapter_PrintfPrintln(t *testing.T) {
	t.Run("Printf formats like the standard logger", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf, "repl")

		logger.Printf("formatted %s %d", "message", 42)

		entry := decodeLine(t, &buf)
		if entry["message"] != "formatted message 42" {
			t.Errorf("message = %v, want %q", entry["message"], "formatted message 42")
		}
	})

	t.Run("Println joins arguments without a level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf, "repl")

		logger.Println("hello", "world")

		entry := decodeLine(t, &buf)
		if entry["message"] != "hello world" {
			t.Errorf("message = %v, want %q", entry["message"], "hello world")
		}
		if _, ok := entry["level"]; ok {
			t.Errorf("Println should not carry a level, got %v", entry["level"])
		}
	})
}

func TestZerologAdapter_FieldTypes(t *testing.T) {
	cases := []struct {
		name  string
		field Field
		want  any
	}{
		{"string", Field{Key: "str", Value: "hello"}, "hello"},
		{"int", Field{Key: "num", Value: 42}, json.Number("42")},
		{"int64 max", Field{Key: "big", Value: int64(math.MaxInt64)}, json.Number("9223372036854775807")},
		{"uint64 max", Field{Key: "huge", Value: uint64(math.MaxUint64)}, json.Number("18446744073709551615")},
		{"float64", Field{Key: "ratio", Value: 1.618}, json.Number("1.618")},
		{"bool", Field{Key: "parallel", Value: true}, true},
		{"error", Field{Key: "cause", Value: errors.New("oops")}, "oops"},
		{"arbitrary value", Field{Key: "payload", Value: struct{ X int }{5}}, map[string]any{"X": json.Number("5")}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewZerologAdapter(zerolog.New(&buf))

			logger.Info("typed field", tc.field)

			entry := decodeLine(t, &buf)
			if got := entry[tc.field.Key]; !reflect.DeepEqual(got, tc.want) {
				t.Errorf("%s = %v (%T), want %v (%T)", tc.field.Key, got, got, tc.want, tc.want)
			}
		})
	}
}

func TestStdLoggerAdapter(t *testing.T) {
	cases := []struct {
		name string
		emit func(a *StdLoggerAdapter)
		want string
	}{
		{
			"info without fields",
			func(a *StdLoggerAdapter) { a.Info("comparison started") },
			"[INFO] comparison started\n",
		},
		{
			"info with fields",
			func(a *StdLoggerAdapter) { a.Info("comparison done", String("fastest", "Iterative"), Int("runs", 4)) },
			"[INFO] comparison done fastest=Iterative runs=4\n",
		},
		{
			"error appends the cause last",
			func(a *StdLoggerAdapter) {
				a.Error("strategy failed", errors.New("timeout"), String("strategy", "MemoizedRecursive"))
			},
			"[ERROR] strategy failed strategy=MemoizedRecursive error=timeout\n",
		},
		{
			"error with nil cause",
			func(a *StdLoggerAdapter) { a.Error("run aborted", nil) },
			"[ERROR] run aborted\n",
		},
		{
			"debug",
			func(a *StdLoggerAdapter) { a.Debug("memo slot filled", Int("slot", 42)) },
			"[DEBUG] memo slot filled slot=42\n",
		},
		{
			"printf passes through",
			func(a *StdLoggerAdapter) { a.Printf("value is %d", 123) },
			"value is 123\n",
		},
		{
			"println passes through",
			func(a *StdLoggerAdapter) { a.Println("a", "b", "c") },
			"a b c\n",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			tc.emit(NewStdLoggerAdapter(log.New(&buf, "", 0)))
			if got := buf.String(); got != tc.want {
				t.Errorf("output = %q, want %q", got, tc.want)
			}
		})
	}
}
