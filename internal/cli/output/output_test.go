package output

import (
	"bytes"
	"strings"
	"testing"
)

func sampleTable() *Table {
	t := &Table{}
	t.SetHeaders("NAME", "DESCRIPTION")
	t.AddRow("bouncing-balls", "balls")
	t.AddRow("other", "-")
	return t
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatTable, false},
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"plain", FormatPlain, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		format Format
		check  func(Formatter) bool
	}{
		{FormatTable, func(f Formatter) bool { tf, ok := f.(*TableFormatter); return ok && !tf.Plain }},
		{FormatPlain, func(f Formatter) bool { tf, ok := f.(*TableFormatter); return ok && tf.Plain }},
		{FormatJSON, func(f Formatter) bool { _, ok := f.(*JSONFormatter); return ok }},
		{FormatYAML, func(f Formatter) bool { _, ok := f.(*YAMLFormatter); return ok }},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			if !tt.check(NewFormatter(tt.format)) {
				t.Errorf("NewFormatter(%q) returned wrong type", tt.format)
			}
		})
	}
}

func TestTableFormatter_Styled(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TableFormatter{}).Format(&buf, sampleTable()); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"NAME", "DESCRIPTION", "bouncing-balls", "other"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTableFormatter_Plain(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TableFormatter{Plain: true}).Format(&buf, sampleTable()); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "NAME") {
		t.Errorf("first line = %q, want header", lines[0])
	}
	if fields := strings.Fields(lines[1]); len(fields) != 2 || fields[0] != "bouncing-balls" {
		t.Errorf("row = %q, want two aligned columns", lines[1])
	}
}

func TestTableFormatter_PlainNoHeaders(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TableFormatter{Plain: true, NoHeaders: true}).Format(&buf, sampleTable()); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	if strings.Contains(buf.String(), "NAME") {
		t.Errorf("headers should be omitted:\n%s", buf.String())
	}
}

func TestTableFormatter_NonTabularFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TableFormatter{}).Format(&buf, map[string]int{"frames": 3}); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	if !strings.Contains(buf.String(), `"frames": 3`) {
		t.Errorf("expected JSON fallback, got:\n%s", buf.String())
	}
}

func TestTableFormatter_Nil(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TableFormatter{}).Format(&buf, nil); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	data := struct {
		ID     string `json:"id"`
		Frames int    `json:"frames"`
	}{"01RUN", 12}

	if err := (&JSONFormatter{}).Format(&buf, data); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := "{\n  \"id\": \"01RUN\",\n  \"frames\": 12\n}\n"
	if buf.String() != want {
		t.Errorf("Format() = %q, want %q", buf.String(), want)
	}
}

func TestYAMLFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	data := struct {
		ID     string `yaml:"id"`
		Frames int    `yaml:"frames"`
	}{"01RUN", 12}

	if err := (&YAMLFormatter{}).Format(&buf, data); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := "id: 01RUN\nframes: 12\n"
	if buf.String() != want {
		t.Errorf("Format() = %q, want %q", buf.String(), want)
	}
}
