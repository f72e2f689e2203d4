package alert

import (
	"strings"
	"testing"
)

func sampleNotice() *Notice {
	return &Notice{
		Project:          "billing",
		UID:              "uid-1",
		MethodName:       "Charge",
		Params:           []any{"a", "b", "c", "d"},
		TraceID:          "t-1",
		ClassPath:        "example.com/billing",
		ExceptionMessage: "*errors.errorString: boom",
		TraceInfo:        []string{"f1", "f2", "f3", "f4"},
	}
}

func TestDingTalkText(t *testing.T) {
	text := sampleNotice().DingTalkText()

	for _, want := range []string{
		"## Alert\n",
		"### Project:\n> billing\n",
		"### Method:\n> Charge\n",
		"### UID:\n> uid-1\n",
		"### Params:\n> a,b,c\r\n",
		"f1\nf2\nf3\nf4\n",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("DingTalkText() missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "a,b,c,d") {
		t.Error("DingTalkText() shows more than three params")
	}
}

func TestDingTalkText_NoParams(t *testing.T) {
	n := sampleNotice()
	n.Params = nil
	if strings.Contains(n.DingTalkText(), "Params") {
		t.Error("DingTalkText() rendered an empty params section")
	}
}

func TestCompactText(t *testing.T) {
	tests := []struct {
		name   string
		render func(*Notice) string
		label  string
	}{
		{"wecom", (*Notice).WorkWeChatText, "\nStack trace:\n"},
		{"feishu", (*Notice).FeiShuText, ">>Stack trace:\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := tt.render(sampleNotice())
			for _, want := range []string{
				"### Alert\n",
				">Project:billing\n",
				">Params:a,b,c\r\n",
				"Error:*errors.errorString: boom\n",
				tt.label + "`f1,f2,f3\r\n`\n",
			} {
				if !strings.Contains(text, want) {
					t.Errorf("missing %q:\n%s", want, text)
				}
			}
		})
	}
}

func TestCompactText_Truncates(t *testing.T) {
	n := sampleNotice()
	long := strings.Repeat("界", 1000)
	n.TraceInfo = []string{long, long, long, long}

	text := n.FeiShuText()

	start := strings.Index(text, "`")
	end := strings.LastIndex(text, "`")
	if start < 0 || end <= start {
		t.Fatalf("trace block not found:\n%s", text)
	}
	trace := text[start+1 : end]
	if got := len([]rune(trace)); got != compactTraceLen {
		t.Errorf("trace length = %d runes, want %d", got, compactTraceLen)
	}
}
