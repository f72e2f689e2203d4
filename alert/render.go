package alert

import (
	"fmt"
	"strings"
)

// DingTalkText renders the notice as DingTalk markdown.
// Up to three params are shown and the full trace is included.
func (n *Notice) DingTalkText() string {
	var b strings.Builder
	b.WriteString("## Alert\n")
	section(&b, "Project", n.Project)
	section(&b, "Class path", n.ClassPath)
	section(&b, "Method", n.MethodName)
	section(&b, "Trace ID", n.TraceID)
	section(&b, "UID", n.UID)
	if len(n.Params) > 0 {
		b.WriteString("### Params:\n> ")
		b.WriteString(joinParams(n.Params))
		b.WriteString("\r\n")
	}
	section(&b, "Error", n.ExceptionMessage)
	b.WriteString("### Stack trace:\n --- \n ```go ")
	b.WriteString(strings.Join(n.TraceInfo, "\n"))
	b.WriteString("\n ``` ")
	return b.String()
}

// WorkWeChatText renders the notice as WeCom markdown.
// Params and trace lines are capped at three and the trace text at 2500 characters.
func (n *Notice) WorkWeChatText() string {
	return n.compact("Stack trace:")
}

// FeiShuText renders the notice as Feishu markdown.
// Params and trace lines are capped at three and the trace text at 2500 characters.
func (n *Notice) FeiShuText() string {
	return n.compact(">>Stack trace:")
}

func (n *Notice) compact(traceLabel string) string {
	var b strings.Builder
	b.WriteString("### Alert\n")
	line(&b, "Project", n.Project)
	line(&b, "Class path", n.ClassPath)
	line(&b, "Method", n.MethodName)
	line(&b, "Trace ID", n.TraceID)
	line(&b, "UID", n.UID)
	b.WriteString(">Params:")
	if len(n.Params) > 0 {
		b.WriteString(joinParams(n.Params))
		b.WriteString("\r\n")
	}
	fmt.Fprintf(&b, "Error:%s\n", n.ExceptionMessage)

	trace := n.TraceInfo
	if len(trace) > compactLimit {
		trace = trace[:compactLimit]
	}
	text := truncate(strings.Join(trace, ",")+"\r\n", compactTraceLen)
	fmt.Fprintf(&b, "%s\n`%s`\n", traceLabel, text)
	return b.String()
}

func section(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "### %s:\n> %s\n", label, value)
}

func line(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, ">%s:%s\n", label, value)
}

func joinParams(params []any) string {
	if len(params) > compactLimit {
		params = params[:compactLimit]
	}
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = fmt.Sprint(p)
	}
	return strings.Join(parts, ",")
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
