package parser

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/nguyentantai21042004/chat-notes/internal/config"
	"github.com/nguyentantai21042004/chat-notes/internal/domain"
)

// Line grammar for Android-style exports:
//
//	DD/MM/YYYY, HH:MM - Sender: Content
//
// Day, month and hour may be one or two digits; the comma after the date
// is optional.
var (
	messageRe = regexp.MustCompile(`^(\d{1,2}/\d{1,2}/\d{4}),?\s+(\d{1,2}:\d{2})\s*-\s*([^:]+?):\s*(.*)$`)

	// Media sub-pattern inside the content: "<filename> (file attached)"
	attachedRe = regexp.MustCompile(`^(.+?)\s*\(file attached\)`)

	urlRe     = regexp.MustCompile(`https?://\S+`)
	deletedRe = regexp.MustCompile(`This message was deleted|You deleted this message`)

	systemRes = []*regexp.Regexp{
		regexp.MustCompile(`.+\s+(?:added|removed|left|joined|created|changed)`),
		regexp.MustCompile(`Messages and calls are end-to-end encrypted`),
		regexp.MustCompile(`Only messages that mention`),
		regexp.MustCompile(`You added|You removed|You left|You created`),
		regexp.MustCompile(`Security code changed`),
	}
)

var timestampLayouts = []string{
	"2/1/2006 15:04",
	"2/1/2006 3:04",
}

func (p *implParser) ParseFile(ctx context.Context, path string) ([]domain.Message, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open transcript %s: %w", path, err)
	}
	defer f.Close()

	return p.Parse(ctx, f)
}

func (p *implParser) Parse(ctx context.Context, r io.Reader) ([]domain.Message, error) {
	var messages []domain.Message

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)

	for scanner.Scan() {
		line := sanitizeLine(scanner.Text())
		if strings.TrimSpace(line) == "" {
			continue
		}

		if msg, ok := p.parseLine(ctx, line); ok {
			msg.Seq = len(messages)
			messages = append(messages, msg)
			continue
		}

		// Continuation line: a body line of a multi-line message, or a
		// line the grammar simply does not cover.
		if p.continuation == config.ContinuationAppend && len(messages) > 0 {
			messages[len(messages)-1].Content += "\n" + line
			continue
		}
		messages = append(messages, p.coerceLine(line, messages))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}

	p.logger.Info(ctx, "Parsed %d messages", len(messages))
	return messages, nil
}

func (p *implParser) parseLine(ctx context.Context, line string) (domain.Message, bool) {
	m := messageRe.FindStringSubmatch(line)
	if m == nil {
		return domain.Message{}, false
	}

	ts, err := parseTimestamp(m[1], m[2])
	if err != nil {
		// One bad timestamp must not fail the parse.
		p.logger.Warn(ctx, "Unparsable timestamp %q %q, using current time", m[1], m[2])
		ts = p.now()
	}

	sender := strings.TrimSpace(m[3])
	content := strings.TrimSpace(m[4])
	kind, mediaRef := classifyContent(content)

	return domain.Message{
		Timestamp: ts,
		Sender:    sender,
		Content:   content,
		Kind:      kind,
		MediaRef:  mediaRef,
	}, true
}

// coerceLine turns an unmatched line into a best-effort text message so
// the line count is preserved under the "keep" policy. It inherits the
// previous message's timestamp when one exists.
func (p *implParser) coerceLine(line string, previous []domain.Message) domain.Message {
	ts := p.now()
	if len(previous) > 0 {
		ts = previous[len(previous)-1].Timestamp
	}
	return domain.Message{
		Seq:       len(previous),
		Timestamp: ts,
		Content:   line,
		Kind:      domain.KindText,
	}
}

// classifyContent picks exactly one kind, first match wins:
// media > deleted > system > url > text.
func classifyContent(content string) (domain.MessageKind, string) {
	if strings.Contains(content, "(file attached)") {
		if m := attachedRe.FindStringSubmatch(content); m != nil {
			return domain.KindMedia, strings.TrimSpace(m[1])
		}
	}
	if deletedRe.MatchString(content) {
		return domain.KindDeleted, ""
	}
	for _, re := range systemRes {
		if re.MatchString(content) {
			return domain.KindSystem, ""
		}
	}
	if urlRe.MatchString(content) {
		return domain.KindURL, ""
	}
	return domain.KindText, ""
}

func parseTimestamp(datePart, timePart string) (time.Time, error) {
	raw := datePart + " " + timePart
	var lastErr error
	for _, layout := range timestampLayouts {
		ts, err := time.Parse(layout, raw)
		if err == nil {
			return ts, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// sanitizeLine strips invisible direction-control characters WhatsApp
// embeds around names, and replaces invalid UTF-8 so one broken byte
// cannot poison a line.
func sanitizeLine(s string) string {
	s = strings.ToValidUTF8(s, "�")
	return strings.Map(func(r rune) rune {
		switch r {
		case '\u200e', '\u200f': // LTR / RTL mark
			return -1
		case '\u200b', '\u200c', '\u200d': // zero-width spaces
			return -1
		case '\ufeff': // BOM
			return -1
		default:
			return r
		}
	}, s)
}
