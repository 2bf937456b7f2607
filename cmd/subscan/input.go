package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/mail"
	"os"
	"strings"

	"github.com/cp25sy5-modjot/subscription-parser/internal/domain"
)

// sourcedEmail remembers which file an email came from for the output.
type sourcedEmail struct {
	Source string
	Email  domain.Email
}

// readSources reads every path ("-" or none means stdin).
func readSources(paths []string, stdin io.Reader) ([]sourcedEmail, error) {
	if len(paths) == 0 {
		paths = []string{"-"}
	}
	var out []sourcedEmail
	for _, p := range paths {
		var (
			data []byte
			err  error
		)
		if p == "-" {
			data, err = io.ReadAll(stdin)
		} else {
			data, err = os.ReadFile(p)
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		emails, err := decodeEmails(data)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", p, err)
		}
		for i, e := range emails {
			src := p
			if len(emails) > 1 {
				src = fmt.Sprintf("%s[%d]", p, i)
			}
			out = append(out, sourcedEmail{Source: src, Email: e})
		}
	}
	return out, nil
}

// decodeEmails accepts a JSON object, a JSON array of objects, or a
// header block (Subject:, From:) followed by a blank line and the body.
func decodeEmails(data []byte) ([]domain.Email, error) {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0:
		return nil, fmt.Errorf("empty input")
	case trimmed[0] == '{':
		var e domain.Email
		if err := json.Unmarshal(trimmed, &e); err != nil {
			return nil, err
		}
		return []domain.Email{e}, nil
	case trimmed[0] == '[':
		var es []domain.Email
		if err := json.Unmarshal(trimmed, &es); err != nil {
			return nil, err
		}
		return es, nil
	}

	msg, err := mail.ReadMessage(bytes.NewReader(data))
	if err != nil {
		// no header block: the whole text is the body
		return []domain.Email{{Body: string(trimmed)}}, nil
	}
	body, err := io.ReadAll(msg.Body)
	if err != nil {
		return nil, err
	}
	return []domain.Email{{
		Subject: msg.Header.Get("Subject"),
		From:    msg.Header.Get("From"),
		Body:    strings.TrimSpace(string(body)),
	}}, nil
}
