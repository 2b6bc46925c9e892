package generation

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type resultKind int

const (
	resultEmpty resultKind = iota
	resultText
	resultFailure
)

// result is an upstream reply after validation: text on success, a failure message on
// a non-success status, or empty when a success carried nothing usable.
type result struct {
	kind    resultKind
	text    string
	failure string
}

// completionBody is the subset of the chat completion payload we read. Every field is
// optional on the wire, so pointers distinguish "absent" from "empty".
type completionBody struct {
	Choices []struct {
		Message *struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func decodeResult(status int, raw []byte) result {
	var body completionBody
	decodeErr := json.Unmarshal(raw, &body)

	if status < 200 || status > 299 {
		msg := ""
		if decodeErr == nil && body.Error != nil {
			msg = strings.TrimSpace(body.Error.Message)
		}
		if msg == "" {
			msg = fmt.Sprintf("generation service returned status %d (%s)", status, http.StatusText(status))
		}
		return result{kind: resultFailure, failure: msg}
	}

	if decodeErr != nil {
		return result{kind: resultEmpty}
	}
	if body.Error != nil && strings.TrimSpace(body.Error.Message) != "" {
		return result{kind: resultFailure, failure: body.Error.Message}
	}
	if len(body.Choices) == 0 || body.Choices[0].Message == nil || body.Choices[0].Message.Content == nil {
		return result{kind: resultEmpty}
	}

	text := *body.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return result{kind: resultEmpty}
	}
	return result{kind: resultText, text: text}
}
