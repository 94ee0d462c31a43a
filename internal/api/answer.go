package api

import (
	"bytes"
	"encoding/json"
	"errors"
)

var errAnswerType = errors.New("user_answer must be a string or a number")

// answerValue accepts user_answer as either a JSON string or a JSON
// number and keeps its text for grading. null decodes as empty.
type answerValue string

func (a *answerValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*a = ""
		return nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = answerValue(s)
		return nil
	case b[0] == '-' || (b[0] >= '0' && b[0] <= '9'):
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return err
		}
		*a = answerValue(n.String())
		return nil
	default:
		return errAnswerType
	}
}
