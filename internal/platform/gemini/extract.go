package gemini

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/phrazzld/email-writer/internal/generation"
)

// ExtractText parses an API body and returns candidates[0].content.parts[0].text.
//
// An empty body yields generation.ErrEmptyResponse and invalid JSON yields
// generation.ErrMalformedResponse. A level along the path that is missing or
// has the wrong JSON type yields generation.ErrMissingContent. A present but
// empty text field is returned as "", and a number or boolean text is
// returned as its JSON literal.
func ExtractText(body []byte) (string, error) {
	if len(body) == 0 {
		return "", generation.ErrEmptyResponse
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return "", fmt.Errorf("%w: blank body", generation.ErrMissingContent)
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var root interface{}
	if err := dec.Decode(&root); err != nil {
		return "", fmt.Errorf("%w: %v", generation.ErrMalformedResponse, err)
	}

	return firstText(root)
}

// firstText walks the decoded tree one level at a time.
func firstText(root interface{}) (string, error) {
	candidate, ok := firstElem(field(root, "candidates"))
	if !ok {
		return "", fmt.Errorf("%w: no candidates", generation.ErrMissingContent)
	}
	content, ok := candidate["content"].(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("%w: candidate has no content", generation.ErrMissingContent)
	}
	part, ok := firstElem(content["parts"])
	if !ok {
		return "", fmt.Errorf("%w: content has no parts", generation.ErrMissingContent)
	}

	switch text := part["text"].(type) {
	case string:
		return text, nil
	case json.Number:
		return text.String(), nil
	case bool:
		return strconv.FormatBool(text), nil
	default:
		return "", fmt.Errorf("%w: first part has no text", generation.ErrMissingContent)
	}
}

// field returns obj[name] when obj is a JSON object.
func field(obj interface{}, name string) interface{} {
	m, ok := obj.(map[string]interface{})
	if !ok {
		return nil
	}
	return m[name]
}

// firstElem returns the first element of v when v is a non-empty array whose
// first element is an object.
func firstElem(v interface{}) (map[string]interface{}, bool) {
	arr, ok := v.([]interface{})
	if !ok || len(arr) == 0 {
		return nil, false
	}
	m, ok := arr[0].(map[string]interface{})
	return m, ok
}
