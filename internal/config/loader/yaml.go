package loader

import (
	"bytes"
	"errors"
	"io"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"
)

// yamlLine extracts the line number yaml.v3 embeds in its messages.
var yamlLine = regexp.MustCompile(`line (\d+)`)

// decodeYAML decodes YAML data into v.
func decodeYAML(source string, data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil // empty document
		}
		perr := &ParseError{
			Path:    source,
			Message: err.Error(),
			Err:     err,
		}
		if m := yamlLine.FindStringSubmatch(err.Error()); m != nil {
			perr.Line, _ = strconv.Atoi(m[1])
		}
		return perr
	}
	return nil
}
