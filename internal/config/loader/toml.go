package loader

import (
	"bytes"
	"errors"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// decodeTOML decodes TOML data into v.
func decodeTOML(source string, data []byte, v any) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		perr := &ParseError{
			Path:    source,
			Message: err.Error(),
			Err:     err,
		}

		var derr *toml.DecodeError
		var serr *toml.StrictMissingError
		switch {
		case errors.As(err, &derr):
			perr.Line, perr.Column = derr.Position()
		case errors.As(err, &serr) && len(serr.Errors) > 0:
			perr.Line, perr.Column = serr.Errors[0].Position()
			perr.Message = "unknown key " + strings.Join(serr.Errors[0].Key(), ".")
		}
		return perr
	}
	return nil
}
