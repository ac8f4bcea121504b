package scheme

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/cegui/internal/resource"
)

func decodeStrictYAML(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}

// readDoc loads file from group through the loader's provider and decodes it
// into out
func (l *Loader) readDoc(kind, file, group string, out any) error {
	var raw resource.RawDataContainer
	if err := l.provider.Load(file, &raw, group); err != nil {
		return fmt.Errorf("loading %s %q: %w", kind, file, err)
	}
	defer l.provider.Unload(&raw)
	if err := decodeStrictYAML(raw.Data, out); err != nil {
		return fmt.Errorf("%s %s: %w", kind, file, err)
	}
	return nil
}

func nodeError(n *yaml.Node, err error) error {
	return fmt.Errorf("line %d: %w", n.Line, err)
}
