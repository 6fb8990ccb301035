package cff

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Marshal renders the document as YAML with 2-space indent and fields in
// the conventional order. Empty optional fields are omitted, so a parsed
// document re-marshals to its canonical form.
func (d *Document) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("encoding CFF document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding CFF document: %w", err)
	}
	return buf.Bytes(), nil
}

// Write serializes the document to w.
func (d *Document) Write(w io.Writer) error {
	data, err := d.Marshal()
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing CFF document: %w", err)
	}
	return nil
}

// WriteFile serializes the document to the file at path.
func (d *Document) WriteFile(path string) error {
	data, err := d.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
