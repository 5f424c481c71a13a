package spec

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// WriteJSON serializes it as the persisted intermediate/message-tree.json
// form, indented for human inspection alongside the other generated
// artifacts.
func WriteJSON(w io.Writer, it *IntermediateTree) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(it); err != nil {
		return fmt.Errorf("encode intermediate tree: %w", err)
	}

	return nil
}

// WriteJSONFile writes it to path, creating or truncating the file.
func WriteJSONFile(path string, it *IntermediateTree) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create intermediate tree file: %w", err)
	}
	defer f.Close()

	return WriteJSON(f, it)
}

// ReadJSON deserializes an [IntermediateTree] previously written by
// [WriteJSON]. Round-tripping through JSON must reproduce the tree
// exactly, including Provenance, for the tree file to serve as a
// durable debugging artifact.
func ReadJSON(r io.Reader) (*IntermediateTree, error) {
	var it IntermediateTree

	if err := json.NewDecoder(r).Decode(&it); err != nil {
		return nil, fmt.Errorf("decode intermediate tree: %w", err)
	}

	return &it, nil
}

// ReadJSONFile reads an [IntermediateTree] from path.
func ReadJSONFile(path string) (*IntermediateTree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open intermediate tree file: %w", err)
	}
	defer f.Close()

	return ReadJSON(f)
}
