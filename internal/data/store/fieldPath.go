package store

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vantagecap/dealdesk/internal/domain/dealModel"
)

// applyFieldPatch merges dotted-path updates ("metadata.status",
// "extracted_text.pitch_deck", ...) into a deal JSON document without
// touching sibling fields. Intermediate objects are created as needed.
// Status writes are validated against the lifecycle order so no caller can
// move a deal backwards or resurrect one from error.
func applyFieldPatch(current []byte, fields map[string]any) ([]byte, error) {
	doc := map[string]any{}
	if len(current) > 0 {
		if err := json.Unmarshal(current, &doc); err != nil {
			return nil, fmt.Errorf("decode deal document: %w", err)
		}
	}

	if next, ok := fields["metadata.status"]; ok {
		if err := checkStatusTransition(doc, next); err != nil {
			return nil, err
		}
	}

	for path, value := range fields {
		normalized, err := normalizeValue(value)
		if err != nil {
			return nil, fmt.Errorf("encode field %s: %w", path, err)
		}
		setPath(doc, path, normalized)
	}

	return json.Marshal(doc)
}

func checkStatusTransition(doc map[string]any, next any) error {
	nextStatus := dealModel.DealStatus(fmt.Sprint(next))

	metadata, _ := doc["metadata"].(map[string]any)
	if metadata == nil {
		return nil
	}
	currentRaw, ok := metadata["status"].(string)
	if !ok || currentRaw == "" {
		return nil
	}
	current := dealModel.DealStatus(currentRaw)
	if current == nextStatus {
		return nil
	}
	if !dealModel.CanTransition(current, nextStatus) {
		return fmt.Errorf("%w: %s -> %s", ErrStatusTransition, current, nextStatus)
	}
	return nil
}

// normalizeValue round-trips structs through JSON so the document only ever
// holds plain maps/slices/scalars.
func normalizeValue(value any) (any, error) {
	switch value.(type) {
	case nil, string, bool, float64, int, int64:
		return value, nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var plain any
	if err := json.Unmarshal(raw, &plain); err != nil {
		return nil, err
	}
	return plain, nil
}

func setPath(doc map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	node := doc
	for _, part := range parts[:len(parts)-1] {
		child, ok := node[part].(map[string]any)
		if !ok {
			child = map[string]any{}
			node[part] = child
		}
		node = child
	}
	node[parts[len(parts)-1]] = value
}
