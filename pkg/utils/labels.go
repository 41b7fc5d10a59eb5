package utils

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
)

// EncodeLabels turns the label sequence into its stored JSON text.
// A nil sequence is stored as [] so reads never see null.
func EncodeLabels(labels []string) (datatypes.JSON, error) {
	if labels == nil {
		labels = []string{}
	}
	raw, err := json.Marshal(labels)
	if err != nil {
		return nil, fmt.Errorf("encode labels: %w", err)
	}
	return datatypes.JSON(raw), nil
}

// DecodeLabels parses the stored form back into an ordered sequence.
func DecodeLabels(raw datatypes.JSON) ([]string, error) {
	labels := []string{}
	if len(raw) == 0 || string(raw) == "null" {
		return labels, nil
	}
	if err := json.Unmarshal(raw, &labels); err != nil {
		return nil, fmt.Errorf("decode labels: %w", err)
	}
	if labels == nil {
		labels = []string{}
	}
	return labels, nil
}
