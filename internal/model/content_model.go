package model

import (
	"encoding/json"
	"fmt"
)

// ContentModel is one logical content type as produced by field-mapping
// extraction. After consolidation the same shape carries MergedFromIDs; a
// model with a non-nil MergedFromIDs is a merged content model.
type ContentModel struct {
	ID          string `json:"id"`
	Status      int    `json:"status"`
	SourceTitle string `json:"otherCmsTitle"`
	SourceUID   string `json:"otherCmsUid"`
	TargetTitle string `json:"contentstackTitle"`
	// TargetUID is the canonical identifier used for grouping.
	TargetUID     string         `json:"contentstackUid"`
	Type          string         `json:"type"`
	FieldMapping  []FieldMapping `json:"fieldMapping"`
	MergedFromIDs []string       `json:"mergedFromIds,omitempty"`

	// Extra keeps top-level keys this package does not know about.
	Extra map[string]any `json:"-"`
}

// MergedContentModel is a ContentModel whose MergedFromIDs is set.
type MergedContentModel = ContentModel

var contentModelKeys = []string{
	"id", "status", "otherCmsTitle", "otherCmsUid", "contentstackTitle",
	"contentstackUid", "type", "fieldMapping", "mergedFromIds",
}

type contentModelJSON ContentModel

// UnmarshalJSON decodes the known keys into fields and keeps the rest in Extra.
func (m *ContentModel) UnmarshalJSON(data []byte) error {
	var known contentModelJSON

	err := json.Unmarshal(data, &known)
	if err != nil {
		return fmt.Errorf("invalid content model: %w", err)
	}

	var all map[string]any

	err = json.Unmarshal(data, &all)
	if err != nil {
		return fmt.Errorf("invalid content model: %w", err)
	}

	for _, k := range contentModelKeys {
		delete(all, k)
	}

	*m = ContentModel(known)
	if len(all) > 0 {
		m.Extra = all
	}

	return nil
}

// MarshalJSON encodes the model with its Extra keys inlined.
func (m ContentModel) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(contentModelJSON(m))
	if err != nil || len(m.Extra) == 0 {
		return data, err
	}

	var all map[string]any

	err = json.Unmarshal(data, &all)
	if err != nil {
		return nil, err
	}

	for k, v := range m.Extra {
		if _, taken := all[k]; !taken {
			all[k] = v
		}
	}

	return json.Marshal(all)
}

// IsMerged reports whether the model is the output of a consolidation run.
func (m *ContentModel) IsMerged() bool {
	return m.MergedFromIDs != nil
}

// CloneMeta copies every attribute except the field mapping.
func (m *ContentModel) CloneMeta() ContentModel {
	out := *m
	out.FieldMapping = nil

	if m.MergedFromIDs != nil {
		out.MergedFromIDs = append([]string{}, m.MergedFromIDs...)
	}

	if m.Extra != nil {
		out.Extra = Node(m.Extra).Clone()
	}

	return out
}
