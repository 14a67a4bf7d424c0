package build

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/theapple1234/magecraft-forge/internal/domain/shared"
)

// Selections carry sets and maps in memory but persist as ordered lists:
// sets as key arrays, maps as [key, value] pair arrays. This codec is the
// single serialization boundary, shared by every repository backend and
// by import/export.

// PerkPair serializes as a ["key", count] JSON pair
type PerkPair struct {
	Key   string
	Count int
}

// MarshalJSON encodes the pair as a two-element array
func (p PerkPair) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{p.Key, p.Count})
}

// UnmarshalJSON decodes a two-element array pair
func (p *PerkPair) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("perk pair must have 2 elements, got %d", len(raw))
	}
	if err := json.Unmarshal(raw[0], &p.Key); err != nil {
		return err
	}
	return json.Unmarshal(raw[1], &p.Count)
}

// PickPair serializes as a ["perk", ["key", ...]] JSON pair
type PickPair struct {
	Perk string
	Keys []string
}

// MarshalJSON encodes the pair as a two-element array
func (p PickPair) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{p.Perk, p.Keys})
}

// UnmarshalJSON decodes a two-element array pair
func (p *PickPair) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("pick pair must have 2 elements, got %d", len(raw))
	}
	if err := json.Unmarshal(raw[0], &p.Perk); err != nil {
		return err
	}
	return json.Unmarshal(raw[1], &p.Keys)
}

// AssignPair serializes as a ["field", "name"] JSON pair
type AssignPair struct {
	Field string
	Name  string
}

// MarshalJSON encodes the pair as a two-element array
func (p AssignPair) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{p.Field, p.Name})
}

// UnmarshalJSON decodes a two-element array pair
func (p *AssignPair) UnmarshalJSON(data []byte) error {
	var raw [2]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.Field = raw[0]
	p.Name = raw[1]
	return nil
}

// SelectionData is the persisted plain-object form of a Selection
type SelectionData struct {
	Type         string       `json:"type"`
	Categories   []string     `json:"categories,omitempty"`
	Relationship string       `json:"relationship,omitempty"`
	PowerLevel   string       `json:"power_level,omitempty"`
	Size         string       `json:"size,omitempty"`
	Traits       []string     `json:"traits,omitempty"`
	Perks        []PerkPair   `json:"perks,omitempty"`
	Picks        []PickPair   `json:"picks,omitempty"`
	Assigned     []AssignPair `json:"assigned,omitempty"`
	BPSpent      int          `json:"bp_spent"`
	CustomImage  string       `json:"custom_image,omitempty"`
}

// ToData converts a selection to its persisted form. Map fields are
// emitted sorted by key so the output is canonical.
func ToData(s *Selection) *SelectionData {
	if s == nil {
		return nil
	}
	data := &SelectionData{
		Type:         string(s.Type),
		Categories:   append([]string(nil), s.Categories...),
		Relationship: s.Relationship,
		PowerLevel:   s.PowerLevel,
		Size:         s.Size,
		Traits:       append([]string(nil), s.Traits...),
		BPSpent:      s.BPSpent,
		CustomImage:  s.CustomImage,
	}
	for key, count := range s.Perks {
		data.Perks = append(data.Perks, PerkPair{Key: key, Count: count})
	}
	sort.Slice(data.Perks, func(i, j int) bool { return data.Perks[i].Key < data.Perks[j].Key })
	for perk, keys := range s.Picks {
		data.Picks = append(data.Picks, PickPair{Perk: perk, Keys: append([]string(nil), keys...)})
	}
	sort.Slice(data.Picks, func(i, j int) bool { return data.Picks[i].Perk < data.Picks[j].Perk })
	for field, name := range s.Assigned {
		data.Assigned = append(data.Assigned, AssignPair{Field: field, Name: name})
	}
	sort.Slice(data.Assigned, func(i, j int) bool { return data.Assigned[i].Field < data.Assigned[j].Field })
	return data
}

// FromData rehydrates a selection from its persisted form
func FromData(data *SelectionData) *Selection {
	if data == nil {
		return nil
	}
	s := NewSelection(shared.BuildType(data.Type))
	s.Categories = append([]string(nil), data.Categories...)
	s.Relationship = data.Relationship
	s.PowerLevel = data.PowerLevel
	s.Size = data.Size
	s.Traits = append([]string(nil), data.Traits...)
	for _, pair := range data.Perks {
		if pair.Count > 0 {
			s.Perks[pair.Key] = pair.Count
		}
	}
	for _, pair := range data.Picks {
		if len(pair.Keys) > 0 {
			s.Picks[pair.Perk] = append([]string(nil), pair.Keys...)
		}
	}
	for _, pair := range data.Assigned {
		if pair.Name != "" {
			s.Assigned[pair.Field] = pair.Name
		}
	}
	s.BPSpent = data.BPSpent
	s.CustomImage = data.CustomImage
	return s
}

// MarshalSelection serializes a selection to canonical JSON
func MarshalSelection(s *Selection) ([]byte, error) {
	data, err := json.Marshal(ToData(s))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal selection: %w", err)
	}
	return data, nil
}

// UnmarshalSelection rehydrates a selection from JSON
func UnmarshalSelection(raw []byte) (*Selection, error) {
	var data SelectionData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal selection: %w", err)
	}
	return FromData(&data), nil
}
