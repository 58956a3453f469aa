// Package deck defines the input document for a compilation request: a
// "decision deck" mapping question identifiers to their human-readable text,
// plus one reserved key holding the decision-logic source.
//
// Decks are flat string-to-string documents and can be supplied as JSON or
// TOML; every non-reserved key is an identifier available to the logic
// expression.
package deck

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	rferrors "github.com/ruleflow/ruleflow/pkg/errors"
)

// ReservedLogicKey is the deck key holding the boolean-expression source.
// All other keys are question identifiers.
const ReservedLogicKey = "logic"

// Deck is one compilation request: a logic expression over a set of named
// yes/no questions.
type Deck struct {
	Logic     string
	Questions map[string]string
}

// Validate checks that the deck can be compiled.
func (d Deck) Validate() error {
	if strings.TrimSpace(d.Logic) == "" {
		return rferrors.New(rferrors.ErrCodeInvalidDeck, "deck has no %q entry", ReservedLogicKey)
	}
	return nil
}

// Marshal serializes the deck back to its flat document form as JSON.
// Map keys marshal in sorted order, so the bytes are stable and usable as
// cache-key material.
func (d Deck) Marshal() ([]byte, error) {
	flat := make(map[string]string, len(d.Questions)+1)
	for k, v := range d.Questions {
		flat[k] = v
	}
	flat[ReservedLogicKey] = d.Logic
	return json.Marshal(flat)
}

// ParseJSON decodes a deck from a flat JSON object.
func ParseJSON(data []byte) (Deck, error) {
	var flat map[string]string
	if err := json.Unmarshal(data, &flat); err != nil {
		return Deck{}, rferrors.Wrap(rferrors.ErrCodeInvalidDeck, err, "decode JSON deck")
	}
	return fromFlat(flat), nil
}

// ParseTOML decodes a deck from a flat TOML document.
func ParseTOML(data []byte) (Deck, error) {
	var flat map[string]string
	if err := toml.Unmarshal(data, &flat); err != nil {
		return Deck{}, rferrors.Wrap(rferrors.ErrCodeInvalidDeck, err, "decode TOML deck")
	}
	return fromFlat(flat), nil
}

// ReadFile loads a deck from path, choosing the decoder by file extension:
// .toml decodes as TOML, anything else as JSON.
func ReadFile(path string) (Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Deck{}, rferrors.Wrap(rferrors.ErrCodeNotFound, err, "deck file %s", path)
		}
		return Deck{}, fmt.Errorf("read deck %s: %w", path, err)
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return ParseTOML(data)
	}
	return ParseJSON(data)
}

// fromFlat splits the reserved logic key out of the question map.
func fromFlat(flat map[string]string) Deck {
	d := Deck{Questions: make(map[string]string, len(flat))}
	for k, v := range flat {
		if k == ReservedLogicKey {
			d.Logic = v
			continue
		}
		d.Questions[k] = v
	}
	return d
}

// Default returns the built-in sample deck used when no input is supplied.
func Default() Deck {
	return Deck{
		Logic: "(Q1 and not (Q5 and Q4)) or (Q2 and Q3)",
		Questions: map[string]string{
			"Q1": "Are those Senate weaklings plotting against me?",
			"Q2": "Do my soldiers worship me completely?",
			"Q3": "Is political reconciliation impossible?",
			"Q4": "Can Pompey's pathetic legions stop my genius?",
			"Q5": "Will crossing divide my supporters?",
		},
	}
}
