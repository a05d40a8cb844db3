package contractabi

import (
	"cmp"
	"slices"
)

// Categorized is an ABI partitioned for call building.
type Categorized struct {
	ReadFunctions  []Entry `json:"readFunctions"`
	WriteFunctions []Entry `json:"writeFunctions"`
	Events         []Entry `json:"events"`
	Errors         []Entry `json:"errors"`
	Constructor    *Entry  `json:"constructor,omitempty"`
	Fallback       *Entry  `json:"fallback,omitempty"`
	Receive        *Entry  `json:"receive,omitempty"`
}

// Categorize splits entries by kind. Functions go to exactly one of the read and write lists.
// Lists are sorted by name, keeping ABI order for equal names.
func Categorize(entries []Entry) *Categorized {
	res := &Categorized{
		ReadFunctions:  []Entry{},
		WriteFunctions: []Entry{},
		Events:         []Entry{},
		Errors:         []Entry{},
	}
	for i := range entries {
		e := entries[i]
		switch e.Type {
		case TypeFunction, "":
			if e.IsRead() {
				res.ReadFunctions = append(res.ReadFunctions, e)
			} else {
				res.WriteFunctions = append(res.WriteFunctions, e)
			}
		case TypeEvent:
			res.Events = append(res.Events, e)
		case TypeError:
			res.Errors = append(res.Errors, e)
		case TypeConstructor:
			res.Constructor = &e
		case TypeFallback:
			res.Fallback = &e
		case TypeReceive:
			res.Receive = &e
		}
	}

	for _, list := range [][]Entry{res.ReadFunctions, res.WriteFunctions, res.Events, res.Errors} {
		slices.SortStableFunc(list, byName)
	}
	return res
}

func byName(a, b Entry) int {
	return cmp.Compare(a.Name, b.Name)
}

// Selectors maps function and error signatures to their selectors.
func (c *Categorized) Selectors() map[string]string {
	res := make(map[string]string)
	for _, list := range [][]Entry{c.ReadFunctions, c.WriteFunctions, c.Errors} {
		for i := range list {
			res[list[i].Signature()] = list[i].Selector()
		}
	}
	return res
}

// Topics maps event signatures to their topics.
func (c *Categorized) Topics() map[string]string {
	res := make(map[string]string)
	for i := range c.Events {
		if topic := c.Events[i].Topic(); topic != "" {
			res[c.Events[i].Signature()] = topic
		}
	}
	return res
}

// ConstructorInputs returns the inputs of the constructor entry, none if there is no constructor.
func ConstructorInputs(entries []Entry) []Parameter {
	for i := range entries {
		if entries[i].Type == TypeConstructor {
			if entries[i].Inputs == nil {
				return []Parameter{}
			}
			return entries[i].Inputs
		}
	}
	return []Parameter{}
}
