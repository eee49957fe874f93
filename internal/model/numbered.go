package model

// Numbered wraps an item with a 1-indexed number for user reference.
// Commands that list entries, notes or kirk sets print these numbers so that
// `scribe entry show 3` or `scribe note rm 3 2` can address them.
type Numbered[T any] struct {
	// Num is the 1-indexed position in the list.
	Num int `json:"num"`

	Item T `json:"item"`
}

// NumberedList converts a slice to numbered items.
func NumberedList[T any](items []T) []Numbered[T] {
	result := make([]Numbered[T], len(items))
	for i, item := range items {
		result[i] = Numbered[T]{
			Num:  i + 1,
			Item: item,
		}
	}
	return result
}
