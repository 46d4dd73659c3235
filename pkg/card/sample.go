package card

// Sample returns the built-in dataset used when the catalog source cannot be
// loaded. It always returns a fresh slice.
func Sample() []Card {
	return []Card{
		{ID: 1, Name: "Mushmon Card", Point: 1, Group: "1", Region: "A", DropRate: "2.78%"},
		{ID: 10, Name: "Orc Card", Point: 1, Group: "1", Region: "A", DropRate: "2.78%"},
		{ID: 6, Name: "Stone Goblin Card", Point: 2, Group: "1", Region: "A", DropRate: "2.78%"},
	}
}
