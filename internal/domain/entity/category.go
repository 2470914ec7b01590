package entity

// Category agrupa productos (analgésicos, antibióticos...). Name es único.
type Category struct {
	ID          string
	Name        string
	Description string
}
