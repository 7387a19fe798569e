package domain

// Menu is a registered resource path node with display metadata. Url is the
// canonical path used for permission scoping.
type Menu struct {
	ID          int
	Name        string
	Description string
	Level1      *string
	Level2      *string
	Level3      *string
	Level4      *string
	Icon        *string
	URL         string
}
