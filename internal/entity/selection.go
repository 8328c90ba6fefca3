package entity

var squareLabels = [BoardSize]string{
	"Top Left",
	"Top Middle",
	"Top Right",
	"Middle Left",
	"Middle",
	"Middle Right",
	"Bottom Left",
	"Bottom Middle",
	"Bottom Right",
}

// Selection is a move chosen by the engine.
type Selection struct {
	Square int `json:"square"`
}

func NewSelection(square int) Selection {
	return Selection{Square: square}
}

// Label - human readable name of the square, for display only.
func (that Selection) Label() string {
	if that.Square < 0 || that.Square >= BoardSize {
		return "Unknown"
	}
	return squareLabels[that.Square]
}

func (that Selection) String() string {
	return that.Label()
}
