package armour

import "fmt"

type ID int32

const (
	Blue ID = iota
	Green
	Yellow

	None ID = -1
)

// Absorption is the percentage of incoming damage the armour soaks up
// before health is touched.
func Absorption(typ ID) float64 {
	switch typ {
	case Blue:
		return 25
	case Green:
		return 50
	case Yellow:
		return 75
	default:
		return 0
	}
}

func (i ID) String() string {
	switch i {
	case Blue:
		return "blue"
	case Green:
		return "green"
	case Yellow:
		return "yellow"
	case None:
		return "none"
	default:
		return fmt.Sprintf("armour(%d)", int32(i))
	}
}

func Parse(name string) (ID, error) {
	switch name {
	case "blue":
		return Blue, nil
	case "green", "":
		return Green, nil
	case "yellow":
		return Yellow, nil
	case "none":
		return None, nil
	}
	return None, fmt.Errorf("unknown armour type %q", name)
}
