package medical

// Category is the medical classification, SHAPE1 being fully fit.
type Category string

const (
	Shape1 Category = "SHAPE1"
	Shape2 Category = "SHAPE2"
	Shape3 Category = "SHAPE3"
	Shape4 Category = "SHAPE4"
	Shape5 Category = "SHAPE5"
)

var Categories = []string{
	string(Shape1), string(Shape2), string(Shape3), string(Shape4), string(Shape5),
}
