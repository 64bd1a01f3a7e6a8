package equipment

type Status string

const (
	StatusInUse       Status = "In Use"
	StatusInStore     Status = "In Store"
	StatusUnderRepair Status = "Under Repair"
	StatusCondemned   Status = "Condemned"
)

var Statuses = []string{
	string(StatusInUse),
	string(StatusInStore),
	string(StatusUnderRepair),
	string(StatusCondemned),
}

// Category is a backend-managed equipment category (GET /equipment/category).
type Category struct {
	ID    string `json:"_id"`
	AltID string `json:"id,omitempty"`
	Name  string `json:"name"`
}

func (c Category) Key() string {
	if c.ID != "" {
		return c.ID
	}
	return c.AltID
}

// Assigned is one row of GET /equipment/assigned for the signed-in employee.
type Assigned struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}
