package employee

// Role is the employee's system role. It drives UI affordances only.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

type Rank string

const (
	RankJunior Rank = "Junior"
	RankSenior Rank = "Senior"
)

var (
	Roles = []string{string(RoleEmployee), string(RoleAdmin)}
	Ranks = []string{string(RankJunior), string(RankSenior)}
)

// Employee mirrors the backend document. Fields the console does not edit
// are carried in Extra by callers that need whole-document PUTs.
type Employee struct {
	ID           string      `json:"_id,omitempty"`
	Name         string      `json:"name"`
	Phone        string      `json:"phone,omitempty"`
	RegimentalNo string      `json:"regimentalNo"`
	Role         Role        `json:"role"`
	Rank         Rank        `json:"rank"`
	DOB          string      `json:"dob"`
	DOJ          string      `json:"doj"`
	Courses      []Course    `json:"courses"`
	Equipment    []Equipment `json:"equipment"`
}

// Course is an entry of the employee's nested course history.
type Course struct {
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

// Equipment is an entry of the employee's nested equipment history.
type Equipment struct {
	Name         string `json:"name"`
	AssignedDate string `json:"assignedDate"`
}

// Label is how an employee appears in searchable selects.
func Label(name, regimentalNo string) string {
	if regimentalNo == "" {
		return name
	}
	return name + " (" + regimentalNo + ")"
}
