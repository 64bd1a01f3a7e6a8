package leave

type Type string

const (
	TypeEarned Type = "EL"
	TypeCasual Type = "CL"
	TypeSick   Type = "SL"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

var (
	Types    = []string{string(TypeEarned), string(TypeCasual), string(TypeSick)}
	Statuses = []string{string(StatusPending), string(StatusApproved), string(StatusRejected)}
)

// TypeLabel is the long name of a leave type.
func TypeLabel(t string) string {
	switch Type(t) {
	case TypeEarned:
		return "Earned Leave"
	case TypeCasual:
		return "Casual Leave"
	case TypeSick:
		return "Sick Leave"
	}
	return t
}
