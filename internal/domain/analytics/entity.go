package analytics

// Analytics is the admin dashboard summary from GET /admin/analytics.
type Analytics struct {
	TotalEmployees          int `json:"totalEmployees"`
	Present                 int `json:"present"`
	Absent                  int `json:"absent"`
	LeaveApproved           int `json:"leaveApproved"`
	LeavePending            int `json:"leavePending"`
	LeaveRejected           int `json:"leaveRejected"`
	EquipmentServiceable    int `json:"equipmentServiceable"`
	EquipmentNonServiceable int `json:"equipmentNonServiceable"`
}

// Share is one bar of a dashboard card.
type Share struct {
	Label   string
	Count   int
	Percent float64
}

// Percent returns part as a share of total, 0 when total is 0.
func Percent(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(part) * 100 / float64(total)
}

// Attendance splits the headcount into present and absent.
func (a Analytics) Attendance() []Share {
	total := a.Present + a.Absent
	return []Share{
		{Label: "Present", Count: a.Present, Percent: Percent(a.Present, total)},
		{Label: "Absent", Count: a.Absent, Percent: Percent(a.Absent, total)},
	}
}

func (a Analytics) Leave() []Share {
	total := a.LeaveApproved + a.LeavePending + a.LeaveRejected
	return []Share{
		{Label: "Approved", Count: a.LeaveApproved, Percent: Percent(a.LeaveApproved, total)},
		{Label: "Pending", Count: a.LeavePending, Percent: Percent(a.LeavePending, total)},
		{Label: "Rejected", Count: a.LeaveRejected, Percent: Percent(a.LeaveRejected, total)},
	}
}

func (a Analytics) Equipment() []Share {
	total := a.EquipmentServiceable + a.EquipmentNonServiceable
	return []Share{
		{Label: "Serviceable", Count: a.EquipmentServiceable, Percent: Percent(a.EquipmentServiceable, total)},
		{Label: "Non-serviceable", Count: a.EquipmentNonServiceable, Percent: Percent(a.EquipmentNonServiceable, total)},
	}
}
