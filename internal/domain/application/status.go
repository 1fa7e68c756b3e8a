package application

// The approval chain is linear: the placement cell rules on a pending
// application, the company rules on a cell-approved one. Rejections and the
// company decision are terminal.
var transitions = map[Status][]Status{
	StatusPending:      {StatusCellApproved, StatusCellRejected},
	StatusCellApproved: {StatusCompanyApproved, StatusCompanyRejected},
}

func CanTransition(from, to Status) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func IsTerminal(status Status) bool {
	return len(transitions[status]) == 0
}

func IsKnown(status Status) bool {
	switch status {
	case StatusPending, StatusCellApproved, StatusCellRejected, StatusCompanyApproved, StatusCompanyRejected:
		return true
	default:
		return false
	}
}

// IsCellStatus reports whether status is one the placement cell may set.
func IsCellStatus(status Status) bool {
	return status == StatusCellApproved || status == StatusCellRejected
}

// IsCompanyStatus reports whether status is one a company may set.
func IsCompanyStatus(status Status) bool {
	return status == StatusCompanyApproved || status == StatusCompanyRejected
}
