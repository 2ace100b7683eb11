package order

// QueryOrdersModel filters order listings. Zero-value fields match all.
type QueryOrdersModel struct {
	Statuses   []Status
	Priorities []Priority
}

// Matches reports whether the order passes the filter.
func (q *QueryOrdersModel) Matches(o *Order) bool {
	if q == nil {
		return true
	}
	if len(q.Statuses) > 0 && !containsStatus(q.Statuses, o.Status) {
		return false
	}
	if len(q.Priorities) > 0 && !containsPriority(q.Priorities, o.Priority) {
		return false
	}
	return true
}

func containsStatus(list []Status, s Status) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func containsPriority(list []Priority, p Priority) bool {
	for _, v := range list {
		if v == p {
			return true
		}
	}
	return false
}
