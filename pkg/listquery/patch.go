package listquery

// Patch carries partial query updates; nil fields are left unchanged.
type Patch struct {
	Term     *string
	Status   *string
	Channel  *string
	Page     *int
	PageSize *int
	Sort     *string
}

// Apply merges the patch into q. Changing any filter, sort, or the page size
// resets the page to 1; changing only the page leaves the rest intact.
func (p Patch) Apply(q Query) Query {
	next := q
	reset := false

	if p.Term != nil {
		next.Term = *p.Term
		reset = true
	}
	if p.Status != nil {
		next.Status = *p.Status
		reset = true
	}
	if p.Channel != nil {
		next.Channel = *p.Channel
		reset = true
	}
	if p.PageSize != nil {
		next.PageSize = *p.PageSize
		reset = true
	}
	if p.Sort != nil {
		next.Sort = *p.Sort
		reset = true
	}
	if p.Page != nil {
		next.Page = *p.Page
	}
	if reset {
		next.Page = 1
	}
	return next
}
