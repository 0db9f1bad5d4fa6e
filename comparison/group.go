package comparison

import "github.com/orlando572/sumaq-seguros-sub000/plan"

// CompanyGroup is one insurer's block in the catalog grid.
type CompanyGroup struct {
	Company string
	Plans   []plan.Plan
}

// GroupByCompany partitions plans by company name, ordering groups by the
// first appearance of each company. Plans without a company or plan type are
// left out of the grid; they remain selectable by id.
func GroupByCompany(plans []plan.Plan) []CompanyGroup {
	groups := make([]CompanyGroup, 0, 4)
	index := make(map[string]int)

	for _, p := range plans {
		if p.Company == nil || p.Type == nil {
			continue
		}
		name := p.Company.Name
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, CompanyGroup{Company: name})
		}
		groups[i].Plans = append(groups[i].Plans, p)
	}

	return groups
}
