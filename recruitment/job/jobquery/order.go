package jobquery

import "github.com/Abraxas-365/jobboard/recruitment/job"

// OrderKey returns the total order for spec: the primary key from sortBy,
// then posted date descending unless already primary, then id ascending.
func OrderKey(spec job.FilterSpec) []job.OrderTerm {
	dir := spec.SortOrder
	if dir != job.SortAsc {
		dir = job.SortDesc
	}

	var terms []job.OrderTerm
	switch spec.SortBy {
	case job.SortPostedDate:
		terms = append(terms, column(job.FieldPostedDate, dir))
	case job.SortTitle:
		terms = append(terms, column(job.FieldTitle, dir))
	case job.SortCompanyName:
		terms = append(terms, column(job.FieldCompanyName, dir))
	case job.SortSalary:
		// highest first whatever the requested order
		terms = append(terms,
			column(job.FieldSalaryMax, job.SortDesc),
			column(job.FieldSalaryMin, job.SortDesc),
		)
	default:
		if spec.HasKeywords() {
			terms = append(terms, job.OrderTerm{
				Kind:      job.OrderRelevance,
				Direction: job.SortAsc,
				Keyword:   *spec.Keywords,
			})
		}
	}

	return withTieBreaks(terms)
}

// TrendingOrder ranks by trending score, then the usual tie-breaks
func TrendingOrder() []job.OrderTerm {
	return withTieBreaks([]job.OrderTerm{{Kind: job.OrderTrending, Direction: job.SortDesc}})
}

func withTieBreaks(terms []job.OrderTerm) []job.OrderTerm {
	postedFirst := len(terms) > 0 &&
		terms[0].Kind == job.OrderColumn &&
		terms[0].Field == job.FieldPostedDate
	if !postedFirst {
		terms = append(terms, column(job.FieldPostedDate, job.SortDesc))
	}
	return append(terms, column(job.FieldID, job.SortAsc))
}

func column(f job.Field, dir job.SortOrder) job.OrderTerm {
	return job.OrderTerm{Kind: job.OrderColumn, Field: f, Direction: dir}
}
