package contentserver

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/foomo/contentserver-portfolio/service/vo"
)

// DefaultNumberPosts is the page size used when a query asks for zero entries.
const DefaultNumberPosts = 5

// Match evaluates query against entries and returns the selected page in the
// requested order. A tax query without clauses does not restrict the result.
func Match(entries []vo.Entry, query vo.Query) []vo.Entry {
	matched := make([]vo.Entry, 0, len(entries))
	for _, entry := range entries {
		if matchEntry(entry, query) {
			matched = append(matched, entry)
		}
	}
	sortEntries(matched, query.OrderBy, query.Order)
	return paginate(matched, query.PerPage, query.Paged)
}

func matchEntry(entry vo.Entry, query vo.Query) bool {
	if query.PostType != "" && entry.PostType != query.PostType {
		return false
	}
	status := query.PostStatus
	if status == "" {
		status = vo.StatusPublic
	}
	if status != "any" && entry.Status != status {
		return false
	}
	if slices.Contains(query.NotIn, entry.ID) {
		return false
	}
	for _, clause := range query.Meta {
		value, ok := entry.Meta[clause.Key]
		if !ok || metaString(value) != clause.Value {
			return false
		}
	}
	if query.Tax != nil {
		return matchTax(entry, *query.Tax)
	}
	return true
}

func matchTax(entry vo.Entry, tax vo.TaxQuery) bool {
	if len(tax.Clauses) == 0 {
		return true
	}
	or := strings.EqualFold(tax.Relation, vo.RelationOr)
	for _, clause := range tax.Clauses {
		hit := matchTaxClause(entry, clause)
		if or && hit {
			return true
		}
		if !or && !hit {
			return false
		}
	}
	return !or
}

func matchTaxClause(entry vo.Entry, clause vo.TaxClause) bool {
	for _, id := range entry.TermIDs(clause.Taxonomy) {
		if slices.Contains(clause.Terms, id) {
			return true
		}
	}
	return false
}

func metaString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "1"
		}
		return ""
	}
	return fmt.Sprint(value)
}

func sortEntries(entries []vo.Entry, orderBy, order string) {
	less := lessFunc(orderBy)
	if less == nil {
		return
	}
	desc := !strings.EqualFold(order, "ASC")
	sort.SliceStable(entries, func(i, j int) bool {
		if desc {
			return less(entries[j], entries[i])
		}
		return less(entries[i], entries[j])
	})
}

func lessFunc(orderBy string) func(a, b vo.Entry) bool {
	switch strings.ToLower(orderBy) {
	case "none", "rand":
		return nil
	case "id":
		return func(a, b vo.Entry) bool { return lessID(a.ID, b.ID) }
	case "title":
		return func(a, b vo.Entry) bool { return strings.ToLower(a.Title) < strings.ToLower(b.Title) }
	case "name":
		return func(a, b vo.Entry) bool { return a.Slug < b.Slug }
	case "menu_order":
		return func(a, b vo.Entry) bool { return a.MenuOrder < b.MenuOrder }
	}
	return func(a, b vo.Entry) bool { return a.Date.Before(b.Date) }
}

// lessID compares numerically when both ids are integers.
func lessID(a, b string) bool {
	x, errA := strconv.ParseInt(a, 10, 64)
	y, errB := strconv.ParseInt(b, 10, 64)
	if errA == nil && errB == nil {
		return x < y
	}
	return a < b
}

func paginate(entries []vo.Entry, perPage, paged int) []vo.Entry {
	if perPage < 0 {
		return entries
	}
	if perPage == 0 {
		perPage = DefaultNumberPosts
	}
	offset := 0
	if paged > 1 {
		offset = (paged - 1) * perPage
	}
	if offset >= len(entries) {
		return []vo.Entry{}
	}
	end := min(offset+perPage, len(entries))
	return entries[offset:end]
}
