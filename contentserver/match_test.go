package contentserver

import (
	"testing"

	"github.com/foomo/contentserver-portfolio/service/vo"
	"github.com/stretchr/testify/assert"
)

func testEntries(n int) []vo.Entry {
	out := make([]vo.Entry, n)
	for i := range out {
		out[i] = vo.Entry{ID: string(rune('a' + i)), PostType: vo.PostType, Status: vo.StatusPublic, MenuOrder: n - i}
	}
	return out
}

func TestPaginate(t *testing.T) {
	all := testEntries(12)
	assert.Len(t, paginate(all, -1, 3), 12)
	assert.Len(t, paginate(all, 0, 0), DefaultNumberPosts)
	assert.Equal(t, []string{"e", "f", "g", "h"}, ids(paginate(all, 4, 2)))
	assert.Equal(t, []string{"a", "b"}, ids(paginate(all, 2, 1)))
	assert.Empty(t, paginate(all, 5, 4))
}

func TestMatchTaxRelations(t *testing.T) {
	in := []vo.Entry{
		{ID: "1", PostType: vo.PostType, Status: vo.StatusPublic, Categories: []string{"c"}, Skills: []string{"s"}},
		{ID: "2", PostType: vo.PostType, Status: vo.StatusPublic, Categories: []string{"c"}},
		{ID: "3", PostType: vo.PostType, Status: vo.StatusPublic},
	}
	clauses := []vo.TaxClause{
		{Taxonomy: vo.TaxCategory, Field: "id", Terms: []string{"c"}},
		{Taxonomy: vo.TaxSkill, Field: "id", Terms: []string{"s"}},
	}
	query := func(relation string, clauses []vo.TaxClause) vo.Query {
		return vo.Query{PerPage: -1, OrderBy: "ID", Order: "ASC", Tax: &vo.TaxQuery{Relation: relation, Clauses: clauses}}
	}

	assert.Equal(t, []string{"1", "2"}, ids(Match(in, query(vo.RelationOr, clauses))))
	assert.Equal(t, []string{"1"}, ids(Match(in, query(vo.RelationAnd, clauses))))
	assert.Equal(t, []string{"1", "2", "3"}, ids(Match(in, query(vo.RelationOr, nil))))
	assert.Equal(t, []string{"1", "2", "3"}, ids(Match(in, query(vo.RelationAnd, nil))))
}

func TestMatchFilters(t *testing.T) {
	in := []vo.Entry{
		{ID: "1", PostType: vo.PostType, Status: vo.StatusPublic, Meta: map[string]any{vo.MetaFeatured: "yes"}},
		{ID: "2", PostType: vo.PostType, Status: vo.StatusPublic, Meta: map[string]any{vo.MetaFeatured: ""}},
		{ID: "3", PostType: vo.PostType, Status: "draft", Meta: map[string]any{vo.MetaFeatured: "yes"}},
		{ID: "4", PostType: "page", Status: vo.StatusPublic},
		{ID: "5", PostType: vo.PostType, Status: vo.StatusPublic},
	}
	base := vo.Query{PostType: vo.PostType, PerPage: -1, OrderBy: "ID", Order: "ASC"}

	assert.Equal(t, []string{"1", "2", "5"}, ids(Match(in, base)))

	featured := base
	featured.Meta = []vo.MetaClause{{Key: vo.MetaFeatured, Value: "yes"}}
	assert.Equal(t, []string{"1"}, ids(Match(in, featured)))

	anyStatus := base
	anyStatus.PostStatus = "any"
	anyStatus.NotIn = []string{"1"}
	assert.Equal(t, []string{"2", "3", "5"}, ids(Match(in, anyStatus)))
}

func TestSortEntries(t *testing.T) {
	in := []vo.Entry{
		{ID: "9", Title: "b", MenuOrder: 2},
		{ID: "10", Title: "A", MenuOrder: 1},
		{ID: "x", Title: "c", MenuOrder: 3},
	}
	sorted := func(orderBy, order string) []string {
		out := append([]vo.Entry(nil), in...)
		sortEntries(out, orderBy, order)
		return ids(out)
	}
	assert.Equal(t, []string{"9", "10", "x"}, sorted("ID", "ASC"))
	assert.Equal(t, []string{"x", "10", "9"}, sorted("ID", "DESC"))
	assert.Equal(t, []string{"10", "9", "x"}, sorted("title", "asc"))
	assert.Equal(t, []string{"x", "9", "10"}, sorted("menu_order", ""))
	assert.Equal(t, []string{"9", "10", "x"}, sorted("none", "DESC"))
}
