package v1

import (
	"fmt"

	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// stringFilters applies the name, note and search filters for list requests.
// Resources without a name or note column pass an empty string for it. The
// search clause matches searchColumns only, since the resources do not share
// one set of text columns.
func stringFilters(db, query *gorm.DB, setFields []string, name, note, search string, searchColumns ...string) *gorm.DB {
	if name != "" {
		query = query.Where("name LIKE ?", fmt.Sprintf("%%%s%%", name))
	} else if slices.Contains(setFields, "Name") {
		query = query.Where("name = ''")
	}

	if note != "" {
		query = query.Where("note LIKE ?", fmt.Sprintf("%%%s%%", note))
	} else if slices.Contains(setFields, "Note") {
		query = query.Where("note = ''")
	}

	if search != "" {
		var clause *gorm.DB
		for _, column := range searchColumns {
			condition := db.Where(fmt.Sprintf("%s LIKE ?", column), fmt.Sprintf("%%%s%%", search))

			if clause == nil {
				clause = condition
			} else {
				clause = clause.Or(condition)
			}
		}

		if clause != nil {
			query = query.Where(clause)
		}
	}

	return query
}
