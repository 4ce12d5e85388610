package postgres

import "fmt"

// tableColumn qualifies column with table, e.g. albums."id".
func tableColumn(table, column string) string {
	return fmt.Sprintf("%s.%s", table, column)
}

func tableColumns(table string, columns []string) []string {
	cs := make([]string, 0, len(columns))
	for _, c := range columns {
		cs = append(cs, tableColumn(table, c))
	}
	return cs
}

// aliasedColumn qualifies column with table and renames it in the result set,
// for joined columns that would otherwise collide.
func aliasedColumn(table, column, alias string) string {
	return fmt.Sprintf("%s AS %s", tableColumn(table, column), alias)
}

// joinOn returns "table ON table.column = other.otherColumn".
func joinOn(table, column, other, otherColumn string) string {
	return fmt.Sprintf("%s ON %s = %s", table, tableColumn(table, column), tableColumn(other, otherColumn))
}
