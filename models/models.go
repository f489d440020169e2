// Package models defines the Author and Post records, their field rules and
// the gorm hooks that keep invalid records out of the database.
package models

// Tables lists every model that Migrate should create.
func Tables() []interface{} {
	return []interface{}{&Author{}, &Post{}}
}
