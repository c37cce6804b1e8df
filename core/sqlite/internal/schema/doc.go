// Package schema reads the schema table stored in the b-tree rooted at page 1.
//
// Every row of the schema table describes one object:
//
//	CREATE TABLE sqlite_schema (
//	  type TEXT,      -- "table", "index", "trigger", "view"
//	  name TEXT,      -- object name
//	  tbl_name TEXT,  -- table the object belongs to
//	  rootpage INT,   -- root b-tree page, 0 for views and triggers
//	  sql TEXT        -- CREATE statement
//	);
//
// Catalog streams these rows as Entry values. Nothing is cached: every call
// walks page 1 again.
//
// ParseTableColumns turns the CREATE TABLE text of an entry into the ordered
// column list used to align record values with column names.
package schema
