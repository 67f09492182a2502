package postgres

import "strings"

// pgIdent safely quotes a single identifier segment for Postgres. Table and
// column names come only from fixed schemas or the source file's header, but
// header names can contain spaces or quotes and must be quoted as one unit.
func pgIdent(id string) string { return `"` + strings.ReplaceAll(id, `"`, `""`) + `"` }

// pgFQN quotes a possibly schema-qualified name like "public.people" to
// "public"."people". If no dot is present, returns a single quoted ident.
func pgFQN(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = pgIdent(p)
	}
	return strings.Join(parts, ".")
}
