package iocatalog

const relationColumns = `
SELECT n.nspname, c.relname, pg_get_viewdef(c.oid) AS definition,
  c.relkind = 'm' AS materialized, c.relispopulated
FROM pg_class c
JOIN pg_namespace n ON n.oid = c.relnamespace`

// relationsSQL lists views and materialized views in the search path.
// Relations created by extensions are skipped, either through their
// extension membership or because they are named after the extension.
const relationsSQL = relationColumns + `
WHERE c.relkind IN ('m', 'v')
  AND n.nspname = ANY (current_schemas(false))
  AND c.relname NOT IN (SELECT extname FROM pg_extension)
  AND c.relname != 'pg_stat_statements_info'
  AND NOT EXISTS (
    SELECT 1 FROM pg_depend d
    WHERE d.classid = 'pg_class'::regclass
      AND d.objid = c.oid
      AND d.deptype = 'e'
  )
ORDER BY n.nspname, c.relname`

const lookupSQL = relationColumns + `
WHERE c.oid = to_regclass($1)
  AND c.relkind IN ('m', 'v')`

const indexesSQL = `
SELECT n.nspname, t.relname, i.relname, pg_get_indexdef(d.indexrelid)
FROM pg_index d
JOIN pg_class t ON t.oid = d.indrelid
JOIN pg_class i ON i.oid = d.indexrelid
JOIN pg_namespace n ON n.oid = t.relnamespace
WHERE t.oid = to_regclass($1)
  AND NOT d.indisprimary
ORDER BY i.relname`

// dependenciesSQL finds which relations are referenced by the rewrite
// rules of other relations. $1 is an array of relkinds.
const dependenciesSQL = `
SELECT DISTINCT dn.nspname, dv.relname, sn.nspname, st.relname
FROM pg_depend d
JOIN pg_rewrite r ON d.objid = r.oid
JOIN pg_class dv ON r.ev_class = dv.oid
JOIN pg_class st ON d.refobjid = st.oid
JOIN pg_namespace dn ON dn.oid = dv.relnamespace
JOIN pg_namespace sn ON sn.oid = st.relnamespace
WHERE dn.nspname = ANY (current_schemas(false))
  AND sn.nspname = ANY (current_schemas(false))
  AND dv.oid != st.oid
  AND dv.relkind::text = ANY ($1)
  AND st.relkind::text = ANY ($1)
ORDER BY 1, 2, 3, 4`

const definitionSQL = `SELECT pg_get_viewdef(to_regclass($1))`

const sizeSQL = `SELECT pg_total_relation_size(to_regclass($1))`

// functionColumns reads SQL and PL/pgSQL functions. Aggregates, window
// functions and procedures are skipped: prokind exists since PostgreSQL
// 11, older servers are filtered through pg_aggregate.
const functionColumns = `
SELECT n.nspname, p.proname, pg_get_function_identity_arguments(p.oid),
  pg_get_functiondef(p.oid)
FROM pg_proc p
JOIN pg_namespace n ON n.oid = p.pronamespace
JOIN pg_language l ON l.oid = p.prolang
WHERE l.lanname IN ('sql', 'plpgsql')
  AND COALESCE(to_jsonb(p) ->> 'prokind', 'f') = 'f'
  AND NOT EXISTS (SELECT 1 FROM pg_aggregate a WHERE a.aggfnoid = p.oid)
  AND NOT EXISTS (
    SELECT 1 FROM pg_depend d
    WHERE d.classid = 'pg_proc'::regclass
      AND d.objid = p.oid
      AND d.deptype = 'e'
  )`

const functionsSQL = functionColumns + `
  AND n.nspname = ANY (current_schemas(false))
ORDER BY n.nspname, p.proname, 3`

// lookupFunctionsSQL finds overloads of a name. Without a schema ($2 is
// empty) only functions visible through the search path are used.
const lookupFunctionsSQL = functionColumns + `
  AND p.proname = $1
  AND (n.nspname = $2 OR ($2 = '' AND pg_function_is_visible(p.oid)))
ORDER BY 3`
