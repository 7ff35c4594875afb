package driver

const (
	MergeNodeQuery = `
		MERGE (n:Entity {id: $id})
		SET n.label = $label
		SET n += $props
		RETURN n.id AS id
	`

	// MergeEdgeQueryTemplate takes the sanitized relationship type via
	// fmt.Sprintf. Neo4j cannot parameterize relationship types, so the type
	// must pass store.SanitizeRelType validation before being spliced in.
	// Both endpoints are MATCHed, not MERGEd: an edge referencing a missing
	// node simply matches nothing and is skipped.
	MergeEdgeQueryTemplate = `
		MATCH (source:Entity {id: $source_id})
		MATCH (target:Entity {id: $target_id})
		MERGE (source)-[:%s]->(target)
	`

	GetNodesQuery = `
		MATCH (n:Entity)
		RETURN n.id AS id, n.label AS label, properties(n) AS props
	`

	GetEdgesQuery = `
		MATCH (a:Entity)-[r]->(b:Entity)
		RETURN a.id AS source_id, b.id AS target_id, type(r) AS relationship_type
	`

	PingQuery = `RETURN 1 AS ok`

	// ShortestPathQueryTemplate takes the hop bound via fmt.Sprintf (variable
	// length bounds cannot be parameterized either). Traversal is undirected.
	ShortestPathQueryTemplate = `
		MATCH path = shortestPath(
			(a:Entity {id: $start_id})-[*..%d]-(b:Entity {id: $end_id})
		)
		RETURN [node IN nodes(path) | node.id] AS node_ids,
		       [rel IN relationships(path) | type(rel)] AS rel_types
		LIMIT 1
	`

	// NeighborsWithinHopsQueryTemplate collects which candidate ids are
	// reachable from the start node, appends the start id and truncates to
	// the first 10 in store order.
	NeighborsWithinHopsQueryTemplate = `
		MATCH (start:Entity {id: $start_id})-[*..%d]-(connected:Entity)
		WHERE connected.id IN $candidate_ids
		WITH collect(DISTINCT connected.id) + [$start_id] AS all_ids
		RETURN all_ids[0..10] AS node_ids
	`
)
