package sqlite

// schema is applied by EnsureSchema. Every statement is idempotent.
//
// relationships.contact_id has no foreign key: a mirror edge stores the
// original user's id there. Exactly one of contact_id and entity_id is set,
// and the expression indexes treat NULL as a value so uniqueness holds for
// both target kinds and for open-ended roles.
const schema = `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS contacts (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		normalized_name TEXT NOT NULL,
		type TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		tags TEXT NOT NULL DEFAULT '[]',
		added_by_id TEXT NOT NULL REFERENCES users(id),
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_contacts_added_by ON contacts(added_by_id);
	CREATE INDEX IF NOT EXISTS idx_contacts_normalized ON contacts(added_by_id, normalized_name);

	CREATE TABLE IF NOT EXISTS global_entities (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		categories TEXT NOT NULL DEFAULT '[]',
		description TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		website TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		metadata TEXT,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS relationships (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		contact_id TEXT,
		entity_id TEXT,
		relation TEXT NOT NULL,
		strength TEXT NOT NULL,
		visibility TEXT NOT NULL,
		is_reciprocal INTEGER NOT NULL DEFAULT 0,
		context TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		metadata TEXT,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		CHECK ((contact_id IS NULL) <> (entity_id IS NULL))
	);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_relationships_edge
		ON relationships(user_id, COALESCE(contact_id, ''), COALESCE(entity_id, ''), relation);
	CREATE INDEX IF NOT EXISTS idx_relationships_user ON relationships(user_id);
	CREATE INDEX IF NOT EXISTS idx_relationships_contact ON relationships(contact_id);
	CREATE INDEX IF NOT EXISTS idx_relationships_entity ON relationships(entity_id);

	CREATE TABLE IF NOT EXISTS interactions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		contact_id TEXT,
		entity_id TEXT,
		relationship_id TEXT REFERENCES relationships(id) ON DELETE SET NULL,
		type TEXT NOT NULL,
		title TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		duration_seconds INTEGER,
		timestamp TIMESTAMP NOT NULL,
		metadata TEXT,
		created_at TIMESTAMP NOT NULL,
		CHECK ((contact_id IS NULL) <> (entity_id IS NULL))
	);
	CREATE INDEX IF NOT EXISTS idx_interactions_user ON interactions(user_id, timestamp);
	CREATE INDEX IF NOT EXISTS idx_interactions_contact ON interactions(contact_id);
	CREATE INDEX IF NOT EXISTS idx_interactions_entity ON interactions(entity_id);

	CREATE TABLE IF NOT EXISTS contact_roles (
		id TEXT PRIMARY KEY,
		contact_id TEXT NOT NULL REFERENCES contacts(id),
		entity_id TEXT NOT NULL REFERENCES global_entities(id),
		role TEXT NOT NULL,
		location TEXT NOT NULL DEFAULT '',
		start_date TIMESTAMP NOT NULL,
		end_date TIMESTAMP,
		metadata TEXT,
		created_at TIMESTAMP NOT NULL
	);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_contact_roles_tenure
		ON contact_roles(contact_id, entity_id, role, COALESCE(end_date, ''));
	CREATE INDEX IF NOT EXISTS idx_contact_roles_entity ON contact_roles(entity_id);

	-- Audit log (tracks graph mutations)
	CREATE TABLE IF NOT EXISTS audit_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		action TEXT NOT NULL,
		subject_id TEXT,
		details TEXT,
		created_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_audit_log_subject ON audit_log(subject_id);
	CREATE INDEX IF NOT EXISTS idx_audit_log_action ON audit_log(action);
`
