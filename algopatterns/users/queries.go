package users

const (
	querySchema = `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email TEXT NOT NULL,
			name TEXT NOT NULL,
			is_admin BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT users_email_key UNIQUE (email)
		)
	`

	queryCreate = `
		INSERT INTO users (email, name)
		VALUES ($1, $2)
		RETURNING id, email, name, is_admin, created_at, updated_at
	`

	queryFindByID = `
		SELECT id, email, name, is_admin, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	queryDelete = `
		DELETE FROM users
		WHERE id = $1
	`
)
