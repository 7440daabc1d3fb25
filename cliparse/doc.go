// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: connection string or SQLite path (required)
  - DatabaseType: "sqlite" (default) or "postgres"
  - SessionSecret: Secret used to verify session tokens (required)
  - BaseURL: Public app URL used in share links (default: http://localhost:3000)

# CLI Flags

	-p               Server port
	-d               Database URL
	-t               Database type
	--base-url       Public app URL
	--session-secret Session token secret
	--env-file       Load environment from this file

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	APP_URL        → --base-url
	SESSION_SECRET → --session-secret

CLI flags take precedence over environment variables. A .env file in the
working directory (or the --env-file path) is loaded first; it never
overrides variables that are already set.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - SESSION_SECRET must be provided
  - DATABASE_TYPE must be sqlite or postgres
*/
package cliparse
