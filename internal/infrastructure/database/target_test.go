package database

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseURLPostgres(t *testing.T) {
	for _, raw := range []string{
		"postgres://alle:pw@localhost:5432/alle?sslmode=disable",
		"postgresql://alle@db/alle",
	} {
		target, err := ParseURL(raw)
		require.NoError(t, err)
		assert.Equal(t, BackendPostgres, target.Backend)
		assert.Equal(t, raw, target.DSN)
	}
}

func TestParseURLSQLite(t *testing.T) {
	cases := map[string]string{
		"sqlite://./alle.db":        "./alle.db",
		"sqlite:./alle.db?mode=rwc": "./alle.db",
		"file:/tmp/alle.db":         "/tmp/alle.db",
	}
	for raw, path := range cases {
		target, err := ParseURL(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, BackendSQLite, target.Backend)

		dsnPath, rawQuery, ok := strings.Cut(target.DSN, "?")
		require.True(t, ok)
		assert.Equal(t, "file:"+path, dsnPath)

		q, err := url.ParseQuery(rawQuery)
		require.NoError(t, err)
		assert.Contains(t, q["_pragma"], "foreign_keys(1)")
		assert.Equal(t, "sqlite", q.Get("_time_format"))
	}

	target, err := ParseURL("sqlite:./alle.db?mode=rwc")
	require.NoError(t, err)
	assert.Contains(t, target.DSN, "mode=rwc")
}

func TestParseURLRejectsUnknown(t *testing.T) {
	_, err := ParseURL("mysql://root@localhost/alle")
	assert.Error(t, err)

	_, err = ParseURL("sqlite://")
	assert.Error(t, err)
}
