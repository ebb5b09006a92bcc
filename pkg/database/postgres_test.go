package database

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/starsplanner/planner-api/pkg/config"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{Host: "db", Port: 5432, User: "planner", Password: "secret", Name: "catalogue", SSLMode: "disable"})
	assert.Equal(t, "host=db port=5432 user=planner password=secret dbname=catalogue sslmode=disable", dsn)
}
