package main

import (
	"strings"
	"testing"
)

func TestRun_BadKeyspaceReturnsError(t *testing.T) {
	t.Setenv("CASSANDRA_KEYSPACE", "bad-keyspace!")

	err := run()
	if err == nil || !strings.Contains(err.Error(), "invalid keyspace") {
		t.Fatalf("Expected a keyspace error, got %v", err)
	}
}
